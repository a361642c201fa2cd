package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pms/config"
	"pms/internal/clock"
	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	cErr "pms/internal/pkg/error"
	"pms/internal/telemetry"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore interface {
	GetByUUID(ctx context.Context, userUUID string) (*model.User, error)
}

// IssuedToken 簽發結果
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthService struct {
	trace  *telemetry.Trace
	config *config.Configuration
	clock  clock.Clock
	users  UserStore
}

func NewAuthService(trace *telemetry.Trace, config *config.Configuration, clock clock.Clock, users UserStore) *AuthService {
	return &AuthService{trace: trace, config: config, clock: clock, users: users}
}

// IssueToken 為既有且啟用中的使用者簽發 HS256 token
func (s *AuthService) IssueToken(ctx context.Context, userUUID string) (_ *IssuedToken, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	user, err := s.activeUser(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	issuedAt := s.clock.Now()
	expiresAt := issuedAt.Add(s.config.Auth.TokenLifetime())
	claims := core.Claims{
		UUID:   user.UUID,
		Role:   user.Role,
		Email:  user.Email,
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Auth.Issuer,
			Subject:   user.UUID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.App.SecretKey))
	if err != nil {
		return nil, cErr.InternalServer("sign token failed")
	}
	return &IssuedToken{Token: token, ExpiresAt: expiresAt}, nil
}

// ParseToken 只接受 HS256
func (s *AuthService) ParseToken(tokenString string) (*core.Claims, error) {
	claims := &core.Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(s.config.App.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, cErr.InvalidSession("invalid or expired token")
	}
	if s.config.Auth.Issuer != "" && claims.Issuer != s.config.Auth.Issuer {
		return nil, cErr.InvalidSession("unexpected token issuer")
	}
	return claims, nil
}

// Authenticate token 有效且使用者仍存在、啟用
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (_ *core.Claims, _ *model.User, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.activeUser(ctx, claims.UUID)
	if err != nil {
		return nil, nil, err
	}
	return claims, user, nil
}

func (s *AuthService) activeUser(ctx context.Context, userUUID string) (*model.User, error) {
	user, err := s.users.GetByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.Unauthorized(fmt.Sprintf("user %s not found", userUUID))
		}
		return nil, cErr.DatabaseError("database GetUser error")
	}
	if !user.IsActive {
		return nil, cErr.InactiveUser("user is inactive")
	}
	return user, nil
}
