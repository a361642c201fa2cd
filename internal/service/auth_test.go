package service

import (
	"context"
	"testing"
	"time"

	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	cErr "pms/internal/pkg/error"
	"pms/internal/telemetry"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeUsers map[string]*model.User

func (f fakeUsers) GetByUUID(_ context.Context, userUUID string) (*model.User, error) {
	user, ok := f[userUUID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func newAuthFixture() (*AuthService, fakeUsers) {
	users := fakeUsers{
		"owner-uuid":    {ID: primitive.NewObjectID(), UUID: "owner-uuid", Role: core.RoleOwner, Email: "o@example.com", IsActive: true},
		"inactive-uuid": {ID: primitive.NewObjectID(), UUID: "inactive-uuid", Role: core.RoleManager},
	}
	return NewAuthService(&telemetry.Trace{}, testConfig(), fixedClock(time.Now()), users), users
}

func TestIssueAndAuthenticate(t *testing.T) {
	service, users := newAuthFixture()

	issued, err := service.IssueToken(context.Background(), "owner-uuid")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)

	claims, user, err := service.Authenticate(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, core.RoleOwner, claims.Role)
	assert.Equal(t, users["owner-uuid"].ID.Hex(), claims.UserID)
	assert.Equal(t, "pms-test", claims.Issuer)
	assert.Equal(t, "owner-uuid", user.UUID)
}

func TestIssueToken_RejectsUnknownAndInactiveUsers(t *testing.T) {
	service, _ := newAuthFixture()
	var appErr *cErr.Error

	_, err := service.IssueToken(context.Background(), "ghost")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, cErr.UNAUTHORIZED, appErr.ErrorCode())

	_, err = service.IssueToken(context.Background(), "inactive-uuid")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, cErr.INACTIVE_USER, appErr.ErrorCode())
}

func TestParseToken_RejectsForeignSignatures(t *testing.T) {
	service, _ := newAuthFixture()
	claims := core.Claims{UUID: "owner-uuid", RegisteredClaims: jwt.RegisteredClaims{Issuer: "pms-test"}}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = service.ParseToken(forged)
	assert.Error(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = service.ParseToken(unsigned)
	assert.Error(t, err)

	wrongIssuer := core.Claims{UUID: "owner-uuid", RegisteredClaims: jwt.RegisteredClaims{Issuer: "elsewhere"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wrongIssuer).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = service.ParseToken(token)
	assert.Error(t, err)
}
