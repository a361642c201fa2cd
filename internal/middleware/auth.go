package middleware

import (
	"strings"

	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	cErr "pms/internal/pkg/error"
	"pms/internal/pkg/response"
	"pms/internal/service"
	"pms/internal/telemetry"

	"github.com/gin-gonic/gin"
)

const tokenQueryKey = "token"

type Auth struct {
	trace       *telemetry.Trace
	authService *service.AuthService
}

func NewAuth(trace *telemetry.Trace, authService *service.AuthService) *Auth {
	return &Auth{trace: trace, authService: authService}
}

// Handler 驗證 bearer token（websocket 可用 ?token=），成功後放入 claims 與 user
func (m *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanAuthMiddleware))

		token := BearerToken(c)
		if token == "" {
			m.trace.ApplyTraceAttributes(span, core.TraceAuthMiddlewareMeta{Where: "token", Status: "missing_token"})
			cause := cErr.Unauthorized("missing bearer token")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}

		claims, user, err := m.authService.Authenticate(ctx, token)
		if err != nil {
			m.trace.ApplyTraceAttributes(span, core.TraceAuthMiddlewareMeta{Where: "token", Status: "rejected"})
			response.AbortWithError(c, err)
			end(err)
			return
		}
		m.trace.ApplyTraceAttributes(span, core.TraceAuthMiddlewareMeta{
			Where:  "token",
			UserID: user.ID.Hex(),
			Role:   string(user.Role),
			Status: "success",
		})
		c.Set(core.ContextClaimsKey, claims)
		c.Set(core.ContextUserKey, user)
		end(nil)
		c.Next()
	}
}

// RequireRoles 角色守門，需掛在 Handler 之後
func (m *Auth) RequireRoles(roles ...core.Role) gin.HandlerFunc {
	allowed := make([]string, 0, len(roles))
	for _, role := range roles {
		allowed = append(allowed, string(role))
	}
	return func(c *gin.Context) {
		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanAuthMiddleware))
		user, ok := CurrentUser(c)
		if !ok {
			m.trace.ApplyTraceAttributes(span, core.TraceAuthMiddlewareMeta{Where: "role", Allowed: allowed, Status: "missing_user"})
			cause := cErr.Unauthorized("missing user context")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}
		for _, role := range roles {
			if user.Role == role {
				m.trace.ApplyTraceAttributes(span, core.TraceAuthMiddlewareMeta{
					Where: "role", UserID: user.ID.Hex(), Role: string(user.Role), Allowed: allowed, Status: "allowed",
				})
				end(nil)
				c.Next()
				return
			}
		}
		m.trace.ApplyTraceAttributes(span, core.TraceAuthMiddlewareMeta{
			Where: "role", UserID: user.ID.Hex(), Role: string(user.Role), Allowed: allowed, Status: "forbidden",
		})
		cause := cErr.Forbidden("role " + string(user.Role) + " is not allowed")
		response.AbortWithError(c, cause)
		end(cause)
	}
}

// BearerToken 先取 Authorization header，再退回 query token
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return strings.TrimSpace(c.Query(tokenQueryKey))
}

// CurrentUser 取得 auth middleware 放入的使用者
func CurrentUser(c *gin.Context) (*model.User, bool) {
	raw, ok := c.Get(core.ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := raw.(*model.User)
	return user, ok && user != nil
}
