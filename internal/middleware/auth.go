package middleware

import (
	"context"
	"net/http"

	"event-platform/internal/auth"
	apperrors "event-platform/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// ActiveUserChecker 確認 token 主體仍存在且未停權，由 service.UserService 實作
type ActiveUserChecker interface {
	EnsureActive(ctx context.Context, userID int) error
}

// RequireAuth 解析 Bearer token，失敗直接回 401，不進 handler；
// users 非 nil 時停權帳號的舊 token 立即失效（403）
func RequireAuth(tokens auth.TokenIssuer, users ActiveUserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, err)
			return
		}

		userID, err := tokens.Decode(raw)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, err)
			return
		}

		if users != nil {
			if err := users.EnsureActive(c, userID); err != nil {
				abortWithError(c, statusOf(err), err)
				return
			}
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID 只能用在 RequireAuth 之後的 handler
func CurrentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok && id > 0
}

func statusOf(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": apperrors.MessageOf(err),
		"kind":  apperrors.KindOf(err),
	})
}
