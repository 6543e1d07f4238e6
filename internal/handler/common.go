package handler

import (
	"net/http"

	"event-platform/internal/middleware"
	apperrors "event-platform/pkg/app_errors"
	"event-platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IDUri 路徑上的正整數 id
type IDUri struct {
	ID int `uri:"id" binding:"required,min=1"`
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		badRequest(c, err)
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		badRequest(c, err)
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		badRequest(c, err)
		return err
	}
	return nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "Invalid request format",
		"kind":   apperrors.KindValidation,
		"detail": err.Error(),
	})
}

// statusOf Kind 對應 HTTP status
func statusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindInvalidCredentials, apperrors.KindInvalidOperation, apperrors.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleError 依錯誤分類回應；internal 錯誤只記 log，不把細節回給 client
func handleError(c *gin.Context, err error, operation string) {
	kind := apperrors.KindOf(err)
	status := statusOf(kind)

	log := logger.WithComponent("handler").With(
		zap.String("operation", operation),
		zap.String("request_id", middleware.RequestIDFrom(c)),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	if status >= http.StatusInternalServerError {
		log.Error("Internal server error")
	} else {
		log.Warn("Request rejected")
	}

	c.JSON(status, gin.H{
		"error": apperrors.MessageOf(err),
		"kind":  kind,
	})
}

// currentUserID RequireAuth 之後一定有值；沒有代表路由設定錯誤
func currentUserID(c *gin.Context) (int, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		handleError(c, apperrors.ErrUnauthenticated, "currentUserID")
	}
	return id, ok
}
