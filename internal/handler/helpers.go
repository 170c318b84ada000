package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avverma/fitrag/internal/pkg/errcode"
	"github.com/avverma/fitrag/internal/pkg/errs"
	"github.com/avverma/fitrag/internal/pkg/logutil"
	"github.com/avverma/fitrag/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get("user_id")
	userID, _ := value.(string)
	return userID
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err))
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, errs.ErrForbidden):
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case errors.Is(err, errs.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, errs.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, errs.ErrConflict):
		response.Error(c, errcode.ErrConflict, "conflict")
	case errors.Is(err, errs.ErrUnavailable):
		response.Error(c, errcode.ErrAIUnavailable, "service unavailable")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
