package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pandamarket/backend/pkg/errorx"
)

type Response struct {
	Code  int    `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func writeData(ginCtx *gin.Context, data any) {
	ginCtx.JSON(http.StatusOK, Response{Code: 0, Data: data})
}

// writeError only ever exposes errorx errors to the client. Everything else
// is collapsed into errorx.Unknown.
func writeError(ginCtx *gin.Context, err error) {
	var xerr errorx.Error
	if !errors.As(err, &xerr) {
		xerr = errorx.Unknown
	}

	ginCtx.JSON(httpStatus(xerr.Code), Response{Code: int(xerr.Code), Error: xerr.Message})
}

func httpStatus(code errorx.Code) int {
	switch code {
	case errorx.BadRequest, errorx.AlreadyExists:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
