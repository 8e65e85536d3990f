package apperrors

import (
	"github.com/gin-gonic/gin"

	"lostfound_backend/internal/logger"
)

// ErrorResponse is the envelope every error reply uses.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler renders AppErrors as JSON. Debug controls whether
// internal error detail leaks to the client.
type GinErrorHandler struct {
	Debug bool
}

var defaultHandler = &GinErrorHandler{}

// SetDebug configures detail suppression once at startup, from config.
func SetDebug(debug bool) {
	defaultHandler.Debug = debug
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr.Unwrap(), "path", c.Request.URL.Path)
		if !h.Debug {
			appErr = New(CodeInternalError, "system", "Internal server error", appErr.HTTPCode)
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError is the package-level helper handlers call.
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// AsAppError attempts to convert err into an *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
