package response

import (
	"errors"
	"net/http"

	domainerrors "diamond-insights.backend/internal/domain/errors"
	"github.com/gin-gonic/gin"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Data wraps data in the {"status":"success","data":...} envelope
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   data,
	})
}

// Error sends an error response. External API failures keep their message and
// details; application errors carry a code; anything else is a 500.
func Error(c *gin.Context, err error) {
	var apiErr *domainerrors.ExternalAPIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.HTTPStatus(), gin.H{
			"status":  "error",
			"message": apiErr.Message,
			"details": apiErr.Details,
		})
		return
	}

	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"status":  "error",
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
