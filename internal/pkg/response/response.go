package response

import (
	"errors"
	"net/http"

	"anilink/internal/pkg/apierror"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// CustomError writes the error envelope and aborts the handler chain.
func CustomError(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

// Upstream writes a failed backend call. Errors resolved through apierror keep
// the backend status and display message; anything else is a 500 with
// fallback as message.
func Upstream(c *gin.Context, err error, code string, fallback string) {
	_ = c.Error(err)

	var ue *apierror.UserError
	if !errors.As(err, &ue) {
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
		return
	}

	switch ue.Status {
	case http.StatusUnauthorized:
		Error(c, ue.Status, "UNAUTHORIZED", ue.Message)
	case http.StatusForbidden:
		Error(c, ue.Status, "FORBIDDEN", ue.Message)
	case http.StatusNotFound:
		Error(c, ue.Status, "NOT_FOUND", ue.Message)
	default:
		Error(c, ue.Status, code, ue.Message)
	}
}
