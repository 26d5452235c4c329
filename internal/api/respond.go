package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
)

// respondError writes the JSON error body for err. Unknown errors become a
// 500 and are attached to the context for the request logger.
func respondError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		err = apperrors.TooLarge("request body too large", err)
	}

	appErr, ok := apperrors.As(err)
	if !ok {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
			"code":  apperrors.ErrCodeInternalError,
		})
		return
	}

	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		_ = c.Error(appErr)
	}

	body := gin.H{"error": appErr.Message, "code": appErr.Code}
	if appErr.Details != "" {
		body["details"] = appErr.Details
	}
	c.JSON(appErr.HTTPStatus(), body)
}
