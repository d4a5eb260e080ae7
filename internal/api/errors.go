package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"CO-PO-Mapping-Backend/internal/repository"
	"CO-PO-Mapping-Backend/internal/service"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// respondError maps domain errors onto a structured failure body. A parse
// failure carries the raw AI text so the offending reply can be inspected.
func respondError(c *gin.Context, err error, contextMsg string) {
	var malformed *service.MalformedResponseError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": contextMsg, "details": err.Error()})
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": contextMsg, "details": err.Error()})
	case errors.As(err, &malformed):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        contextMsg,
			"details":      err.Error(),
			"raw_response": malformed.Raw,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": contextMsg, "details": err.Error()})
	}
}
