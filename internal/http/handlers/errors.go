package handlers

import (
	"net/http"

	"railbook/internal/domain"

	"github.com/gin-gonic/gin"
)

// writeError maps the domain error taxonomy onto HTTP statuses. Kinds, not
// message text, decide the mapping.
func writeError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsAlreadyCancelled(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case domain.IsPaymentDeclined(err):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case domain.IsAccountNotFound(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsReferenceExhausted(err):
		// Expected, retryable: surface as a clear retry hint.
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
