package server

import (
	"errors"
	"net/http"

	cascadedomain "github.com/campuslabs/feeflow/internal/cascade/domain"
	mappingdomain "github.com/campuslabs/feeflow/internal/mapping/domain"
	masterdomain "github.com/campuslabs/feeflow/internal/masterdata/domain"
	"github.com/gin-gonic/gin"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

type apiError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e apiError) Error() string { return e.Message }

func newValidationError(field, code, message string) apiError {
	return apiError{Field: field, Code: code, Message: message}
}

func AbortWithError(c *gin.Context, err error) {
	var ve apiError
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ve})
		return
	}

	switch {
	case errors.Is(err, mappingdomain.ErrInvalidFeeGroup),
		errors.Is(err, masterdomain.ErrAmbiguousFeeGroup),
		errors.Is(err, cascadedomain.ErrAmbiguousMapping):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, cascadedomain.ErrPromotionNotFound),
		errors.Is(err, cascadedomain.ErrSessionNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
