package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/untpkit/resolver/internal/common"
)

// writeError maps a service error to its HTTP shape: validation errors
// become a 400 with one translated message per field, conflicts a 409,
// not-found a 404, configuration problems and everything unexpected a 500.
func (h *handler) writeError(c *gin.Context, err error) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		msgs := make([]string, len(ve.Fields))
		for i, f := range ve.Fields {
			msgs[i] = h.translator.Translate(f.Key, f.Args...)
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": msgs})
		return
	}

	var ce *common.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, gin.H{"error": h.translator.Translate("duplicate_link", ce.Identity)})
		return
	}

	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if errors.Is(err, common.ErrConfig) {
		h.logger.Error(c.Request.Context(), "configuration error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.Translate("internal_error")})
		return
	}

	h.logger.Error(c.Request.Context(), "request failed", "error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.Translate("internal_error")})
}
