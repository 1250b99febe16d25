package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/untpkit/resolver/internal/catalog"
)

func (h *handler) putIdentifiers(c *gin.Context) {
	var ident catalog.Identifier
	if err := c.ShouldBindJSON(&ident); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.translator.Translate("invalid_request_data", err.Error())})
		return
	}

	if err := h.catalog.Put(c.Request.Context(), &ident); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ident)
}

func (h *handler) listIdentifiers(c *gin.Context) {
	idents, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, idents)
}

func (h *handler) getIdentifier(c *gin.Context) {
	ident, err := h.catalog.GetIdentifier(c.Request.Context(), c.Param("namespace"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ident)
}

func (h *handler) deleteIdentifier(c *gin.Context) {
	namespace := c.Param("namespace")
	if err := h.catalog.Delete(c.Request.Context(), namespace); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"namespace": namespace, "status": "deleted"})
}
