package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/untpkit/resolver/internal/server/links"
)

func (h *handler) registerLinks(c *gin.Context) {
	var req links.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.translator.Translate("invalid_request_data", err.Error())})
		return
	}

	doc, err := h.links.Register(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *handler) listLinks(c *gin.Context) {
	q := links.ListQuery{
		Namespace:             c.Query("namespace"),
		IdentificationKeyType: c.Query("identificationKeyType"),
		IdentificationKey:     c.Query("identificationKey"),
		QualifierPath:         c.Query("qualifierPath"),
		LinkType:              c.Query("linkType"),
		MimeType:              c.Query("mimeType"),
		IanaLanguage:          c.Query("ianaLanguage"),
	}

	doc, err := h.links.List(c.Request.Context(), &q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *handler) getLink(c *gin.Context) {
	resp, err := h.links.GetByLinkID(c.Request.Context(), c.Param("linkId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) updateLink(c *gin.Context) {
	var req links.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.translator.Translate("invalid_request_data", err.Error())})
		return
	}

	resp, err := h.links.Update(c.Request.Context(), c.Param("linkId"), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) deleteLink(c *gin.Context) {
	linkID := c.Param("linkId")
	hardParam := c.Query("hard")
	hard := strings.EqualFold(hardParam, "true") || hardParam == "1"

	if err := h.links.Delete(c.Request.Context(), linkID, hard); err != nil {
		h.writeError(c, err)
		return
	}

	action := links.ActionSoftDeleted
	if hard {
		action = links.ActionHardDeleted
	}
	c.JSON(http.StatusOK, gin.H{"linkId": linkID, "action": action})
}
