package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/untpkit/resolver/internal/common"
	"github.com/untpkit/resolver/internal/digitallink"
	"github.com/untpkit/resolver/internal/server/links"
	"github.com/untpkit/resolver/internal/server/resolve"
)

// resolveLink is the public resolution endpoint. It redirects to the single
// best response for the identifier, or returns the full linkset when the
// caller asks for linkType=all.
func (h *handler) resolveLink(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"error": h.translator.Translate("cannot_resolve_link_resolver")})
		return
	}

	params, err := digitallink.ParsePath(c.Request.URL.Path)
	if err != nil {
		h.writeError(c, err)
		return
	}

	doc, err := h.links.Resolve(c.Request.Context(), params)
	if err != nil {
		var ve *common.ValidationError
		if errors.As(err, &ve) {
			h.writeError(c, err)
			return
		}
		if errors.Is(err, common.ErrNotFound) {
			h.cannotResolve(c)
			return
		}
		h.writeError(c, err)
		return
	}

	req := &resolve.Request{
		LinkType:       c.Query("linkType"),
		Context:        c.Query("context"),
		Accept:         c.GetHeader("Accept"),
		AcceptLanguage: c.GetHeader("Accept-Language"),
		AccessRole:     c.Query("accessRole"),
	}

	anchor := h.links.Anchor(doc)
	linkset := resolve.All(doc, anchor, req)

	if req.LinkType == resolve.LinkTypeAll {
		if len(linkset.HeaderLink) > 0 {
			c.Header("Link", links.FormatLinkHeader(linkset.HeaderLink))
		}
		c.JSON(http.StatusOK, gin.H{"linkset": linkset.Body})
		return
	}

	resp, err := resolve.One(doc, req)
	if err != nil {
		h.cannotResolve(c)
		return
	}

	if len(linkset.HeaderLink) > 0 {
		c.Header("Link", links.FormatLinkHeader(linkset.HeaderLink))
	}
	c.Redirect(http.StatusFound, redirectLocation(resp, c.Request.URL.RawQuery))
}

func (h *handler) cannotResolve(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": h.translator.Translate("cannot_resolve_link_resolver")})
}

// redirectLocation appends the inbound query string to the target when the
// response asks for query-string forwarding. Request-only parameters such as
// decryptionKey reach the target this way and never appear anywhere else.
func redirectLocation(resp *links.Response, rawQuery string) string {
	if !resp.Fwqs || rawQuery == "" {
		return resp.TargetURL
	}
	sep := "?"
	if strings.Contains(resp.TargetURL, "?") {
		sep = "&"
	}
	return resp.TargetURL + sep + rawQuery
}
