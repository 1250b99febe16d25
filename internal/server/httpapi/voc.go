package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/untpkit/resolver/internal/catalog"
)

// LinkTypeEntry describes one relation of the default link-type vocabulary.
type LinkTypeEntry struct {
	LinkType    string `json:"linkType"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// defaultLinkTypes is the vocabulary served under /voc. Order matters: it is
// the published listing order.
var defaultLinkTypes = []LinkTypeEntry{
	{"gs1:pip", "Product information page", "A page with information about the identified item"},
	{"gs1:epcis", "EPCIS repository", "An EPCIS repository with event data for the identified item"},
	{"gs1:certificationInfo", "Certification information", "Certification details for the identified item"},
	{"gs1:instructions", "Instructions", "Instructions for the identified item, such as assembly or usage"},
	{"gs1:recipeInfo", "Recipes", "Recipes that use the identified item"},
	{"gs1:safetyInfo", "Safety information", "Safety information for the identified item"},
	{"gs1:traceability", "Traceability information", "Traceability data for the identified item"},
	{"untp:dpp", "Digital product passport", "The UNTP digital product passport for the identified item"},
	{"untp:dcc", "Conformity credential", "A UNTP digital conformity credential for the identified item"},
}

func (h *handler) listVoc(c *gin.Context) {
	c.JSON(http.StatusOK, defaultLinkTypes)
}

func (h *handler) getVoc(c *gin.Context) {
	wanted := c.Param("linktype")
	for _, entry := range defaultLinkTypes {
		if entry.LinkType == wanted {
			c.JSON(http.StatusOK, entry)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown link type " + wanted})
}

// wellKnown serves the resolver description document used for discovery:
// who this resolver is, which link types it understands and which primary
// keys its namespaces accept.
func (h *handler) wellKnown(c *gin.Context) {
	supportedLinkTypes := make([]string, len(defaultLinkTypes))
	for i, entry := range defaultLinkTypes {
		supportedLinkTypes[i] = entry.LinkType
	}

	primaryKeys := map[string][]string{}
	if idents, err := h.catalog.List(c.Request.Context()); err == nil {
		for _, ident := range idents {
			for _, ai := range ident.ApplicationIdentifiers {
				if ai.Type == catalog.TypeIdentifier {
					primaryKeys[ident.Namespace] = append(primaryKeys[ident.Namespace], ai.AICode)
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                 "UNTP identity resolver",
		"resolverRoot":         h.resolverDomain,
		"linkTypeVocDomain":    h.vocDomain,
		"supportedLinkType":    supportedLinkTypes,
		"supportedPrimaryKeys": primaryKeys,
	})
}

func (h *handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
