// Package httpapi mounts the resolver's HTTP surface: the authenticated
// write API, the public resolution endpoint and the discovery documents.
package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/untpkit/resolver/internal/catalog"
	"github.com/untpkit/resolver/internal/i18n"
	"github.com/untpkit/resolver/internal/logging"
	"github.com/untpkit/resolver/internal/server/links"
)

// Options wires the router's dependencies.
type Options struct {
	Links          *links.Service
	Catalog        *catalog.StoreCatalog
	Translator     i18n.Translator
	Logger         logging.Logger
	ResolverDomain string
	VocDomain      string
	SecretKey      []byte
	APIKeyHash     string
}

type handler struct {
	links          *links.Service
	catalog        *catalog.StoreCatalog
	translator     i18n.Translator
	logger         logging.Logger
	resolverDomain string
	vocDomain      string
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(opts Options) *gin.Engine {
	h := &handler{
		links:          opts.Links,
		catalog:        opts.Catalog,
		translator:     opts.Translator,
		logger:         opts.Logger.With("module", "httpapi"),
		resolverDomain: opts.ResolverDomain,
		vocDomain:      opts.VocDomain,
	}
	authz := NewAuthMiddleware(opts.SecretKey, opts.APIKeyHash, opts.Translator)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(opts.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Api-Key", "Accept", "Accept-Language"},
	}))

	// Discovery.
	router.GET("/.well-known/resolver", h.wellKnown)
	router.GET("/voc", h.listVoc)
	router.GET("/voc/:linktype", h.getVoc)
	router.GET("/healthz", h.healthz)

	// Write API.
	api := router.Group("/api", authz.RequireAuth())
	{
		api.POST("/resolver", h.registerLinks)
		api.POST("/identifiers", h.putIdentifiers)
		api.GET("/identifiers", h.listIdentifiers)
		api.GET("/identifiers/:namespace", h.getIdentifier)
		api.DELETE("/identifiers/:namespace", h.deleteIdentifier)
	}

	// Link management.
	router.GET("/resolver/links", h.listLinks)
	router.GET("/resolver/links/:linkId", h.getLink)
	router.PUT("/resolver/links/:linkId", authz.RequireAuth(), h.updateLink)
	router.DELETE("/resolver/links/:linkId", authz.RequireAuth(), h.deleteLink)

	// Everything else is a digital-link resolution attempt.
	router.NoRoute(h.resolveLink)

	return router
}
