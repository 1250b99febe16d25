package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/untpkit/resolver/internal/i18n"
	"github.com/untpkit/resolver/internal/logging"
	"github.com/untpkit/resolver/internal/server/auth"
)

// RequestLogger logs one line per request with method, path, status and
// duration.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	log := logger.With("module", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// AuthMiddleware guards the write API. A request is authorized by either a
// valid HS256 bearer token or the static API key presented in the
// X-Api-Key header.
type AuthMiddleware struct {
	secretKey  []byte
	apiKeyHash string
	translator i18n.Translator
}

func NewAuthMiddleware(secretKey []byte, apiKeyHash string, translator i18n.Translator) *AuthMiddleware {
	return &AuthMiddleware{secretKey: secretKey, apiKeyHash: apiKeyHash, translator: translator}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader("X-Api-Key"); apiKey != "" {
			if auth.CheckAPIKey(am.apiKeyHash, apiKey) {
				c.Next()
				return
			}
			am.reject(c)
			return
		}

		token := bearerToken(c)
		if token == "" {
			am.reject(c)
			return
		}
		if _, err := auth.GetClientIDFromToken(token, am.secretKey); err != nil {
			am.reject(c)
			return
		}
		c.Next()
	}
}

func (am *AuthMiddleware) reject(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": am.translator.Translate("unauthorized")})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}
