package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// originHost returns the host part of an origin URL, or empty if invalid.
// Default ports (:443, :80) are stripped so "shop.example.com:443" matches
// "shop.example.com".
func originHost(raw string) string {
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "/"))
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	if strings.HasSuffix(host, ":443") || strings.HasSuffix(host, ":80") {
		host, _, _ = strings.Cut(host, ":")
	}
	return host
}

// CORSMiddleware handles Cross-Origin Resource Sharing headers for the
// storefront and admin frontends. allowedOrigins is a host list; the single
// entry "*" allows any origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAny := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, h := range allowedOrigins {
		if h == "*" {
			allowAny = true
			continue
		}
		allowed[strings.ToLower(h)] = true
	}

	return func(c *gin.Context) {
		origin := strings.TrimSpace(strings.TrimSuffix(c.Request.Header.Get("Origin"), "/"))
		host := originHost(origin)

		if host != "" && (allowAny || allowed[host]) {
			c.Header("Access-Control-Allow-Origin", origin)
		}

		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Header("Access-Control-Max-Age", "86400")

		// Handle preflight request
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
