package httpmiddleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Readiness is the connection-readiness check the gate consults.
type Readiness interface {
	Ready() bool
}

// RequireDB short-circuits every gated route with 503 until the storage
// connection is established, so clients fail fast during cold start instead
// of hitting long timeouts. No queuing or retry; the caller must re-request.
func RequireDB(db Readiness) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !db.Ready() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Database connecting. Please retry."})
			return
		}
		c.Next()
	}
}
