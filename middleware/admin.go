package middleware

import (
	"net/http"
	"os"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/services"
)

// RequireAdmin gates the back-office surface. A request passes with either
// the admin API key or an ID token whose profile carries the admin flag.
// Non-admin users get a static denial message, not an error state.
func RequireAdmin(authClient *fbauth.Client, users *services.UsersService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader("X-API-KEY"); apiKey != "" && apiKey == os.Getenv("ADMIN_API_KEY") {
			c.Next()
			return
		}

		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		token, err := authClient.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		profile, err := users.Get(c.Request.Context(), token.UID)
		if err != nil || !profile.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. This page requires administrator privileges."})
			c.Abort()
			return
		}

		c.Set("user_id", token.UID)
		c.Set("email", profile.Email)
		c.Next()
	}
}
