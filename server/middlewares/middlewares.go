package middlewares

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/inkwell/utils/token"
)

const identityKey = "identity"

var (
	// jwtSecret signs and verifies every bearer token. Before any protected
	// route is served, make sure Setup ran.
	jwtSecret []byte
)

// Identity is the authenticated caller attached to the request context by
// the JWT middleware. Handlers read it through CurrentIdentity instead of
// re-parsing the token.
type Identity struct {
	Id          string
	Name        string
	Email       string
	Description string
}

// Setup initializes all package scoped variables that are needed to perform
// middleware functionalities. This function must be called before any
// middleware is used.
func Setup() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Abort directly if the secret isn't configured, which is crucial for
		// server side authorization.
		log.Fatal("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// JWTSecret exposes the signing key to the login handler.
func JWTSecret() []byte {
	return jwtSecret
}

// JWT guards protected routes. It extracts the bearer token from the
// Authorization header, verifies signature and expiry, and attaches the
// embedded identity to the request context. It aborts with 401 on any
// failure, leaving state untouched.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header not found"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) < 2 || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token not found"})
			return
		}

		claims, err := token.Verify(parts[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(identityKey, Identity{
			Id:          claims.UserId,
			Name:        claims.Name,
			Email:       claims.Email,
			Description: claims.Description,
		})
		c.Next()
	}
}

// CurrentIdentity returns the identity the JWT middleware attached. The
// second return is false on unguarded routes.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
