package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/model"
)

// GenerateTerminalJWT signs a long-lived token embedding the terminal ID in
// the "sub" claim. Issued once, when a pairing code is exchanged.
func GenerateTerminalJWT(terminalID int, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": terminalID,
		"iat": time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}

// parseTerminalToken verifies the JWT and returns the terminal ID.
func parseTerminalToken(tokenString, secret string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("invalid sub claim")
	}
	return int(sub), nil
}

// TerminalJWTMiddleware checks "Authorization: Bearer <token>", verifies it,
// loads the terminal, and sets "currentTerminal" in the context.
func TerminalJWTMiddleware(secret string, store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}

		terminalID, err := parseTerminalToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		terminal, err := store.GetTerminalByID(terminalID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "terminal not found"})
			return
		}
		c.Set("currentTerminal", &terminal)
		c.Next()
	}
}

// AdminTokenMiddleware gates the admin API behind a static bearer token.
// Operator accounts live in an external service; this engine only needs to
// know the shared token.
func AdminTokenMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := bearerToken(c)
		if !ok || got != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// GetCurrentTerminal retrieves *model.Terminal from the gin context (after
// TerminalJWTMiddleware has run).
func GetCurrentTerminal(c *gin.Context) (*model.Terminal, bool) {
	v, exists := c.Get("currentTerminal")
	if !exists {
		return nil, false
	}
	terminal, ok := v.(*model.Terminal)
	return terminal, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
