package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go-timely/internal/shared/apperror"
	"go-timely/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = apperror.New(apperror.CodeUnauthorized, "Token has expired", http.StatusUnauthorized)
	ErrNoUserClaim  = apperror.New(apperror.CodeUnauthorized, "User ID not found in token", http.StatusUnauthorized)
)

// DeviceClaims is what the companion app signs into its agent token.
type DeviceClaims struct {
	UserID   string `json:"user_id"`
	DeviceID string `json:"device_id,omitempty"`
	jwt.RegisteredClaims
}

// bearerToken reads the Authorization header, then the access_token cookie.
func bearerToken(c *gin.Context) string {
	if tok, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok && tok != "" {
		return tok
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware validates an HS256 token signed with secret. user_id is
// required; device_id is optional.
func AuthMiddleware(secret string) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return []byte(secret), nil }

	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Abort(c, ErrTokenMissing)
			return
		}

		var claims DeviceClaims
		if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Abort(c, ErrTokenExpired)
				return
			}
			response.Abort(c, ErrInvalidToken)
			return
		}

		if claims.UserID == "" {
			response.Abort(c, ErrNoUserClaim)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("device_id", claims.DeviceID)
		c.Next()
	}
}
