package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
)

// Constants for context keys
const (
	SubjectKey  = "subject"
	ClientIDKey = "client_id"
	RoleKey     = "role"
)

// DefaultTokenTTL is the lifetime of tokens minted without an explicit TTL
const DefaultTokenTTL = 24 * time.Hour

// Claims represents JWT claims. The subject names the API client.
type Claims struct {
	ClientID uuid.UUID `json:"client_id"`
	Role     string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token operations
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// GenerateToken signs a token for an API client
func (j *JWTService) GenerateToken(subject, role string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("token subject is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := j.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		ClientID: uuid.New(),
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// GenerateJWT is a convenience function that creates a JWT service and generates a token
func GenerateJWT(subject, role, secret string, ttl time.Duration) (string, time.Time, error) {
	return NewJWTService(secret).GenerateToken(subject, role, ttl)
}

// JWTMiddleware creates a middleware that validates bearer tokens
func JWTMiddleware(secret string) gin.HandlerFunc {
	service := NewJWTService(secret)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			abortUnauthorized(c, "Bearer token required")
			return
		}

		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Set(ClientIDKey, claims.ClientID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
		"code":  apperrors.ErrCodeUnauthorized,
	})
}
