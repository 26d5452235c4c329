package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
	"github.com/ajharbinger/tennis-decider/internal/logger"
	"github.com/ajharbinger/tennis-decider/pkg/config"
)

// RequestIDKey is the context key and RequestIDHeader the header carrying the
// request id
const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an id, reusing a well-formed
// id sent by the client
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// SecurityHeadersMiddleware adds comprehensive security headers to all responses
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent clickjacking attacks
		c.Header("X-Frame-Options", "DENY")

		// Prevent MIME-type confusion attacks
		c.Header("X-Content-Type-Options", "nosniff")

		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// The API only serves JSON and file downloads
		csp := "default-src 'none'; " +
			"connect-src 'self'; " +
			"object-src 'none'; " +
			"frame-ancestors 'none'; " +
			"base-uri 'none'; " +
			"form-action 'none'"
		c.Header("Content-Security-Policy", csp)

		// Uploaded results are not cached anywhere
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")

		c.Header("Server", "")

		c.Next()
	}
}

// devOrigins are always allowed in development
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
	"http://localhost:8501",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:8080",
	"http://127.0.0.1:8501",
}

// CORSMiddleware handles Cross-Origin Resource Sharing with environment-based configuration
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]struct{})
	for _, origin := range cfg.GetAllowedOrigins() {
		allowed[origin] = struct{}{}
	}
	if cfg.IsDevelopment() {
		for _, origin := range devOrigins {
			allowed[origin] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if _, ok := allowed[origin]; ok && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400") // 24 hours

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// allowedContentTypes are the request bodies the API accepts
var allowedContentTypes = []string{
	"application/json",
	"multipart/form-data",
	"application/x-www-form-urlencoded",
}

// suspiciousAgents are blocked outright
var suspiciousAgents = []string{
	"sqlmap",
	"nikto",
	"nmap",
	"masscan",
	"<script",
	"javascript:",
}

// InputValidationMiddleware caps the body size and rejects unexpected
// content types and scanner user agents
func InputValidationMiddleware(maxRequestSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxRequestSize > 0 {
			if c.Request.ContentLength > maxRequestSize {
				abortWithError(c, apperrors.TooLarge("request body too large", nil).
					WithDetails("maximum is "+strconv.FormatInt(maxRequestSize, 10)+" bytes"))
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestSize)
		}

		if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
			contentType := c.GetHeader("Content-Type")
			if contentType == "" {
				abortWithError(c, apperrors.InvalidInput("Content-Type header is required", nil))
				return
			}

			isValidType := false
			for _, allowedType := range allowedContentTypes {
				if strings.HasPrefix(contentType, allowedType) {
					isValidType = true
					break
				}
			}

			if !isValidType {
				c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
					"error":         "Unsupported content type",
					"code":          apperrors.ErrCodeUnsupportedFormat,
					"allowed_types": allowedContentTypes,
				})
				return
			}
		}

		userAgent := c.GetHeader("User-Agent")
		if userAgent == "" {
			abortWithError(c, apperrors.InvalidInput("User-Agent header is required", nil))
			return
		}

		userAgentLower := strings.ToLower(userAgent)
		for _, pattern := range suspiciousAgents {
			if strings.Contains(userAgentLower, pattern) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "Request blocked for security reasons",
				})
				return
			}
		}

		c.Next()
	}
}

// RateLimiter is a sliding-window limiter keyed by client IP
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter allows limit requests per window for each client
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records a request from key and reports whether it is within the limit
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	// Drop entries older than the window
	timestamps := r.clients[key]
	valid := timestamps[:0]
	for _, ts := range timestamps {
		if now.Sub(ts) <= r.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= r.limit {
		r.clients[key] = valid
		return false
	}
	r.clients[key] = append(valid, now)
	return true
}

// Middleware enforces the limit on every request
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(r.window.Seconds()))
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": retryAfter,
			})
			return
		}
		c.Next()
	}
}

// RateLimitingMiddleware allows requestsPerMinute requests per client IP
func RateLimitingMiddleware(requestsPerMinute int) gin.HandlerFunc {
	return NewRateLimiter(requestsPerMinute, time.Minute).Middleware()
}

// LoggingMiddleware logs one record per request
func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		statusCode := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", statusCode,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
			"user_agent", c.Request.UserAgent(),
		}

		switch {
		case statusCode >= http.StatusInternalServerError:
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
			log.Error("Request failed", err, fields...)
		case statusCode >= http.StatusBadRequest:
			log.Warn("Request rejected", fields...)
		default:
			log.Info("Request handled", fields...)
		}
	}
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	body := gin.H{"error": err.Message, "code": err.Code}
	if err.Details != "" {
		body["details"] = err.Details
	}
	c.AbortWithStatusJSON(err.HTTPStatus(), body)
}
