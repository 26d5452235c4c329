package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "JWT_SECRET", "MAX_BATCH_ROWS", "PREVIEW_ROWS", "CLASSIFY_WORKERS", "MAX_REQUEST_SIZE"} {
		t.Setenv(key, "")
	}

	cfg := New()

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.AuthEnabled())
	assert.Equal(t, 10000, cfg.MaxBatchRows)
	assert.Equal(t, 10, cfg.PreviewRows)
	assert.Equal(t, 1, cfg.ClassifyWorkers)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxRequestSize)
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CLASSIFY_WORKERS", "4")
	t.Setenv("PREVIEW_ROWS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := New()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, 4, cfg.ClassifyWorkers)
	assert.Equal(t, 10, cfg.PreviewRows, "invalid values fall back to the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.GetAllowedOrigins())
	assert.Empty(t, cfg.GetTrustedProxies())
}
