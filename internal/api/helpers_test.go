package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/tennis-decider/internal/logger"
	"github.com/ajharbinger/tennis-decider/internal/services"
	"github.com/ajharbinger/tennis-decider/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:     "test",
		MaxBatchRows:    5,
		PreviewRows:     2,
		ClassifyWorkers: 2,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Nop()
	router := gin.New()
	SetupRoutes(router, cfg, services.NewServices(cfg, log), log)
	return router
}

func createTestUpload(field, filename, content string, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if field != "" {
		fileWriter, err := writer.CreateFormFile(field, filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := fileWriter.Write([]byte(content)); err != nil {
			return nil, "", err
		}
	}

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}

func createTestCSV(content string) (io.Reader, string, error) {
	return createTestUpload("csv_file", "results.csv", content, nil)
}

func doRequest(router *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	return doRequest(router, http.MethodPost, path, strings.NewReader(body), "application/json")
}

func newAuthorizedRequest(method, path string, body io.Reader, token string) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// newBodyLimitRouter caps request bodies the way InputValidationMiddleware
// does, without its header checks.
func newBodyLimitRouter(t *testing.T, cfg *config.Config, limit int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Nop()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	})
	SetupRoutes(router, cfg, services.NewServices(cfg, log), log)
	return router
}
