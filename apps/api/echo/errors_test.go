package echoapi

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type captureLogger struct {
	mu   sync.Mutex
	args [][]interface{}
}

func (l *captureLogger) Debug(msg string, args ...interface{}) {}
func (l *captureLogger) Info(msg string, args ...interface{})  {}
func (l *captureLogger) Warn(msg string, args ...interface{})  {}
func (l *captureLogger) Error(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.args = append(l.args, args)
}
func (l *captureLogger) Fatal(msg string, args ...interface{}) {}

func Test_appHTTPErrorHandler_serverErrorRequestContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	logger := &captureLogger{}
	handler := newAppHTTPErrorHandler(logger, func() {})

	handler(errors.New("snapshot load blew up"), ctx)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d; want %d", rec.Code, http.StatusInternalServerError)
	}
	if len(logger.args) != 1 {
		t.Fatalf("got %d error logs; want 1", len(logger.args))
	}

	var reqCtx map[string]interface{}
	for _, arg := range logger.args[0] {
		if m, ok := arg.(map[string]interface{}); ok {
			reqCtx = m
		}
	}
	if reqCtx == nil {
		t.Fatal("server errors must carry the request context map")
	}
	if reqCtx["method"] != http.MethodGet {
		t.Errorf(`reqCtx["method"] = %v; want %s`, reqCtx["method"], http.MethodGet)
	}
	if reqCtx["path"] != "/v1/dashboard" {
		t.Errorf(`reqCtx["path"] = %v; want /v1/dashboard`, reqCtx["path"])
	}
}
