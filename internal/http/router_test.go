package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/config"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/domain"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/repo"
)

func init() { gin.SetMode(gin.TestMode) }

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Port:              "8080",
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		AppEnv:            "development",
		InvoiceDir:        filepath.Join(dir, "invoices"),
		ImageDir:          filepath.Join(dir, "images"),
		PublicBaseURL:     "http://localhost:8080",
		ImageFetchTimeout: time.Second,
		RateRPS:           1000,
		RateBurst:         1000,
	}
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "router_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	r := gin.New()
	if err := RegisterRoutes(r, db, testConfig(t)); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	// Identity keeps test bodies readable; gzip is exercised implicitly.
	req.Header.Set("Accept-Encoding", "identity")
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r := newRouter(t)
	w := doJSON(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestRouter_NoRouteEnvelope(t *testing.T) {
	r := newRouter(t)
	w := doJSON(r, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not_found") {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestRouter_SecurityAndCorrelationHeaders(t *testing.T) {
	r := newRouter(t)
	w := doJSON(r, http.MethodGet, "/health", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("X-Request-ID missing")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("security headers missing")
	}
}

// End-to-end over HTTP: submit, queue, approve, then read back the projection.
func TestRouter_SubmitApproveFlow(t *testing.T) {
	r := newRouter(t)

	w := doJSON(r, http.MethodPost, "/insurance/request", `{
		"phone": "+91 98765 43210",
		"farmer_name": "Ravi Kumar",
		"item_name": "Tender Coconut",
		"origin": "Maddur APMC",
		"destination": "Bengaluru",
		"vehicle_no": "KA-01-AB-1234",
		"quantity": 45,
		"rate": "98.50",
		"consent": "yes"
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit status = %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID      string `json:"id"`
		Status  string `json:"status"`
		Premium string `json:"premium"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != domain.StatusPending || created.Premium != "8.87" {
		t.Fatalf("created: %+v", created)
	}

	// Duplicate phone conflicts and reports the stored identity.
	w = doJSON(r, http.MethodPost, "/insurance/request",
		`{"phone":"919876543210","item_name":"Banana","quantity":10,"consent":true}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), created.ID) {
		t.Fatalf("conflict body missing existing id: %s", w.Body.String())
	}

	// Queue shows the submission.
	w = doJSON(r, http.MethodGet, "/admin/pending", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), created.ID) {
		t.Fatalf("pending: %d %s", w.Code, w.Body.String())
	}

	// Approve it.
	w = doJSON(r, http.MethodPost, "/admin/approve/"+created.ID, `{"note":"verified"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("approve status = %d body=%s", w.Code, w.Body.String())
	}

	// A second decision conflicts.
	w = doJSON(r, http.MethodPost, "/admin/reject/"+created.ID, `{"reason":"changed my mind about this one"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("late reject status = %d", w.Code)
	}

	// Submitter-facing projection carries the outcome.
	w = doJSON(r, http.MethodGet, "/insurance/status/919876543210", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status lookup = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, domain.StatusApproved) || !strings.Contains(body, "INV-") {
		t.Fatalf("projection: %s", body)
	}
}
