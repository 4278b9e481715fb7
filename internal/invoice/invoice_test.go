package invoice

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/config"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCompany() config.CompanyConfig {
	return config.CompanyConfig{
		Name:    "MandiPlus Logistics Pvt Ltd",
		Address: "APMC Yard, Bengaluru",
		Phone:   "+91 80 1234 5678",
		GSTIN:   "29ABCDE1234F1Z5",
	}
}

func testRequest() *domain.InsuranceRequest {
	return &domain.InsuranceRequest{
		ID:          "req-1",
		Phone:       "919876543210",
		SubmittedAt: time.Now().UTC(),
		FarmerName:  "Ravi Kumar",
		ItemName:    "Tender Coconut",
		Origin:      "Maddur",
		Destination: "Bengaluru",
		VehicleNo:   "KA-01-AB-1234",
		Quantity:    45,
		Rate:        dec("98.50"),
		Status:      domain.StatusApproved,
	}
}

func TestNumberGenerator_UniqueAndPrefixed(t *testing.T) {
	g, err := NewNumberGenerator(0)
	if err != nil {
		t.Fatalf("NewNumberGenerator: %v", err)
	}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := g.Next()
		if !strings.HasPrefix(n, "INV-") {
			t.Fatalf("invoice number %q missing prefix", n)
		}
		if seen[n] {
			t.Fatalf("duplicate invoice number %q", n)
		}
		seen[n] = true
	}
}

func TestNewNumberGenerator_RejectsBadNode(t *testing.T) {
	if _, err := NewNumberGenerator(99999); err == nil {
		t.Fatalf("expected error for out-of-range node id")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("INV-42"); got != "INV-42.pdf" {
		t.Fatalf("FileName = %q", got)
	}
}

func TestRender_NoImageProducesPDFWithPlaceholder(t *testing.T) {
	out := t.TempDir()
	r := &Renderer{
		Company: testCompany(),
		OutDir:  out,
		Images:  NewImageFetcher(filepath.Join(out, "no-such-dir"), time.Second),
	}

	path, err := r.Render(testRequest(), "INV-42", dec("8.87"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if filepath.Base(path) != "INV-42.pdf" {
		t.Fatalf("unexpected artifact name: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rendered pdf: %v", err)
	}
	if len(data) == 0 || !strings.HasPrefix(string(data[:5]), "%PDF-") {
		t.Fatalf("output is not a PDF (len=%d)", len(data))
	}
}

func TestRender_RemoteDownloadFailureFallsBack(t *testing.T) {
	// Server that always 404s; renderer must still produce a document.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	out := t.TempDir()
	r := &Renderer{
		Company: testCompany(),
		OutDir:  out,
		Images:  NewImageFetcher("", time.Second),
	}
	req := testRequest()
	req.ImageURL = srv.URL + "/photo.jpg"

	if _, err := r.Render(req, "INV-43", dec("8.87")); err != nil {
		t.Fatalf("Render should not fail on image download errors: %v", err)
	}
}

func TestImageFetcher_LocalFallbackByIDThenPhone(t *testing.T) {
	dir := t.TempDir()
	phonePhoto := filepath.Join(dir, "919876543210.png")
	if err := os.WriteFile(phonePhoto, []byte("png"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	f := NewImageFetcher(dir, time.Second)

	// No URL, no ID match -> phone match.
	path, cleanup, ok := f.Fetch("", "req-1", "919876543210")
	if !ok || path != phonePhoto {
		t.Fatalf("expected phone fallback %s, got %s ok=%v", phonePhoto, path, ok)
	}
	cleanup()
	if _, err := os.Stat(phonePhoto); err != nil {
		t.Fatalf("cleanup must not delete local files: %v", err)
	}

	// ID-keyed file takes precedence.
	idPhoto := filepath.Join(dir, "req-1.jpg")
	if err := os.WriteFile(idPhoto, []byte("jpg"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	path, cleanup, ok = f.Fetch("", "req-1", "919876543210")
	cleanup()
	if !ok || path != idPhoto {
		t.Fatalf("expected id fallback %s, got %s", idPhoto, path)
	}
}

func TestImageFetcher_RemoteDownloadRemovesTempOnCleanup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("fake-jpeg-bytes"))
	}))
	defer srv.Close()

	f := NewImageFetcher("", 2*time.Second)
	path, cleanup, ok := f.Fetch(srv.URL+"/photo.jpg", "req-1", "9")
	if !ok {
		t.Fatalf("expected successful download")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("downloaded file missing: %v", err)
	}
	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("transient image not removed after cleanup")
	}
}

func TestImageFetcher_NoSourcesReportsNotFound(t *testing.T) {
	f := NewImageFetcher(filepath.Join(t.TempDir(), "empty"), time.Second)
	if _, _, ok := f.Fetch("", "req-1", "9"); ok {
		t.Fatalf("expected no image")
	}
}
