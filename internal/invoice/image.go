package invoice

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ImageFetcher acquires the reference photo embedded in rendered invoices.
//
// Acquisition policy, in order:
//  1. If the request carries a remote image URL, download it to a transient
//     file within the configured time budget. The transient copy is removed
//     by the returned cleanup function once rendering completes.
//  2. Otherwise look for a local file under LocalDir named by request ID or
//     submitter phone (jpg/jpeg/png).
//  3. Otherwise report no image; the renderer prints a text placeholder.
type ImageFetcher struct {
	// LocalDir is the fallback directory searched for pre-uploaded photos.
	LocalDir string
	// Timeout bounds each remote download (~10s per the ingestion contract).
	Timeout time.Duration

	client *resty.Client
}

// NewImageFetcher constructs a fetcher with its own HTTP client bound to the
// given download budget.
func NewImageFetcher(localDir string, timeout time.Duration) *ImageFetcher {
	return &ImageFetcher{
		LocalDir: localDir,
		Timeout:  timeout,
		client:   resty.New().SetTimeout(timeout),
	}
}

// noopCleanup is returned for local files, which must not be deleted.
func noopCleanup() {}

// Fetch resolves an image for the given request. It returns the image path,
// a cleanup function the caller must invoke after rendering (success or
// failure), and whether an image was found at all. Fetch never returns an
// error: every failure falls through to the next acquisition step.
func (f *ImageFetcher) Fetch(imageURL, requestID, phone string) (path string, cleanup func(), ok bool) {
	if u := strings.TrimSpace(imageURL); u != "" {
		if p, cl, err := f.download(u); err == nil {
			return p, cl, true
		}
	}
	if p := f.findLocal(requestID, phone); p != "" {
		return p, noopCleanup, true
	}
	return "", noopCleanup, false
}

// download streams the remote image into a transient file named with the
// URL's extension so the PDF library can infer the image type.
func (f *ImageFetcher) download(url string) (string, func(), error) {
	ext := strings.ToLower(filepath.Ext(url))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		ext = ".jpg"
	}

	tmp, err := os.CreateTemp("", "mandiplus-img-*"+ext)
	if err != nil {
		return "", nil, err
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()

	cleanup := func() { _ = os.Remove(tmpPath) }

	resp, err := f.client.R().SetOutput(tmpPath).Get(url)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	if !resp.IsSuccess() {
		cleanup()
		return "", nil, fmt.Errorf("image download: status %d", resp.StatusCode())
	}
	return tmpPath, cleanup, nil
}

// findLocal returns the first existing local fallback path, keyed first by
// request ID and then by phone.
func (f *ImageFetcher) findLocal(requestID, phone string) string {
	if f.LocalDir == "" {
		return ""
	}
	for _, key := range []string{requestID, phone} {
		if key == "" {
			continue
		}
		for _, ext := range []string{".jpg", ".jpeg", ".png"} {
			p := filepath.Join(f.LocalDir, key+ext)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p
			}
		}
	}
	return ""
}
