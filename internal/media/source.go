package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ReadError reports that an image locator could not be dereferenced to
// bytes. Distinct from a network failure on the analysis call: the photo
// itself was unreadable (deleted file, revoked access, dead URL).
type ReadError struct {
	Ref string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("could not read photo %q: %v", e.Ref, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Source dereferences image locators to raw bytes. A locator is either a
// local file path or an http(s) URL.
type Source struct {
	httpClient *http.Client
}

// NewSource creates a Source with a bounded timeout for URL locators.
func NewSource() *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Read resolves ref to image bytes. Every failure mode is wrapped in
// *ReadError so callers can classify it apart from network failures.
func (s *Source) Read(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return s.readURL(ctx, ref)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, &ReadError{Ref: ref, Err: err}
	}
	return data, nil
}

func (s *Source) readURL(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, &ReadError{Ref: ref, Err: err}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &ReadError{Ref: ref, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ReadError{Ref: ref, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ReadError{Ref: ref, Err: err}
	}

	return data, nil
}
