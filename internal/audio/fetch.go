// Package audio handles fetching, decoding, and analyzing clip audio.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Fetch resolves a clip's source reference to raw audio bytes. Source refs
// are either http(s) URLs (possibly short-lived signed URLs, so the result
// must not be cached past the current use) or local file paths for built-in
// clips.
func Fetch(sourceRef string) ([]byte, error) {
	if strings.HasPrefix(sourceRef, "http://") || strings.HasPrefix(sourceRef, "https://") {
		resp, err := httpClient.Get(sourceRef)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", sourceRef, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetching %s: status %d", sourceRef, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(sourceRef)
}

// reader wraps an in-memory buffer as the ReadCloser the decoders want.
type reader struct {
	*bytes.Reader
}

func (reader) Close() error { return nil }

func newReader(data []byte) reader {
	return reader{bytes.NewReader(data)}
}
