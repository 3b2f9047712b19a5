package analyzer

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	fetchTimeout = 15 * time.Second
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// FetchResult is the primary page fetch outcome handed to the analyzers.
type FetchResult struct {
	FinalURL        string
	ElapsedSeconds  float64
	Body            []byte
	ContentTypeWarn string
}

// fetchPage GETs the page, following redirects, and measures elapsed
// time. Non-2xx responses are terminal for the run. A non-HTML content
// type is recorded as a warning and analysis proceeds best-effort.
func (a *Analyzer) fetchPage(req *http.Request) (*FetchResult, error) {
	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if _, err := io.Copy(buf, resp.Body); err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	elapsed := time.Since(start).Seconds()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, req.URL)
	}

	result := &FetchResult{
		FinalURL:       resp.Request.URL.String(),
		ElapsedSeconds: elapsed,
	}
	result.Body = append(result.Body, buf.Bytes()...)

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		result.ContentTypeWarn = fmt.Sprintf("Content type is %q, not text/html. Analysis might be limited.", contentType)
	}

	return result, nil
}
