package analyzer

import (
	"context"
	"io"
	"net/http"
	"time"
)

const probeTimeout = 10 * time.Second

// Prober performs the two secondary fetches Technical analysis needs.
// Substitutable so tests can run without network access.
type Prober interface {
	// FetchRobots GETs a robots.txt URL and returns the status and body.
	FetchRobots(ctx context.Context, rawURL string) (status int, body string, err error)
	// ProbeSitemap checks whether a sitemap URL exists, returning the
	// final HTTP status.
	ProbeSitemap(ctx context.Context, rawURL string) (status int, err error)
}

// httpProber is the default Prober. Each probe carries its own timeout so
// a slow robots.txt or sitemap host cannot stall the whole analysis.
type httpProber struct {
	client    *http.Client
	userAgent string
}

func newHTTPProber(transport http.RoundTripper, userAgent string) *httpProber {
	return &httpProber{
		client: &http.Client{
			Timeout:   probeTimeout,
			Transport: transport,
		},
		userAgent: userAgent,
	}
}

func (p *httpProber) FetchRobots(ctx context.Context, rawURL string) (int, string, error) {
	resp, err := p.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}

// ProbeSitemap uses a HEAD request for speed and falls back to GET when
// HEAD returns something other than 200 or 404 (some servers reject HEAD).
func (p *httpProber) ProbeSitemap(ctx context.Context, rawURL string) (int, error) {
	resp, err := p.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}

	getResp, err := p.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return 0, err
	}
	defer getResp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(getResp.Body, 64*1024))
	return getResp.StatusCode, nil
}

func (p *httpProber) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)
	return p.client.Do(req)
}
