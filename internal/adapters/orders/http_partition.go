package orders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"pickup-route-service/internal/domain"
	"strings"
	"time"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// HTTPPartition is an order partition served as a YAML document by an
// order archive over HTTP. A failed fetch is not retried.
type HTTPPartition struct {
	session *http.Client
	url     string
	name    string
}

func NewHTTPPartition(rawURL string, client *http.Client) (*HTTPPartition, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("http partition: parse url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("http partition: unsupported scheme %q", u.Scheme)
	}

	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	name := u.Host + u.Path
	return &HTTPPartition{session: client, url: rawURL, name: name}, nil
}

func (p *HTTPPartition) Name() string {
	return p.name
}

func (p *HTTPPartition) Scan(ctx context.Context, visit func(domain.Order) bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("scan %s: create request: %w", p.name, err)
	}
	req.Header.Set("Accept", "application/yaml, text/yaml, */*")

	resp, err := p.do(req)
	if err != nil {
		return fmt.Errorf("scan %s: %w", p.name, err)
	}
	defer resp.Body.Close()

	if err := decodeOrders(ctx, resp.Body, visit); err != nil {
		return fmt.Errorf("scan %s: %w", p.name, err)
	}
	return nil
}

func (p *HTTPPartition) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
