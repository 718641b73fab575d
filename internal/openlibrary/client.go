package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Fixed operational timeouts, not tunable per call.
const (
	connectTimeout  = 5 * time.Second
	responseTimeout = 5 * time.Second
	requestTimeout  = 10 * time.Second
)

// Config holds the three resource base URLs. Each is prepended to the
// identifier as-is, so they normally end with a slash.
type Config struct {
	BookURL   string
	CoverURL  string
	AuthorURL string
	UserAgent string
}

// Client fetches book, cover and author resources from OpenLibrary and
// classifies every failure: transport errors become ConnectionError,
// 404s become the resource's not-found sentinel, everything else becomes
// WebRequestError. The zero value is not usable; construct with NewClient.
type Client struct {
	httpClient *http.Client
	cfg        Config
	limiter    *rate.Limiter
}

// NewClient builds a client with 5s connect, 5s response-header and 10s
// overall timeouts. Redirects are followed. Pass a non-nil httpClient to
// substitute the transport in tests.
func NewClient(cfg Config, httpClient *http.Client, rps int) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
				ResponseHeaderTimeout: responseTimeout,
			},
		}
	}
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// FetchBook retrieves the raw book record for an ISBN.
func (c *Client) FetchBook(ctx context.Context, isbn string) (*Book, error) {
	var book Book
	if err := c.getJSON(ctx, c.cfg.BookURL+isbn+".json", ErrBookNotFound, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// FetchAuthor retrieves an author record by its bare key (e.g. "OL1A").
func (c *Client) FetchAuthor(ctx context.Context, authorKey string) (*Author, error) {
	var author Author
	if err := c.getJSON(ctx, c.cfg.AuthorURL+authorKey+".json", ErrAuthorNotFound, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// FetchCover retrieves the raw cover image bytes for an ISBN.
func (c *Client) FetchCover(ctx context.Context, isbn string) ([]byte, error) {
	url := c.cfg.CoverURL + isbn + ".jpg"
	resp, err := c.do(ctx, url, ErrCoverNotFound)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("openlibrary: read cover body %s: %v", url, err)
		return nil, &WebRequestError{StatusCode: resp.StatusCode, Err: err}
	}
	return data, nil
}

// do performs a single GET and classifies the outcome. On a nil error the
// caller owns resp.Body.
func (c *Client) do(ctx context.Context, url string, notFound error) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("openlibrary: URL not reachable %s: %v", url, err)
		return nil, &ConnectionError{URL: url, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		log.Printf("openlibrary: client error %d: %s", resp.StatusCode, url)
		return nil, notFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		resp.Body.Close()
		log.Printf("openlibrary: client error %d: %s", resp.StatusCode, url)
		return nil, &WebRequestError{StatusCode: resp.StatusCode}
	case resp.StatusCode >= 500:
		resp.Body.Close()
		log.Printf("openlibrary: server error %d: %s", resp.StatusCode, url)
		return nil, &WebRequestError{StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		resp.Body.Close()
		return nil, &WebRequestError{StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, url string, notFound error, target any) error {
	resp, err := c.do(ctx, url, notFound)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		log.Printf("openlibrary: decode %s: %v", url, err)
		return &WebRequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
