package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DataURL    = "https://data.sec.gov"
	ArchiveURL = "https://www.sec.gov"
)

// EdgarClient handles communications with Edgar APIs with rate limiting
type EdgarClient struct {
	userAgent  string
	httpClient *http.Client
	dataURL    string
	archiveURL string
	log        *zap.Logger
}

// rateLimitedTransport wraps an HTTP transport with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

// RoundTrip implements the http.RoundTripper interface with rate limiting
func (r *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := r.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return r.transport.RoundTrip(req)
}

// Option configures an EdgarClient.
type Option func(*EdgarClient)

// WithBaseURLs points the client at other hosts, for mirrors and tests.
func WithBaseURLs(data, archive string) Option {
	return func(c *EdgarClient) {
		c.dataURL = strings.TrimSuffix(data, "/")
		c.archiveURL = strings.TrimSuffix(archive, "/")
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *EdgarClient) { c.log = l }
}

// NewEdgarClient creates a new Edgar API client with rate limiting. SEC
// asks for at most 10 requests per second and a User-Agent naming the
// requester.
func NewEdgarClient(userAgent string, rateLimit int, opts ...Option) *EdgarClient {
	if rateLimit <= 0 {
		rateLimit = 10
	}

	transport := &rateLimitedTransport{
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}

	c := &EdgarClient{
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		dataURL:    DataURL,
		archiveURL: ArchiveURL,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *EdgarClient) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debug("fetching", zap.String("url", url))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("SEC returned status %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// Fetch downloads url.
func (c *EdgarClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	content, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document content: %w", err)
	}
	return content, nil
}

// LoadSubmissions fetches and parses Edgar submissions data for a given CIK number
func (c *EdgarClient) LoadSubmissions(ctx context.Context, cik string) (*Submissions, error) {
	url := fmt.Sprintf("%s/submissions/CIK%010s.json", c.dataURL, strings.TrimLeft(cik, "0"))
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var submissions Submissions
	if err := json.NewDecoder(body).Decode(&submissions); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return &submissions, nil
}

// LoadDocument fetches the primary document of a filing.
func (c *EdgarClient) LoadDocument(ctx context.Context, filing Filing) (Document, error) {
	content, err := c.Fetch(ctx, filing.URL(c.archiveURL))
	if err != nil {
		return Document{}, err
	}
	return Document{Filing: filing, DocumentFile: content}, nil
}

// LoadTickers fetches the ticker to CIK table SEC publishes at
// /files/company_tickers.json.
func (c *EdgarClient) LoadTickers(ctx context.Context) (Tickers, error) {
	content, err := c.Fetch(ctx, c.archiveURL+"/files/company_tickers.json")
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(content) {
		return nil, fmt.Errorf("failed to parse tickers: invalid JSON")
	}
	var tickers Tickers
	gjson.ParseBytes(content).ForEach(func(_, v gjson.Result) bool {
		tickers = append(tickers, TickerData{
			CIKStr: int(v.Get("cik_str").Int()),
			Ticker: v.Get("ticker").String(),
			Title:  v.Get("title").String(),
		})
		return true
	})
	return tickers, nil
}
