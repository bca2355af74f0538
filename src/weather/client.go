package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the OpenWeatherMap 2.5 API root
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	// DefaultTimeout bounds a whole request, body included
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent when no other user agent is configured
	DefaultUserAgent = "cityweather"

	maxBodySize = 4 << 20
)

// Logger receives request tracing. *client.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// Client queries the weather API. It holds no per-request state and is safe
// to reuse.
type Client struct {
	baseURL    string
	apiKey     string
	units      Units
	lang       string
	userAgent  string
	httpClient *http.Client
	logger     Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for a proxy or a test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithAPIKey sets the appid query parameter. An empty key sends none.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithUnits sets the units query parameter
func WithUnits(u Units) Option {
	return func(c *Client) {
		if u != "" {
			c.units = u
		}
	}
}

// WithLanguage sets the lang query parameter for descriptions
func WithLanguage(lang string) Option {
	return func(c *Client) { c.lang = lang }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a request logger
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client with OpenWeatherMap defaults
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		units:     UnitsMetric,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Units returns the units the client requests
func (c *Client) Units() Units {
	return c.units
}

// FetchWeather performs one GET for city and maps the response onto a Result.
// An empty city fails with *InvalidInputError before any request is made; every
// other failure is a *FetchError.
func (c *Client) FetchWeather(ctx context.Context, city string, mode Mode) (*Result, error) {
	city, err := NormalizeCity(city)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeCurrent
	}
	if mode != ModeCurrent && mode != ModeForecast {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("unknown mode %q", mode)}
	}

	endpoint, err := c.endpoint(city, mode)
	if err != nil {
		return nil, &FetchError{City: city, Mode: mode, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{City: city, Mode: mode, Err: fmt.Errorf("create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debugf("GET %s request_id=%s", redactKey(endpoint), requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{City: city, Mode: mode, Err: err}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.logger.Debugf("request_id=%s status=%d bytes=%d elapsed=%s",
		requestID, resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			City:       city,
			Mode:       mode,
			StatusCode: resp.StatusCode,
			Message:    providerMessage(body),
		}
	}
	if readErr != nil {
		return nil, &FetchError{City: city, Mode: mode, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", readErr)}
	}

	result, err := decodeResult(body, city, mode, c.units)
	if err != nil {
		return nil, &FetchError{City: city, Mode: mode, StatusCode: resp.StatusCode, Err: err}
	}
	return result, nil
}

// endpoint builds the request URL for mode
func (c *Client) endpoint(city string, mode Mode) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}
	path := "weather"
	if mode == ModeForecast {
		path = "forecast"
	}
	u = u.JoinPath(path)

	q := u.Query()
	q.Set("q", city)
	q.Set("units", string(c.units))
	if c.lang != "" {
		q.Set("lang", c.lang)
	}
	if c.apiKey != "" {
		q.Set("appid", c.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// redactKey hides the appid value so URLs can be logged
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Get("appid") == "" {
		return raw
	}
	q.Set("appid", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}

// providerMessage extracts a readable message from an error body
func providerMessage(body []byte) string {
	var errorResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &errorResp); err == nil {
		if errorResp.Message != "" {
			return errorResp.Message
		}
		if errorResp.Error != "" {
			return errorResp.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}
