package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-insights/internal/platform/logging"
	"github.com/riskibarqy/match-insights/internal/platform/resilience"
	"github.com/riskibarqy/match-insights/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	defaultDirectBaseURL = "https://v3.football.api-sports.io"
	defaultProxyBaseURL  = "https://api-football-v1.p.rapidapi.com/v3"
	defaultProxyHost     = "api-football-v1.p.rapidapi.com"
	maxResponseBytes     = 6 << 20
	maxLoggedBodyBytes   = 240

	headerDirectKey = "x-apisports-key"
	headerProxyKey  = "x-rapidapi-key"
	headerProxyHost = "x-rapidapi-host"
)

// Transport selects how requests reach API-Football.
type Transport string

const (
	TransportDirect Transport = "direct"
	TransportProxy  Transport = "proxy"
)

func ParseTransport(raw string) (Transport, error) {
	switch Transport(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TransportDirect:
		return TransportDirect, nil
	case TransportProxy, "rapidapi":
		return TransportProxy, nil
	default:
		return "", crerr.Newf("unknown api-football transport %q (expected direct or proxy)", raw)
	}
}

type ClientConfig struct {
	HTTPClient     *http.Client
	Transport      Transport
	BaseURL        string
	ProxyHost      string
	APIKey         string
	Timeout        time.Duration
	RateLimit      float64
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	transport  Transport
	baseURL    string
	proxyHost  string
	apiKey     string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	limiter    *rate.Limiter
	flight     resilience.SingleFlight
}

// Result is the outcome of one upstream call. Data is nil when the body was
// absent or not JSON; OK reflects the HTTP status alone.
type Result[T any] struct {
	OK     bool
	Status int
	Reason string
	Data   *T
}

// Params are query parameters; nil, empty and zero values are omitted.
type Params map[string]any

type rawResponse struct {
	ok     bool
	status int
	reason string
	body   []byte
}

func NewClient(cfg ClientConfig) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api-football key is empty", usecase.ErrMisconfigured)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	transport := cfg.Transport
	if transport == "" {
		transport = TransportDirect
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	proxyHost := strings.TrimSpace(cfg.ProxyHost)
	switch transport {
	case TransportDirect:
		if baseURL == "" {
			baseURL = defaultDirectBaseURL
		}
	case TransportProxy:
		if baseURL == "" {
			baseURL = defaultProxyBaseURL
		}
		if proxyHost == "" {
			proxyHost = defaultProxyHost
		}
	default:
		return nil, fmt.Errorf("%w: unknown api-football transport %q", usecase.ErrMisconfigured, transport)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	c := &Client{
		httpClient: httpClient,
		transport:  transport,
		baseURL:    baseURL,
		proxyHost:  proxyHost,
		apiKey:     apiKey,
		logger:     logger,
		limiter:    limiter,
	}
	c.breaker = resilience.NewCircuitBreaker(cfg.CircuitBreaker, func(from, to resilience.CircuitState) {
		logger.Warn("api-football circuit breaker state changed", "from", from, "to", to)
	})
	return c, nil
}

// FetchResource performs one GET against path and decodes the body into T.
// Only a missing credential is returned as an error; every other failure is
// reported through the Result.
func FetchResource[T any](ctx context.Context, c *Client, path string, params Params) (Result[T], error) {
	if c == nil || c.apiKey == "" {
		return Result[T]{}, fmt.Errorf("%w: api-football key is empty", usecase.ErrMisconfigured)
	}

	raw := c.get(ctx, path, params)
	out := Result[T]{OK: raw.ok, Status: raw.status, Reason: raw.reason}
	if len(raw.body) == 0 {
		return out, nil
	}

	var data T
	if err := sonic.Unmarshal(raw.body, &data); err != nil {
		c.logger.WarnContext(ctx, "api-football returned a non-json body",
			"path", path,
			"status", raw.status,
			"body", abbreviateBody(raw.body),
			"error", err,
		)
		return out, nil
	}
	out.Data = &data
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params Params) rawResponse {
	fullURL := c.resourceURL(path, params)

	// Admission happens inside the shared call so coalesced callers hold no
	// breaker slot or limiter token of their own.
	out, _, _ := c.flight.Do(fullURL, func() (any, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return rawResponse{reason: "rate limit wait: " + err.Error()}, nil
			}
		}

		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return rawResponse{reason: err.Error()}, nil
		}

		resp := c.executeRequest(ctx, fullURL)
		if isTransientFailure(resp) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return resp, nil
	})

	resp, ok := out.(rawResponse)
	if !ok {
		return rawResponse{reason: fmt.Sprintf("unexpected response type %T", out)}
	}
	return resp
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) rawResponse {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return rawResponse{reason: "build request: " + err.Error()}
	}
	req.Header.Set("accept", "application/json")
	switch c.transport {
	case TransportProxy:
		req.Header.Set(headerProxyKey, c.apiKey)
		req.Header.Set(headerProxyHost, c.proxyHost)
	default:
		req.Header.Set(headerDirectKey, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reason := sanitizeSensitiveText("send request: "+err.Error(), c.apiKey)
		c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", reason)
		return rawResponse{reason: reason}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	out := rawResponse{
		ok:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		status: resp.StatusCode,
		reason: http.StatusText(resp.StatusCode),
	}
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		c.logger.WarnContext(ctx, "api-football response body read failed", "url", fullURL, "status", resp.StatusCode, "error", err)
		out.ok = false
		out.reason = "read response body: " + err.Error()
		return out
	}
	out.body = append([]byte(nil), buf.B...)

	if !out.ok {
		c.logger.WarnContext(ctx, "api-football request failed",
			"url", fullURL,
			"status", resp.StatusCode,
			"body", sanitizeSensitiveText(abbreviateBody(out.body), c.apiKey),
		)
	}
	return out
}

func (c *Client) resourceURL(path string, params Params) string {
	fullURL := c.baseURL + "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if encoded := encodeParams(params); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

func encodeParams(params Params) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, key := range keys {
		if value, ok := formatParam(params[key]); ok {
			values.Set(key, value)
		}
	}
	return values.Encode()
}

func formatParam(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", false
	case string:
		trimmed := strings.TrimSpace(typed)
		return trimmed, trimmed != ""
	case int:
		return strconv.Itoa(typed), typed != 0
	case int64:
		return strconv.FormatInt(typed, 10), typed != 0
	case *int:
		if typed == nil {
			return "", false
		}
		return strconv.Itoa(*typed), true
	case *int64:
		if typed == nil {
			return "", false
		}
		return strconv.FormatInt(*typed, 10), true
	case *string:
		if typed == nil {
			return "", false
		}
		return formatParam(*typed)
	case bool:
		return strconv.FormatBool(typed), true
	case time.Time:
		if typed.IsZero() {
			return "", false
		}
		return typed.UTC().Format("2006-01-02"), true
	default:
		formatted := strings.TrimSpace(fmt.Sprint(typed))
		return formatted, formatted != ""
	}
}

func isTransientFailure(resp rawResponse) bool {
	return resp.status == 0 || resp.status == http.StatusTooManyRequests || resp.status >= 500
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxLoggedBodyBytes {
		return text
	}
	cut := maxLoggedBodyBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
