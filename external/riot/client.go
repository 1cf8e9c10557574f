package riot

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/platform/resilience"
	"github.com/riskibarqy/lol-match-history/internal/usecase"
)

const (
	hostTemplate              = "https://%s.api.riotgames.com"
	tokenHeader               = "X-Riot-Token"
	DefaultMaxThrottleRetries = 7
	defaultTimeout            = 10 * time.Second
	maxResponseBodyBytes      = 32 << 20
)

var errRiotTransient = crerr.New("riot transient failure")

type ClientConfig struct {
	HTTPClient *fasthttp.Client
	// BaseURL replaces the regional host for every request.
	BaseURL string
	Token   string
	Timeout time.Duration
	// MaxThrottleRetries bounds retries on 429; zero or less means the default.
	MaxThrottleRetries int
	Routes             map[string]string
	Logger             *logging.Logger
	CircuitBreaker     resilience.CircuitBreakerConfig
	// Sleep waits out throttle backoff. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Client talks to match-v5. It is safe for concurrent use; identical
// in-flight requests share one upstream call.
type Client struct {
	httpClient         *fasthttp.Client
	baseURL            string
	token              string
	timeout            time.Duration
	maxThrottleRetries int
	routes             map[string]string
	logger             *logging.Logger
	breaker            *resilience.CircuitBreaker
	circuitEnabled     bool
	flight             resilience.Group[[]byte]
	sleep              func(ctx context.Context, d time.Duration) error
}

var _ usecase.MatchFetcher = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "lol-match-history",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxConnsPerHost:     64,
			MaxResponseBodySize: maxResponseBodyBytes,
		}
	}

	retries := cfg.MaxThrottleRetries
	if retries <= 0 {
		retries = DefaultMaxThrottleRetries
	}

	routes := cfg.Routes
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	breaker := resilience.NewCircuitBreaker(breakerCfg)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("riot circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient:         httpClient,
		baseURL:            strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:              strings.TrimSpace(cfg.Token),
		timeout:            timeout,
		maxThrottleRetries: retries,
		routes:             routes,
		logger:             logger,
		breaker:            breaker,
		circuitEnabled:     breakerCfg.Enabled,
		sleep:              sleep,
	}
}

// ThrottleBackoff is the wait after the attempt-th throttled response
// (zero-based): 1s, 2s, 4s, ...
func ThrottleBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

func (c *Client) FetchMatch(ctx context.Context, matchID, region string) ([]byte, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", usecase.ErrInvalidInput)
	}
	host, err := c.hostFor(region, matchID)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, host, "/lol/match/v5/matches/"+url.PathEscape(matchID), nil)
}

func (c *Client) FetchTimeline(ctx context.Context, matchID, region string) ([]byte, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", usecase.ErrInvalidInput)
	}
	host, err := c.hostFor(region, matchID)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, host, "/lol/match/v5/matches/"+url.PathEscape(matchID)+"/timeline", nil)
}

func (c *Client) FetchMatchIDs(ctx context.Context, puuid, region string, query usecase.MatchIDQuery) ([]byte, error) {
	puuid = strings.TrimSpace(puuid)
	if puuid == "" {
		return nil, fmt.Errorf("%w: puuid is required", usecase.ErrInvalidInput)
	}
	if query.Start < 0 || query.Count < 0 || query.Count > usecase.MaxMatchIDPageSize {
		return nil, fmt.Errorf("%w: start=%d count=%d", usecase.ErrInvalidInput, query.Start, query.Count)
	}
	host, err := c.hostFor(region, "")
	if err != nil {
		return nil, err
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.SetUint("start", query.Start)
	if query.Count > 0 {
		args.SetUint("count", query.Count)
	}
	if query.Queue > 0 {
		args.SetUint("queue", query.Queue)
	}
	if t := strings.TrimSpace(query.Type); t != "" {
		args.Set("type", t)
	}
	if query.StartTime > 0 {
		args.Set("startTime", strconv.FormatInt(query.StartTime, 10))
	}
	if query.EndTime > 0 {
		args.Set("endTime", strconv.FormatInt(query.EndTime, 10))
	}

	return c.get(ctx, host, "/lol/match/v5/matches/by-puuid/"+url.PathEscape(puuid)+"/ids", args)
}

func (c *Client) hostFor(region, matchID string) (string, error) {
	platform := normalizePlatform(region)
	if platform == "" {
		platform = PlatformFromMatchID(matchID)
	}
	route, ok := c.routes[platform]
	if !ok {
		return "", fmt.Errorf("%w: unknown region %q", usecase.ErrInvalidInput, region)
	}
	if c.baseURL != "" {
		return c.baseURL, nil
	}
	return fmt.Sprintf(hostTemplate, route), nil
}

func (c *Client) get(ctx context.Context, host, path string, args *fasthttp.Args) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "riot circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return nil, fmt.Errorf("%w: %v", usecase.ErrUpstreamUnavailable, err)
		}
	}

	fullURL := buildURL(host, path, args)
	// Each attempt is capped by c.timeout and retries by the backoff budget.
	raw, _, err := c.flight.DoContext(ctx, fullURL, func(ctx context.Context) ([]byte, error) {
		raw, reqErr := c.execute(ctx, fullURL, path)
		c.recordCircuitResult(reqErr)
		return raw, reqErr
	})
	return raw, err
}

// execute retries only throttled responses. Everything else, including
// connection failures, is reported on the first occurrence.
func (c *Client) execute(ctx context.Context, fullURL, path string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		status, body, err := c.do(ctx, fullURL)
		if err != nil {
			c.logger.WarnContext(ctx, "riot request failed", "path", path, "attempt", attempt+1, "error", c.redact(err.Error()))
			return nil, crerr.Mark(
				fmt.Errorf("%w: %s: %s", usecase.ErrUpstreamNetwork, path, c.redact(err.Error())),
				errRiotTransient,
			)
		}

		switch {
		case status >= fasthttp.StatusOK && status < fasthttp.StatusMultipleChoices:
			return body, nil
		case status == fasthttp.StatusNotFound:
			c.logger.InfoContext(ctx, "riot resource not found", "path", path)
			return nil, fmt.Errorf("%w: %s", usecase.ErrUpstreamNotFound, path)
		case status == fasthttp.StatusTooManyRequests:
			if attempt >= c.maxThrottleRetries {
				c.logger.WarnContext(ctx, "riot throttling outlasted retry budget", "path", path, "attempts", attempt+1)
				return nil, fmt.Errorf("%w: %s after %d attempts", usecase.ErrUpstreamThrottled, path, attempt+1)
			}
			backoff := ThrottleBackoff(attempt)
			c.logger.InfoContext(ctx, "riot request throttled, backing off", "path", path, "attempt", attempt+1, "backoff", backoff)
			if err := c.sleep(ctx, backoff); err != nil {
				return nil, err
			}
		case status >= fasthttp.StatusInternalServerError:
			return nil, crerr.Mark(
				fmt.Errorf("%w: %s status=%d body=%s", usecase.ErrUpstreamUnavailable, path, status, abbreviateBody(body)),
				errRiotTransient,
			)
		default:
			return nil, fmt.Errorf("%w: %s status=%d body=%s", usecase.ErrUpstreamUnavailable, path, status, abbreviateBody(body))
		}
	}
}

func (c *Client) do(ctx context.Context, fullURL string) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(tokenHeader, c.token)

	var err error
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < c.timeout {
		err = c.httpClient.DoDeadline(req, resp, deadline)
	} else {
		err = c.httpClient.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return 0, nil, err
	}

	// resp is recycled on return; keep our own copy of the body.
	body := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), body, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil && crerr.Is(err, errRiotTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func (c *Client) redact(value string) string {
	if c.token == "" {
		return value
	}
	return strings.ReplaceAll(value, c.token, "REDACTED")
}

func buildURL(host, path string, args *fasthttp.Args) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(host)
	_, _ = buf.WriteString(path)
	if args != nil && args.Len() > 0 {
		_ = buf.WriteByte('?')
		buf.B = args.AppendBytes(buf.B)
	}
	return buf.String()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
