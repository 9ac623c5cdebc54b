package health_prober

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

type Prober interface {
	// Probe never returns an error: every failure is reported as an offline Result.
	Probe(ctx context.Context, target Target) Result
}

type prober struct {
	client         *http.Client
	dialer         *net.Dialer
	defaultTimeout time.Duration
	now            func() time.Time
}

const (
	latencyMetric = "latency"
	latencyUnit   = "ms"
)

func (p *prober) Probe(ctx context.Context, target Target) Result {
	switch target.method() {
	case MethodHTTP:
		return p.probeHTTP(ctx, target)
	case MethodTCP:
		return p.probeTCP(ctx, target)
	default:
		return p.offline(target.method(), fmt.Sprintf("unsupported probe method %q", target.Method))
	}
}

func (p *prober) timeout(check *HTTPCheck) time.Duration {
	if check != nil && check.TimeoutMs > 0 {
		return time.Duration(check.TimeoutMs) * time.Millisecond
	}
	return p.defaultTimeout
}

func (p *prober) probeHTTP(ctx context.Context, target Target) Result {
	check := HTTPCheck{}
	if target.HTTP != nil {
		check = *target.HTTP
	}
	timeout := p.timeout(&check)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	protocol := check.Protocol
	if protocol == "" {
		protocol = defaultProtocol
	}
	path := check.Path
	if path == "" {
		path = defaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	port := target.Port
	if port == 0 {
		port = defaultHTTPPort
	}
	requestUrl := fmt.Sprintf("%s://%s%s", protocol, net.JoinHostPort(target.Host, strconv.Itoa(port)), path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return p.offline(MethodHTTP, fmt.Sprintf("invalid request: %v", err))
	}
	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return p.offline(MethodHTTP, describeError(err, timeout))
	}
	resp.Body.Close()
	latency := float64(time.Since(start).Microseconds()) / 1000

	status := resp.StatusCode
	res := p.online(MethodHTTP, latency)
	res.HTTPStatus = &status
	if !check.accepts(status) {
		res.Online = false
		detail := fmt.Sprintf("unexpected HTTP status %d", status)
		res.Detail = &detail
	}
	return res
}

func (p *prober) probeTCP(ctx context.Context, target Target) Result {
	timeout := p.timeout(target.HTTP)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	conn, err := p.dialer.DialContext(ctx, "tcp", net.JoinHostPort(target.Host, strconv.Itoa(target.Port)))
	if err != nil {
		return p.offline(MethodTCP, describeError(err, timeout))
	}
	latency := float64(time.Since(start).Microseconds()) / 1000
	conn.Close()
	return p.online(MethodTCP, latency)
}

func (p *prober) online(method ProbeMethod, latencyMs float64) Result {
	name, unit := latencyMetric, latencyUnit
	return Result{
		Online:      true,
		Method:      method,
		MetricName:  &name,
		MetricValue: &latencyMs,
		MetricUnit:  &unit,
		CheckedAt:   p.now(),
	}
}

func (p *prober) offline(method ProbeMethod, detail string) Result {
	return Result{
		Online:    false,
		Method:    method,
		Detail:    &detail,
		CheckedAt: p.now(),
	}
}

func describeError(err error, timeout time.Duration) string {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return fmt.Sprintf("timeout after %s", timeout)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Sprintf("timeout after %s", timeout)
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.As(err, &dnsErr):
		return fmt.Sprintf("dns lookup failed: %s", dnsErr.Err)
	default:
		return err.Error()
	}
}

func NewProber(defaultTimeout time.Duration) Prober {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultTimeout
	}
	return &prober{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:             http.ProxyFromEnvironment,
				DisableKeepAlives: true,
			},
			// report the status the health endpoint answered with, not the redirect target's
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		dialer:         &net.Dialer{},
		defaultTimeout: defaultTimeout,
		now:            time.Now,
	}
}
