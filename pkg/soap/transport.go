package soap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/iett/pkg/cachedresults"
	"github.com/travigo/iett/pkg/metrics"
	"golang.org/x/net/html/charset"
)

const DefaultTimeout = 15 * time.Second

// Call describes a single SOAP method invocation
type Call struct {
	Endpoint string
	Method   string
	Params   map[string]string

	// Timeout bounds the whole round trip, DefaultTimeout when zero
	Timeout time.Duration
	// Freshness is how long a successful response may be served from cache, zero disables caching
	Freshness time.Duration
}

// CacheKey identifies the call by endpoint, method and parameters
func (c Call) CacheKey() string {
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("iett:")
	b.WriteString(c.Endpoint)
	b.WriteString(":")
	b.WriteString(c.Method)
	for _, name := range names {
		b.WriteString(":")
		b.WriteString(url.QueryEscape(name))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(c.Params[name]))
	}

	return b.String()
}

// Invoker performs SOAP calls over HTTP
type Invoker struct {
	Client    *http.Client
	Namespace string
	Cache     cachedresults.ResponseCache
	UserAgent string
}

func NewInvoker(responseCache cachedresults.ResponseCache) *Invoker {
	if responseCache == nil {
		responseCache = cachedresults.Noop{}
	}

	return &Invoker{
		Client:    &http.Client{},
		Namespace: DefaultNamespace,
		Cache:     responseCache,
		UserAgent: "iett-gateway/1.0",
	}
}

// Call returns the raw response body of the call.
// A fresh cached response is returned without touching the network. When the upstream
// fails and an expired response is still held, that response is returned instead of the error.
func (i *Invoker) Call(ctx context.Context, call Call) (string, error) {
	startTime := time.Now()
	cacheKey := call.CacheKey()

	responseCache := i.Cache
	if responseCache == nil {
		responseCache = cachedresults.Noop{}
	}

	entry, cached := responseCache.Get(ctx, cacheKey)
	if cached && entry.Fresh(startTime) {
		metrics.ObserveUpstreamCall(call.Method, metrics.ResultCacheHit, 0)
		return entry.Body, nil
	}

	body, err := i.do(ctx, call)
	if err != nil {
		metrics.ObserveUpstreamCall(call.Method, resultLabel(err), time.Since(startTime))

		if cached && ctx.Err() == nil {
			log.Warn().
				Err(err).
				Str("method", call.Method).
				Str("age", startTime.Sub(entry.StoredAt).String()).
				Msg("Serving stale response after upstream failure")
			metrics.ObserveUpstreamCall(call.Method, metrics.ResultStale, 0)

			return entry.Body, nil
		}

		return "", err
	}

	metrics.ObserveUpstreamCall(call.Method, metrics.ResultOK, time.Since(startTime))
	responseCache.Set(ctx, cacheKey, body, call.Freshness)

	return body, nil
}

func (i *Invoker) do(ctx context.Context, call Call) (string, error) {
	timeout := call.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	namespace := i.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	envelope := BuildEnvelopeNS(namespace, call.Method, call.Params)

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, call.Endpoint, strings.NewReader(envelope))
	if err != nil {
		return "", &TransportError{Method: call.Method, Err: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", namespace+call.Method)
	if i.UserAgent != "" {
		req.Header.Set("User-Agent", i.UserAgent)
	}

	log.Debug().Str("method", call.Method).Str("endpoint", call.Endpoint).Msg("Calling SOAP method")

	client := i.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", classifyError(ctx, callCtx, call.Method, timeout, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &TransportError{Method: call.Method, StatusCode: resp.StatusCode}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyError(ctx, callCtx, call.Method, timeout, err)
	}

	return decodeBody(bodyBytes, resp.Header.Get("Content-Type")), nil
}

// decodeBody converts the response to UTF-8. The charset comes from the Content-Type
// header, then the XML declaration, and is UTF-8 when neither names one.
func decodeBody(body []byte, contentType string) string {
	label := ""
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		label = params["charset"]
	}
	if label == "" {
		label = xmlDeclarationEncoding(body)
	}
	if label == "" {
		return string(body)
	}

	encoding, name := charset.Lookup(label)
	if encoding == nil || name == "utf-8" {
		return string(body)
	}

	decoded, err := encoding.NewDecoder().Bytes(body)
	if err != nil {
		log.Warn().Err(err).Str("charset", name).Msg("Failed to decode response body, using it as is")
		return string(body)
	}

	return string(decoded)
}

func xmlDeclarationEncoding(body []byte) string {
	body = bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(body, []byte("<?xml")) {
		return ""
	}

	end := bytes.Index(body, []byte("?>"))
	if end < 0 {
		return ""
	}
	declaration := body[:end]

	index := bytes.Index(declaration, []byte("encoding="))
	if index < 0 {
		return ""
	}
	value := declaration[index+len("encoding="):]
	if len(value) < 2 || (value[0] != '"' && value[0] != '\'') {
		return ""
	}

	closing := bytes.IndexByte(value[1:], value[0])
	if closing < 0 {
		return ""
	}

	return string(value[1 : closing+1])
}

func classifyError(parentCtx context.Context, callCtx context.Context, method string, timeout time.Duration, err error) error {
	if parentErr := parentCtx.Err(); parentErr != nil {
		return fmt.Errorf("soap %s: %w", method, parentErr)
	}

	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Method: method, Timeout: timeout}
	}

	return &TransportError{Method: method, Err: err}
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return metrics.ResultTimeout
	case errors.Is(err, ErrTransport):
		return metrics.ResultTransport
	default:
		return metrics.ResultCancelled
	}
}
