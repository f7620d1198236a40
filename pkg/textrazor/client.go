// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/textrazor-go/internal/httputil"
)

const (
	defaultEndpoint       = "http://api.textrazor.com/"
	defaultSecureEndpoint = "https://api.textrazor.com/"
	defaultUserAgent      = "textrazor-go/0.1"
	defaultTimeout        = 30 * time.Second
)

// Config holds client construction settings. A Config is copied at
// construction and never mutated afterwards, so one client may serve many
// concurrent requests. Callers that vary settings per request should build
// one client per configuration rather than mutating a shared one.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	// Endpoint and SecureEndpoint override the service URLs, mainly for
	// tests.
	Endpoint       string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	SecureEndpoint string `json:"secure_endpoint,omitempty" yaml:"secure_endpoint,omitempty"`
	// UseEncryption routes requests to the HTTPS endpoint.
	UseEncryption bool `json:"use_encryption" yaml:"use_encryption"`
	// DisableCompression turns off gzip request bodies and gzip response
	// negotiation. Compression is on by default; large responses shrink
	// considerably.
	DisableCompression bool `json:"disable_compression" yaml:"disable_compression"`
	// Timeout bounds each HTTP request. Ignored when HTTPClient is set.
	Timeout   time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UserAgent string        `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	// MaxRetries bounds retries on HTTP 429 (0 = default).
	MaxRetries int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client `json:"-" yaml:"-"`
}

// The process-wide default Config. Fields left zero in the Config passed to
// NewClient fall back to it. It is installed explicitly; nothing mutates it
// implicitly.
var (
	defaultMu     sync.RWMutex
	defaultConfig Config
)

// SetDefaultConfig installs cfg as the process-wide default configuration.
// Call it once during initialization, before building clients.
func SetDefaultConfig(cfg Config) {
	defaultMu.Lock()
	defaultConfig = cfg
	defaultMu.Unlock()
}

func mergeConfig(cfg Config) Config {
	defaultMu.RLock()
	def := defaultConfig
	defaultMu.RUnlock()

	if cfg.APIKey == "" {
		cfg.APIKey = def.APIKey
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.SecureEndpoint == "" {
		cfg.SecureEndpoint = def.SecureEndpoint
	}
	if cfg.SecureEndpoint == "" {
		cfg.SecureEndpoint = defaultSecureEndpoint
	}
	cfg.UseEncryption = cfg.UseEncryption || def.UseEncryption
	cfg.DisableCompression = cfg.DisableCompression || def.DisableCompression
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = def.HTTPClient
	}
	return cfg
}

// Client issues analysis and management requests against the TextRazor API.
// Safe for concurrent use; its configuration is fixed at construction.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a client from cfg, filling zero fields from the default
// configuration installed by SetDefaultConfig and then from built-in
// defaults.
func NewClient(cfg Config) (*Client, error) {
	merged := mergeConfig(cfg)
	if merged.APIKey == "" {
		return nil, fmt.Errorf("textrazor: api key is required")
	}
	hc := merged.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: merged.Timeout}
	}
	return &Client{cfg: merged, http: hc}, nil
}

// BaseURL returns the endpoint requests are sent to, honoring UseEncryption.
func (c *Client) BaseURL() string {
	if c.cfg.UseEncryption {
		return c.cfg.SecureEndpoint
	}
	return c.cfg.Endpoint
}

// Options selects the extractors and preprocessing applied to one analysis
// request. The zero value requests the server defaults. Optional boolean
// parameters use pointers: nil means the parameter is not sent.
type Options struct {
	// Extractors names the analysis modules to run, e.g. "entities",
	// "topics", "relations", "dependency-trees", "words", "phrases",
	// "entailments". A name outside the predefined set selects a custom rule
	// extractor.
	Extractors []string
	// Rules holds custom annotation rules evaluated server-side.
	Rules string
	// Classifiers names the classifiers to match against the document.
	Classifiers []string
	// CleanupMode is raw, stripTags or cleanHTML.
	CleanupMode          string
	CleanupReturnCleaned *bool
	CleanupReturnRaw     *bool
	CleanupUseMetadata   *bool
	// LanguageOverride forces analysis in an ISO-639-2 language instead of
	// the detected one.
	LanguageOverride string
	// DownloadUserAgent is the User-Agent the service uses when downloading
	// URLs for AnalyzeURL.
	DownloadUserAgent string
	// EnrichmentQueries enrich the entity response with linked data.
	EnrichmentQueries []string
	// DBPediaTypeFilters and FreebaseTypeFilters restrict returned entities
	// to those matching at least one listed type.
	DBPediaTypeFilters  []string
	FreebaseTypeFilters []string
	// AllowOverlap controls whether returned entities may overlap.
	AllowOverlap *bool
}

// Params encodes the options as request form values.
func (o Options) Params() url.Values {
	v := url.Values{}
	if len(o.Extractors) > 0 {
		v.Set("extractors", strings.Join(o.Extractors, ","))
	}
	if o.Rules != "" {
		v.Set("rules", o.Rules)
	}
	if len(o.Classifiers) > 0 {
		v.Set("classifiers", strings.Join(o.Classifiers, ","))
	}
	for _, f := range o.DBPediaTypeFilters {
		v.Add("entities.filterDbpediaTypes", f)
	}
	for _, f := range o.FreebaseTypeFilters {
		v.Add("entities.filterFreebaseTypes", f)
	}
	for _, q := range o.EnrichmentQueries {
		v.Add("entities.enrichmentQueries", q)
	}
	setOptBool(v, "entities.allowOverlap", o.AllowOverlap)
	if o.LanguageOverride != "" {
		v.Set("languageOverride", o.LanguageOverride)
	}
	if o.CleanupMode != "" {
		v.Set("cleanup.mode", o.CleanupMode)
	}
	setOptBool(v, "cleanup.returnCleaned", o.CleanupReturnCleaned)
	setOptBool(v, "cleanup.returnRaw", o.CleanupReturnRaw)
	setOptBool(v, "cleanup.useMetadata", o.CleanupUseMetadata)
	if o.DownloadUserAgent != "" {
		v.Set("download.userAgent", o.DownloadUserAgent)
	}
	return v
}

func setOptBool(v url.Values, key string, b *bool) {
	if b != nil {
		v.Set(key, strconv.FormatBool(*b))
	}
}

// Analyze submits raw text for analysis. The returned Response is populated
// even when the service reports ok=false; inspect Response.OK and
// Response.ErrorMessage. Transport failures return an *AnalysisError.
func (c *Client) Analyze(ctx context.Context, text string, opts Options) (*Response, error) {
	params := opts.Params()
	params.Set("text", text)
	body, err := c.postForm(ctx, params)
	if err != nil {
		return nil, err
	}
	return ParseResponse(body)
}

// AnalyzeURL has the service download target and analyze the resulting
// document. HTML is cleaned before analysis unless CleanupMode says
// otherwise.
func (c *Client) AnalyzeURL(ctx context.Context, target string, opts Options) (*Response, error) {
	params := opts.Params()
	params.Set("url", target)
	body, err := c.postForm(ctx, params)
	if err != nil {
		return nil, err
	}
	return ParseResponse(body)
}

// postForm sends a form-encoded analysis request, gzip-compressing the body
// unless compression is disabled.
func (c *Client) postForm(ctx context.Context, params url.Values) ([]byte, error) {
	encoded := params.Encode()

	var body io.Reader = strings.NewReader(encoded)
	if !c.cfg.DisableCompression {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write([]byte(encoded)); err != nil {
			return nil, fmt.Errorf("compressing request: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("compressing request: %w", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if !c.cfg.DisableCompression {
		req.Header.Set("Content-Encoding", "gzip")
	}
	return c.do(req)
}

// do sends the request with 429 retries, decompresses gzip responses, and
// maps transport failures to AnalysisError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("X-TextRazor-Key", c.cfg.APIKey)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if !c.cfg.DisableCompression {
		req.Header.Set("Accept-Encoding", "gzip")
	}

	resp, err := httputil.DoWithRetry(req.Context(), c.http, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, &AnalysisError{Message: "could not connect to TextRazor", Err: err}
	}
	defer resp.Body.Close()

	reader := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decompressing response: %w", err)
		}
		defer zr.Close()
		reader = zr
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &AnalysisError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// manageEnvelope is the wire document returned by management resources.
type manageEnvelope struct {
	OK       bool            `json:"ok"`
	Error    string          `json:"error"`
	Time     float64         `json:"time"`
	Response json.RawMessage `json:"response"`
}

// manage issues a management request and decodes the response envelope into
// out. Unlike analyze calls, a service-level ok=false is returned as an
// *AnalysisError.
func (c *Client) manage(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.do(req)
	if err != nil {
		return err
	}

	var env manageEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding management response: %w", err)
	}
	if !env.OK {
		return &AnalysisError{Message: env.Error}
	}
	if out != nil && len(env.Response) > 0 {
		if err := json.Unmarshal(env.Response, out); err != nil {
			return fmt.Errorf("decoding management response: %w", err)
		}
	}
	return nil
}

// pageQuery returns the query suffix for a paged listing.
func pageQuery(limit, offset int) string {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		v.Set("offset", strconv.Itoa(offset))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
