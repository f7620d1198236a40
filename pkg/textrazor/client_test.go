// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

const emptyOKBody = `{"ok": true, "response": {}}`

// testClient builds a client against ts with compression off so handlers can
// read the form directly.
func testClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(Config{
		APIKey:             "test-key",
		Endpoint:           ts.URL + "/",
		DisableCompression: true,
		HTTPClient:         ts.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

// --- Configuration ---

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("NewClient accepted an empty API key")
	}
}

func TestNewClientMergesDefaults(t *testing.T) {
	SetDefaultConfig(Config{APIKey: "default-key", UseEncryption: true})
	defer SetDefaultConfig(Config{})

	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.cfg.APIKey != "default-key" {
		t.Errorf("APIKey = %q, want the default", c.cfg.APIKey)
	}
	if got := c.BaseURL(); got != defaultSecureEndpoint {
		t.Errorf("BaseURL() = %q, want %q", got, defaultSecureEndpoint)
	}
}

func TestNewClientExplicitConfigWinsOverDefault(t *testing.T) {
	SetDefaultConfig(Config{APIKey: "default-key", Timeout: time.Minute})
	defer SetDefaultConfig(Config{})

	c, err := NewClient(Config{APIKey: "explicit-key", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.cfg.APIKey != "explicit-key" {
		t.Errorf("APIKey = %q, want the explicit key", c.cfg.APIKey)
	}
	if c.cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.cfg.Timeout)
	}
}

func TestBaseURL(t *testing.T) {
	plain, err := NewClient(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := plain.BaseURL(); got != defaultEndpoint {
		t.Errorf("BaseURL() = %q, want %q", got, defaultEndpoint)
	}

	secure, err := NewClient(Config{APIKey: "k", UseEncryption: true})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := secure.BaseURL(); got != defaultSecureEndpoint {
		t.Errorf("BaseURL() = %q, want %q", got, defaultSecureEndpoint)
	}
}

// --- Request building ---

func TestOptionsParams(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name string
		opts Options
		want url.Values
	}{
		{
			name: "zero options send nothing",
			opts: Options{},
			want: url.Values{},
		},
		{
			name: "extractors joined with commas",
			opts: Options{Extractors: []string{"entities", "topics", "words"}},
			want: url.Values{"extractors": {"entities,topics,words"}},
		},
		{
			name: "classifiers joined with commas",
			opts: Options{Classifiers: []string{"textrazor_iab", "custom1"}},
			want: url.Values{"classifiers": {"textrazor_iab,custom1"}},
		},
		{
			name: "entity filters repeat per value",
			opts: Options{
				DBPediaTypeFilters:  []string{"Person", "Place"},
				FreebaseTypeFilters: []string{"/people/person"},
			},
			want: url.Values{
				"entities.filterDbpediaTypes":  {"Person", "Place"},
				"entities.filterFreebaseTypes": {"/people/person"},
			},
		},
		{
			name: "cleanup settings",
			opts: Options{
				CleanupMode:          "cleanHTML",
				CleanupReturnCleaned: boolPtr(true),
				CleanupReturnRaw:     boolPtr(false),
			},
			want: url.Values{
				"cleanup.mode":          {"cleanHTML"},
				"cleanup.returnCleaned": {"true"},
				"cleanup.returnRaw":     {"false"},
			},
		},
		{
			name: "language and overlap",
			opts: Options{LanguageOverride: "fre", AllowOverlap: boolPtr(false)},
			want: url.Values{
				"languageOverride":      {"fre"},
				"entities.allowOverlap": {"false"},
			},
		},
		{
			name: "download user agent and enrichment",
			opts: Options{
				DownloadUserAgent: "bot/1.0",
				EnrichmentQueries: []string{"fbase:/location/location"},
			},
			want: url.Values{
				"download.userAgent":         {"bot/1.0"},
				"entities.enrichmentQueries": {"fbase:/location/location"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.Params()
			if got.Encode() != tt.want.Encode() {
				t.Errorf("Params() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeRequest(t *testing.T) {
	var captured *http.Request
	var form url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		r.ParseForm()
		form = r.PostForm
		fmt.Fprint(w, emptyOKBody)
	}))
	defer ts.Close()

	c := testClient(t, ts)
	resp, err := c.Analyze(context.Background(), "hello world", Options{
		Extractors: []string{"entities", "words"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !resp.OK() {
		t.Error("OK() = false, want true")
	}

	if captured.Method != http.MethodPost {
		t.Errorf("method = %q, want POST", captured.Method)
	}
	if got := captured.Header.Get("X-TextRazor-Key"); got != "test-key" {
		t.Errorf("X-TextRazor-Key = %q, want %q", got, "test-key")
	}
	if got := captured.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := form.Get("text"); got != "hello world" {
		t.Errorf("text param = %q, want %q", got, "hello world")
	}
	if got := form.Get("extractors"); got != "entities,words" {
		t.Errorf("extractors param = %q, want %q", got, "entities,words")
	}
}

func TestAnalyzeURLSendsURLParam(t *testing.T) {
	var form url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		form = r.PostForm
		fmt.Fprint(w, emptyOKBody)
	}))
	defer ts.Close()

	c := testClient(t, ts)
	if _, err := c.AnalyzeURL(context.Background(), "https://example.com/story", Options{}); err != nil {
		t.Fatalf("AnalyzeURL: %v", err)
	}
	if got := form.Get("url"); got != "https://example.com/story" {
		t.Errorf("url param = %q, want the target URL", got)
	}
	if form.Has("text") {
		t.Error("AnalyzeURL must not send a text param")
	}
}

// --- Compression ---

func TestAnalyzeGzipRequestBody(t *testing.T) {
	var encoding string
	var form url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoding = r.Header.Get("Content-Encoding")
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			t.Errorf("request body is not gzip: %v", err)
			fmt.Fprint(w, emptyOKBody)
			return
		}
		body, _ := io.ReadAll(zr)
		form, _ = url.ParseQuery(string(body))
		fmt.Fprint(w, emptyOKBody)
	}))
	defer ts.Close()

	c, err := NewClient(Config{APIKey: "k", Endpoint: ts.URL + "/", HTTPClient: ts.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Analyze(context.Background(), "compress me", Options{}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if encoding != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", encoding)
	}
	if got := form.Get("text"); got != "compress me" {
		t.Errorf("decompressed text param = %q, want %q", got, "compress me")
	}
}

func TestAnalyzeGzipResponseBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept-Encoding"); !strings.Contains(got, "gzip") {
			t.Errorf("Accept-Encoding = %q, want gzip", got)
		}
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		fmt.Fprint(zw, `{"ok": true, "response": {"language": "eng"}}`)
		zw.Close()
	}))
	defer ts.Close()

	c, err := NewClient(Config{APIKey: "k", Endpoint: ts.URL + "/", HTTPClient: ts.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	resp, err := c.Analyze(context.Background(), "hello", Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got := resp.Language(); got != "eng" {
		t.Errorf("Language() = %q, want eng (gzip response not decoded?)", got)
	}
}

// --- Failure handling ---

func TestAnalyzeServiceFailureReturnsResponse(t *testing.T) {
	// ok=false with HTTP 200 is not a Go error; the caller inspects the
	// response.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"ok": false, "error": "quota exceeded", "response": {}}`)
	}))
	defer ts.Close()

	c := testClient(t, ts)
	resp, err := c.Analyze(context.Background(), "hello", Options{})
	if err != nil {
		t.Fatalf("Analyze returned error for service-level failure: %v", err)
	}
	if resp.OK() {
		t.Error("OK() = true, want false")
	}
	if got := resp.ErrorMessage(); got != "quota exceeded" {
		t.Errorf("ErrorMessage() = %q, want %q", got, "quota exceeded")
	}
}

func TestAnalyzeNon200Status(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer ts.Close()

	c := testClient(t, ts)
	_, err := c.Analyze(context.Background(), "hello", Options{})

	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("error = %v, want *AnalysisError", err)
	}
	if analysisErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", analysisErr.StatusCode)
	}
}

func TestAnalyzeConnectionFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // nothing is listening any more

	c, err := NewClient(Config{
		APIKey:             "k",
		Endpoint:           ts.URL + "/",
		DisableCompression: true,
		Timeout:            time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Analyze(context.Background(), "hello", Options{})
	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("error = %v, want *AnalysisError", err)
	}
	if analysisErr.Err == nil {
		t.Error("connection failure should wrap the transport error")
	}
}

// --- Management envelope ---

func TestAccountDecodesEnvelope(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"ok": true, "response": {"account": {
			"plan": "free",
			"concurrentRequestLimit": 2,
			"concurrentRequestsUsed": 0,
			"planDailyRequestsIncluded": 500,
			"requestsUsedToday": 17
		}}}`)
	}))
	defer ts.Close()

	c := testClient(t, ts)
	acct, err := c.Account(context.Background())
	if err != nil {
		t.Fatalf("Account: %v", err)
	}

	if captured.URL.Path != "/account/" {
		t.Errorf("path = %q, want /account/", captured.URL.Path)
	}
	if acct.Plan != "free" || acct.RequestsUsedToday != 17 || acct.PlanDailyRequestsIncluded != 500 {
		t.Errorf("account = %+v", acct)
	}
}

func TestManagementFailureReturnsError(t *testing.T) {
	// Unlike analyze calls, a management ok=false becomes a Go error.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"ok": false, "error": "invalid api key"}`)
	}))
	defer ts.Close()

	c := testClient(t, ts)
	_, err := c.Account(context.Background())

	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("error = %v, want *AnalysisError", err)
	}
	if analysisErr.Message != "invalid api key" {
		t.Errorf("Message = %q, want the service error", analysisErr.Message)
	}
}
