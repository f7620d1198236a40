package types

import "time"

// HTTPConfig holds shared HTTP settings for commands that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "textrazor-go/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ClientConfig holds connection settings for the TextRazor service.
type ClientConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey authenticates requests. Usually loaded from the secrets
	// directory or the TEXTRAZOR_API_KEY environment variable rather than
	// written in the config file.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Endpoint and SecureEndpoint override the service URLs.
	Endpoint       string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`
	SecureEndpoint string `json:"secure_endpoint,omitempty" yaml:"secure_endpoint,omitempty" mapstructure:"secure_endpoint"`

	// UseEncryption routes requests to the HTTPS endpoint.
	UseEncryption bool `json:"use_encryption" yaml:"use_encryption" mapstructure:"use_encryption"`

	// DisableCompression turns off gzip on requests and responses.
	DisableCompression bool `json:"disable_compression" yaml:"disable_compression" mapstructure:"disable_compression"`

	// MaxRetries is the number of retry attempts on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// AnalysisConfig holds default analysis options applied when a command does
// not override them.
type AnalysisConfig struct {
	// Extractors is the default extractor list (e.g. entities, topics,
	// words).
	Extractors []string `json:"extractors" yaml:"extractors" mapstructure:"extractors"`

	// Classifiers is the default classifier list.
	Classifiers []string `json:"classifiers,omitempty" yaml:"classifiers,omitempty" mapstructure:"classifiers"`

	// LanguageOverride forces analysis in a fixed ISO-639-2 language.
	LanguageOverride string `json:"language_override,omitempty" yaml:"language_override,omitempty" mapstructure:"language_override"`

	// CleanupMode is the default document cleanup mode: raw, stripTags, or
	// cleanHTML.
	CleanupMode string `json:"cleanup_mode,omitempty" yaml:"cleanup_mode,omitempty" mapstructure:"cleanup_mode"`
}

// CacheConfig holds settings for the local response cache.
type CacheConfig struct {
	// Enabled turns response caching on.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding the cache database (default ".cache").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxAge is how long entries stay valid; Prune removes older ones
	// (default 7 days).
	MaxAge time.Duration `json:"max_age" yaml:"max_age" mapstructure:"max_age"`
}

// BatchConfig holds settings for batch analysis runs.
type BatchConfig struct {
	// Delay is the pause between consecutive requests (default 1s).
	Delay time.Duration `json:"delay" yaml:"delay" mapstructure:"delay"`

	// ResultsDir is the directory for batch result files (default
	// "output/results/").
	ResultsDir string `json:"results_dir" yaml:"results_dir" mapstructure:"results_dir"`
}

// CLIConfig groups all settings of the command-line tool.
type CLIConfig struct {
	Client   ClientConfig   `json:"client" yaml:"client" mapstructure:"client"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis" mapstructure:"analysis"`
	Cache    CacheConfig    `json:"cache" yaml:"cache" mapstructure:"cache"`
	Batch    BatchConfig    `json:"batch" yaml:"batch" mapstructure:"batch"`
}
