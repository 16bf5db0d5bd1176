package types

import "time"

// CitationStyle selects how the bibliography is rendered.
type CitationStyle string

const (
	// StyleNone renders title/link/description triples.
	StyleNone CitationStyle = "none"

	// StyleAPA renders pre-formatted APA citation strings.
	StyleAPA CitationStyle = "apa"
)

// Defaults applied when the config file and environment leave a key unset.
const (
	DefaultMaxEntries = 50
	DefaultPerSource  = 25
	DefaultTimeout    = 10 * time.Second
	DefaultUserAgent  = "bibgen/0.1"
	DefaultSecretsDir = ".secrets/"
)

// HTTPConfig holds shared HTTP settings used by every source adapter.
type HTTPConfig struct {
	// Timeout bounds a single adapter request.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent" validate:"required"`
}

// EndpointConfig points an adapter at its API.
type EndpointConfig struct {
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`
}

// CrossrefConfig configures the scholarly-metadata adapter.
type CrossrefConfig struct {
	EndpointConfig `yaml:",inline" mapstructure:",squash"`

	// Mailto is sent as a query parameter to join Crossref's polite pool.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto" validate:"omitempty,email"`
}

// SourcesConfig groups per-adapter settings.
type SourcesConfig struct {
	Together EndpointConfig `json:"together" yaml:"together" mapstructure:"together"`
	Serper   EndpointConfig `json:"serper" yaml:"serper" mapstructure:"serper"`
	Crossref CrossrefConfig `json:"crossref" yaml:"crossref" mapstructure:"crossref"`
}

// Config is the full bibgen configuration.
type Config struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// CitationStyle is none or apa.
	CitationStyle CitationStyle `json:"citation_style" yaml:"citation_style" mapstructure:"citation_style" validate:"oneof=none apa"`

	// MaxEntries caps the bibliography length (default 50).
	MaxEntries int `json:"max_entries" yaml:"max_entries" mapstructure:"max_entries" validate:"min=1,max=50"`

	// PerSource is the result count requested from each adapter (default 25).
	PerSource int `json:"per_source" yaml:"per_source" mapstructure:"per_source" validate:"min=1,max=100"`

	// SecretsDir is the directory of plain-text secret files.
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`

	// Environment selects the logger preset: development or production.
	Environment string `json:"environment" yaml:"environment" mapstructure:"environment" validate:"oneof=development production"`

	Sources SourcesConfig `json:"sources" yaml:"sources" mapstructure:"sources"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		HTTPConfig: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		CitationStyle: StyleNone,
		MaxEntries:    DefaultMaxEntries,
		PerSource:     DefaultPerSource,
		SecretsDir:    DefaultSecretsDir,
		Environment:   "development",
	}
}
