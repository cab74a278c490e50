// Package configs provides the Configuration kind for vlist.
package configs

//go:generate go run ../../../internal/schemagen/config -o config.v1beta1.json

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/vlist/api"
	"github.com/macropower/vlist/api/v1beta1"
	"github.com/macropower/vlist/pkg/scroll"
	"github.com/macropower/vlist/pkg/source"
	"github.com/macropower/vlist/pkg/ui"
	"github.com/macropower/vlist/pkg/window"
	"github.com/macropower/vlist/pkg/yaml"
)

const (
	Kind     = "Configuration"
	SchemaID = "https://vlist.macropower.dev/configs.v1beta1.json"
)

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	// ValidKinds contains the valid kind values for global configurations.
	ValidKinds = []string{Kind}

	ErrInvalidDebounce = errors.New("invalid debounce duration")
	ErrInvalidPageSize = errors.New("page size must not be negative")

	// Compile-time interface checks.
	_ v1beta1.Object = (*Config)(nil)

	validator = sync.OnceValues(func() (*yaml.Validator, error) {
		b, err := Schema()
		if err != nil {
			return nil, err
		}

		//nolint:wrapcheck // Already wrapped.
		return yaml.NewValidator(SchemaID, b)
	})
)

// Config is the vlist configuration file.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	Window           *window.Geometry `json:"window,omitempty"    jsonschema:"title=Window"`
	Threshold        *Threshold       `json:"threshold,omitempty" jsonschema:"title=Threshold"`
	Source           *Source          `json:"source,omitempty"    jsonschema:"title=Source"`
	UI               *ui.Config       `json:"ui,omitempty"        jsonschema:"title=UI"`
	v1beta1.TypeMeta `json:",inline"`
}

// Threshold configures when more rows are loaded.
type Threshold struct {
	// Debounce is a Go duration, such as "150ms".
	Debounce string `json:"debounce,omitempty" jsonschema:"title=Debounce,description=Pause in scrolling before the threshold is checked"`
	// Percent of the scroll height the bottom of the viewport has to reach.
	Percent float64 `json:"percent,omitempty" jsonschema:"title=Percent,exclusiveMinimum=0,maximum=100"`
}

// Delay returns the parsed debounce duration.
func (t *Threshold) Delay() (time.Duration, error) {
	d, err := time.ParseDuration(t.Debounce)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDebounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidDebounce, t.Debounce)
	}

	return d, nil
}

// Source configures how rows are read.
type Source struct {
	Follow *bool `json:"follow,omitempty" jsonschema:"title=Follow,description=Keep reading files as they grow"`
	// Where is a CEL expression over line and index.
	Where    string `json:"where,omitempty"    jsonschema:"title=Where,description=CEL expression selecting the rows to show"`
	PageSize int    `json:"pageSize,omitempty" jsonschema:"title=Page Size,minimum=0"`
	// MaxRows limits the demo source. Zero means no limit.
	MaxRows int `json:"maxRows,omitempty" jsonschema:"title=Max Rows,minimum=0"`
}

// New creates a new [Config] with default values.
func New() *Config {
	c := &Config{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Window == nil {
		g := window.NewGeometry(1)
		c.Window = &g
	}

	if c.Threshold == nil {
		c.Threshold = &Threshold{}
	}
	if c.Threshold.Percent == 0 {
		c.Threshold.Percent = scroll.DefaultPercent
	}
	if c.Threshold.Debounce == "" {
		c.Threshold.Debounce = scroll.DefaultDelay.String()
	}

	if c.Source == nil {
		c.Source = &Source{}
	}
	if c.Source.PageSize == 0 {
		c.Source.PageSize = source.DefaultPageSize
	}
	if c.Source.Follow == nil {
		c.Source.Follow = new(bool)
	}

	if c.UI == nil {
		c.UI = ui.NewConfig()
	} else {
		c.UI.EnsureDefaults()
	}
}

// Validate checks the values the schema cannot express.
func (c *Config) Validate() error {
	err := c.Window.Validate()
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}

	if c.Threshold.Percent <= 0 || c.Threshold.Percent > 100 {
		return fmt.Errorf("threshold: %w: got %g", scroll.ErrInvalidPercent, c.Threshold.Percent)
	}

	_, err = c.Threshold.Delay()
	if err != nil {
		return fmt.Errorf("threshold: %w", err)
	}

	if c.Source.PageSize < 0 {
		return fmt.Errorf("source: %w: got %d", ErrInvalidPageSize, c.Source.PageSize)
	}

	err = c.UI.Validate()
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := api.MarshalYAML(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// Schema returns the JSON schema of [Config].
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}

	s := r.Reflect(&Config{})
	s.ID = SchemaID
	s.Title = "vlist configuration"

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return b, nil
}

// Validator returns the schema validator for configuration files.
func Validator() (*yaml.Validator, error) {
	return validator()
}

// DefaultYAML returns the commented default configuration file.
func DefaultYAML() []byte {
	return defaultConfigYAML
}

// WriteDefault writes the default config.yaml to path.
func WriteDefault(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultConfigYAML, force, "configuration")
	if err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}

// GetPath returns the path to the global configuration file.
func GetPath() string {
	return api.GetConfigPath("config.yaml")
}
