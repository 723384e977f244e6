package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/mdx/internal/errors"
	"github.com/vango-dev/mdx/pkg/markdown"
	"github.com/vango-dev/mdx/pkg/render"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "mdx.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 4000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultDir is the default documents directory.
	DefaultDir = "."
)

// Config represents the complete mdx.json configuration.
type Config struct {
	// Markdown contains markdown compiler settings.
	Markdown MarkdownConfig `json:"markdown"`

	// Render contains tree renderer settings.
	Render RenderConfig `json:"render"`

	// Server contains preview server settings.
	Server ServerConfig `json:"server"`

	// Components maps component tag names to text/template sources.
	Components map[string]string `json:"components,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MarkdownConfig contains markdown compiler settings.
type MarkdownConfig struct {
	// GFM enables GitHub Flavored Markdown (default: true).
	GFM bool `json:"gfm"`

	// Typographer replaces quotes and dashes with typographic entities.
	Typographer bool `json:"typographer,omitempty"`

	// HardWraps renders soft line breaks as <br>.
	HardWraps bool `json:"hardWraps,omitempty"`

	// XHTML renders void elements XHTML style.
	XHTML bool `json:"xhtml,omitempty"`

	// AutoHeadingID generates id attributes for headings.
	AutoHeadingID bool `json:"autoHeadingID,omitempty"`
}

// RenderConfig contains tree renderer settings.
type RenderConfig struct {
	// Concurrency is the number of sibling subtrees rendered at once.
	// 0 and 1 render sequentially.
	Concurrency int `json:"concurrency,omitempty"`

	// HandlerTimeout bounds each component call (e.g., "2s").
	// Empty disables the bound.
	HandlerTimeout string `json:"handlerTimeout,omitempty"`

	// Strict makes components without a template an error instead of
	// rendering them as nothing.
	Strict bool `json:"strict,omitempty"`
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Dir is the directory of documents to serve, relative to the
	// config file.
	Dir string `json:"dir,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Markdown: MarkdownConfig{GFM: true},
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
			Dir:  DefaultDir,
		},
	}
}

// Default is an alias for New.
func Default() *Config {
	return New()
}

// Load reads configuration from the specified directory.
// It looks for mdx.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E131").
				WithDetail("No " + ConfigFileName + " found at " + path).
				Wrap(err)
		}
		return nil, errors.New("E131").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		e := errors.New("E131").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON").
			Wrap(err)
		if line, col := jsonErrorPosition(data, err); line > 0 {
			e.WithLocation(path, line, col)
		}
		return nil, e
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// jsonErrorPosition returns the 1-based line and column in data of a
// JSON syntax or type error, or zeros if err carries no offset.
func jsonErrorPosition(data []byte, err error) (line, col int) {
	var (
		serr   *json.SyntaxError
		terr   *json.UnmarshalTypeError
		offset int64
	)
	switch {
	case stderrors.As(err, &serr):
		offset = serr.Offset
	case stderrors.As(err, &terr):
		offset = terr.Offset
	default:
		return 0, 0
	}
	// Offset counts the bytes read up to and including the bad one.
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset > 0 {
		offset--
	}
	before := data[:offset]
	line = 1 + bytes.Count(before, []byte("\n"))
	col = int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}

// LoadOptional is like Load but returns the defaults when dir has no
// config file.
func LoadOptional(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E131").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E131").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file, or "." for a
// config that was not loaded from disk.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Dir == "" {
		c.Server.Dir = DefaultDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E130").
			WithDetail("server.port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if c.Render.Concurrency < 0 {
		return errors.New("E130").
			WithDetail("render.concurrency must not be negative")
	}
	if c.Render.HandlerTimeout != "" {
		d, err := time.ParseDuration(c.Render.HandlerTimeout)
		if err != nil {
			return errors.New("E130").
				WithDetail("render.handlerTimeout is not a duration: " + c.Render.HandlerTimeout).
				WithSuggestion(`Use Go duration syntax such as "500ms" or "2s"`).
				Wrap(err)
		}
		if d < 0 {
			return errors.New("E130").
				WithDetail("render.handlerTimeout must not be negative")
		}
	}
	for name := range c.Components {
		if render.Classify(name) != render.TagCustom {
			return errors.New("E130").
				WithDetail("components." + name + ": component names must start with an uppercase ASCII letter")
		}
	}
	return nil
}

// MarkdownOptions returns the compiler options for the markdown section.
func (c *Config) MarkdownOptions() markdown.Options {
	return markdown.Options{
		GFM:           c.Markdown.GFM,
		Typographer:   c.Markdown.Typographer,
		HardWraps:     c.Markdown.HardWraps,
		XHTML:         c.Markdown.XHTML,
		AutoHeadingID: c.Markdown.AutoHeadingID,
	}
}

// HandlerTimeout returns render.handlerTimeout as a duration, or 0 if
// unset or invalid.
func (c *Config) HandlerTimeout() time.Duration {
	d, err := time.ParseDuration(c.Render.HandlerTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Address returns the listen address for the preview server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// DocumentsPath returns the documents directory, resolved against the
// config file location.
func (c *Config) DocumentsPath() string {
	if filepath.IsAbs(c.Server.Dir) {
		return c.Server.Dir
	}
	return filepath.Join(c.Dir(), c.Server.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the first directory that
// contains mdx.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E131").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the working directory or
// its nearest parent with an mdx.json. Without one, defaults are used.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}
	return Load(root)
}
