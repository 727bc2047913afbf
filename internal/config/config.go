package config

import (
	"bytes"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/petelliott/pi2/internal/engine/buffer"
	"github.com/petelliott/pi2/internal/engine/rope"
)

// Config holds every tunable setting.
type Config struct {
	Rope    RopeConfig    `toml:"rope"`
	Buffer  BufferConfig  `toml:"buffer"`
	Logging LoggingConfig `toml:"logging"`
}

// RopeConfig controls rope construction.
type RopeConfig struct {
	// ChunkSize is the target leaf size in bytes for built ropes.
	ChunkSize int `toml:"chunk_size"`

	// RebalanceDepth is the tree depth past which the buffer rebalances.
	// Zero disables automatic rebalancing.
	RebalanceDepth int `toml:"rebalance_depth"`
}

// BufferConfig controls buffer behavior.
type BufferConfig struct {
	// LineEnding is "lf", "crlf" or "auto". With "auto" the style is
	// detected from the initial content.
	LineEnding string `toml:"line_ending"`
}

// LoggingConfig controls the logger handed to buffers.
type LoggingConfig struct {
	// Level is the logging verbosity level ("debug", "info", "warn", "error").
	Level string `toml:"level"`

	// Format is the log format ("text", "json").
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Rope: RopeConfig{
			ChunkSize:      rope.DefaultChunkSize,
			RebalanceDepth: buffer.DefaultRebalanceDepth,
		},
		Buffer: BufferConfig{
			LineEnding: "lf",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load decodes TOML from r on top of the defaults and validates the result.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	return Parse("<reader>", data)
}

// Parse decodes TOML data on top of the defaults and validates the result.
// source is used in error messages.
func Parse(source string, data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, newParseError(source, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "config %s", source)
	}
	return cfg, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Source: source, Message: err.Error(), Err: err}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		pe.Line, pe.Column = decodeErr.Position()
	}
	return pe
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if c.Rope.ChunkSize < rope.MinChunkSize {
		return &ValidationError{
			Path:    "rope.chunk_size",
			Value:   c.Rope.ChunkSize,
			Message: "must be at least " + strconv.Itoa(rope.MinChunkSize),
		}
	}
	if c.Rope.RebalanceDepth < 0 {
		return &ValidationError{
			Path:    "rope.rebalance_depth",
			Value:   c.Rope.RebalanceDepth,
			Message: "must not be negative",
		}
	}
	switch strings.ToLower(c.Buffer.LineEnding) {
	case "lf", "crlf", "auto":
	default:
		return &ValidationError{
			Path:    "buffer.line_ending",
			Value:   c.Buffer.LineEnding,
			Message: `must be "lf", "crlf" or "auto"`,
		}
	}
	if _, ok := parseLevel(c.Logging.Level); !ok {
		return &ValidationError{
			Path:    "logging.level",
			Value:   c.Logging.Level,
			Message: `must be "debug", "info", "warn" or "error"`,
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return &ValidationError{
			Path:    "logging.format",
			Value:   c.Logging.Format,
			Message: `must be "text" or "json"`,
		}
	}
	return nil
}

// NewLogger builds a logger writing to w at the configured level and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Logging.Level)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Logging.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// BufferOptions translates the configuration into buffer options. Logs go
// to logOut; a nil writer discards them.
func (c *Config) BufferOptions(logOut io.Writer) []buffer.Option {
	opts := []buffer.Option{
		buffer.WithChunkSize(c.Rope.ChunkSize),
		buffer.WithRebalanceDepth(c.Rope.RebalanceDepth),
	}

	switch strings.ToLower(c.Buffer.LineEnding) {
	case "crlf":
		opts = append(opts, buffer.WithCRLF())
	case "lf":
		opts = append(opts, buffer.WithLF())
	}

	if logOut == nil {
		opts = append(opts, buffer.WithLogger(nil))
	} else {
		opts = append(opts, buffer.WithLogger(c.NewLogger(logOut)))
	}
	return opts
}

// NewBuffer creates a buffer holding text with this configuration applied.
// With line_ending = "auto" the style is detected from text.
func (c *Config) NewBuffer(text string, logOut io.Writer) *buffer.Buffer {
	opts := c.BufferOptions(logOut)
	if strings.EqualFold(c.Buffer.LineEnding, "auto") {
		opts = append(opts, buffer.WithDetectedLineEnding(text))
	}
	return buffer.NewBufferFromString(text, opts...)
}

func parseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
