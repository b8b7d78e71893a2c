// Package config loads the settings shared by the segment commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/go-segment/eos"
)

// Cfg holds command settings. Precedence, lowest first: defaults, the YAML
// file, SEGMENT_* environment variables (a .env file is read if present),
// then command-line flags applied by the caller.
type Cfg struct {
	SentModel     string   `yaml:"sent_model"`    // SEGMENT_SENT_MODEL
	TokModel      string   `yaml:"tok_model"`     // SEGMENT_TOK_MODEL
	EOSChars      string   `yaml:"eos_chars"`     // SEGMENT_EOS_CHARS
	Abbreviations []string `yaml:"abbreviations"` // SEGMENT_ABBREVIATIONS, comma separated
	AlphaNumeric  bool     `yaml:"alpha_numeric"` // SEGMENT_ALPHA_NUMERIC
	Workers       int      `yaml:"workers"`       // SEGMENT_WORKERS
	ONNXDim       int      `yaml:"onnx_dim"`      // SEGMENT_ONNX_DIM
	Outcomes      []string `yaml:"outcomes"`      // SEGMENT_OUTCOMES, comma separated
}

// Default returns the built-in settings.
func Default() Cfg {
	return Cfg{
		EOSChars:      eos.DefaultChars,
		Abbreviations: append([]string(nil), eos.DefaultAbbreviations...),
		Outcomes:      []string{"T", "F"},
		Workers:       runtime.NumCPU(),
	}
}

// Load returns the defaults overlaid with path (skipped when empty) and the
// environment.
func Load(path string) (*Cfg, error) {
	// Best-effort: load .env from current directory
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Cfg) applyEnv() error {
	if v := env("SEGMENT_SENT_MODEL"); v != "" {
		c.SentModel = v
	}
	if v := env("SEGMENT_TOK_MODEL"); v != "" {
		c.TokModel = v
	}
	if v := env("SEGMENT_EOS_CHARS"); v != "" {
		c.EOSChars = v
	}
	if v := env("SEGMENT_ABBREVIATIONS"); v != "" {
		c.Abbreviations = splitList(v)
	}
	if v := env("SEGMENT_OUTCOMES"); v != "" {
		c.Outcomes = splitList(v)
	}
	if v := env("SEGMENT_ALPHA_NUMERIC"); v != "" {
		c.AlphaNumeric = v == "1" || strings.EqualFold(v, "true")
	}
	for name, dst := range map[string]*int{
		"SEGMENT_WORKERS":  &c.Workers,
		"SEGMENT_ONNX_DIM": &c.ONNXDim,
	} {
		v := env(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}
	return nil
}

// Validate reports settings no command can run with.
func (c *Cfg) Validate() error {
	var errs []error
	if c.EOSChars == "" {
		errs = append(errs, errors.New("eos_chars must not be empty"))
	}
	if len(c.Outcomes) < 2 {
		errs = append(errs, fmt.Errorf("need at least two outcomes, got %d", len(c.Outcomes)))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.ONNXDim < 0 {
		errs = append(errs, fmt.Errorf("onnx_dim must not be negative, got %d", c.ONNXDim))
	}
	return errors.Join(errs...)
}

// Scanner returns the end-of-sentence scanner for EOSChars.
func (c *Cfg) Scanner() *eos.Scanner {
	return eos.NewScanner([]rune(c.EOSChars)...)
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
