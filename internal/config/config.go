package config

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	toy "go.toylang.dev/pkg"
)

// Config holds the front end settings. Precedence keys are single operator
// characters.
type Config struct {
	Prompt     string         `toml:"prompt" yaml:"prompt"`
	Recovery   string         `toml:"recovery" yaml:"recovery"`
	Precedence map[string]int `toml:"precedence" yaml:"precedence"`
}

func Default() *Config {
	cfg := &Config{
		Prompt:     toy.DefaultPrompt,
		Recovery:   toy.RecoverSkipToken.String(),
		Precedence: make(map[string]int),
	}

	for op, prec := range toy.DefaultPrecedence() {
		cfg.Precedence[string(op)] = prec
	}

	return cfg
}

// Load reads a TOML or YAML file, picked by extension, over the defaults. A
// precedence section in the file replaces the default table entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(os.ExpandEnv(path))
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	cfg := Default()
	cfg.Precedence = nil

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, errors.Errorf("unsupported config format %q", ext)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}

	if cfg.Precedence == nil {
		cfg.Precedence = Default().Precedence
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := toy.ParseRecoveryMode(c.Recovery); err != nil {
		return err
	}

	for op := range c.Precedence {
		if utf8.RuneCountInString(op) != 1 {
			return errors.Errorf("operator %q must be a single character", op)
		}

		r, _ := utf8.DecodeRuneInString(op)
		if !toy.IsSymbol(r) {
			return errors.Errorf("operator %q is never lexed as a symbol", op)
		}

		if r == '(' || r == ')' || r == ',' || r == ';' {
			return errors.Errorf("operator %q is reserved", op)
		}
	}

	return nil
}

// PrecedenceTable converts the configured operators. Entries <= 0 are kept and
// treated as undeclared by the parser.
func (c *Config) PrecedenceTable() toy.PrecedenceTable {
	table := make(toy.PrecedenceTable, len(c.Precedence))
	for op, prec := range c.Precedence {
		r, _ := utf8.DecodeRuneInString(op)
		table[r] = prec
	}

	return table
}

func (c *Config) RecoveryMode() toy.RecoveryMode {
	mode, _ := toy.ParseRecoveryMode(c.Recovery)
	return mode
}
