package infer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config tunes how a Typer maps text fields onto value kinds.
type Config struct {
	NullTokens     []string `yaml:"null_tokens"`     // Fields equal to any token (case-insensitive) become Absent. Defaults to "", null, undefined, na, nan.
	TrueTokens     []string `yaml:"true_tokens"`     // Fields equal to any token (case-insensitive) become Bool true. Defaults to true.
	FalseTokens    []string `yaml:"false_tokens"`    // Fields equal to any token (case-insensitive) become Bool false. Defaults to false.
	DisableStructs bool     `yaml:"disable_structs"` // Leave JSON object and array literals as Text.
	DisableBigInt  bool     `yaml:"disable_big_int"` // Leave integer literals with an n suffix as Text.
}

// DefaultConfig returns the stock token sets.
func DefaultConfig() Config {
	return Config{
		NullTokens:  []string{"", "null", "undefined", "na", "nan"},
		TrueTokens:  []string{"true"},
		FalseTokens: []string{"false"},
	}
}

// WithDefaults fills any unset token lists with their defaults.
func (c Config) WithDefaults() Config {
	stock := DefaultConfig()
	if c.NullTokens == nil {
		c.NullTokens = stock.NullTokens
	}
	if c.TrueTokens == nil {
		c.TrueTokens = stock.TrueTokens
	}
	if c.FalseTokens == nil {
		c.FalseTokens = stock.FalseTokens
	}
	return c
}

// LoadConfig reads a YAML Config from path and fills any unset token lists
// with their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return config.WithDefaults(), nil
}
