package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// YAMLIndent is the indentation used when writing YAML.
const YAMLIndent = 2

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unknown keys are
// rejected so typos surface instead of being silently ignored.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		RequiredVersion: c.RequiredVersion,
		Include:         slices.Clone(c.Include),
		Ignore:          slices.Clone(c.Ignore),
		Format:          c.Format.clone(),
		JavaScript:      c.JavaScript.clone(),
		JSON:            c.JSON.clone(),
		SeverityDefault: c.SeverityDefault,
		Rules:           cloneRules(c.Rules),
		Backups:         BackupsConfig{Enabled: clonePtr(c.Backups.Enabled)},
	}
	for _, override := range c.Overrides {
		clone.Overrides = append(clone.Overrides, Override{
			Include:    slices.Clone(override.Include),
			Format:     override.Format.clone(),
			JavaScript: override.JavaScript.clone(),
			JSON:       override.JSON.clone(),
			Rules:      cloneRules(override.Rules),
		})
	}

	c.copyCLIFields(clone)

	return clone
}

// copyCLIFields copies CLI-only fields (yaml:"-") to the target config.
func (c *Config) copyCLIFields(target *Config) {
	target.Fix = c.Fix
	target.Write = c.Write
	target.OutputFormat = c.OutputFormat
	target.RuleFormat = c.RuleFormat
	target.Jobs = c.Jobs
	target.NoBackups = c.NoBackups
	target.EnableRules = slices.Clone(c.EnableRules)
	target.DisableRules = slices.Clone(c.DisableRules)
	target.FixRules = slices.Clone(c.FixRules)
	target.OnlyRules = slices.Clone(c.OnlyRules)
}

func cloneRules(rules map[string]RuleConfig) map[string]RuleConfig {
	if rules == nil {
		return nil
	}
	clone := make(map[string]RuleConfig, len(rules))
	for k, v := range rules {
		clone[k] = v.clone()
	}
	return clone
}

// clone creates a deep copy of a RuleConfig.
func (rc RuleConfig) clone() RuleConfig {
	clone := RuleConfig{
		Enabled:  clonePtr(rc.Enabled),
		Severity: clonePtr(rc.Severity),
		Fix:      clonePtr(rc.Fix),
	}

	if rc.Options != nil {
		clone.Options = make(map[string]any, len(rc.Options))
		maps.Copy(clone.Options, rc.Options) // Note: nested maps/slices in Options are not deep copied
	}

	return clone
}

func (f FormatConfig) clone() FormatConfig {
	return FormatConfig{
		Enabled:     clonePtr(f.Enabled),
		IndentStyle: clonePtr(f.IndentStyle),
		IndentWidth: clonePtr(f.IndentWidth),
		LineWidth:   clonePtr(f.LineWidth),
		LineEnding:  clonePtr(f.LineEnding),
	}
}

func (j JavaScriptConfig) clone() JavaScriptConfig {
	return JavaScriptConfig{
		QuoteStyle:       clonePtr(j.QuoteStyle),
		JSXQuoteStyle:    clonePtr(j.JSXQuoteStyle),
		Semicolons:       clonePtr(j.Semicolons),
		TrailingComma:    clonePtr(j.TrailingComma),
		ArrowParentheses: clonePtr(j.ArrowParentheses),
		BracketSpacing:   clonePtr(j.BracketSpacing),
	}
}

func (j JSONConfig) clone() JSONConfig {
	return JSONConfig{
		TrailingCommas: clonePtr(j.TrailingCommas),
		BracketSpacing: clonePtr(j.BracketSpacing),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
