package config

import (
	"fmt"

	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/jsformat"
	"github.com/yaklabco/quill/pkg/jsonformat"
)

// Settings are the effective per-file settings after overrides.
type Settings struct {
	FormatEnabled bool
	JavaScript    jsformat.Options
	JSON          jsonformat.Options
	Rules         map[string]RuleConfig
}

type compiledOverride struct {
	matcher  *PathMatcher
	override Override
}

// Resolver computes Settings for individual files. It compiles the
// override globs once and is safe for concurrent use.
type Resolver struct {
	cfg       *Config
	overrides []compiledOverride
	base      Settings
}

// NewResolver validates the formatter sections of cfg and compiles its
// overrides.
func NewResolver(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	resolver := &Resolver{cfg: cfg}
	for i, override := range cfg.Overrides {
		matcher, err := NewPathMatcher(override.Include)
		if err != nil {
			return nil, fmt.Errorf("overrides[%d]: %w", i, err)
		}
		if _, err := settingsFor(cfg.Format.Merge(override.Format), cfg.JavaScript.Merge(override.JavaScript),
			cfg.JSON.Merge(override.JSON), nil); err != nil {
			return nil, fmt.Errorf("overrides[%d]: %w", i, err)
		}
		resolver.overrides = append(resolver.overrides, compiledOverride{matcher: matcher, override: override})
	}
	base, err := settingsFor(cfg.Format, cfg.JavaScript, cfg.JSON, cfg.Rules)
	if err != nil {
		return nil, err
	}
	resolver.base = base
	return resolver, nil
}

// For returns the settings for the file at rel, a path relative to the
// project root.
func (r *Resolver) For(rel string) (Settings, error) {
	formatCfg, jsCfg, jsonCfg, rules := r.cfg.Format, r.cfg.JavaScript, r.cfg.JSON, r.cfg.Rules
	matched := false
	for _, compiled := range r.overrides {
		if !compiled.matcher.Match(rel) {
			continue
		}
		matched = true
		formatCfg = formatCfg.Merge(compiled.override.Format)
		jsCfg = jsCfg.Merge(compiled.override.JavaScript)
		jsonCfg = jsonCfg.Merge(compiled.override.JSON)
		rules = MergeRules(rules, compiled.override.Rules)
	}
	if !matched {
		return r.base, nil
	}
	return settingsFor(formatCfg, jsCfg, jsonCfg, rules)
}

func settingsFor(formatCfg FormatConfig, jsCfg JavaScriptConfig, jsonCfg JSONConfig, rules map[string]RuleConfig) (Settings, error) {
	printer, err := formatCfg.PrinterOptions()
	if err != nil {
		return Settings{}, err
	}
	jsOpts, err := jsCfg.Options(printer)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		FormatEnabled: formatCfg.FormatEnabled(),
		JavaScript:    jsOpts,
		JSON:          jsonCfg.Options(printer),
		Rules:         rules,
	}, nil
}

// PrinterOptions converts the shared settings, starting from the printer
// defaults.
func (f FormatConfig) PrinterOptions() (format.PrinterOptions, error) {
	opts := format.DefaultPrinterOptions()
	var err error
	if f.IndentStyle != nil {
		if opts.IndentStyle, err = format.ParseIndentStyle(*f.IndentStyle); err != nil {
			return opts, err
		}
	}
	if f.LineEnding != nil {
		if opts.LineEnding, err = format.ParseLineEnding(*f.LineEnding); err != nil {
			return opts, err
		}
	}
	if f.IndentWidth != nil {
		opts.IndentWidth = *f.IndentWidth
	}
	if f.LineWidth != nil {
		opts.LineWidth = *f.LineWidth
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Options converts the JavaScript settings on top of printer.
func (j JavaScriptConfig) Options(printer format.PrinterOptions) (jsformat.Options, error) {
	opts := jsformat.DefaultOptions()
	opts.PrinterOptions = printer
	var err error
	if j.QuoteStyle != nil {
		if opts.QuoteStyle, err = jsformat.ParseQuoteStyle(*j.QuoteStyle); err != nil {
			return opts, err
		}
	}
	if j.JSXQuoteStyle != nil {
		if opts.JSXQuoteStyle, err = jsformat.ParseQuoteStyle(*j.JSXQuoteStyle); err != nil {
			return opts, err
		}
	}
	if j.Semicolons != nil {
		if opts.Semicolons, err = jsformat.ParseSemicolons(*j.Semicolons); err != nil {
			return opts, err
		}
	}
	if j.TrailingComma != nil {
		if opts.TrailingComma, err = jsformat.ParseTrailingComma(*j.TrailingComma); err != nil {
			return opts, err
		}
	}
	if j.ArrowParentheses != nil {
		if opts.ArrowParentheses, err = jsformat.ParseArrowParentheses(*j.ArrowParentheses); err != nil {
			return opts, err
		}
	}
	if j.BracketSpacing != nil {
		opts.BracketSpacing = *j.BracketSpacing
	}
	return opts, nil
}

// Options converts the JSON settings on top of printer.
func (j JSONConfig) Options(printer format.PrinterOptions) jsonformat.Options {
	opts := jsonformat.DefaultOptions()
	opts.PrinterOptions = printer
	if j.TrailingCommas != nil {
		opts.TrailingCommas = *j.TrailingCommas
	}
	if j.BracketSpacing != nil {
		opts.BracketSpacing = *j.BracketSpacing
	}
	return opts
}
