package config

// Merge returns f with every field set in override replacing its value.
func (f FormatConfig) Merge(override FormatConfig) FormatConfig {
	result := f
	setIf(&result.Enabled, override.Enabled)
	setIf(&result.IndentStyle, override.IndentStyle)
	setIf(&result.IndentWidth, override.IndentWidth)
	setIf(&result.LineWidth, override.LineWidth)
	setIf(&result.LineEnding, override.LineEnding)
	return result
}

// Merge returns j with every field set in override replacing its value.
func (j JavaScriptConfig) Merge(override JavaScriptConfig) JavaScriptConfig {
	result := j
	setIf(&result.QuoteStyle, override.QuoteStyle)
	setIf(&result.JSXQuoteStyle, override.JSXQuoteStyle)
	setIf(&result.Semicolons, override.Semicolons)
	setIf(&result.TrailingComma, override.TrailingComma)
	setIf(&result.ArrowParentheses, override.ArrowParentheses)
	setIf(&result.BracketSpacing, override.BracketSpacing)
	return result
}

// Merge returns j with every field set in override replacing its value.
func (j JSONConfig) Merge(override JSONConfig) JSONConfig {
	result := j
	setIf(&result.TrailingCommas, override.TrailingCommas)
	setIf(&result.BracketSpacing, override.BracketSpacing)
	return result
}

// Merge returns rc with the fields set in override taking precedence.
// Options are merged key by key.
func (rc RuleConfig) Merge(override RuleConfig) RuleConfig {
	result := rc
	setIf(&result.Enabled, override.Enabled)
	setIf(&result.Severity, override.Severity)
	setIf(&result.Fix, override.Fix)

	if override.Options != nil {
		options := make(map[string]any, len(rc.Options)+len(override.Options))
		for key, val := range rc.Options {
			options[key] = val
		}
		for key, val := range override.Options {
			options[key] = val
		}
		result.Options = options
	}

	return result
}

// MergeRules performs a deep merge of rule configurations. Neither input
// is modified.
func MergeRules(base, override map[string]RuleConfig) map[string]RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]RuleConfig, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = existing.Merge(val)
		} else {
			result[key] = val
		}
	}

	return result
}

func setIf[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}
