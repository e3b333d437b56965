package configloader

import "github.com/yaklabco/quill/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Optional settings: set pointers in override replace those in base
//   - Rules: deep merge, with override's values taking precedence
//   - Overrides: appended, so later sources win for the files they match
//   - Slices: override replaces base entirely if override is non-nil
//   - CLI booleans: only a true value in override is applied
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.RequiredVersion != "" {
		result.RequiredVersion = override.RequiredVersion
	}
	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}

	result.Format = base.Format.Merge(override.Format)
	result.JavaScript = base.JavaScript.Merge(override.JavaScript)
	result.JSON = base.JSON.Merge(override.JSON)
	if override.Backups.Enabled != nil {
		result.Backups.Enabled = override.Backups.Enabled
	}

	result.Rules = config.MergeRules(base.Rules, override.Rules)
	if result.Rules == nil {
		result.Rules = make(map[string]config.RuleConfig)
	}

	if len(override.Overrides) > 0 {
		result.Overrides = append(append([]config.Override(nil), base.Overrides...), override.Overrides...)
	}

	if override.Include != nil {
		result.Include = override.Include
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	mergeCLIFields(&result, override)

	return &result
}

// mergeCLIFields applies the flag-only fields of override.
func mergeCLIFields(result, override *config.Config) {
	if override.Fix {
		result.Fix = true
	}
	if override.Write {
		result.Write = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.OutputFormat != "" {
		result.OutputFormat = override.OutputFormat
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}
	if override.FixRules != nil {
		result.FixRules = override.FixRules
	}
	if override.OnlyRules != nil {
		result.OnlyRules = override.OnlyRules
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
