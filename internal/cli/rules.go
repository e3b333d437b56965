package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	group      string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Fixable     bool     `json:"fixable"`
	Aliases     []string `json:"aliases,omitempty"`
}

func newRulesCommand(_ *app) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their groups, descriptions,
default severity, and whether they support auto-fixing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatName),
		"rule identifier format in output: name, qualified")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.group, "group", "", "only list rules of this group")

	return cmd
}

func runRules(out io.Writer, flags *rulesFlags) error {
	ruleFormat := config.RuleFormat(flags.ruleFormat)
	switch ruleFormat {
	case config.RuleFormatName, config.RuleFormatQualified:
	default:
		return usageErrorf("invalid --rule-format %q: must be name or qualified", flags.ruleFormat)
	}

	registry := lint.DefaultRegistry
	rules := registry.Rules()
	if flags.group != "" {
		if !lo.Contains(registry.Groups(), flags.group) {
			return usageErrorf("unknown rule group %q: must be one of %s",
				flags.group, strings.Join(registry.Groups(), ", "))
		}
		rules = registry.ByGroup(flags.group)
	}

	switch flags.format {
	case formatJSON:
		return outputRulesJSON(out, registry, rules, ruleFormat)
	case "text":
	default:
		return usageErrorf("invalid --format %q: must be text or json", flags.format)
	}

	logger := logging.NewWithWriter(out, "info")
	if len(rules) == 0 {
		logger.Info("no rules registered")
		return nil
	}

	for _, rule := range rules {
		fixable := "-"
		if rule.CanFix() {
			fixable = "yes"
		}
		logger.Info(config.FormatRuleID(ruleFormat, rule.Group(), rule.Name()),
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldFixable, fixable,
			logging.FieldDescription, rule.Description(),
		)
	}

	return nil
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(out io.Writer, registry *lint.Registry, rules []lint.Rule, format config.RuleFormat) error {
	infos := lo.Map(rules, func(rule lint.Rule, _ int) ruleInfo {
		return ruleInfo{
			ID:          config.FormatRuleID(format, rule.Group(), rule.Name()),
			Name:        rule.Name(),
			Group:       rule.Group(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Fixable:     rule.CanFix(),
			Aliases:     registry.Aliases(rule.Name()),
		}
	})

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
