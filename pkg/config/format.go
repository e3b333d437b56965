package config

// FormatRuleID formats a rule identifier based on the given format.
// Falls back to the name if the group is empty.
func FormatRuleID(format RuleFormat, group, name string) string {
	if group == "" {
		return name
	}

	switch format {
	case RuleFormatQualified:
		return group + "/" + name
	case RuleFormatName:
		return name
	default:
		return name
	}
}
