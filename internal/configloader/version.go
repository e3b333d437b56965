package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrVersionMismatch is returned when the running binary does not satisfy
// the required_version constraint of a config.
var ErrVersionMismatch = errors.New("quill version does not satisfy required_version")

// ParseRequiredVersion parses a required_version constraint such as
// ">= 1.2, < 2".
func ParseRequiredVersion(constraint string) (*semver.Constraints, error) {
	c, err := semver.NewConstraint(strings.TrimSpace(constraint))
	if err != nil {
		return nil, fmt.Errorf("invalid required_version %q: %w", constraint, err)
	}
	return c, nil
}

// CheckRequiredVersion reports whether current satisfies constraint. An
// empty constraint always passes. Development builds whose version is not
// a semantic version skip the check.
func CheckRequiredVersion(constraint, current string) error {
	if strings.TrimSpace(constraint) == "" {
		return nil
	}
	c, err := ParseRequiredVersion(constraint)
	if err != nil {
		return err
	}
	version, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return nil //nolint:nilerr // Unreleased builds are not versioned.
	}
	if ok, reasons := c.Validate(version); !ok {
		msgs := make([]string, 0, len(reasons))
		for _, reason := range reasons {
			msgs = append(msgs, reason.Error())
		}
		return fmt.Errorf("%w: %s (%s)", ErrVersionMismatch, version, strings.Join(msgs, "; "))
	}
	return nil
}
