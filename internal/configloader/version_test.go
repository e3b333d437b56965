package configloader

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRequiredVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		constraint string
		current    string
		wantErr    error
		wantText   string
	}{
		{name: "no constraint", constraint: "", current: "0.1.0"},
		{name: "blank constraint", constraint: "  ", current: "0.1.0"},
		{name: "satisfied", constraint: ">= 0.1.0", current: "0.2.3"},
		{name: "v prefix", constraint: "^1.2", current: "v1.4.0"},
		{name: "range", constraint: ">= 1.0, < 2", current: "1.9.9"},
		{name: "too old", constraint: ">= 1.0.0", current: "0.9.0", wantErr: ErrVersionMismatch, wantText: "0.9.0"},
		{name: "too new", constraint: "~1.2.0", current: "1.3.0", wantErr: ErrVersionMismatch},
		{name: "development build", constraint: ">= 1.0.0", current: "dev"},
		{name: "invalid constraint", constraint: ">>= one", current: "1.0.0", wantText: "invalid required_version"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := CheckRequiredVersion(testCase.constraint, testCase.current)
			if testCase.wantErr == nil && testCase.wantText == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			}
			if testCase.wantText != "" {
				assert.Contains(t, err.Error(), testCase.wantText)
			}
		})
	}
}

func TestParseRequiredVersion(t *testing.T) {
	t.Parallel()

	constraint, err := ParseRequiredVersion(" >= 0.3 ")
	require.NoError(t, err)
	ok, _ := constraint.Validate(semver.MustParse("0.3.1"))
	assert.True(t, ok)

	_, err = ParseRequiredVersion("latest")
	assert.Error(t, err)
}
