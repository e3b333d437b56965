package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
)

func TestPathMatcher(t *testing.T) {
	t.Parallel()

	matcher, err := config.NewPathMatcher([]string{"dist/**", "*.min.js", "src/**/*.gen.ts", "./fixtures/"})
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "double star crosses directories", path: "dist/a/b.js", want: true},
		{name: "base name pattern at depth", path: "lib/vendor/jquery.min.js", want: true},
		{name: "nested pattern", path: "src/api/types.gen.ts", want: true},
		{name: "sibling of ignored directory", path: "dist.js", want: false},
		{name: "no match", path: "src/index.ts", want: false},
		{name: "leading dot slash", path: "./dist/x.js", want: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, matcher.Match(testCase.path))
		})
	}
}

func TestPathMatcherDirs(t *testing.T) {
	t.Parallel()

	matcher, err := config.NewPathMatcher([]string{"dist/**", "node_modules", "fixtures/"})
	require.NoError(t, err)

	assert.True(t, matcher.MatchDir("dist"))
	assert.True(t, matcher.MatchDir("packages/app/node_modules"))
	assert.True(t, matcher.MatchDir("fixtures"))
	assert.False(t, matcher.MatchDir("src"))
}

func TestPathMatcherEmpty(t *testing.T) {
	t.Parallel()

	matcher, err := config.NewPathMatcher(nil)
	require.NoError(t, err)
	assert.True(t, matcher.Empty())
	assert.False(t, matcher.Match("a.js"))

	var nilMatcher *config.PathMatcher
	assert.False(t, nilMatcher.Match("a.js"))
	assert.Nil(t, nilMatcher.Patterns())
}

func TestPathMatcherInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.NewPathMatcher([]string{"src/[a-"})
	require.Error(t, err)
}
