package exclude

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIneligible_BlockedDirectories(t *testing.T) {
	t.Parallel()

	p := New(nil)
	cases := []string{
		"node_modules/pkg/index.js",
		"target/debug/main.rs",
		"vendor/github.com/foo/bar.go",
		".git/HEAD",
		"src/__pycache__/mod.pyc",
	}
	for _, path := range cases {
		assert.True(t, p.Ineligible(path, 10), path)
	}
}

func TestIneligible_DotPrefixedComponent(t *testing.T) {
	t.Parallel()

	p := New(nil)
	assert.True(t, p.Ineligible(".env", 10))
	assert.True(t, p.Ineligible("src/.hidden/file.go", 10))
}

func TestIneligible_UnknownExtension(t *testing.T) {
	t.Parallel()

	p := New(nil)
	assert.True(t, p.Ineligible("bin/app.exe", 10))
}

func TestIneligible_OversizedFile(t *testing.T) {
	t.Parallel()

	p := New(nil)
	assert.True(t, p.Ineligible("src/big.go", MaxFileSize+1))
	assert.False(t, p.Ineligible("src/small.go", MaxFileSize))
}

func TestIneligible_EligibleFile(t *testing.T) {
	t.Parallel()

	p := New(nil)
	assert.False(t, p.Ineligible("src/main.go", 1024))
}

func TestIneligible_ExtraGlobPattern(t *testing.T) {
	t.Parallel()

	p := New([]string{"generated/**"})
	assert.True(t, p.Ineligible("generated/models.go", 10))
	assert.False(t, p.Ineligible("src/models.go", 10))
}

func TestIneligible_SizeUnknownSkipsSizeRule(t *testing.T) {
	t.Parallel()

	p := New(nil)
	assert.False(t, p.Ineligible("src/main.go", -1))
}
