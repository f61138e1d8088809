package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_KnownExtensions(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"main.go":          "go",
		"lib.rs":           "rust",
		"index.ts":         "typescript",
		"Component.tsx":    "typescript",
		"app.js":           "javascript",
		"app.jsx":          "javascript",
		"server.mjs":       "javascript",
		"script.py":        "python",
		"stub.pyi":         "python",
		"Main.java":        "java",
		"header.h":         "c",
		"source.c":         "c",
		"impl.cpp":         "cpp",
		"impl.cc":          "cpp",
		"header.hpp":       "cpp",
		"index.php":        "php",
		"view.phtml":       "php",
		"model.rb":         "ruby",
		"Rakefile.rake":    "ruby",
		"Program.CS":       "csharp",
		"Main.kt":          "kotlin",
		"build.kts":        "kotlin",
		"Main.scala":       "scala",
		"build.sc":         "scala",
		"deploy.sh":        "bash",
		"deploy.bash":      "bash",
		"profile.zsh":      "bash",
		"mix.ex":           "elixir",
		"mix.exs":          "elixir",
		"index.html":       "html",
		"index.htm":        "html",
		"package.json":     "json",
		"config.yaml":      "yaml",
		"config.yml":       "yaml",
		"Cargo.toml":       "toml",
	}

	for path, want := range cases {
		l, ok := Detect(path)
		assert.True(t, ok, "expected %s to resolve", path)
		assert.Equal(t, want, l.Name, "path %s", path)
	}
}

func TestDetect_UnknownExtensionIsSkipped(t *testing.T) {
	t.Parallel()

	_, ok := Detect("binary.exe")
	assert.False(t, ok)

	_, ok = Detect("noext")
	assert.False(t, ok)
}

func TestDetect_CaseInsensitive(t *testing.T) {
	t.Parallel()

	l, ok := Detect("README.MD")
	assert.False(t, ok)

	l, ok = Detect("Main.GO")
	assert.True(t, ok)
	assert.Equal(t, "go", l.Name)
}

func TestFamilies_AllRegisteredLanguagesHaveAFamily(t *testing.T) {
	t.Parallel()

	for name, l := range registry {
		assert.NotEmpty(t, l.Family, "language %s missing family", name)
	}
}

func TestGet_UnknownLanguage(t *testing.T) {
	t.Parallel()

	_, ok := Get("cobol")
	assert.False(t, ok)
}
