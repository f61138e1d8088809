// Package exclude implements the Exclusions predicate (§4.8): the
// eligibility check the Auto-Indexer's sweep/watch walk applies. The
// Retrieval Engine's text sub-search does not call it; it only sees files
// that already reached the chunk table.
package exclude

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/so-keyldzn/semantiq/internal/lang"
)

// MaxFileSize is the 1 MiB cap named in §4.8; larger files are ineligible.
const MaxFileSize = 1 << 20

// blockedDirs is the fixed directory-name blocklist from §4.8.
var blockedDirs = map[string]struct{}{
	"node_modules":   {},
	"target":         {},
	"dist":           {},
	"build":          {},
	"vendor":         {},
	".next":          {},
	"__pycache__":    {},
	"venv":           {},
	".venv":          {},
	"coverage":       {},
	".nyc_output":    {},
	".git":           {},
	".hg":            {},
	".svn":           {},
	"out":            {},
	".output":        {},
	".nuxt":          {},
	".cache":         {},
	".parcel-cache":  {},
	".turbo":         {},
}

// Predicate is the Exclusions check. Extra holds additional glob patterns
// layered on top of the fixed blocklist (project-specific ignores from
// config); it may be nil.
type Predicate struct {
	extra []glob.Glob
}

// New compiles extraIgnorePatterns (gobwas/glob syntax, '/' as the
// separator) into a Predicate. A malformed pattern is skipped rather than
// failing construction — an unusable extra pattern should not disable the
// fixed blocklist.
func New(extraIgnorePatterns []string) *Predicate {
	p := &Predicate{}
	for _, pattern := range extraIgnorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			continue
		}
		p.extra = append(p.extra, g)
	}
	return p
}

// Ineligible reports whether path (relative to the project root, using '/'
// separators) should be skipped. size is the file's byte length; pass -1
// when unknown (directories, or when the size rule doesn't apply yet). With
// size -1 neither the size rule nor the language-extension rule is
// applied, so a directory is not rejected for lacking a source extension.
func (p *Predicate) Ineligible(path string, size int64) bool {
	normalized := filepath.ToSlash(path)

	for _, component := range strings.Split(normalized, "/") {
		if component == "" {
			continue
		}
		if _, blocked := blockedDirs[component]; blocked {
			return true
		}
		if strings.HasPrefix(component, ".") {
			return true
		}
	}

	if size >= 0 {
		if _, ok := lang.Detect(normalized); !ok {
			return true
		}
	}

	if size >= 0 && size > MaxFileSize {
		return true
	}

	for _, g := range p.extra {
		if g.Match(normalized) {
			return true
		}
	}

	return false
}
