package parser

import (
	"regexp"

	"github.com/so-keyldzn/semantiq/internal/model"
)

// heuristicRule matches one keyword-led declaration line for a language
// without a registered AST family. The symbol spans from the matching line
// to the next line at the same or shallower indentation, or end of file.
type heuristicRule struct {
	pattern *regexp.Regexp
	kind    model.SymbolKind
}

var heuristicRules = map[string][]heuristicRule{
	"csharp": {
		{regexp.MustCompile(`^\s*(?:public|private|protected|internal)?\s*(?:static\s+)?class\s+(\w+)`), model.SymbolClass},
		{regexp.MustCompile(`^\s*(?:public|private|protected|internal)?\s*interface\s+(\w+)`), model.SymbolInterface},
		{regexp.MustCompile(`^\s*(?:public|private|protected|internal)?\s*enum\s+(\w+)`), model.SymbolEnum},
		{regexp.MustCompile(`^\s*(?:public|private|protected|internal)?\s*(?:static\s+|async\s+)*\w[\w<>\[\],\s]*\s+(\w+)\s*\([^;]*$`), model.SymbolMethod},
	},
	"kotlin": {
		{regexp.MustCompile(`^\s*(?:data\s+|sealed\s+|open\s+)*class\s+(\w+)`), model.SymbolClass},
		{regexp.MustCompile(`^\s*interface\s+(\w+)`), model.SymbolInterface},
		{regexp.MustCompile(`^\s*enum\s+class\s+(\w+)`), model.SymbolEnum},
		{regexp.MustCompile(`^\s*object\s+(\w+)`), model.SymbolModule},
		{regexp.MustCompile(`^\s*fun\s+(?:<[^>]*>\s*)?(\w+)\s*\(`), model.SymbolFunction},
	},
	"scala": {
		{regexp.MustCompile(`^\s*(?:case\s+)?class\s+(\w+)`), model.SymbolClass},
		{regexp.MustCompile(`^\s*trait\s+(\w+)`), model.SymbolTrait},
		{regexp.MustCompile(`^\s*object\s+(\w+)`), model.SymbolModule},
		{regexp.MustCompile(`^\s*def\s+(\w+)`), model.SymbolFunction},
	},
	"bash": {
		{regexp.MustCompile(`^\s*function\s+(\w+)\s*(?:\(\))?\s*\{?`), model.SymbolFunction},
		{regexp.MustCompile(`^\s*(\w+)\s*\(\)\s*\{`), model.SymbolFunction},
	},
	"elixir": {
		{regexp.MustCompile(`^\s*defmodule\s+([\w.]+)`), model.SymbolModule},
		{regexp.MustCompile(`^\s*defp?\s+(\w+)`), model.SymbolFunction},
	},
}

// parseHeuristic scans lines for languages without a registered AST family,
// producing approximate top-level symbols via regex matching rather than a
// parse tree. It never errors: a language with no rule table simply yields
// no symbols, leaving the file covered only by sliding-window chunks.
func parseHeuristic(languageName string, lines []string) []model.Symbol {
	rules, ok := heuristicRules[languageName]
	if !ok {
		return nil
	}

	var symbols []model.Symbol
	for i, line := range lines {
		for _, rule := range rules {
			m := rule.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			start := i + 1
			end := heuristicBlockEnd(lines, i)
			symbols = append(symbols, model.Symbol{
				Name:      m[1],
				Kind:      rule.kind,
				LineStart: start,
				LineEnd:   end,
				Signature: trimLeadingSpace(line),
			})
			break
		}
	}
	return symbols
}

// heuristicBlockEnd walks forward from a declaration line to the next
// sibling declaration at the same or shallower indentation, treating that
// boundary as the end of the preceding block. Falls back to end of file.
func heuristicBlockEnd(lines []string, declIdx int) int {
	declIndent := indentWidth(lines[declIdx])
	for i := declIdx + 1; i < len(lines); i++ {
		if isBlankOrComment(lines[i]) {
			continue
		}
		if indentWidth(lines[i]) <= declIndent {
			return i
		}
	}
	return len(lines)
}

func indentWidth(line string) int {
	n := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}

func isBlankOrComment(line string) bool {
	trimmed := trimLeadingSpace(line)
	return trimmed == "" || trimmed[0] == '#' || (len(trimmed) >= 2 && trimmed[:2] == "//")
}

func trimLeadingSpace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}
