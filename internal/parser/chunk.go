package parser

import (
	"strings"

	"github.com/so-keyldzn/semantiq/internal/model"
)

const (
	slidingWindowSize    = 50
	slidingWindowOverlap = 25
	minGapRunLines       = 5
)

// chunkLines implements §4.2's chunking strategy: first one chunk per
// symbol whose line span is at least minSymbolChunkLines, then sliding
// windows of slidingWindowSize lines (overlap slidingWindowOverlap) over
// whatever line indices no symbol chunk covered, skipping uncovered runs
// shorter than minGapRunLines. 1-indexed line numbers throughout, matching
// model.Symbol.LineStart/LineEnd.
func chunkLines(lines []string, symbols []model.Symbol) []model.Chunk {
	total := len(lines)
	if total == 0 {
		return nil
	}

	covered := make([]bool, total+1) // 1-indexed; index 0 unused
	var chunks []model.Chunk

	for _, sym := range symbols {
		start, end := sym.LineStart, sym.LineEnd
		if start < 1 || end < start {
			continue
		}
		if end-start+1 < minSymbolChunkLines {
			continue
		}
		chunks = append(chunks, model.Chunk{
			Content:      joinLines(lines, start, end),
			LineStart:    start,
			LineEnd:      end,
			ContextLabel: string(sym.Kind) + " " + sym.Name,
		})
		for i := start; i <= end && i <= total; i++ {
			covered[i] = true
		}
	}

	for _, run := range uncoveredRuns(covered, total) {
		chunks = append(chunks, slidingWindowChunks(lines, run.start, run.end)...)
	}

	return chunks
}

type lineRun struct{ start, end int }

// uncoveredRuns returns the maximal runs of consecutive 1-indexed lines not
// marked covered, dropping runs shorter than minGapRunLines.
func uncoveredRuns(covered []bool, total int) []lineRun {
	var runs []lineRun
	runStart := 0
	for i := 1; i <= total; i++ {
		if !covered[i] {
			if runStart == 0 {
				runStart = i
			}
			continue
		}
		if runStart != 0 {
			if i-runStart >= minGapRunLines {
				runs = append(runs, lineRun{start: runStart, end: i - 1})
			}
			runStart = 0
		}
	}
	if runStart != 0 && total-runStart+1 >= minGapRunLines {
		runs = append(runs, lineRun{start: runStart, end: total})
	}
	return runs
}

// slidingWindowChunks emits 50-line/25-overlap windows over [start, end].
func slidingWindowChunks(lines []string, start, end int) []model.Chunk {
	var chunks []model.Chunk
	step := slidingWindowSize - slidingWindowOverlap
	for winStart := start; winStart <= end; winStart += step {
		winEnd := winStart + slidingWindowSize - 1
		if winEnd > end {
			winEnd = end
		}
		chunks = append(chunks, model.Chunk{
			Content:      joinLines(lines, winStart, winEnd),
			LineStart:    winStart,
			LineEnd:      winEnd,
			ContextLabel: "code block",
		})
		if winEnd == end {
			break
		}
	}
	return chunks
}

// joinLines returns lines[start..end] (1-indexed, inclusive) joined by '\n'.
func joinLines(lines []string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}
