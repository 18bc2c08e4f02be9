// Package diff renders line diffs of pack rewrites so a dry run can show
// what the policy updater would change.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Unchanged context line
	LineAdded                   // Added line
	LineRemoved                 // Removed line
)

func (t LineType) prefix() string {
	switch t {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk.
type Line struct {
	Content string
	Type    LineType
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// FileDiff is the set of hunks between two versions of one file.
type FileDiff struct {
	Path  string
	Hunks []Hunk
}

// Changed reports whether the two versions differ.
func (d *FileDiff) Changed() bool {
	return d != nil && len(d.Hunks) > 0
}

// Engine computes line diffs.
type Engine struct {
	dmp     *diffmatchpatch.DiffMatchPatch
	context int
}

// NewEngine creates an engine that keeps context lines around each change.
func NewEngine(context int) *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // Packs are small; always compute the exact diff
	if context < 0 {
		context = 0
	}
	return &Engine{dmp: dmp, context: context}
}

// DefaultEngine uses three lines of context.
var DefaultEngine = NewEngine(3)

// Compute diffs before against after, line by line.
func (e *Engine) Compute(path, before, after string) *FileDiff {
	fd := &FileDiff{Path: path}
	if before == after {
		return fd
	}

	// Reduce to one rune per line so the diff never splits a line.
	a, b, lines := e.dmp.DiffLinesToChars(before, after)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCleanupSemantic(diffs)
	diffs = e.dmp.DiffCharsToLines(diffs, lines)

	fd.Hunks = e.group(toOps(diffs))
	return fd
}

// Compute is Engine.Compute on the default engine.
func Compute(path, before, after string) *FileDiff {
	return DefaultEngine.Compute(path, before, after)
}

type op struct {
	typ     LineType
	oldLine int // 0-based, -1 for additions
	newLine int // 0-based, -1 for removals
	content string
}

func toOps(diffs []diffmatchpatch.Diff) []op {
	var ops []op
	oldLine, newLine := 0, 0
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if d.Text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				ops = append(ops, op{LineContext, oldLine, newLine, line})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				ops = append(ops, op{LineRemoved, oldLine, -1, line})
				oldLine++
			case diffmatchpatch.DiffInsert:
				ops = append(ops, op{LineAdded, -1, newLine, line})
				newLine++
			}
		}
	}
	return ops
}

// group splits ops into hunks. Changes closer than twice the context share
// a hunk.
func (e *Engine) group(ops []op) []Hunk {
	var hunks []Hunk
	i := 0
	for i < len(ops) {
		for i < len(ops) && ops[i].typ == LineContext {
			i++
		}
		if i == len(ops) {
			break
		}

		start := i - e.context
		if start < 0 {
			start = 0
		}
		end := i
		for j := i; j < len(ops); j++ {
			if ops[j].typ != LineContext {
				end = j
				continue
			}
			if j-end > 2*e.context {
				break
			}
		}
		stop := end + e.context + 1
		if stop > len(ops) {
			stop = len(ops)
		}

		hunks = append(hunks, makeHunk(ops, start, stop))
		i = stop
	}
	return hunks
}

func makeHunk(ops []op, start, stop int) Hunk {
	h := Hunk{Lines: make([]Line, 0, stop-start)}
	oldSeen, newSeen := false, false
	for _, o := range ops[start:stop] {
		h.Lines = append(h.Lines, Line{Content: o.content, Type: o.typ})
		if o.oldLine >= 0 {
			h.OldCount++
			if !oldSeen {
				h.OldStart, oldSeen = o.oldLine+1, true
			}
		}
		if o.newLine >= 0 {
			h.NewCount++
			if !newSeen {
				h.NewStart, newSeen = o.newLine+1, true
			}
		}
	}
	if !oldSeen {
		h.OldStart = precedingLine(ops, start, true)
	}
	if !newSeen {
		h.NewStart = precedingLine(ops, start, false)
	}
	return h
}

// precedingLine returns the 1-based line just before start on one side, which
// is where unified diffs anchor an empty range.
func precedingLine(ops []op, start int, old bool) int {
	for j := start - 1; j >= 0; j-- {
		n := ops[j].newLine
		if old {
			n = ops[j].oldLine
		}
		if n >= 0 {
			return n + 1
		}
	}
	return 0
}

// Unified renders the diff in unified format with a/ and b/ headers.
func (d *FileDiff) Unified() string {
	if !d.Changed() {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", d.Path, d.Path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			sb.WriteString(l.Type.prefix())
			sb.WriteString(l.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
