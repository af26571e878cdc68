package slicer

import (
	"sort"
	"strings"

	"github.com/viant/entrysplit/mapping"
	"github.com/viant/entrysplit/syntax"
)

// Mark ties a byte offset of a piece to its original position.
type Mark struct {
	Offset int
	Origin syntax.Position
}

// Piece is a fragment of generated code: copied source, a regenerated
// statement or a synthesized one.
type Piece struct {
	Text  string
	Marks []Mark
}

// Edit replaces the source range [Start, End) with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

type emitter struct {
	source     []byte
	lineStarts []int
}

func newEmitter(source []byte) *emitter {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &emitter{source: source, lineStarts: starts}
}

// position converts a byte offset into a line and column.
func (e *emitter) position(offset int) syntax.Position {
	line := sort.Search(len(e.lineStarts), func(i int) bool { return e.lineStarts[i] > offset }) - 1
	return syntax.Position{Line: line + 1, Column: offset - e.lineStarts[line]}
}

// copy returns source[start:end] marked at its start and at every line start.
func (e *emitter) copy(start, end int) *Piece {
	piece := &Piece{Text: string(e.source[start:end])}
	piece.Marks = append(piece.Marks, Mark{Offset: 0, Origin: e.position(start)})
	for i := start; i < end; i++ {
		if e.source[i] == '\n' && i+1 < end {
			piece.Marks = append(piece.Marks, Mark{Offset: i + 1 - start, Origin: e.position(i + 1)})
		}
	}
	return piece
}

func (e *emitter) node(n *syntax.Node) *Piece {
	return e.copy(n.Start, n.End)
}

// replace returns text marked at the original offset it stands for.
func (e *emitter) replace(offset int, text string) *Piece {
	return &Piece{Text: text, Marks: []Mark{{Offset: 0, Origin: e.position(offset)}}}
}

// removal extends a statement range over its trailing line break, and over
// one following blank line when the statement is surrounded by blank lines.
func (e *emitter) removal(n *syntax.Node) Edit {
	src := e.source
	end := n.End
	j := end
	for j < len(src) && (src[j] == ' ' || src[j] == '\t' || src[j] == '\r') {
		j++
	}
	switch {
	case j == len(src):
		end = j
	case src[j] == '\n':
		end = j + 1
		blankBefore := n.Start >= 2 && src[n.Start-1] == '\n' && src[n.Start-2] == '\n'
		if blankBefore && end < len(src) && src[end] == '\n' {
			end++
		}
	}
	return Edit{Start: n.Start, End: end}
}

// apply turns sorted, non-overlapping edits into pieces covering the whole source.
func (e *emitter) apply(edits []Edit) []*Piece {
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].Start < edits[j].Start })
	var pieces []*Piece
	cursor := 0
	for _, edit := range edits {
		if edit.Start < cursor {
			continue
		}
		if edit.Start > cursor {
			pieces = append(pieces, e.copy(cursor, edit.Start))
		}
		if edit.Text != "" {
			pieces = append(pieces, e.replace(edit.Start, edit.Text))
		}
		cursor = edit.End
	}
	if cursor < len(e.source) {
		pieces = append(pieces, e.copy(cursor, len(e.source)))
	}
	return pieces
}

// emit concatenates pieces with sep, recording marks into builder when set.
func emit(pieces []*Piece, sep string, builder *mapping.Builder) string {
	var sb strings.Builder
	line, column := 1, 0
	advance := func(text string) {
		if i := strings.LastIndexByte(text, '\n'); i >= 0 {
			line += strings.Count(text, "\n")
			column = len(text) - i - 1
			return
		}
		column += len(text)
	}
	for i, piece := range pieces {
		if i > 0 {
			sb.WriteString(sep)
			advance(sep)
		}
		last := 0
		for _, mark := range piece.Marks {
			advance(piece.Text[last:mark.Offset])
			last = mark.Offset
			if builder != nil {
				builder.Add(line, column, mark.Origin)
			}
		}
		advance(piece.Text[last:])
		sb.WriteString(piece.Text)
	}
	return sb.String()
}
