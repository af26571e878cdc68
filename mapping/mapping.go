package mapping

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-sourcemap/sourcemap"
	"github.com/viant/entrysplit/syntax"
)

// Segment maps a generated position to an original one. Lines are 1-based,
// columns 0-based.
type Segment struct {
	GenLine   int
	GenColumn int
	Source    int
	Line      int
	Column    int
}

// Map is a version 3 source map.
type Map struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
	segments       []Segment
}

// Segments returns the decoded segments in generated order.
func (m *Map) Segments() []Segment {
	return m.segments
}

// JSON encodes the map.
func (m *Map) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// DataURL returns the map as an inline sourceMappingURL comment.
func (m *Map) DataURL() (string, error) {
	data, err := m.JSON()
	if err != nil {
		return "", err
	}
	return "//# sourceMappingURL=data:application/json;charset=utf-8;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Builder accumulates segments for a single-source map.
type Builder struct {
	file     string
	source   string
	content  string
	segments []Segment
}

// NewBuilder creates a builder for code generated from source.
func NewBuilder(file, source string, content []byte) *Builder {
	return &Builder{file: file, source: source, content: string(content)}
}

// Add maps the generated position to an original position.
func (b *Builder) Add(genLine, genColumn int, original syntax.Position) {
	b.segments = append(b.segments, Segment{GenLine: genLine, GenColumn: genColumn, Line: original.Line, Column: original.Column})
}

// Map encodes the collected segments.
func (b *Builder) Map() *Map {
	result := &Map{Version: 3, File: b.file, Sources: []string{b.source}, Names: []string{}}
	if b.content != "" {
		result.SourcesContent = []string{b.content}
	}
	result.segments = normalize(b.segments)
	result.Mappings = encode(result.segments)
	return result
}

func normalize(segments []Segment) []Segment {
	result := append([]Segment(nil), segments...)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].GenLine != result[j].GenLine {
			return result[i].GenLine < result[j].GenLine
		}
		return result[i].GenColumn < result[j].GenColumn
	})
	deduped := result[:0]
	for i, segment := range result {
		if i > 0 && segment.GenLine == result[i-1].GenLine && segment.GenColumn == result[i-1].GenColumn {
			continue
		}
		deduped = append(deduped, segment)
	}
	return deduped
}

// encode writes the mappings field: per line, comma separated segments of
// delta encoded base64 VLQ fields.
func encode(segments []Segment) string {
	var sb strings.Builder
	line := 1
	prevColumn, prevSource, prevLine, prevOrigColumn := 0, 0, 1, 0
	for i, segment := range segments {
		if segment.GenLine > line {
			sb.WriteString(strings.Repeat(";", segment.GenLine-line))
			line = segment.GenLine
			prevColumn = 0
		} else if i > 0 {
			sb.WriteByte(',')
		}
		writeVLQ(&sb, segment.GenColumn-prevColumn)
		writeVLQ(&sb, segment.Source-prevSource)
		writeVLQ(&sb, segment.Line-prevLine)
		writeVLQ(&sb, segment.Column-prevOrigColumn)
		prevColumn, prevSource, prevLine, prevOrigColumn = segment.GenColumn, segment.Source, segment.Line, segment.Column
	}
	return sb.String()
}

const vlqAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func writeVLQ(sb *strings.Builder, value int) {
	v := value << 1
	if value < 0 {
		v = (-value << 1) | 1
	}
	for {
		digit := v & 31
		v >>= 5
		if v > 0 {
			digit |= 32
		}
		sb.WriteByte(vlqAlphabet[digit])
		if v == 0 {
			return
		}
	}
}

// Compose chains generated onto input: every segment of generated, which
// points into the code input describes, is traced back to input's sources.
// Segments input cannot resolve are dropped.
func Compose(generated *Map, input []byte) (*Map, error) {
	consumer, err := sourcemap.Parse("", input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input source map: %w", err)
	}
	result := &Map{Version: 3, File: generated.File, Names: []string{}}
	indexes := map[string]int{}
	var segments []Segment
	for _, segment := range generated.segments {
		source, _, line, column, ok := consumer.Source(segment.Line, segment.Column)
		if !ok {
			continue
		}
		index, known := indexes[source]
		if !known {
			index = len(result.Sources)
			indexes[source] = index
			result.Sources = append(result.Sources, source)
			result.SourcesContent = append(result.SourcesContent, consumer.SourceContent(source))
		}
		segments = append(segments, Segment{GenLine: segment.GenLine, GenColumn: segment.GenColumn, Source: index, Line: line, Column: column})
	}
	if result.Sources == nil {
		result.Sources = []string{}
	}
	if !hasContent(result.SourcesContent) {
		result.SourcesContent = nil
	}
	result.segments = normalize(segments)
	result.Mappings = encode(result.segments)
	return result, nil
}

func hasContent(contents []string) bool {
	for _, content := range contents {
		if content != "" {
			return true
		}
	}
	return false
}

// Lookup resolves a generated position against an encoded map.
func Lookup(encoded []byte, line, column int) (source string, origLine, origColumn int, ok bool) {
	consumer, err := sourcemap.Parse("", encoded)
	if err != nil {
		return "", 0, 0, false
	}
	source, _, origLine, origColumn, ok = consumer.Source(line, column)
	return source, origLine, origColumn, ok
}
