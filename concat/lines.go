package concat

import (
	"strings"
	"unicode/utf16"
)

const lineBreak = "\n"

// countLines returns the number of lines of text and whether its last line
// is already terminated. A trailing line break ends the last line, it does
// not start another one; empty text is a single empty line.
func countLines(text string) (lineCount int, terminated bool) {
	lineCount = strings.Count(text, lineBreak)
	if strings.HasSuffix(text, lineBreak) {
		return lineCount, true
	}
	return lineCount + 1, false
}

// terminate makes sure text ends with exactly one line break of its own.
func terminate(text string) string {
	if strings.HasSuffix(text, lineBreak) {
		return text
	}
	return text + lineBreak
}

// position is the place in the output text where a fragment begins.
// Line is the number of lines preceding the fragment, column the UTF-16
// length of the separator text on the fragment's first line.
type position struct {
	line   int
	column int
}

// lineOffset follows the generated line count while fragments are joined.
// Every fragment contributes its lines, every separator its line breaks.
type lineOffset struct {
	total     int
	started   bool
	sepLines  int
	sepColumn int
}

func newLineOffset(separator string) *lineOffset {
	tail := separator[strings.LastIndex(separator, lineBreak)+1:]
	return &lineOffset{
		sepLines:  strings.Count(separator, lineBreak),
		sepColumn: len(utf16.Encode([]rune(tail))),
	}
}

// begin returns the position of the next fragment. The separator precedes
// every fragment but the first.
func (o *lineOffset) begin() position {
	if !o.started {
		o.started = true
		return position{line: o.total}
	}
	o.total += o.sepLines
	return position{line: o.total, column: o.sepColumn}
}

// advance moves past a fragment of lineCount lines.
func (o *lineOffset) advance(lineCount int) {
	o.total += lineCount
}
