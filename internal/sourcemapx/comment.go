package sourcemapx

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const dataURLPrefix = "data:application/json;charset=utf-8;base64,"

var (
	// Matches a line with an inline map: a data URL with JSON, either base64
	// or percent-encoded, in a line or a block comment. Leading white space,
	// including preceding empty lines, belongs to the match.
	inlineCommentRegexp = regexp.MustCompile(`(?m)^\s*?/[/*][@#]\s+?sourceMappingURL=data:(?:(?:application|text)/json(?:;charset=[^;,]*)?)?(;base64)?,(.*?)[ \t]*(?:\*/)?[ \t]*$`)

	// Matches a reference to a map file in a line or a block comment.
	fileCommentRegexp = regexp.MustCompile(`(?m)(?://[@#][ \t]+sourceMappingURL=([^\s'"` + "`" + `]+?)[ \t]*$)|(?:/\*[@#][ \t]+sourceMappingURL=([^*]+?)[ \t]*\*/[ \t]*$)`)
)

// InlineComment is a source map embedded in a text as a data URL.
type InlineComment struct {
	// Start is the byte offset where the comment begins.
	Start   int
	Payload string
	Base64  bool
}

// FindInlineComment returns the first inline source map comment in text.
func FindInlineComment(text string) (InlineComment, bool) {
	loc := inlineCommentRegexp.FindStringSubmatchIndex(text)
	if loc == nil {
		return InlineComment{}, false
	}
	return InlineComment{
		Start:   loc[0],
		Payload: text[loc[4]:loc[5]],
		Base64:  loc[2] >= 0,
	}, true
}

// Map decodes the source map carried by the comment.
func (c InlineComment) Map() (*Map, error) {
	var data []byte
	if c.Base64 {
		var err error
		payload := strings.TrimSpace(c.Payload)
		if data, err = base64.StdEncoding.DecodeString(payload); err != nil {
			if data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); err != nil {
				return nil, fmt.Errorf("failed to decode base64 source map: %w", err)
			}
		}
	} else {
		s, err := url.PathUnescape(c.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode source map data URL: %w", err)
		}
		data = []byte(s)
	}
	return Parse(data)
}

// FileComment is a reference to an external source map file.
type FileComment struct {
	// Start is the byte offset where the comment begins.
	Start   int
	MapFile string
}

// FindFileComment returns the first comment in text referring to a map file.
func FindFileComment(text string) (FileComment, bool) {
	loc := fileCommentRegexp.FindStringSubmatchIndex(text)
	if loc == nil {
		return FileComment{}, false
	}
	c := FileComment{Start: loc[0]}
	if loc[2] >= 0 {
		c.MapFile = text[loc[2]:loc[3]]
	} else {
		c.MapFile = text[loc[4]:loc[5]]
	}
	return c, true
}

// StripComments removes all inline and map file comments from text,
// together with the line break that ends each of them.
func StripComments(text string) string {
	return strip(strip(text, inlineCommentRegexp), fileCommentRegexp)
}

func strip(text string, re *regexp.Regexp) string {
	locs := re.FindAllStringIndex(text, -1)
	if locs == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(text[last:loc[0]])
		last = loc[1]
		if strings.HasPrefix(text[last:], "\n") {
			last++
		}
	}
	b.WriteString(text[last:])
	return b.String()
}

// EncodeInlineComment returns a comment embedding m as a base64 data URL.
func EncodeInlineComment(m *Map, multiline bool) (string, error) {
	data, err := m.Marshal()
	if err != nil {
		return "", err
	}
	return comment(dataURLPrefix+base64.StdEncoding.EncodeToString(data), multiline), nil
}

// EncodeFileComment returns a comment referring to mapFile.
func EncodeFileComment(mapFile string, multiline bool) string {
	return comment(mapFile, multiline)
}

func comment(target string, multiline bool) string {
	if multiline {
		return "/*# sourceMappingURL=" + target + " */"
	}
	return "//# sourceMappingURL=" + target
}
