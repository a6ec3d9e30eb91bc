package concat

import (
	"strings"

	"github.com/prantlf/concat-source-text/internal/sourcemapx"
)

// joinTexts joins fragments without building a source map, optionally
// removing the source map comments they carry.
func joinTexts(fragments []Fragment, separator string, stripComments bool) string {
	chunks := make([]string, len(fragments))
	for i, f := range fragments {
		text := f.Contents
		if stripComments {
			text = sourcemapx.StripComments(text)
		}
		// Every chunk ends with a line break to keep line numbering correct.
		chunks[i] = terminate(text)
	}
	return strings.Join(chunks, separator)
}

// joinWithMap joins fragments and builds the source map of the result.
func joinWithMap(fragments []Fragment, separator string, o *SourceMapOptions) (string, *SourceMap, error) {
	g := sourcemapx.NewGenerator(o.OutputFile)
	offset := newLineOffset(separator)
	chunks := make([]string, len(fragments))
	for i, f := range fragments {
		at := offset.begin()
		text := f.Contents
		var input *sourcemapx.Map
		if o.ReadSourceMaps {
			var err error
			if text, input, err = parseSource(text, f.Source, o); err != nil {
				return "", nil, err
			}
		}

		var lineCount int
		var terminated bool
		if input != nil {
			var err error
			if lineCount, terminated, err = mergeMap(g, text, f.Source, input, at, o.SourcesContent); err != nil {
				return "", nil, err
			}
		} else {
			lineCount, terminated = addFragment(g, text, f.Source, at, o.SourcesContent)
		}
		offset.advance(lineCount)

		if !terminated {
			text += lineBreak
		}
		chunks[i] = text
	}
	return strings.Join(chunks, separator), g.Map(), nil
}

// attach puts the map where the options ask for it.
func attach(text string, m *SourceMap, mode attachment, o *SourceMapOptions) (*Result, error) {
	switch mode {
	case attachExternal:
		comment := sourcemapx.EncodeFileComment(o.mapFile(), o.MultilineComment)
		return &Result{Text: text + comment, Map: m}, nil
	case attachInline:
		comment, err := sourcemapx.EncodeInlineComment(m, o.MultilineComment)
		if err != nil {
			return nil, err
		}
		return &Result{Text: text + comment}, nil
	default:
		return &Result{Text: text, Map: m}, nil
	}
}
