package concat

import (
	"github.com/neelance/sourcemap"
	log "github.com/sirupsen/logrus"

	"github.com/prantlf/concat-source-text/internal/sourcemapx"
)

// addFragment maps the beginning of every line of a fragment without its own
// source map to the beginning of the same line of its source. Nothing finer
// is known about such a fragment.
func addFragment(g *sourcemapx.Generator, text, source string, at position, sourcesContent bool) (lineCount int, terminated bool) {
	lineCount, terminated = countLines(text)
	for i := 1; i <= lineCount; i++ {
		m := &sourcemap.Mapping{
			GeneratedLine:  at.line + i,
			OriginalFile:   source,
			OriginalLine:   i,
			OriginalColumn: 0,
		}
		if i == 1 {
			m.GeneratedColumn = at.column
		}
		g.AddMapping(m)
	}
	if sourcesContent && !g.HasSourceContent(source) {
		g.SetSourceContent(source, text)
	}
	return lineCount, terminated
}

// mergeMap shifts the generated positions of every mapping of a fragment's
// own source map to where the fragment begins in the output. Original
// positions point further upstream and stay untouched.
func mergeMap(g *sourcemapx.Generator, text, source string, m *sourcemapx.Map, at position, sourcesContent bool) (lineCount int, terminated bool, err error) {
	mappings, err := m.DecodedMappings()
	if err != nil {
		return 0, false, &MapError{Kind: ErrMalformedInputMap, Source: source, Err: err}
	}
	for _, mapping := range mappings {
		shifted := &sourcemap.Mapping{
			GeneratedLine:   at.line + mapping.GeneratedLine,
			GeneratedColumn: mapping.GeneratedColumn,
		}
		if mapping.GeneratedLine == 1 {
			shifted.GeneratedColumn += at.column
		}
		if mapping.OriginalFile != "" && mapping.OriginalLine != 0 {
			shifted.OriginalFile = mapping.OriginalFile
			shifted.OriginalLine = mapping.OriginalLine
			shifted.OriginalColumn = mapping.OriginalColumn
			shifted.OriginalName = mapping.OriginalName
		}
		g.AddMapping(shifted)
	}
	log.WithField("source", source).Debugf("Merged %d mappings shifted by %d lines.", len(mappings), at.line)

	// The fragment may have been made of several sources; their content
	// travels along.
	if sourcesContent {
		for _, s := range m.ResolvedSources() {
			if contents, ok := m.ContentFor(s); ok && contents != "" && !g.HasSourceContent(s) {
				g.SetSourceContent(s, contents)
			}
		}
	}

	lineCount, terminated = countLines(text)
	return lineCount, terminated, nil
}
