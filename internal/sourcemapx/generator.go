package sourcemapx

import (
	"sort"

	"github.com/neelance/sourcemap"
)

// Generator collects mappings and source contents of a source map that is
// being built. The zero value is not usable, use NewGenerator.
type Generator struct {
	file     string
	mappings []*sourcemap.Mapping
	contents map[string]string
}

// NewGenerator returns a generator for a map of the given generated file,
// which may be empty.
func NewGenerator(file string) *Generator {
	return &Generator{
		file:     file,
		contents: map[string]string{},
	}
}

// AddMapping appends a mapping. Mappings may be added in any order.
func (g *Generator) AddMapping(m *sourcemap.Mapping) {
	g.mappings = append(g.mappings, m)
}

// SetSourceContent stores the original content of a source, replacing the
// content stored before.
func (g *Generator) SetSourceContent(source, contents string) {
	g.contents[source] = contents
}

// HasSourceContent reports whether content of the source has been stored.
func (g *Generator) HasSourceContent(source string) bool {
	_, ok := g.contents[source]
	return ok
}

// Map encodes the collected mappings. Sources are listed in the order of
// their first occurrence in the sorted mappings. If any source content was
// stored, sourcesContent is filled in parallel to sources, with nulls for
// sources that have no content.
//
// Generator can be used further after Map was called.
func (g *Generator) Map() *Map {
	sorted := make([]*sourcemap.Mapping, len(g.mappings))
	copy(sorted, g.mappings)
	// sourcemap.Map sorts with an unstable sort, pre-sorting keeps mappings
	// sharing a generated position in insertion order.
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		return a.GeneratedLine < b.GeneratedLine ||
			(a.GeneratedLine == b.GeneratedLine && a.GeneratedColumn < b.GeneratedColumn)
	})

	encoder := &sourcemap.Map{Version: 3, File: g.file}
	for _, m := range sorted {
		encoder.AddMapping(m)
	}
	encoder.EncodeMappings()

	m := &Map{
		Version:  3,
		Sources:  encoder.Sources,
		Names:    encoder.Names,
		Mappings: encoder.Mappings,
		File:     g.file,
	}
	if m.Sources == nil {
		m.Sources = []string{}
	}
	if m.Names == nil {
		m.Names = []string{}
	}
	if len(g.contents) > 0 {
		m.SourcesContent = make([]*string, len(m.Sources))
		for i, source := range m.Sources {
			if contents, ok := g.contents[source]; ok {
				m.SourcesContent[i] = &contents
			}
		}
	}
	return m
}
