package sourcemapx

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/neelance/sourcemap"
)

func str(s string) *string { return &s }

func TestGenerator(t *testing.T) {
	g := NewGenerator("out.js")
	g.AddMapping(&sourcemap.Mapping{GeneratedLine: 1, GeneratedColumn: 0, OriginalFile: "a.js", OriginalLine: 1, OriginalColumn: 0})
	g.AddMapping(&sourcemap.Mapping{GeneratedLine: 3, GeneratedColumn: 0})
	g.AddMapping(&sourcemap.Mapping{GeneratedLine: 2, GeneratedColumn: 4, OriginalFile: "a.js", OriginalLine: 3, OriginalColumn: 2, OriginalName: "foo"})
	g.AddMapping(&sourcemap.Mapping{GeneratedLine: 2, GeneratedColumn: 0, OriginalFile: "b.js", OriginalLine: 1, OriginalColumn: 0})
	g.SetSourceContent("b.js", "b")

	want := &Map{
		Version:        3,
		Sources:        []string{"a.js", "b.js"},
		Names:          []string{"foo"},
		Mappings:       "AAAA;ACAA,IDEEA;A",
		File:           "out.js",
		SourcesContent: []*string{nil, str("b")},
	}
	if diff := cmp.Diff(want, g.Map()); diff != "" {
		t.Errorf("Generated map differs from expected (-want,+got):\n%s", diff)
	}
	// Encoding must not consume the collected mappings.
	if diff := cmp.Diff(want, g.Map()); diff != "" {
		t.Errorf("Second generated map differs from expected (-want,+got):\n%s", diff)
	}
}

func TestGeneratorEmpty(t *testing.T) {
	got := NewGenerator("").Map()
	want := &Map{Version: 3, Sources: []string{}, Names: []string{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generated map differs from expected (-want,+got):\n%s", diff)
	}
}

func TestMapMarshal(t *testing.T) {
	m := &Map{
		Sources:        []string{"1.txt"},
		Mappings:       "AAAA",
		File:           "out.txt",
		SourcesContent: []*string{str("<b>&</b>")},
	}
	got, err := m.Marshal()
	if err != nil {
		t.Fatalf("Got: m.Marshal() returned error: %s. Want: no error.", err)
	}
	want := `{"version":3,"sources":["1.txt"],"names":[],"mappings":"AAAA","file":"out.txt","sourcesContent":["<b>&</b>"]}`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Marshaled map differs from expected (-want,+got):\n%s", diff)
	}

	buf := &bytes.Buffer{}
	if _, err := m.WriteTo(buf); err != nil {
		t.Fatalf("Got: m.WriteTo() returned error: %s. Want: no error.", err)
	}
	if diff := cmp.Diff(want+"\n", buf.String()); diff != "" {
		t.Errorf("Written map differs from expected (-want,+got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	m, err := Parse([]byte(`{
		"version": 3,
		"sourceRoot": "src/",
		"sources": ["a.js", "b.js"],
		"names": ["foo"],
		"mappings": "AAAA;ACAA,IDEEA;A",
		"sourcesContent": [null, "b"]
	}`))
	if err != nil {
		t.Fatalf("Got: Parse() returned error: %s. Want: no error.", err)
	}

	got, err := m.DecodedMappings()
	if err != nil {
		t.Fatalf("Got: m.DecodedMappings() returned error: %s. Want: no error.", err)
	}
	want := []*sourcemap.Mapping{
		{GeneratedLine: 1, GeneratedColumn: 0, OriginalFile: "src/a.js", OriginalLine: 1, OriginalColumn: 0},
		{GeneratedLine: 2, GeneratedColumn: 0, OriginalFile: "src/b.js", OriginalLine: 1, OriginalColumn: 0},
		{GeneratedLine: 2, GeneratedColumn: 4, OriginalFile: "src/a.js", OriginalLine: 3, OriginalColumn: 2, OriginalName: "foo"},
		{GeneratedLine: 3, GeneratedColumn: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decoded mappings differ from expected (-want,+got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"src/a.js", "src/b.js"}, m.ResolvedSources()); diff != "" {
		t.Errorf("Resolved sources differ from expected (-want,+got):\n%s", diff)
	}
	if content, ok := m.ContentFor("src/b.js"); !ok || content != "b" {
		t.Errorf("Got: m.ContentFor(%q) = %q, %v. Want: %q, true.", "src/b.js", content, ok, "b")
	}
	if content, ok := m.ContentFor("src/a.js"); ok {
		t.Errorf("Got: m.ContentFor(%q) = %q, true. Want: no content.", "src/a.js", content)
	}
	if _, ok := m.ContentFor("b.js"); ok {
		t.Errorf("Got: m.ContentFor(%q) found content. Want: sources are matched after resolving.", "b.js")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not JSON", data: `version: 3`},
		{name: "wrong version", data: `{"version": 2, "sources": [], "mappings": ""}`},
		{name: "wrong field type", data: `{"version": 3, "sources": "a.js"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if m, err := Parse([]byte(test.data)); err == nil {
				t.Errorf("Got: Parse(%q) = %#v. Want: error.", test.data, m)
			}
		})
	}
}

func TestDecodedMappingsOutOfRange(t *testing.T) {
	m := &Map{Version: 3, Sources: []string{"a.js"}, Mappings: "AACA"}
	if mappings, err := m.DecodedMappings(); err == nil {
		t.Errorf("Got: m.DecodedMappings() = %v. Want: error for a source index out of range.", mappings)
	}
}

func TestDecodedMappingsMalformed(t *testing.T) {
	for _, mappings := range []string{
		"AAAA,!",
		"AAAA AACA",
		"AA=A",
		"AA",
		"AAA",
		"AAAA,AA",
		"AAAAAA",
		"AAAg",
		"AAAg;AACA",
	} {
		m := &Map{Version: 3, Sources: []string{"a.js"}, Names: []string{"n"}, Mappings: mappings}
		if got, err := m.DecodedMappings(); err == nil {
			t.Errorf("Got: DecodedMappings() = %d mappings for %q. Want: error.", len(got), mappings)
		}
	}

	for _, mappings := range []string{"", ";", "A", "AAAA,,CAAA", "AAAAA;;g/BAAA", "6/BAAA"} {
		m := &Map{Version: 3, Sources: []string{"a.js"}, Names: []string{"n"}, Mappings: mappings}
		if _, err := m.DecodedMappings(); err != nil {
			t.Errorf("Got: DecodedMappings() returned error for %q: %s. Want: no error.", mappings, err)
		}
	}
}
