package sourcemapx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/neelance/sourcemap"
)

// Map is a version 3 source map as it is read from and written to JSON.
//
// Unlike sourcemap.Map it carries sourcesContent, and its fields are ordered
// the way JavaScript tooling serializes them, so that the base64 payload of
// an inline comment matches theirs for valid UTF-8 text. Strings with U+2028,
// U+2029 or invalid UTF-8 are escaped differently by encoding/json.
type Map struct {
	Version        int       `json:"version"`
	Sources        []string  `json:"sources"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
	File           string    `json:"file,omitempty"`
	SourceRoot     string    `json:"sourceRoot,omitempty"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
}

// Parse decodes a source map from its JSON representation.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse source map: %w", err)
	}
	if m.Version != 0 && m.Version != 3 {
		return nil, fmt.Errorf("unsupported source map version %d", m.Version)
	}
	return &m, nil
}

// Marshal returns the compact JSON encoding of the map. HTML characters are
// not escaped.
func (m *Map) Marshal() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := m.encode(buf); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteTo writes the JSON encoding of the map followed by a line break.
func (m *Map) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	if err := m.encode(buf); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

func (m *Map) encode(w io.Writer) error {
	out := *m
	if out.Version == 0 {
		out.Version = 3
	}
	if out.Sources == nil {
		out.Sources = []string{}
	}
	if out.Names == nil {
		out.Names = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(&out)
}

// ResolvedSources returns the sources of the map with the source root
// prepended to each of them.
func (m *Map) ResolvedSources() []string {
	sources := make([]string, len(m.Sources))
	for i, source := range m.Sources {
		sources[i] = m.resolve(source)
	}
	return sources
}

func (m *Map) resolve(source string) string {
	if m.SourceRoot == "" || strings.Contains(source, "://") || strings.HasPrefix(source, "/") {
		return source
	}
	return strings.TrimSuffix(m.SourceRoot, "/") + "/" + source
}

// ContentFor returns the original content of the given resolved source, if
// the map carries it.
func (m *Map) ContentFor(source string) (string, bool) {
	for i, s := range m.Sources {
		if m.resolve(s) != source {
			continue
		}
		if i < len(m.SourcesContent) && m.SourcesContent[i] != nil {
			return *m.SourcesContent[i], true
		}
		return "", false
	}
	return "", false
}

// DecodedMappings decodes the mappings string of the map. Sources of the
// returned mappings are resolved against the source root.
//
// Mappings that refer to a source or name index outside of the map's sources
// or names make the whole map invalid, as do characters outside of the
// base64 alphabet and segments of other than 1, 4 or 5 fields.
func (m *Map) DecodedMappings() (mappings []*sourcemap.Mapping, err error) {
	if err := validateMappings(m.Mappings); err != nil {
		return nil, err
	}
	// sourcemap.Map rereads the last byte of the string after hitting its end,
	// which drops a single-field segment closing the string. A trailing group
	// separator adds no mapping and keeps that segment intact.
	decoder := &sourcemap.Map{
		Version:  3,
		Sources:  m.ResolvedSources(),
		Names:    m.Names,
		Mappings: m.Mappings + ";",
	}
	defer func() {
		if r := recover(); r != nil {
			mappings = nil
			err = fmt.Errorf("invalid source map mappings: %v", r)
		}
	}()
	return decoder.DecodedMappings(), nil
}

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// validateMappings checks the structure of a mappings string. sourcemap.Map
// loops forever on a character it cannot decode and skips segments of 2 or 3
// fields silently.
func validateMappings(mappings string) error {
	fields, continued := 0, false
	endSegment := func(at int) error {
		if continued {
			return fmt.Errorf("invalid source map mappings: unterminated value at offset %d", at)
		}
		if fields != 0 && fields != 1 && fields != 4 && fields != 5 {
			return fmt.Errorf("invalid source map mappings: segment of %d fields at offset %d", fields, at)
		}
		fields = 0
		return nil
	}
	for i := 0; i < len(mappings); i++ {
		c := mappings[i]
		if c == ',' || c == ';' {
			if err := endSegment(i); err != nil {
				return err
			}
			continue
		}
		v := strings.IndexByte(base64Alphabet, c)
		if v < 0 {
			return fmt.Errorf("invalid source map mappings: unexpected character %q at offset %d", c, i)
		}
		// The continuation bit carries the value on to the next character.
		continued = v&32 != 0
		if !continued {
			fields++
		}
	}
	return endSegment(len(mappings))
}
