package concat

import "os"

// Options control how Concatenator.Join combines the appended fragments.
type Options struct {
	// Separator is inserted between fragments in the output text. Every
	// fragment ends with a line break before the separator follows.
	Separator string

	// SourceMap requests a source map of the output text. A nil value joins
	// the texts only.
	SourceMap *SourceMapOptions
}

// SourceMapOptions describe how the source map is built and attached to the
// output text. The zero value embeds the map as an inline comment.
type SourceMapOptions struct {
	// Inline embeds the map as a base64 data URL comment. Unset means true.
	Inline *bool
	// External appends a comment referring to MapFile and returns the map
	// in the result, so that the caller can write it. It takes precedence
	// over Inline.
	External bool
	// Separate returns the map in the result without any comment when
	// neither Inline nor External apply. Unset means true; explicitly false
	// together with Inline explicitly false produces no map at all.
	Separate *bool

	// OutputFile is the name of the generated file, stored as the map's
	// file and used for the default MapFile.
	OutputFile string
	// MapFile is referred to by the External comment. Defaults to
	// OutputFile with the ".map" extension appended.
	MapFile string

	// SourcesContent stores the original text of every fragment in the map.
	SourcesContent bool
	// MultilineComment writes the attached comment as a block comment
	// instead of a line comment.
	MultilineComment bool

	// ReadSourceMaps looks for source maps already attached to fragments
	// and merges them into the output map instead of mapping the fragment
	// lines to themselves. The attaching comments are removed.
	ReadSourceMaps bool
	// MapDir is the directory where external map files of fragments are
	// looked for. Defaults to the current directory.
	MapDir string
	// LocateSourceMap returns the directory of an external map file
	// referred to by the fragment with the given source. Returning an
	// empty string falls back to MapDir.
	LocateSourceMap func(mapFile, source string) string
	// ReadFile reads external map files. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// Bool returns a pointer to v, for the optional flags of SourceMapOptions.
func Bool(v bool) *bool { return &v }

// attachment is the way a built map leaves Join.
type attachment int

const (
	attachInline attachment = iota
	attachExternal
	attachSeparate
	// The map is requested, but nothing would carry it.
	attachNone
)

func (a attachment) String() string {
	switch a {
	case attachInline:
		return "inline"
	case attachExternal:
		return "external"
	case attachSeparate:
		return "separate"
	default:
		return "none"
	}
}

// attachment resolves the flag combination. External wins over Inline,
// Inline over Separate; only Inline and Separate both explicitly false
// leave the map out.
func (o *SourceMapOptions) attachment() attachment {
	switch {
	case o.External:
		return attachExternal
	case o.Inline == nil || *o.Inline:
		return attachInline
	case o.Separate != nil && !*o.Separate:
		return attachNone
	default:
		return attachSeparate
	}
}

func (o *SourceMapOptions) mapFile() string {
	if o.MapFile != "" {
		return o.MapFile
	}
	return o.OutputFile + ".map"
}

func (o *SourceMapOptions) readFile(name string) ([]byte, error) {
	if o.ReadFile != nil {
		return o.ReadFile(name)
	}
	return os.ReadFile(name)
}
