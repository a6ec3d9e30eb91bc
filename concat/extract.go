package concat

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/prantlf/concat-source-text/internal/sourcemapx"
)

// parseSource finds the source map attached to a fragment. It returns the
// fragment text without the attaching comment and the map, or the text
// unchanged and a nil map. An inline map is preferred to a map file
// reference.
func parseSource(text, source string, o *SourceMapOptions) (string, *sourcemapx.Map, error) {
	logger := log.WithField("source", source)

	if c, ok := sourcemapx.FindInlineComment(text); ok {
		m, err := c.Map()
		if err != nil {
			return "", nil, &MapError{Kind: ErrMalformedInputMap, Source: source, Err: err}
		}
		logger.Debug("Found inline source map.")
		return text[:c.Start], m, nil
	}

	c, ok := sourcemapx.FindFileComment(text)
	if !ok {
		return text, nil, nil
	}
	path := mapFilePath(c.MapFile, source, o)
	logger.WithField("map", path).Debug("Reading external source map.")
	data, err := o.readFile(path)
	if err != nil {
		return "", nil, &MapError{Kind: ErrMapFileUnavailable, Source: source, MapFile: path, Err: err}
	}
	m, err := sourcemapx.Parse(data)
	if err != nil {
		return "", nil, &MapError{Kind: ErrMalformedInputMap, Source: source, MapFile: path, Err: err}
	}
	return text[:c.Start], m, nil
}

// mapFilePath resolves a map file referred to by a fragment. The directory
// comes from LocateSourceMap, MapDir or the current directory, in this order.
func mapFilePath(mapFile, source string, o *SourceMapOptions) string {
	if filepath.IsAbs(mapFile) {
		return mapFile
	}
	var dir string
	if o.LocateSourceMap != nil {
		dir = o.LocateSourceMap(mapFile, source)
	}
	if dir == "" {
		dir = o.MapDir
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, filepath.FromSlash(mapFile))
}
