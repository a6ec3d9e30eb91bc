package concat

import (
	log "github.com/sirupsen/logrus"

	"github.com/prantlf/concat-source-text/internal/sourcemapx"
)

// SourceMap is a version 3 source map.
type SourceMap = sourcemapx.Map

// Fragment is a piece of text appended to a Concatenator.
type Fragment struct {
	Contents string
	// Source identifies the fragment in the source map, usually a path.
	Source string
}

// Result is the joined text and, unless it was embedded in the text or not
// requested, its source map.
type Result struct {
	Text string
	Map  *SourceMap
}

// Concatenator collects text fragments and joins them into one text with a
// source map pointing back to the fragments.
//
// The zero value is ready to use. Fragments must not be appended while Join
// runs.
type Concatenator struct {
	fragments []Fragment
}

// New returns an empty Concatenator.
func New() *Concatenator {
	return &Concatenator{}
}

// Append adds a fragment to the end of the sequence.
func (c *Concatenator) Append(contents, source string) {
	c.fragments = append(c.fragments, Fragment{Contents: contents, Source: source})
}

// Fragments returns a copy of the fragments appended so far.
func (c *Concatenator) Fragments() []Fragment {
	return append([]Fragment(nil), c.fragments...)
}

// Len returns the number of appended fragments.
func (c *Concatenator) Len() int { return len(c.fragments) }

// Join concatenates the fragments in the order they were appended. Every
// fragment is terminated by a line break and followed by the separator,
// except for the last one.
//
// Join does not modify the Concatenator and can be called repeatedly with
// different options. Failures to read or decode source maps attached to the
// fragments are returned as *MapError.
func (c *Concatenator) Join(opts Options) (*Result, error) {
	o := opts.SourceMap
	if o == nil {
		return &Result{Text: joinTexts(c.fragments, opts.Separator, false)}, nil
	}

	mode := o.attachment()
	logger := log.WithField("fragments", len(c.fragments))
	if mode == attachNone {
		logger.Debug("Joining texts without a source map.")
		return &Result{Text: joinTexts(c.fragments, opts.Separator, o.ReadSourceMaps)}, nil
	}

	text, m, err := joinWithMap(c.fragments, opts.Separator, o)
	if err != nil {
		return nil, err
	}
	logger.WithField("attachment", mode).Debugf("Joined texts with a source map of %d sources.", len(m.Sources))
	return attach(text, m, mode, o)
}
