// Package sourcemapx contains utilities for reading and writing source maps
// and the comments that attach them to generated text, intended to work with
// github.com/neelance/sourcemap.
//
// sourcemap.Map implements the variable-length quantity encoding of the
// mappings string, but it does not know about sourcesContent, orders JSON
// fields differently from JavaScript tooling and decodes mappings lazily with
// panics on malformed input. Map wraps it into a form that can be exchanged
// with other tools:
//
//   - Map is the JSON model, decoded with Parse and encoded with Marshal.
//   - Generator collects mappings and source contents and produces a Map.
//
// Maps travel inside generated text as comments in one of two flavors, each
// written either as a line comment or as a block comment:
//
//	//# sourceMappingURL=data:application/json;charset=utf-8;base64,<payload>
//	/*# sourceMappingURL=bundle.js.map */
//
// FindInlineComment and FindFileComment locate them, StripComments removes
// them, EncodeInlineComment and EncodeFileComment produce them.
package sourcemapx
