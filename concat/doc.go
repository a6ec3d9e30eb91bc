// Package concat joins text fragments, such as the scripts or stylesheets of
// a bundle, into one text and produces a source map that translates positions
// in the joined text back to the fragments.
//
// Fragments are appended to a Concatenator and processed only by Join:
//
//	c := concat.New()
//	c.Append(a, "src/a.js")
//	c.Append(b, "src/b.js")
//	out, err := c.Join(concat.Options{
//		Separator: "\n",
//		SourceMap: &concat.SourceMapOptions{
//			External:   true,
//			OutputFile: "bundle.js",
//		},
//	})
//
// A fragment without a source map of its own is mapped line by line to its
// source. A fragment that carries a source map in a comment, inline or in a
// separate file, can have that map merged instead (ReadSourceMaps), so that
// the resulting map points to the sources the fragment was generated from.
//
// Every fragment ends with a line break in the output, whether it had one or
// not, which keeps the line numbers of the map in sync with the text.
package concat
