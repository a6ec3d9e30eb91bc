package sourcemapx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const singleMapBase64 = "eyJ2ZXJzaW9uIjozLCJzb3VyY2VzIjpbIjEudHh0Il0sIm5hbWVzIjpbXSwibWFwcGluZ3MiOiJBQUFBIn0="

func TestEncodeInlineComment(t *testing.T) {
	m := &Map{Version: 3, Sources: []string{"1.txt"}, Names: []string{}, Mappings: "AAAA"}

	tests := []struct {
		multiline bool
		want      string
	}{
		{
			multiline: false,
			want:      "//# sourceMappingURL=data:application/json;charset=utf-8;base64," + singleMapBase64,
		}, {
			multiline: true,
			want:      "/*# sourceMappingURL=data:application/json;charset=utf-8;base64," + singleMapBase64 + " */",
		},
	}
	for _, test := range tests {
		got, err := EncodeInlineComment(m, test.multiline)
		if err != nil {
			t.Fatalf("Got: EncodeInlineComment() returned error: %s. Want: no error.", err)
		}
		if got != test.want {
			t.Errorf("Got: EncodeInlineComment(multiline=%v) = %q. Want: %q.", test.multiline, got, test.want)
		}
	}
}

func TestEncodeFileComment(t *testing.T) {
	if got, want := EncodeFileComment("out.txt.map", false), "//# sourceMappingURL=out.txt.map"; got != want {
		t.Errorf("Got: EncodeFileComment() = %q. Want: %q.", got, want)
	}
	if got, want := EncodeFileComment("out.txt.map", true), "/*# sourceMappingURL=out.txt.map */"; got != want {
		t.Errorf("Got: EncodeFileComment(multiline) = %q. Want: %q.", got, want)
	}
}

func TestFindInlineComment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want InlineComment
	}{
		{
			name: "line comment",
			text: "a\n//# sourceMappingURL=data:application/json;charset=utf-8;base64," + singleMapBase64 + "\n",
			want: InlineComment{Start: 2, Payload: singleMapBase64, Base64: true},
		}, {
			name: "block comment",
			text: "a {}\n/*# sourceMappingURL=data:application/json;base64," + singleMapBase64 + " */",
			want: InlineComment{Start: 5, Payload: singleMapBase64, Base64: true},
		}, {
			name: "legacy marker",
			text: "a\n//@ sourceMappingURL=data:application/json;base64," + singleMapBase64,
			want: InlineComment{Start: 2, Payload: singleMapBase64, Base64: true},
		}, {
			name: "preceding empty line",
			text: "a\n\n//# sourceMappingURL=data:application/json;base64," + singleMapBase64,
			want: InlineComment{Start: 2, Payload: singleMapBase64, Base64: true},
		}, {
			name: "percent-encoded",
			text: "a\n//# sourceMappingURL=data:application/json,%7B%22version%22%3A3%7D",
			want: InlineComment{Start: 2, Payload: "%7B%22version%22%3A3%7D"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := FindInlineComment(test.text)
			if !ok {
				t.Fatalf("Got: FindInlineComment(%q) found nothing. Want: a comment.", test.text)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Found comment differs from expected (-want,+got):\n%s", diff)
			}
			if _, err := got.Map(); err != nil {
				t.Errorf("Got: comment.Map() returned error: %s. Want: no error.", err)
			}
		})
	}

	if c, ok := FindInlineComment("a\n//# sourceMappingURL=a.js.map\n"); ok {
		t.Errorf("Got: FindInlineComment() = %#v for a map file reference. Want: nothing found.", c)
	}
}

func TestInlineCommentMap(t *testing.T) {
	m, err := InlineComment{Payload: singleMapBase64, Base64: true}.Map()
	if err != nil {
		t.Fatalf("Got: comment.Map() returned error: %s. Want: no error.", err)
	}
	want := &Map{Version: 3, Sources: []string{"1.txt"}, Names: []string{}, Mappings: "AAAA"}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Decoded map differs from expected (-want,+got):\n%s", diff)
	}

	// Padding is optional.
	if _, err := (InlineComment{Payload: "eyJ2ZXJzaW9uIjozfQ", Base64: true}).Map(); err != nil {
		t.Errorf("Got: comment.Map() returned error for unpadded base64: %s. Want: no error.", err)
	}

	for _, c := range []InlineComment{
		{Payload: "!!!", Base64: true},
		{Payload: "bm90IGpzb24=", Base64: true},
		{Payload: "%zz"},
	} {
		if m, err := c.Map(); err == nil {
			t.Errorf("Got: %#v.Map() = %#v. Want: error.", c, m)
		}
	}
}

func TestFindFileComment(t *testing.T) {
	tests := []struct {
		text string
		want FileComment
	}{
		{text: "a\n//# sourceMappingURL=a.js.map\n", want: FileComment{Start: 2, MapFile: "a.js.map"}},
		{text: "a\n//# sourceMappingURL=a.js.map  ", want: FileComment{Start: 2, MapFile: "a.js.map"}},
		{text: "a {}\n/*# sourceMappingURL=a.css.map */\n", want: FileComment{Start: 5, MapFile: "a.css.map"}},
	}
	for _, test := range tests {
		got, ok := FindFileComment(test.text)
		if !ok {
			t.Errorf("Got: FindFileComment(%q) found nothing. Want: %#v.", test.text, test.want)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("FindFileComment(%q) differs from expected (-want,+got):\n%s", test.text, diff)
		}
	}

	if c, ok := FindFileComment("var url = 'sourceMappingURL=a.js.map'"); ok {
		t.Errorf("Got: FindFileComment() = %#v outside of a comment. Want: nothing found.", c)
	}
}

func TestStripComments(t *testing.T) {
	text := "a {}\n" +
		"/*# sourceMappingURL=data:application/json;base64," + singleMapBase64 + " */\n" +
		"b {}\n" +
		"/*# sourceMappingURL=b.css.map */\n"
	want := "a {}\nb {}\n"
	if got := StripComments(text); got != want {
		t.Errorf("Got: StripComments() = %q. Want: %q.", got, want)
	}
	if got := StripComments("plain\n"); got != "plain\n" {
		t.Errorf("Got: StripComments() = %q. Want: text without comments unchanged.", got)
	}
}
