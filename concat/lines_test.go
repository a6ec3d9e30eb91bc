package concat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCountLines(t *testing.T) {
	tests := []struct {
		text       string
		lineCount  int
		terminated bool
	}{
		{text: "", lineCount: 1},
		{text: "1", lineCount: 1},
		{text: "1\n", lineCount: 1, terminated: true},
		{text: "1\n2", lineCount: 2},
		{text: "1\n2\n", lineCount: 2, terminated: true},
		{text: "\n", lineCount: 1, terminated: true},
		{text: "\n\n", lineCount: 2, terminated: true},
		{text: "1\r\n2\r\n", lineCount: 2, terminated: true},
	}
	for _, test := range tests {
		lineCount, terminated := countLines(test.text)
		if lineCount != test.lineCount || terminated != test.terminated {
			t.Errorf("Got: countLines(%q) = %d, %v. Want: %d, %v.", test.text, lineCount, terminated, test.lineCount, test.terminated)
		}
	}
}

func TestTerminate(t *testing.T) {
	for text, want := range map[string]string{
		"":     "\n",
		"1":    "1\n",
		"1\n":  "1\n",
		"1\n2": "1\n2\n",
	} {
		if got := terminate(text); got != want {
			t.Errorf("Got: terminate(%q) = %q. Want: %q.", text, got, want)
		}
	}
}

func TestLineOffset(t *testing.T) {
	tests := []struct {
		separator string
		lines     []int
		want      []position
	}{
		{
			separator: "",
			lines:     []int{1, 2, 3},
			want:      []position{{0, 0}, {1, 0}, {3, 0}},
		}, {
			separator: "\n",
			lines:     []int{1, 2, 3},
			want:      []position{{0, 0}, {2, 0}, {5, 0}},
		}, {
			separator: "\n/* next */\n",
			lines:     []int{2, 1},
			want:      []position{{0, 0}, {4, 0}},
		}, {
			separator: ";",
			lines:     []int{1, 1},
			want:      []position{{0, 0}, {1, 1}},
		}, {
			separator: "\n// ü ",
			lines:     []int{1, 1},
			want:      []position{{0, 0}, {2, 5}},
		},
	}
	for _, test := range tests {
		offset := newLineOffset(test.separator)
		var got []position
		for _, n := range test.lines {
			got = append(got, offset.begin())
			offset.advance(n)
		}
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(position{})); diff != "" {
			t.Errorf("Positions for separator %q differ from expected (-want,+got):\n%s", test.separator, diff)
		}
	}
}
