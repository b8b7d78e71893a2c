package source

import (
	"reflect"
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	got, err := Lines(strings.NewReader("one. two.\n\nthree\r\nlast"))
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	want := []string{"one. two.", "", "three", "last"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %q, want %q", got, want)
	}
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "heading and paragraph",
			src:  "# Title\n\nHello *world*.\nSecond line.\n",
			want: []string{"Title", "Hello world. Second line."},
		},
		{
			name: "code skipped",
			src:  "Before.\n\n```\nnot. a. sentence.\n```\n\n    indented. code.\n\nAfter.\n",
			want: []string{"Before.", "After."},
		},
		{
			name: "list items",
			src:  "- item one. Two.\n- `x` done.\n",
			want: []string{"item one. Two.", "x done."},
		},
		{
			name: "empty",
			src:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Markdown([]byte(tt.src)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Markdown(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}
