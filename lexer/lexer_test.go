package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Line
	}{
		{
			name: "flat commands",
			src:  "print \"hi\"\nset x to 5",
			want: []Line{
				{Indent: 0, Text: `print "hi"`, Number: 1},
				{Indent: 0, Text: "set x to 5", Number: 2},
			},
		},
		{
			name: "blank and comment lines dropped but still counted",
			src:  "print \"a\"\n\n# comment\n// another\nprint \"b\"",
			want: []Line{
				{Indent: 0, Text: `print "a"`, Number: 1},
				{Indent: 0, Text: `print "b"`, Number: 5},
			},
		},
		{
			name: "space indentation measured",
			src:  "repeat 2 times:\n    print \"x\"\n        print \"y\"",
			want: []Line{
				{Indent: 0, Text: "repeat 2 times:", Number: 1},
				{Indent: 4, Text: `print "x"`, Number: 2},
				{Indent: 8, Text: `print "y"`, Number: 3},
			},
		},
		{
			name: "tabs expand to four columns",
			src:  "if x is 1:\n\tprint \"a\"\n\t\tprint \"b\"",
			want: []Line{
				{Indent: 0, Text: "if x is 1:", Number: 1},
				{Indent: 4, Text: `print "a"`, Number: 2},
				{Indent: 8, Text: `print "b"`, Number: 3},
			},
		},
		{
			name: "mixed tab and space",
			src:  "while x is less than 3:\n\t  print \"a\"",
			want: []Line{
				{Indent: 0, Text: "while x is less than 3:", Number: 1},
				{Indent: 6, Text: `print "a"`, Number: 2},
			},
		},
		{
			name: "whitespace only line is blank",
			src:  "print \"a\"\n   \t \nprint \"b\"",
			want: []Line{
				{Indent: 0, Text: `print "a"`, Number: 1},
				{Indent: 0, Text: `print "b"`, Number: 3},
			},
		},
		{
			name: "empty source",
			src:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Scan(tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanCustomTabWidth(t *testing.T) {
	lx := NewWithOptions(Options{TabWidth: 8})
	got := lx.Scan("if x is 1:\n\tprint \"a\"")

	want := []Line{
		{Indent: 0, Text: "if x is 1:", Number: 1},
		{Indent: 8, Text: `print "a"`, Number: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}
}

func TestIsComment(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"# note", true},
		{"// note", true},
		{"print \"has # inside\"", false},
		{"/ not a comment", false},
	}
	for _, tt := range tests {
		if got := IsComment(tt.line); got != tt.want {
			t.Errorf("IsComment(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
