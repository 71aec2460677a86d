package poppler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePageCount(t *testing.T) {
	report := `Title:          Attention Is All You Need
Creator:        LaTeX with hyperref
Producer:       pdfTeX-1.40.25
Tags:           no
Pages:          15
Encrypted:      no
Page size:      612 x 792 pts (letter)
File size:      2215244 bytes
PDF version:    1.5
`

	tests := []struct {
		name      string
		report    string
		want      int
		wantKnown bool
	}{
		{name: "full report", report: report, want: 15, wantKnown: true},
		{name: "single space", report: "Pages: 3\n", want: 3, wantKnown: true},
		{name: "no pages line", report: "Title: x\nEncrypted: no\n"},
		{name: "empty report", report: ""},
		{name: "non-numeric count", report: "Pages: many\n"},
		{name: "missing value", report: "Pages:\n"},
		{name: "negative count", report: "Pages: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := parsePageCount(tt.report)
			if got != tt.want || known != tt.wantKnown {
				t.Errorf("parsePageCount = (%d, %v), want (%d, %v)",
					got, known, tt.want, tt.wantKnown)
			}
		})
	}
}

func TestPageNumber(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"page-07.png", 7},
		{"page-112.png", 112},
		{"page3.png", 3},
		{filepath.Join("tmp", "darkiv-x", "page-10.png"), 10},
	}
	for _, tt := range tests {
		if got := pageNumber(tt.path); got != tt.want {
			t.Errorf("pageNumber(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}

// Past nine pages an unpadded lexicographic sort would put page-10
// before page-2; collectPages must order numerically.
func TestCollectPagesNumericOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"page-10.png", "page-2.png", "page-1.png", "page-12.png", "page-3.png",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := collectPages(dir)
	if err != nil {
		t.Fatalf("collectPages: %v", err)
	}

	var bases []string
	for _, p := range got {
		bases = append(bases, filepath.Base(p))
	}
	want := []string{"page-1.png", "page-2.png", "page-3.png", "page-10.png", "page-12.png"}
	if diff := cmp.Diff(want, bases); diff != "" {
		t.Errorf("page order mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectPagesDashlessFallback(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"page10.png", "page2.png", "page1.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := collectPages(dir)
	if err != nil {
		t.Fatalf("collectPages: %v", err)
	}

	var bases []string
	for _, p := range got {
		bases = append(bases, filepath.Base(p))
	}
	want := []string{"page1.png", "page2.png", "page10.png"}
	if diff := cmp.Diff(want, bases); diff != "" {
		t.Errorf("page order mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectPagesEmptyDir(t *testing.T) {
	got, err := collectPages(t.TempDir())
	if err != nil {
		t.Fatalf("collectPages: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("collectPages on empty dir = %v, want none", got)
	}
}
