package library

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefaultManifest(t *testing.T) {
	lib, err := Open(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	m := lib.Manifest()
	if len(m.Categories) != 5 {
		t.Fatalf("categories = %d, want 5", len(m.Categories))
	}
	f := m.Categories[0].Files[0]
	if f.Title != "Modyul 1" || f.PageCount != 88 || f.URL != "/library/pdfs/commskills-filipino-1.pdf" {
		t.Errorf("first file = %+v", f)
	}
}

func TestParseRejectsEscapes(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"parent", `categories: [{name: A, files: [{title: x, file: "../secret.pdf"}]}]`},
		{"nested parent", `categories: [{name: A, files: [{title: x, file: "pdfs/../../secret.pdf"}]}]`},
		{"absolute", `categories: [{name: A, files: [{title: x, file: "/etc/passwd"}]}]`},
		{"backslash", `categories: [{name: A, files: [{title: x, file: "..\\secret.pdf"}]}]`},
		{"empty file", `categories: [{name: A, files: [{title: x, file: ""}]}]`},
		{"bad thumbnail", `categories: [{name: A, files: [{title: x, file: a.pdf, thumbnail: "../t.jpg"}]}]`},
		{"bad cover", `categories: [{name: A, cover: "/c.jpg"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("manifest accepted")
			}
		})
	}
}

func TestParseCleansPaths(t *testing.T) {
	m, err := Parse([]byte(`categories: [{name: A, files: [{title: x, file: "pdfs/./a/../b.pdf"}]}]`))
	if err != nil {
		t.Fatal(err)
	}
	if f := m.Categories[0].Files[0]; f.File != "pdfs/b.pdf" || f.URL != "/library/pdfs/b.pdf" {
		t.Errorf("file = %+v", f)
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	lib, _ := Open(root, "")

	got, err := lib.Resolve("/pdfs/a.pdf")
	if err != nil || got != filepath.Join(root, "pdfs", "a.pdf") {
		t.Errorf("Resolve = %q, %v", got, err)
	}
	for _, bad := range []string{"../x", "/../x", "a/../../x", ""} {
		if _, err := lib.Resolve(bad); err == nil {
			t.Errorf("Resolve(%q) accepted", bad)
		}
	}
	if _, err := lib.Resolve("../x"); !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("err = %v, want ErrOutsideRoot", err)
	}
}

func TestOpenCustomManifestAndMissing(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(t.TempDir(), "m.yaml")
	os.WriteFile(manifest, []byte(`categories:
  - name: Math
    files:
      - {title: One, file: one.pdf, page_count: 3}
      - {title: Two, file: sub/two.pdf, page_count: 4}
`), 0o644)
	os.WriteFile(filepath.Join(root, "one.pdf"), []byte("%PDF"), 0o644)

	lib, err := Open(root, manifest)
	if err != nil {
		t.Fatal(err)
	}
	if got := lib.Missing(); !slices.Equal(got, []string{"sub/two.pdf"}) {
		t.Errorf("Missing = %v", got)
	}

	if _, err := Open(root, filepath.Join(root, "nope.yaml")); err == nil {
		t.Error("missing manifest accepted")
	}
}
