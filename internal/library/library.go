// Package library describes the downloadable PDF modules and maps their
// manifest paths onto files under the library root.
package library

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var defaultManifest []byte

// URLPrefix is where the HTTP API serves library files.
const URLPrefix = "/library/"

// ErrOutsideRoot is returned for paths that would leave the library root.
var ErrOutsideRoot = errors.New("library: path escapes library root")

// File is one PDF module.
type File struct {
	Title     string `yaml:"title" json:"title"`
	File      string `yaml:"file" json:"file"`
	Thumbnail string `yaml:"thumbnail" json:"thumbnail,omitempty"`
	PageCount int    `yaml:"page_count" json:"pageCount"`
	URL       string `yaml:"-" json:"url"`
}

// Category groups modules under a cover image.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Cover string `yaml:"cover" json:"coverImage,omitempty"`
	Files []File `yaml:"files" json:"pdfFiles"`
}

// Manifest is the whole library listing.
type Manifest struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Library is a manifest bound to a directory on disk.
type Library struct {
	root     string
	manifest Manifest
}

// Open loads the manifest at manifestPath, or the built-in one when the
// path is empty, and binds it to root.
func Open(root, manifestPath string) (*Library, error) {
	data := defaultManifest
	if manifestPath != "" {
		var err error
		if data, err = os.ReadFile(manifestPath); err != nil {
			return nil, fmt.Errorf("library: read manifest: %w", err)
		}
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &Library{root: filepath.Clean(root), manifest: m}, nil
}

// Parse decodes and validates a manifest. Every file path must stay inside
// the library root.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("library: parse manifest: %w", err)
	}
	for ci := range m.Categories {
		c := &m.Categories[ci]
		if c.Name == "" {
			return Manifest{}, fmt.Errorf("library: category %d has no name", ci+1)
		}
		if c.Cover != "" {
			if _, err := clean(c.Cover); err != nil {
				return Manifest{}, fmt.Errorf("library: %s cover: %w", c.Name, err)
			}
		}
		for fi := range c.Files {
			f := &c.Files[fi]
			rel, err := clean(f.File)
			if err != nil {
				return Manifest{}, fmt.Errorf("library: %s/%s: %w", c.Name, f.Title, err)
			}
			if f.Thumbnail != "" {
				if _, err := clean(f.Thumbnail); err != nil {
					return Manifest{}, fmt.Errorf("library: %s/%s thumbnail: %w", c.Name, f.Title, err)
				}
			}
			f.File = rel
			f.URL = URLPrefix + rel
		}
	}
	return m, nil
}

// clean normalises a slash-separated manifest path and rejects absolute
// paths and any path that climbs out of the root.
func clean(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("library: empty path")
	}
	if strings.Contains(p, `\`) || path.IsAbs(p) || filepath.IsAbs(p) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, p)
	}
	c := path.Clean(p)
	if c == "." || c == ".." || strings.HasPrefix(c, "../") {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, p)
	}
	return c, nil
}

// Manifest returns the library listing.
func (l *Library) Manifest() Manifest {
	return l.manifest
}

// Root is the directory files are served from.
func (l *Library) Root() string {
	return l.root
}

// Resolve maps a slash-separated library path onto the filesystem.
func (l *Library) Resolve(rel string) (string, error) {
	c, err := clean(strings.TrimPrefix(rel, "/"))
	if err != nil {
		return "", err
	}
	return filepath.Join(l.root, filepath.FromSlash(c)), nil
}

// Missing lists manifest files that are not present under the root.
func (l *Library) Missing() []string {
	var missing []string
	for _, c := range l.manifest.Categories {
		for _, f := range c.Files {
			p, err := l.Resolve(f.File)
			if err != nil {
				missing = append(missing, f.File)
				continue
			}
			if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, f.File)
			}
		}
	}
	return missing
}
