package web

import (
	"embed"
	"fmt"
	"io/fs"
	"mime"
	"path"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gabriel-vasile/mimetype"
)

//go:embed static
var staticFS embed.FS

// TemplatesFS holds the page, error, and footer templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// Asset is an embedded static file.
type Asset struct {
	// Name is the file name as stored, e.g. "style.css".
	Name string
	// PublicName carries a content fingerprint, e.g. "style-1f2e3d4c5b6a7980.css",
	// so it can be cached indefinitely.
	PublicName  string
	ContentType string
	Content     []byte
}

// Assets indexes embedded static files by both plain and fingerprinted name.
type Assets struct {
	byName map[string]*Asset
}

// LoadAssets reads every file under fsys and fingerprints it.
func LoadAssets(fsys fs.FS) (*Assets, error) {
	a := &Assets{byName: make(map[string]*Asset)}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", p, err)
		}
		name := path.Base(p)
		asset := &Asset{
			Name:        name,
			PublicName:  fingerprint(name, content),
			ContentType: contentType(name, content),
			Content:     content,
		}
		a.byName[asset.Name] = asset
		a.byName[asset.PublicName] = asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// EmbeddedAssets returns the assets compiled into the binary.
func EmbeddedAssets() (*Assets, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("open embedded static dir: %w", err)
	}
	return LoadAssets(sub)
}

// Get looks an asset up by plain or fingerprinted name.
func (a *Assets) Get(name string) (*Asset, bool) {
	if a == nil {
		return nil, false
	}
	asset, ok := a.byName[name]
	return asset, ok
}

// URL returns the cache-safe path for name. Unknown names fall back to the
// plain path so a missing asset shows up as a 404 rather than a template error.
func (a *Assets) URL(name string) string {
	if asset, ok := a.Get(name); ok {
		return "/static/" + asset.PublicName
	}
	return "/static/" + name
}

// Names lists the plain asset names, sorted.
func (a *Assets) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, 0, len(a.byName)/2)
	for key, asset := range a.byName {
		if key == asset.Name {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}

func fingerprint(name string, content []byte) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s-%016x%s", stem, xxhash.Sum64(content), ext)
}

func contentType(name string, content []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return mimetype.Detect(content).String()
}
