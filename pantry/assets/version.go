// Package assets fingerprints embedded static files for cache busting.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"path"
)

// ContentHash is a 10-character hex SHA-256 of the named files' content.
// Unreadable files are skipped.
func ContentHash(fsys fs.FS, paths ...string) string {
	h := sha256.New()
	for _, name := range paths {
		if data, err := fs.ReadFile(fsys, name); err == nil {
			h.Write(data)
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:10]
}

// Versioned maps each file under fsys to "prefix/name?v=hash", where hash
// covers that file alone. Unknown names passed to URL come back unversioned.
type Versioned struct {
	prefix string
	urls   map[string]string
}

// NewVersioned hashes every regular file in fsys.
func NewVersioned(fsys fs.FS, prefix string) (*Versioned, error) {
	v := &Versioned{prefix: prefix, urls: map[string]string{}}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		v.urls[p] = path.Join(prefix, p) + "?v=" + ContentHash(fsys, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// URL returns the versioned URL of name.
func (v *Versioned) URL(name string) string {
	if u, ok := v.urls[name]; ok {
		return u
	}
	return path.Join(v.prefix, name)
}
