// templates/engine.go
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Engine compiles every registered Set. Each page file gets its own clone
// of the shared layout so that every page can define its own "content".
type Engine struct {
	mu     sync.RWMutex
	funcs  template.FuncMap
	base   *template.Template            // compiled from "shared"
	byName map[string]*template.Template // template name -> clone that owns it
	logger *zap.Logger
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{
		funcs:  Funcs(),
		byName: map[string]*template.Template{},
	}
}

// Boot compiles all registered sets. It must run before any Render.
func (e *Engine) Boot(logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	e.logger = logger

	customFuncsMu.RLock()
	for k, v := range customFuncs {
		e.funcs[k] = v
	}
	customFuncsMu.RUnlock()

	var shared *Set
	var pages []Set
	for _, s := range All() {
		if s.Name == "shared" {
			s := s
			shared = &s
			continue
		}
		pages = append(pages, s)
	}
	if shared == nil {
		return fmt.Errorf("shared templates not registered")
	}

	base, err := e.parseShared(shared.FS, shared.Patterns)
	if err != nil {
		return fmt.Errorf("parse shared: %w", err)
	}
	e.base = base

	for _, s := range pages {
		if err := e.compileSetPerPage(s); err != nil {
			return fmt.Errorf("compile set %q: %w", s.Name, err)
		}
	}
	return nil
}

// compileSetPerPage parses every file of s into a clone of the layout once
// per page file. In each clone only the target page keeps its "content"
// define; the others are renamed so they cannot shadow it. Names are indexed
// to the clone of the file that defines them.
func (e *Engine) compileSetPerPage(s Set) error {
	files, err := globAll(s.FS, s.Patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		e.logger.Warn("no templates matched", zap.String("set", s.Name))
		return nil
	}
	sort.Strings(files)

	sources := make(map[string]string, len(files))
	for _, p := range files {
		b, err := fs.ReadFile(s.FS, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		sources[p] = string(b)
	}

	for _, page := range files {
		owned := extractDefineNames(sources[page])
		delete(owned, "content")

		clone, err := e.base.Clone()
		if err != nil {
			return fmt.Errorf("clone base: %w", err)
		}
		for _, p := range files {
			text := sources[p]
			if p != page {
				text = reContentDefine.ReplaceAllString(text,
					fmt.Sprintf(`{{ define "%s" }}`, ignoredContentName(p)))
			}
			if _, err := clone.Funcs(e.funcs).Parse(text); err != nil {
				return fmt.Errorf("parse %s (for %s): %w", p, page, err)
			}
		}

		e.mu.Lock()
		for name := range owned {
			e.byName[name] = clone
		}
		e.mu.Unlock()

		e.logger.Debug("template page compiled",
			zap.String("set", s.Name),
			zap.String("page", filepath.Base(page)))
	}
	return nil
}

var (
	reContentDefine = regexp.MustCompile(`{{\s*define\s+"content"\s*}}`)
	reDefineName    = regexp.MustCompile(`{{-?\s*define\s+"([^"]+)"`)
)

func ignoredContentName(path string) string {
	base := filepath.Base(path)
	return "_content_ignored_" + strings.TrimSuffix(base, filepath.Ext(base))
}

func extractDefineNames(src string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, g := range reDefineName.FindAllStringSubmatch(src, -1) {
		out[g[1]] = struct{}{}
	}
	return out
}

func (e *Engine) parseShared(filesystem fs.FS, patterns []string) (*template.Template, error) {
	root := template.New("root").Funcs(e.funcs)
	files, err := globAll(filesystem, patterns)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	for _, path := range files {
		b, err := fs.ReadFile(filesystem, path)
		if err != nil {
			return nil, err
		}
		if _, err = root.Parse(string(b)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return root, nil
}

func globAll(filesystem fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pat := range patterns {
		matches, err := fs.Glob(filesystem, pat)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out, nil
}

// Execute renders the template name (a page entry point or a snippet) into
// w. Output is buffered so a failing template writes nothing.
func (e *Engine) Execute(w io.Writer, name string, data any) error {
	return e.execute(w, name, name, data)
}

// ExecuteContent renders only the "content" block of page.
func (e *Engine) ExecuteContent(w io.Writer, page string, data any) error {
	return e.execute(w, page, "content", data)
}

func (e *Engine) execute(w io.Writer, owner, name string, data any) error {
	e.mu.RLock()
	t, ok := e.byName[owner]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", owner)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Has reports whether name was compiled.
func (e *Engine) Has(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.byName[name]
	return ok
}
