package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/dalemusser/vendorgrid/internal/notify"
	"github.com/dalemusser/vendorgrid/internal/workspace"
	"github.com/dalemusser/vendorgrid/pantry/assets"
	"github.com/dalemusser/vendorgrid/pantry/i18n"
	"github.com/dalemusser/vendorgrid/templates"
	"go.uber.org/zap"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticRoot embed.FS

var (
	staticFiles fs.FS
	staticURLs  *assets.Versioned
)

func init() {
	sub, err := fs.Sub(staticRoot, "static")
	if err != nil {
		panic(err)
	}
	staticFiles = sub
	if staticURLs, err = assets.NewVersioned(sub, "/static"); err != nil {
		panic(err)
	}

	templates.RegisterFunc("asset", staticURLs.URL)
	templates.Register(templates.Set{Name: "shared", FS: templateFS, Patterns: []string{"templates/shared/*.gohtml"}})
	templates.Register(templates.Set{Name: "pages", FS: templateFS, Patterns: []string{"templates/pages/*.gohtml"}})
}

// Boot compiles the embedded templates and installs the engine the
// handlers render with.
func Boot(logger *zap.Logger) (*templates.Engine, error) {
	e := templates.New()
	if err := e.Boot(logger); err != nil {
		return nil, err
	}
	templates.UseEngine(e, logger)
	return e, nil
}

// staticHandler serves the embedded assets. Fingerprinted URLs are cached
// for a year.
func staticHandler() http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		}
		files.ServeHTTP(w, r)
	})
}

// pageData feeds every template.
type pageData struct {
	Loc     *i18n.Localizer
	Locale  string
	Locales []string

	State   workspace.State
	Actions []string
	Banner  *notify.Banner
	Columns []string
	Rows    [][]string

	// error page only
	Status     int
	MessageKey string
}
