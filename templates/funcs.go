// templates/funcs.go
package templates

import (
	"html/template"
	"net/url"
	"strings"
	"sync"
)

// Funcs returns helpers available to all templates. There is deliberately
// no helper that marks a string as trusted HTML.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"urlquery": url.QueryEscape,
		"lower":    strings.ToLower,
		"upper":    strings.ToUpper,
		"join":     strings.Join,
		"selected": func(a, b string) bool { return a == b },
	}
}

var (
	customFuncsMu sync.RWMutex
	customFuncs   = template.FuncMap{}
)

// RegisterFunc adds a template function. Call before Boot.
func RegisterFunc(name string, fn any) {
	customFuncsMu.Lock()
	defer customFuncsMu.Unlock()
	customFuncs[name] = fn
}
