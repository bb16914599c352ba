package lang

import (
	"path/filepath"
	"sort"
	"strings"

	"ccs/internal/extract"
	"ccs/internal/logging"
)

// Tooling bundles everything needed to analyze one language.
type Tooling struct {
	Adapter   *Adapter
	Extractor extract.Extractor
}

// Definition declares a registrable language: its name, the file
// extensions it claims (without leading dot), and a factory for its
// adapter and extractor.
type Definition struct {
	Name       string
	Extensions []string
	New        func(logger *logging.Logger) Tooling
}

// Registry maps languages and file extensions to their tooling.
// The table is built at startup and read-only afterwards; lookups from
// concurrent workers need no locking.
type Registry struct {
	languages  map[string]Definition
	extensions map[string]string
	logger     *logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logging.Logger) *Registry {
	return &Registry{
		languages:  make(map[string]Definition),
		extensions: make(map[string]string),
		logger:     logger,
	}
}

// Register adds a language. Registration is idempotent per language name;
// the last registration wins, including its extension claims.
func (r *Registry) Register(def Definition) {
	r.languages[def.Name] = def
	for _, ext := range def.Extensions {
		r.extensions[ext] = def.Name
	}
}

// ResolveByExtension returns the language claiming the path's extension.
// The second return is false when no language matches; callers treat that
// as a skip condition, not an error.
func (r *Registry) ResolveByExtension(path string) (string, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	name, ok := r.extensions[ext]
	return name, ok
}

// Create instantiates the adapter and extractor for a language.
// Returns false for unregistered languages.
func (r *Registry) Create(language string) (Tooling, bool) {
	def, ok := r.languages[language]
	if !ok {
		return Tooling{}, false
	}
	return def.New(r.logger), true
}

// Supports reports whether a language name is registered.
func (r *Registry) Supports(language string) bool {
	_, ok := r.languages[language]
	return ok
}

// Languages returns all registered definitions sorted by name.
func (r *Registry) Languages() []Definition {
	defs := make([]Definition, 0, len(r.languages))
	for _, def := range r.languages {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// Builtin returns a registry with all built-in languages registered.
func Builtin(logger *logging.Logger) *Registry {
	r := NewRegistry(logger)
	r.Register(CppDefinition())
	r.Register(CDefinition())
	r.Register(PythonDefinition())
	return r
}
