// Package render writes collected documentation pages as HTML.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ksunext/docsite/internal/locale"
	"github.com/ksunext/docsite/internal/model"
)

//go:embed layouts/*.html
var defaultLayouts embed.FS

const (
	docLayout  = "doc.html"
	homeLayout = "home.html"
)

type Options struct {
	// LayoutsDir holds *.html files overriding the built-in layouts by name.
	// A missing directory is not an error.
	LayoutsDir string
	OutputDir  string
	BaseURL    string
}

// Alternate is the same page in another locale.
type Alternate struct {
	Label   string
	Tag     string
	Link    string
	Current bool
}

// PageData is the template context of a single page.
type PageData struct {
	Site       *model.SiteData
	Locale     *model.SiteConfig
	Page       *model.Page
	Lang       string
	Home       string
	Alternates []Alternate
}

type Renderer struct {
	templates *template.Template
	outputDir string
	logger    *slog.Logger
}

func New(opts Options, logger *slog.Logger) (*Renderer, error) {
	base := strings.TrimSuffix(opts.BaseURL, "/")
	funcs := template.FuncMap{
		"withBase": func(link string) string {
			if strings.HasPrefix(link, "/") {
				return base + link
			}
			return link
		},
		"active": func(link, route string) bool {
			return locale.Normalize(link) == locale.Normalize(route)
		},
	}

	templates, err := template.New("").Funcs(funcs).ParseFS(defaultLayouts, "layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in layouts: %w", err)
	}

	if opts.LayoutsDir != "" {
		var layoutFiles []string
		err := filepath.WalkDir(opts.LayoutsDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
				layoutFiles = append(layoutFiles, path)
			}
			return nil
		})
		switch {
		case os.IsNotExist(err):
			logger.Debug("layouts directory not found, using built-in layouts", "dir", opts.LayoutsDir)
		case err != nil:
			return nil, fmt.Errorf("failed to find layout files in '%s': %w", opts.LayoutsDir, err)
		case len(layoutFiles) > 0:
			templates, err = templates.ParseFiles(layoutFiles...)
			if err != nil {
				return nil, fmt.Errorf("failed to parse layout files: %w", err)
			}
			logger.Debug("parsed layout overrides", "count", len(layoutFiles))
		}
	}

	return &Renderer{templates: templates, outputDir: opts.OutputDir, logger: logger}, nil
}

// OutputPath returns where the page for route is written.
func (r *Renderer) OutputPath(route string) string {
	return filepath.Join(r.outputDir, filepath.FromSlash(route), "index.html")
}

// layoutFor picks the front matter layout if it exists. A locale's index page
// defaults to the home layout, every other page to the doc layout.
func (r *Renderer) layoutFor(p *model.Page, home string) string {
	layout := docLayout
	if locale.Normalize(p.Route) == locale.Normalize(home) {
		layout = homeLayout
	}
	if p.Layout != "" {
		name := p.Layout
		if !strings.HasSuffix(name, ".html") {
			name += ".html"
		}
		if r.templates.Lookup(name) != nil {
			layout = name
		} else {
			r.logger.Warn("front matter layout not found, using default", "layout", p.Layout, "page", p.Route, "default", layout)
		}
	}
	return layout
}

// Page renders p with the locale it belongs to.
func (r *Renderer) Page(site *model.SiteData, set *locale.Set, p *model.Page) error {
	cfg, ok := set.Lookup(p.Locale)
	if !ok {
		cfg = set.ForRoute(p.Route)
	}

	data := PageData{
		Site:   site,
		Locale: cfg,
		Page:   p,
		Lang:   cfg.Lang,
		Home:   locale.Prefix(cfg),
	}
	if tag, err := locale.Tag(cfg); err == nil {
		data.Lang = tag.String()
	}
	for _, other := range set.All() {
		alt := Alternate{
			Label:   other.Label,
			Tag:     other.Lang,
			Link:    locale.Translate(p.Route, cfg, other),
			Current: other == cfg,
		}
		if alt.Label == "" {
			alt.Label = other.Lang
		}
		if tag, err := locale.Tag(other); err == nil {
			alt.Tag = tag.String()
		}
		data.Alternates = append(data.Alternates, alt)
	}

	outputPath := r.OutputPath(p.Route)
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for page '%s': %w", p.Route, err)
	}
	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", outputPath, err)
	}
	defer outFile.Close()

	layout := r.layoutFor(p, data.Home)
	if err := r.templates.ExecuteTemplate(outFile, layout, data); err != nil {
		return fmt.Errorf("failed to execute template '%s' for page '%s': %w", layout, p.Route, err)
	}
	r.logger.Debug("generated page", "path", outputPath, "layout", layout)
	return nil
}
