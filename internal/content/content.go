// Package content collects the Markdown documentation pages of the site.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ksunext/docsite/internal/locale"
	"github.com/ksunext/docsite/internal/model"
)

// NewMarkdown returns the Markdown converter used for documentation pages.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// Collect walks dir for Markdown files and converts each into a page owned
// by the locale its route falls under. Pages are sorted by route. A locale
// index page without a front matter title is titled siteTitle, or the
// locale's label when siteTitle is empty.
func Collect(dir string, set *locale.Set, siteTitle string, logger *slog.Logger) ([]*model.Page, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content directory '%s': %w", dir, err)
	}

	md := NewMarkdown()
	titleCaser := cases.Title(language.English)
	var pages []*model.Page

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", p, walkErr)
		}
		if d.IsDir() {
			// dot directories hold generator state, not pages
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		fileBytes, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", p, err)
		}

		var fm map[string]interface{}
		body, err := frontmatter.Parse(bytes.NewReader(fileBytes), &fm)
		if err != nil {
			logger.Warn("could not parse front matter, treating as plain markdown", "path", p, "error", err)
			body = fileBytes
			fm = nil
		}
		if fm == nil {
			fm = make(map[string]interface{})
		}

		var buf bytes.Buffer
		if err := md.Convert(body, &buf); err != nil {
			return fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", p, err)
		}

		relPath, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", p, err)
		}
		route := RouteFor(relPath)
		owner := set.ForRoute(route)

		title, _ := fm["title"].(string)
		if title == "" && route == locale.Prefix(owner) {
			title = siteTitle
			if title == "" {
				title = owner.Label
			}
		}
		if title == "" {
			base := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
			if strings.EqualFold(base, "index") {
				base = filepath.Base(filepath.Dir(p))
				if filepath.Dir(relPath) == "." {
					base = "home"
				}
			}
			title = titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(base))
		}

		page := &model.Page{
			Title:       title,
			Locale:      owner.Lang,
			Route:       route,
			SourcePath:  p,
			ContentHTML: template.HTML(buf.String()),
			Frontmatter: fm,
		}
		page.Summary, _ = fm["summary"].(string)
		if page.Summary == "" {
			page.Summary, _ = fm["description"].(string)
		}
		page.Layout, _ = fm["layout"].(string)

		logger.Debug("collected page", "path", p, "route", route, "locale", page.Locale)
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during content collection walk: %w", err)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Route < pages[j].Route })
	return pages, nil
}

// RouteFor maps a Markdown path relative to the content root to its URL path:
// index.md is "/", pages/x.md is "/pages/x", zh_CN/index.md is "/zh_CN/".
func RouteFor(relPath string) string {
	rel := filepath.ToSlash(relPath)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if rel == "index" {
		return "/"
	}
	if strings.HasSuffix(rel, "/index") {
		return "/" + strings.TrimSuffix(rel, "index")
	}
	return "/" + rel
}

// Index answers whether a link resolves to a collected page.
type Index struct {
	pages map[string]*model.Page
}

func NewIndex(pages []*model.Page) *Index {
	idx := &Index{pages: make(map[string]*model.Page, len(pages))}
	for _, p := range pages {
		idx.pages[locale.Normalize(p.Route)] = p
	}
	return idx
}

func (idx *Index) Has(link string) bool {
	_, ok := idx.pages[locale.Normalize(link)]
	return ok
}

func (idx *Index) Get(link string) (*model.Page, bool) {
	p, ok := idx.pages[locale.Normalize(link)]
	return p, ok
}
