// Package locale loads the per-locale site configuration and maps
// documentation paths between locales.
package locale

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/ksunext/docsite/internal/model"
)

//go:embed locales/*.yaml
var builtinFS embed.FS

var (
	ErrNoRoot    = errors.New("no root locale")
	ErrDuplicate = errors.New("duplicate locale")
)

// Parse decodes a single locale configuration. Unknown keys are rejected so a
// typo in the source never silently drops a field.
func Parse(name string, data []byte) (*model.SiteConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg model.SiteConfig
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("locale file %s is empty", name)
		}
		return nil, fmt.Errorf("error parsing locale file %s: %w", name, err)
	}
	// one locale per file; a trailing document would otherwise go unread
	var rest yaml.Node
	if err := dec.Decode(&rest); err == nil {
		return nil, fmt.Errorf("locale file %s: multiple YAML documents", name)
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing locale file %s: %w", name, err)
	}
	if cfg.Lang == "" {
		return nil, fmt.Errorf("locale file %s: missing lang", name)
	}
	if _, err := Tag(&cfg); err != nil {
		return nil, fmt.Errorf("locale file %s: %w", name, err)
	}
	return &cfg, nil
}

// LoadDir reads every YAML file in dir as one locale.
func LoadDir(dir string) (*Set, error) {
	return loadFS(os.DirFS(dir), ".", dir)
}

// Builtin returns the locales compiled into the binary.
func Builtin() (*Set, error) {
	return loadFS(builtinFS, "locales", "builtin")
}

func loadFS(fsys fs.FS, root, label string) (*Set, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("error reading locales directory %s: %w", label, err)
	}

	var cfgs []*model.SiteConfig
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(root, e.Name())))
		if err != nil {
			return nil, fmt.Errorf("error reading locale file %s: %w", e.Name(), err)
		}
		cfg, err := Parse(e.Name(), data)
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("no locale files found in %s", label)
	}
	return NewSet(cfgs...)
}

// Tag parses the configuration's lang as a BCP 47 tag. Underscore separated
// tags such as en_US are accepted.
func Tag(cfg *model.SiteConfig) (language.Tag, error) {
	tag, err := language.Parse(strings.ReplaceAll(cfg.Lang, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("invalid lang %q: %w", cfg.Lang, err)
	}
	return tag, nil
}

// Prefix returns the normalized root path of a locale: "/" for the root
// locale, "/zh_CN/" style otherwise.
func Prefix(cfg *model.SiteConfig) string {
	p := strings.Trim(cfg.Link, "/")
	if p == "" {
		return "/"
	}
	return "/" + p + "/"
}

// IsRoot reports whether cfg is served from the site root.
func IsRoot(cfg *model.SiteConfig) bool {
	return Prefix(cfg) == "/"
}

// StripPrefix returns link with the locale prefix removed. Links outside the
// locale are returned unchanged.
func StripPrefix(cfg *model.SiteConfig, link string) string {
	p := Prefix(cfg)
	if p == "/" {
		return link
	}
	if link == strings.TrimSuffix(p, "/") {
		return "/"
	}
	if strings.HasPrefix(link, p) {
		return "/" + link[len(p):]
	}
	return link
}

// Translate maps a link of locale from to the equivalent link of locale to.
func Translate(link string, from, to *model.SiteConfig) string {
	rel := StripPrefix(from, link)
	p := Prefix(to)
	if p == "/" {
		return rel
	}
	return p + strings.TrimPrefix(rel, "/")
}

// Normalize reduces a link to the form used for comparison. Fragments,
// queries, .html/.md suffixes and trailing slashes are dropped.
func Normalize(link string) string {
	if i := strings.IndexAny(link, "#?"); i >= 0 {
		link = link[:i]
	}
	link = strings.TrimSuffix(link, ".html")
	link = strings.TrimSuffix(link, ".md")
	if link != "/" {
		link = strings.TrimSuffix(link, "/")
	}
	if link == "" {
		return "/"
	}
	return link
}

// Set is an ordered collection of locales with exactly one root.
type Set struct {
	locales []*model.SiteConfig
}

func NewSet(cfgs ...*model.SiteConfig) (*Set, error) {
	langs := make(map[language.Tag]string)
	prefixes := make(map[string]string)
	roots := 0

	for _, cfg := range cfgs {
		tag, err := Tag(cfg)
		if err != nil {
			return nil, err
		}
		if other, ok := langs[tag]; ok {
			return nil, fmt.Errorf("%w: %s and %s", ErrDuplicate, other, cfg.Lang)
		}
		langs[tag] = cfg.Lang

		p := Prefix(cfg)
		if other, ok := prefixes[p]; ok {
			return nil, fmt.Errorf("%w: %s and %s both served from %s", ErrDuplicate, other, cfg.Lang, p)
		}
		prefixes[p] = cfg.Lang
		if p == "/" {
			roots++
		}
	}
	if roots == 0 {
		return nil, ErrNoRoot
	}

	locales := append([]*model.SiteConfig(nil), cfgs...)
	sort.SliceStable(locales, func(i, j int) bool {
		ri, rj := IsRoot(locales[i]), IsRoot(locales[j])
		if ri != rj {
			return ri
		}
		return locales[i].Lang < locales[j].Lang
	})
	return &Set{locales: locales}, nil
}

// All returns the locales, root first.
func (s *Set) All() []*model.SiteConfig {
	return s.locales
}

func (s *Set) Root() *model.SiteConfig {
	return s.locales[0]
}

// Lookup finds a locale by lang. en_US and en-US name the same locale.
func (s *Set) Lookup(lang string) (*model.SiteConfig, bool) {
	want, err := Tag(&model.SiteConfig{Lang: lang})
	if err != nil {
		return nil, false
	}
	for _, cfg := range s.locales {
		if tag, _ := Tag(cfg); tag == want {
			return cfg, true
		}
	}
	return nil, false
}

// ForRoute returns the locale owning route, chosen by longest prefix.
func (s *Set) ForRoute(route string) *model.SiteConfig {
	best := s.Root()
	bestLen := 1
	for _, cfg := range s.locales {
		p := Prefix(cfg)
		if p == "/" {
			continue
		}
		if (strings.HasPrefix(route, p) || route+"/" == p) && len(p) > bestLen {
			best, bestLen = cfg, len(p)
		}
	}
	return best
}
