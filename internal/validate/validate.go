// Package validate checks locale configurations for the structural
// properties the generated site relies on.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/ksunext/docsite/internal/locale"
	"github.com/ksunext/docsite/internal/model"
)

var ErrInvalid = errors.New("invalid site configuration")

type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue is a single finding against one locale.
type Issue struct {
	Locale   string
	Field    string
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Locale, i.Field, i.Message)
}

// Pages resolves link targets to documentation pages.
type Pages interface {
	Has(link string) bool
}

type Report struct {
	Issues []Issue
}

func (r *Report) add(sev Severity, lang, field, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Locale:   lang,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	})
}

// Count returns the number of issues with the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// Err joins all error-severity issues under ErrInvalid, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, i := range r.Issues {
		if i.Severity == Error {
			errs = append(errs, errors.New(i.String()))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Run validates every locale of set. pages may be nil, in which case link
// targets are not resolved.
func Run(set *locale.Set, pages Pages) *Report {
	r := &Report{}
	for _, cfg := range set.All() {
		checkLocale(r, cfg)
		if pages != nil {
			checkTargets(r, cfg, pages)
		}
	}
	checkParity(r, set)
	return r
}

func checkEntry(r *Report, cfg *model.SiteConfig, field string, e model.NavEntry) {
	if strings.TrimSpace(e.Text) == "" {
		r.add(Error, cfg.Lang, field, "empty display text")
	}
	switch {
	case e.Link == "":
		r.add(Error, cfg.Lang, field, "empty link")
	case !strings.HasPrefix(e.Link, "/"):
		r.add(Error, cfg.Lang, field, "link %q does not begin with /", e.Link)
	case !locale.IsRoot(cfg) && locale.StripPrefix(cfg, e.Link) == e.Link:
		r.add(Warning, cfg.Lang, field, "link %q is outside locale prefix %s", e.Link, locale.Prefix(cfg))
	}
}

func checkLocale(r *Report, cfg *model.SiteConfig) {
	tc := cfg.ThemeConfig
	for i, n := range tc.Nav {
		checkEntry(r, cfg, fmt.Sprintf("nav[%d]", i), n)
	}
	for i, g := range tc.Sidebar {
		field := fmt.Sprintf("sidebar[%d]", i)
		if strings.TrimSpace(g.Text) == "" {
			r.add(Error, cfg.Lang, field, "empty group title")
		}
		if len(g.Items) == 0 {
			r.add(Error, cfg.Lang, field, "group %q has no items", g.Text)
		}
		for j, item := range g.Items {
			checkEntry(r, cfg, fmt.Sprintf("%s.items[%d]", field, j), item)
		}
	}
	for i, s := range tc.SocialLinks {
		field := fmt.Sprintf("socialLinks[%d]", i)
		if s.Icon == "" {
			r.add(Error, cfg.Lang, field, "empty icon")
		}
		u, err := url.Parse(s.Link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			r.add(Error, cfg.Lang, field, "link %q is not an absolute http(s) URL", s.Link)
		}
	}
}

func checkTargets(r *Report, cfg *model.SiteConfig, pages Pages) {
	tc := cfg.ThemeConfig
	for i, n := range tc.Nav {
		if strings.HasPrefix(n.Link, "/") && !pages.Has(n.Link) {
			r.add(Error, cfg.Lang, fmt.Sprintf("nav[%d]", i), "link %q does not resolve to a page", n.Link)
		}
	}
	for i, g := range tc.Sidebar {
		for j, item := range g.Items {
			if strings.HasPrefix(item.Link, "/") && !pages.Has(item.Link) {
				r.add(Error, cfg.Lang, fmt.Sprintf("sidebar[%d].items[%d]", i, j), "link %q does not resolve to a page", item.Link)
			}
		}
	}
}

// checkParity requires every other locale to carry the root locale's link
// targets. Extra targets in a translation are allowed.
func checkParity(r *Report, set *locale.Set) {
	root := set.Root()
	want := make(map[string]bool)
	var order []string
	for _, l := range root.Links() {
		// malformed links are reported by checkLocale
		if !strings.HasPrefix(l, "/") {
			continue
		}
		if key := locale.Normalize(l); !want[key] {
			want[key] = true
			order = append(order, l)
		}
	}

	for _, cfg := range set.All()[1:] {
		have := make(map[string]bool)
		for _, l := range cfg.Links() {
			have[locale.Normalize(locale.StripPrefix(cfg, l))] = true
		}
		for _, l := range order {
			if !have[locale.Normalize(l)] {
				r.add(Error, cfg.Lang, "themeConfig", "missing translation of %s %q", root.Lang, l)
			}
		}

		if cfg.ThemeConfig.Footer != root.ThemeConfig.Footer {
			r.add(Error, cfg.Lang, "footer", "footer differs from %s", root.Lang)
		}
		if !reflect.DeepEqual(cfg.ThemeConfig.SocialLinks, root.ThemeConfig.SocialLinks) {
			r.add(Warning, cfg.Lang, "socialLinks", "social links differ from %s", root.Lang)
		}
	}
}
