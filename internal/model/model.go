package model

import (
	"html/template"
)

// SiteConfig is the configuration of one locale of the documentation site.
type SiteConfig struct {
	Lang        string      `yaml:"lang" json:"lang"`
	Link        string      `yaml:"link,omitempty" json:"link,omitempty"`
	Label       string      `yaml:"label,omitempty" json:"label,omitempty"`
	Description string      `yaml:"description" json:"description"`
	ThemeConfig ThemeConfig `yaml:"themeConfig" json:"themeConfig"`
}

// ThemeConfig holds everything the default theme draws around a page.
type ThemeConfig struct {
	Nav         []NavEntry     `yaml:"nav" json:"nav"`
	Sidebar     []SidebarGroup `yaml:"sidebar" json:"sidebar"`
	Footer      Footer         `yaml:"footer" json:"footer"`
	SocialLinks []SocialLink   `yaml:"socialLinks" json:"socialLinks"`
}

// NavEntry is a labelled link. Order within a slice is display order.
type NavEntry struct {
	Text string `yaml:"text" json:"text"`
	Link string `yaml:"link" json:"link"`
}

type SidebarGroup struct {
	Text  string     `yaml:"text" json:"text"`
	Items []NavEntry `yaml:"items" json:"items"`
}

type Footer struct {
	Message   string `yaml:"message" json:"message"`
	Copyright string `yaml:"copyright" json:"copyright"`
}

type SocialLink struct {
	Icon string `yaml:"icon" json:"icon"`
	Link string `yaml:"link" json:"link"`
}

// Links returns every nav and sidebar target in display order.
func (c *SiteConfig) Links() []string {
	var links []string
	for _, n := range c.ThemeConfig.Nav {
		links = append(links, n.Link)
	}
	for _, g := range c.ThemeConfig.Sidebar {
		for _, item := range g.Items {
			links = append(links, item.Link)
		}
	}
	return links
}

// Page represents a single rendered documentation page.
type Page struct {
	Title       string
	Locale      string
	Route       string
	SourcePath  string
	ContentHTML template.HTML
	Frontmatter map[string]interface{}
	Summary     string
	Layout      string
}

// SiteData holds all site-wide data, including configuration and content.
type SiteData struct {
	Title         string
	BaseURL       string
	Locales       []*SiteConfig
	Pages         []*Page
	PagesByLocale map[string][]*Page
}
