// Package export renders the locale set in the shape a documentation-site
// generator consumes: one record per locale keyed by its path segment.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/ksunext/docsite/internal/locale"
	"github.com/ksunext/docsite/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RootKey names the locale served from "/".
const RootKey = "root"

type Document struct {
	Title   string                       `json:"title,omitempty"`
	Locales map[string]*model.SiteConfig `json:"locales"`
}

// Key returns the export key of a locale: "root" or its path segment.
func Key(cfg *model.SiteConfig) string {
	if locale.IsRoot(cfg) {
		return RootKey
	}
	return strings.Trim(locale.Prefix(cfg), "/")
}

// New builds the export document. Locales without a label are labelled
// with their lang.
func New(set *locale.Set, title string) *Document {
	doc := &Document{
		Title:   title,
		Locales: make(map[string]*model.SiteConfig, len(set.All())),
	}
	for _, cfg := range set.All() {
		c := *cfg
		if c.Label == "" {
			c.Label = c.Lang
		}
		c.Link = locale.Prefix(cfg)
		doc.Locales[Key(cfg)] = &c
	}
	return doc
}

// Write encodes v as indented JSON followed by a newline.
func Write(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteFile writes the document to path, creating parent directories.
func WriteFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, v)
}

// WriteSplit writes one <lang>.json file per locale into dir and returns the
// paths written.
func WriteSplit(dir string, doc *Document) ([]string, error) {
	var written []string
	for _, cfg := range doc.Locales {
		path := filepath.Join(dir, cfg.Lang+".json")
		if err := WriteFile(path, cfg); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
