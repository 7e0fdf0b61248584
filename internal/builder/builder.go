// Package builder runs the load, validate and render pipeline.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ksunext/docsite/internal/config"
	"github.com/ksunext/docsite/internal/content"
	"github.com/ksunext/docsite/internal/export"
	"github.com/ksunext/docsite/internal/locale"
	"github.com/ksunext/docsite/internal/model"
	"github.com/ksunext/docsite/internal/render"
	"github.com/ksunext/docsite/internal/validate"
)

// ExportFile is written into the output directory on every build.
const ExportFile = "docsite.json"

type Result struct {
	Locales *locale.Set
	Pages   []*model.Page
	Report  *validate.Report
}

// LoadLocales reads dir, or the built-in locales when dir is empty.
func LoadLocales(dir string) (*locale.Set, error) {
	if dir == "" {
		return locale.Builtin()
	}
	return locale.LoadDir(dir)
}

// Check loads and validates without writing anything. A missing content
// directory disables link target resolution instead of failing.
func Check(cfg config.Config, logger *slog.Logger) (*Result, error) {
	set, err := LoadLocales(cfg.LocalesDir)
	if err != nil {
		return nil, err
	}

	res := &Result{Locales: set}
	var pages validate.Pages
	if _, err := os.Stat(cfg.ContentDir); os.IsNotExist(err) {
		logger.Warn("content directory not found, link targets not checked", "dir", cfg.ContentDir)
	} else {
		res.Pages, err = content.Collect(cfg.ContentDir, set, cfg.SiteTitle, logger)
		if err != nil {
			return nil, err
		}
		if cfg.CheckTargets {
			pages = content.NewIndex(res.Pages)
		}
	}

	res.Report = validate.Run(set, pages)
	return res, nil
}

// Build generates the site into cfg.OutputDir. Validation errors abort the
// build before the output directory is touched.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Result, error) {
	set, err := LoadLocales(cfg.LocalesDir)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded locales", "count", len(set.All()), "root", set.Root().Lang)

	pages, err := content.Collect(cfg.ContentDir, set, cfg.SiteTitle, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("collected pages", "count", len(pages), "dir", cfg.ContentDir)

	var idx validate.Pages
	if cfg.CheckTargets {
		idx = content.NewIndex(pages)
	}
	res := &Result{Locales: set, Pages: pages, Report: validate.Run(set, idx)}
	for _, issue := range res.Report.Issues {
		if issue.Severity == validate.Warning {
			logger.Warn(issue.Message, "locale", issue.Locale, "field", issue.Field)
		}
	}
	if err := res.Report.Err(); err != nil {
		return res, err
	}

	r, err := render.New(render.Options{
		LayoutsDir: cfg.LayoutsDir,
		OutputDir:  cfg.OutputDir,
		BaseURL:    cfg.BaseURL,
	}, logger)
	if err != nil {
		return res, err
	}

	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return res, fmt.Errorf("failed to remove output directory '%s': %w", cfg.OutputDir, err)
	}
	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return res, fmt.Errorf("failed to create output directory '%s': %w", cfg.OutputDir, err)
	}

	if _, err := os.Stat(cfg.StaticDir); err == nil {
		if err := render.CopyDir(cfg.StaticDir, cfg.OutputDir); err != nil {
			return res, fmt.Errorf("failed to copy static assets: %w", err)
		}
		logger.Debug("copied static assets", "dir", cfg.StaticDir)
	} else {
		logger.Debug("static directory not found, skipping copy", "dir", cfg.StaticDir)
	}

	site := &model.SiteData{
		Title:         cfg.SiteTitle,
		BaseURL:       cfg.BaseURL,
		Locales:       set.All(),
		Pages:         pages,
		PagesByLocale: make(map[string][]*model.Page),
	}
	for _, p := range pages {
		site.PagesByLocale[p.Locale] = append(site.PagesByLocale[p.Locale], p)
	}

	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := r.Page(site, set, p); err != nil {
			return res, err
		}
	}

	if err := export.WriteFile(filepath.Join(cfg.OutputDir, ExportFile), export.New(set, cfg.SiteTitle)); err != nil {
		return res, err
	}

	logger.Info("build completed", "pages", len(pages), "output", cfg.OutputDir)
	return res, nil
}
