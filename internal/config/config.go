package config

import (
	"fmt"
	"strings"
)

type Config struct {
	SiteTitle    string `mapstructure:"siteTitle"`
	BaseURL      string `mapstructure:"baseURL"`
	ContentDir   string `mapstructure:"contentDir"`
	LocalesDir   string `mapstructure:"localesDir"`
	LayoutsDir   string `mapstructure:"layoutsDir"`
	StaticDir    string `mapstructure:"staticDir"`
	OutputDir    string `mapstructure:"outputDir"`
	CheckTargets bool   `mapstructure:"checkTargets"`
	LogLevel     string `mapstructure:"logLevel"`
	LogFormat    string `mapstructure:"logFormat"`
}

// Defaults are applied before the config file and environment are read.
var Defaults = map[string]interface{}{
	"siteTitle":    "KernelSU Next",
	"baseURL":      "",
	"contentDir":   "docs",
	"localesDir":   "",
	"layoutsDir":   "layouts",
	"staticDir":    "static",
	"outputDir":    "public",
	"checkTargets": true,
	"logLevel":     "info",
	"logFormat":    "text",
}

func (c Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("contentDir must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("outputDir must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logFormat %q (want text or json)", c.LogFormat)
	}
	return nil
}
