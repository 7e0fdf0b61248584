package builder

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksunext/docsite/internal/config"
	"github.com/ksunext/docsite/internal/validate"
)

var docs = map[string]string{
	"index.md":                                    "---\nlayout: home\n---\nWelcome\n",
	"pages/installation.md":                       "# Installation\n",
	"pages/devices.md":                            "# Devices\n",
	"pages/how-to-integrate-for-non-gki.md":       "# Integration\n",
	"zh_CN/index.md":                              "---\nlayout: home\n---\n欢迎\n",
	"zh_CN/pages/installation.md":                 "# 安装\n",
	"zh_CN/pages/devices.md":                      "# 设备\n",
	"zh_CN/pages/how-to-integrate-for-non-gki.md": "# 一体化\n",
}

func setup(t *testing.T, files map[string]string) config.Config {
	t.Helper()
	root := t.TempDir()
	for name, data := range files {
		path := filepath.Join(root, "docs", filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "static"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "static", "style.css"), []byte("body{}"), 0o644))

	return config.Config{
		SiteTitle:    "KernelSU Next",
		ContentDir:   filepath.Join(root, "docs"),
		LayoutsDir:   filepath.Join(root, "layouts"),
		StaticDir:    filepath.Join(root, "static"),
		OutputDir:    filepath.Join(root, "public"),
		CheckTargets: true,
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild(t *testing.T) {
	cfg := setup(t, docs)

	res, err := Build(context.Background(), cfg, discard())
	require.NoError(t, err)
	assert.Len(t, res.Pages, 8)
	assert.Empty(t, res.Report.Issues)

	for _, p := range []string{
		"index.html",
		"style.css",
		ExportFile,
		filepath.Join("pages", "devices", "index.html"),
		filepath.Join("zh_CN", "index.html"),
		filepath.Join("zh_CN", "pages", "how-to-integrate-for-non-gki", "index.html"),
	} {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, p))
	}
}

func TestBuildMissingPage(t *testing.T) {
	files := make(map[string]string)
	for k, v := range docs {
		files[k] = v
	}
	delete(files, "zh_CN/pages/devices.md")
	cfg := setup(t, files)

	res, err := Build(context.Background(), cfg, discard())
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrInvalid)
	assert.Equal(t, 2, res.Report.Count(validate.Error))
	assert.NoDirExists(t, cfg.OutputDir)

	cfg.CheckTargets = false
	_, err = Build(context.Background(), cfg, discard())
	require.NoError(t, err)
}

func TestBuildCanceled(t *testing.T) {
	cfg := setup(t, docs)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, cfg, discard())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckWithoutContent(t *testing.T) {
	cfg := setup(t, nil)
	cfg.ContentDir = filepath.Join(t.TempDir(), "missing")

	res, err := Check(cfg, discard())
	require.NoError(t, err)
	assert.Nil(t, res.Pages)
	assert.NoError(t, res.Report.Err())
}

func TestCheckLocalesDir(t *testing.T) {
	cfg := setup(t, docs)
	cfg.LocalesDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.LocalesDir, "en.yaml"), []byte(`lang: en_US
themeConfig:
  nav:
    - { text: Home, link: / }
    - { text: Missing, link: /pages/missing }
`), 0o644))

	res, err := Check(cfg, discard())
	require.NoError(t, err)
	require.Len(t, res.Locales.All(), 1)
	assert.Equal(t, 1, res.Report.Count(validate.Error))
}
