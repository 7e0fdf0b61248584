package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksunext/docsite/internal/validate"
)

func TestPrintReport(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printReport(&buf, &validate.Report{})
	assert.Equal(t, "✓ configuration is valid (0 warnings)\n", buf.String())

	buf.Reset()
	printReport(&buf, &validate.Report{Issues: []validate.Issue{
		{Locale: "zh_CN", Field: "nav[1]", Message: "empty link", Severity: validate.Error},
		{Locale: "zh_CN", Field: "socialLinks", Message: "social links differ from en_US", Severity: validate.Warning},
	}})
	assert.Equal(t, "error zh_CN: nav[1]: empty link\n"+
		"warning zh_CN: socialLinks: social links differ from en_US\n"+
		"✗ 1 errors, 1 warnings\n", buf.String())
}

func TestValidateCommandReportsOnce(t *testing.T) {
	color.NoColor = true

	dir := t.TempDir()
	locales := filepath.Join(dir, "locales")
	require.NoError(t, os.MkdirAll(locales, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locales, "en_US.yaml"), []byte(`lang: en_US
themeConfig:
  nav:
    - text: Devices
      link: pages/devices
`), 0o644))
	cfg := filepath.Join(dir, "docsite.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("localesDir: "+locales+"\ncontentDir: "+filepath.Join(dir, "missing")+"\nlogLevel: error\n"), 0o644))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"validate", "--config", cfg})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		cfgFile = ""
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), `error en_US: nav[0]: link "pages/devices" does not begin with /`)
	assert.NotContains(t, errOut.String(), "Error:")
	assert.NotContains(t, errOut.String(), "Usage:")
}
