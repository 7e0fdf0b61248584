package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ksunext/docsite/internal/builder"
	"github.com/ksunext/docsite/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Checks the locale configuration without building",
	Long: `The validate command loads every locale, checks navigation and sidebar
links, cross-locale parity and footer text, resolves link targets against the
content directory when it exists, and prints the findings. It exits non-zero
when any error is found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := builder.Check(appConfig, logger)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), res.Report)
		return res.Report.Err()
	},
}

func printReport(w io.Writer, r *validate.Report) {
	errTag := color.New(color.FgRed, color.Bold).SprintFunc()
	warnTag := color.New(color.FgYellow).SprintFunc()

	for _, i := range r.Issues {
		tag := warnTag("warning")
		if i.Severity == validate.Error {
			tag = errTag("error")
		}
		fmt.Fprintf(w, "%s %s\n", tag, i)
	}

	errs, warns := r.Count(validate.Error), r.Count(validate.Warning)
	if errs == 0 {
		fmt.Fprintln(w, color.GreenString("✓ configuration is valid (%d warnings)", warns))
		return
	}
	fmt.Fprintln(w, color.RedString("✗ %d errors, %d warnings", errs, warns))
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
