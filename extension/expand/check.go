// check.go implements the "mdctx check" command for dry-run validation.
//
// Separated from expand.go to isolate the report formatting. Check shows how
// each top-level directive would be handled without inlining anything, which
// makes it safe to run against untrusted files.

package expand

import (
	"fmt"
	"io"

	"github.com/jpl-au/mdctx/cmd"
	"github.com/jpl-au/mdctx/extension"
	"github.com/jpl-au/mdctx/internal/expand"
	"github.com/jpl-au/mdctx/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newCheckCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate @imports without expanding",
		Long: `Report how each top-level @import directive in a file would be handled.

Statuses:
  ok           the import would be inlined
  unsupported  target is not a .md file
  denied       target is outside the allowed directories
  missing      target does not exist
  cycle        target is the file being checked

Exits non-zero with --strict if any directive is not ok.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runCheck,
	}
	c.Flags().StringArray(extension.FlagAllow, nil, "Additional allowed directory (repeatable)")
	c.Flags().Bool(extension.FlagStrict, false, "Exit non-zero if any directive is not ok")
	return c
}

// checkOptions builds the options for a dry run. Check registers only
// --allow: nothing is inlined, so depth and import toggles do not apply.
func checkOptions(c *cobra.Command) (expand.Options, error) {
	var opts expand.Options
	dirs, err := allowDirs(c)
	if err != nil {
		return opts, err
	}
	opts.ExtraDirs = dirs
	return opts, nil
}

func (e *Extension) runCheck(c *cobra.Command, args []string) error {
	strict, _ := c.Flags().GetBool(extension.FlagStrict)
	opts, err := checkOptions(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	file := args[0]
	var report []expand.Directive

	out := cmd.Out()
	if cmd.JSON() {
		out = io.Discard
	}
	report, err = expand.Check(out, file, opts)

	failures := 0
	for _, d := range report {
		if d.Status != expand.StatusOK {
			failures++
		}
	}
	log.Event("expand:check", "check").Author(cmd.Author()).
		Path(file).Imports(len(report)).Failures(failures).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("check %q: %w", file, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(struct {
			Path       string             `json:"path"`
			Directives []expand.Directive `json:"directives"`
		}{Path: file, Directives: report})
	}

	if strict && failures > 0 {
		return fmt.Errorf("%d directive(s) would fail", failures)
	}
	return nil
}
