// preview.go implements the "mdctx preview" command for rendered output.
//
// Separated from expand.go to isolate terminal rendering. Terminal output
// gets glamour markdown rendering; pipe/redirect gets raw expanded markdown,
// so preview degrades to expand when not attached to a TTY.

package expand

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/mdctx/cmd"
	"github.com/jpl-au/mdctx/extension"
	"github.com/jpl-au/mdctx/internal/expand"
	"github.com/jpl-au/mdctx/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newPreviewCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "preview <file>",
		Short: "Render a file with @imports resolved",
		Long: `Expand a markdown file and render it for the terminal.

When stdout is not a terminal the raw expanded markdown is written
instead, making preview safe to pipe.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runPreview,
	}
	addExpandFlags(c)
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	c.Flags().String(extension.FlagTheme, "", "Rendering theme (default from config)")
	return c
}

func (e *Extension) runPreview(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	theme, _ := c.Flags().GetString(extension.FlagTheme)
	opts, err := e.buildOptions(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if theme == "" {
		theme = e.cfg.Theme()
	}

	file := args[0]
	result, err := expand.Run(io.Discard, file, opts)
	log.Event("expand:preview", "preview").Author(cmd.Author()).
		Path(file).Resolved(result.Path).
		Imports(result.Directives).
		Failures(expand.Failures(result.Content)).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("preview %q: %w", file, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}

	// Render with glamour if TTY and not --raw
	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, renderErr := glamour.Render(result.Content, theme)
		if renderErr == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}

	fmt.Fprint(cmd.Out(), result.Content)
	return nil
}
