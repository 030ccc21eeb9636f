// diff.go implements the "mdctx diff" command, showing what expansion changes.
//
// Separated from expand.go to isolate diff presentation. Colour is applied
// only when stdout is a terminal (or --colour forces it), so redirected
// output stays clean for patch tooling.

package expand

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/mdctx/cmd"
	"github.com/jpl-au/mdctx/extension"
	"github.com/jpl-au/mdctx/internal/diff"
	"github.com/jpl-au/mdctx/internal/expand"
	"github.com/jpl-au/mdctx/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <file>",
		Short: "Show what expansion would change",
		Long: `Show a diff between a markdown file as written and with its
@imports resolved. Useful for reviewing exactly what an LLM would
receive before handing the file over.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runDiff,
	}
	addExpandFlags(c)
	c.Flags().Bool(extension.FlagColour, false, "Force coloured output")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	colour, _ := c.Flags().GetBool(extension.FlagColour)
	opts, err := e.buildOptions(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	file := args[0]
	raw, err := os.ReadFile(file)
	if err != nil {
		log.Event("expand:diff", "diff").Author(cmd.Author()).Path(file).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("diff %q: %w", file, err))
	}

	result, err := expand.Run(io.Discard, file, opts)
	log.Event("expand:diff", "diff").Author(cmd.Author()).
		Path(file).Resolved(result.Path).
		Imports(result.Directives).
		Failures(expand.Failures(result.Content)).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff %q: %w", file, err))
	}

	d := diff.Compute(string(raw), result.Content, file, file+" (expanded)")
	if cmd.JSON() {
		return cmd.PrintJSON(d)
	}

	useColour := colour || term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Fprint(cmd.Out(), d.Format(useColour))
	return nil
}
