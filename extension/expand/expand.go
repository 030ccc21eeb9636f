// expand.go implements the "mdctx expand" command, the primary operation.
//
// Design: Expand behaves like a filter - expanded markdown goes to stdout so
// it can be piped straight into another tool or an LLM prompt. Failures are
// reported inline as markers in the output rather than aborting, matching
// how partially-assembled context is still useful context. --strict restores
// a hard failure mode for CI use.

package expand

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jpl-au/mdctx/cmd"
	"github.com/jpl-au/mdctx/extension"
	"github.com/jpl-au/mdctx/internal/expand"
	"github.com/jpl-au/mdctx/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExpandCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "expand <file>",
		Short: "Resolve @imports in a markdown file",
		Long: `Output a markdown file with its @import directives resolved.

Each @<path>.md directive is replaced by the referenced file's content,
recursively, wrapped in HTML comment markers. Imports that cannot be
resolved (wrong extension, outside the allowed directories, missing,
or circular) are left as inline failure markers.

Use "-" to read from stdin; relative imports then resolve against the
working directory.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runExpand,
	}
	addExpandFlags(c)
	c.Flags().Bool(extension.FlagStrict, false, "Exit non-zero if any import fails")
	return c
}

// addExpandFlags registers the flags shared by expand and its sibling views.
func addExpandFlags(c *cobra.Command) {
	c.Flags().Bool(extension.FlagNoImports, false, "Skip import processing")
	c.Flags().IntP(extension.FlagMaxDepth, "d", 0, "Maximum import recursion depth")
	c.Flags().StringArray(extension.FlagAllow, nil, "Additional allowed directory (repeatable)")
}

// buildOptions merges the flags registered by addExpandFlags with
// configured defaults. Commands that register a different flag set build
// their options themselves.
func (e *Extension) buildOptions(c *cobra.Command) (expand.Options, error) {
	noImports, _ := c.Flags().GetBool(extension.FlagNoImports)
	depth, _ := c.Flags().GetInt(extension.FlagMaxDepth)

	opts := expand.Options{
		NoImports: noImports || !e.cfg.ImportsEnabled(),
		MaxDepth:  depth,
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = e.cfg.MaxDepth()
	}

	dirs, err := allowDirs(c)
	if err != nil {
		return opts, err
	}
	opts.ExtraDirs = dirs
	return opts, nil
}

// allowDirs resolves repeated --allow values to absolute directories.
// --allow extends the default allowlist rather than replacing it, so the
// extra dirs are resolved here and appended after the defaults compute.
func allowDirs(c *cobra.Command) ([]string, error) {
	allow, _ := c.Flags().GetStringArray(extension.FlagAllow)

	var dirs []string
	for _, dir := range allow {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving --allow %q: %w", dir, err)
		}
		dirs = append(dirs, abs)
	}
	return dirs, nil
}

func (e *Extension) runExpand(c *cobra.Command, args []string) error {
	strict, _ := c.Flags().GetBool(extension.FlagStrict)
	opts, err := e.buildOptions(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	file := args[0]
	var result expand.Result
	var failures int

	defer func() {
		log.Event("expand:expand", "expand").Author(cmd.Author()).
			Path(file).Resolved(result.Path).
			Imports(result.Directives).Failures(failures).
			Write(err)
	}()

	if cmd.JSON() {
		result, err = expand.Run(io.Discard, file, opts)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("expand %q: %w", file, err))
		}
		failures = expand.Failures(result.Content)
		return cmd.PrintJSON(result)
	}

	result, err = expand.Run(cmd.Out(), file, opts)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("expand %q: %w", file, err))
	}
	failures = expand.Failures(result.Content)

	if strict && failures > 0 {
		err = fmt.Errorf("%d import(s) failed", failures)
		return err
	}
	return nil
}
