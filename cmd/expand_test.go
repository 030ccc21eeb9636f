package cmd

import (
	"encoding/json"
	"testing"
)

func TestExpand(t *testing.T) {
	t.Run("inlines single import", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("intro.md", "Welcome.")
		env.write("main.md", "# Main\n\n@intro.md\n")

		out := env.run("expand", "main.md")
		env.equals(out, "# Main\n\n<!-- Imported from: intro.md -->\nWelcome.\n<!-- End of import from: intro.md -->")
	})

	t.Run("inlines nested imports", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("docs/deep.md", "bottom")
		env.write("docs/mid.md", "@deep.md")
		env.write("main.md", "@docs/mid.md")

		out := env.run("expand", "main.md")
		env.contains(out, "<!-- Imported from: docs/mid.md -->")
		env.contains(out, "<!-- Imported from: deep.md -->")
		env.contains(out, "bottom")
	})

	t.Run("no directives passes through", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("plain.md", "# Nothing to see\n")

		out := env.run("expand", "plain.md")
		env.equals(out, "# Nothing to see")
	})

	t.Run("missing import becomes marker", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("main.md", "@gone.md")

		out := env.run("expand", "main.md")
		env.contains(out, "<!-- Import failed: gone.md - ")
	})

	t.Run("non markdown import rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("secrets.txt", "hunter2")
		env.write("main.md", "@secrets.txt")

		out := env.run("expand", "main.md")
		env.contains(out, "<!-- Import failed: secrets.txt - Only .md files are supported -->")
		env.notContains(out, "hunter2")
	})

	t.Run("self import detected", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("loop.md", "@loop.md")

		out := env.run("expand", "loop.md")
		env.contains(out, "<!-- Circular import detected: loop.md -->")
	})

	t.Run("no-imports flag skips processing", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("intro.md", "Welcome.")
		env.write("main.md", "@intro.md")

		out := env.run("expand", "--no-imports", "main.md")
		env.equals(out, "@intro.md")
	})

	t.Run("missing root file fails", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("expand", "nope.md")
		if err == nil {
			t.Error("Expand(missing file) = nil, want error")
		}
	})
}

func TestExpand_Stdin(t *testing.T) {
	env := newTestEnv(t)
	env.write("part.md", "from file")

	out := env.runStdin("intro @part.md outro", "expand", "-")
	env.contains(out, "<!-- Imported from: part.md -->")
	env.contains(out, "from file")
}

func TestExpand_MaxDepth(t *testing.T) {
	env := newTestEnv(t)
	env.write("c.md", "C")
	env.write("b.md", "B @c.md")
	env.write("a.md", "A @b.md")

	// Depth 1: a's imports resolve but b's content is not processed further
	out := env.run("expand", "--max-depth", "1", "a.md")
	env.contains(out, "B @c.md")
	env.notContains(out, "<!-- Imported from: c.md -->")
}

func TestExpand_Strict(t *testing.T) {
	env := newTestEnv(t)
	env.write("main.md", "@gone.md")

	out, err := env.runErr("expand", "--strict", "main.md")
	if err == nil {
		t.Error("Expand --strict with failed import = nil, want error")
	}
	env.contains(out, "import(s) failed")
}

func TestExpand_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.write("intro.md", "Welcome.")
	env.write("main.md", "@intro.md")

	out := env.run("expand", "-o", "json", "main.md")

	var result struct {
		Path       string `json:"path"`
		Content    string `json:"content"`
		Directives int    `json:"directives"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if result.Directives != 1 {
		t.Errorf("Directives = %d, want 1", result.Directives)
	}
	env.contains(result.Content, "Welcome.")
}
