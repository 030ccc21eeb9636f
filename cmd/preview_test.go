package cmd

import "testing"

// Preview falls back to raw expanded markdown when stdout is not a TTY,
// which is always the case under exec.Command, so these tests assert the
// expand-equivalent output path.
func TestPreview(t *testing.T) {
	t.Run("pipes raw expanded markdown", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("intro.md", "Welcome.")
		env.write("main.md", "# Main\n@intro.md\n")

		out := env.run("preview", "main.md")
		env.contains(out, "<!-- Imported from: intro.md -->")
		env.contains(out, "Welcome.")
	})

	t.Run("raw flag matches expand output", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("intro.md", "Welcome.")
		env.write("main.md", "@intro.md")

		want := env.run("expand", "main.md")
		got := env.run("preview", "--raw", "main.md")
		env.equals(got, want)
	})
}
