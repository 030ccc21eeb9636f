package cmd

import "testing"

func TestConfig(t *testing.T) {
	t.Run("get single key after set", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("config", "author.name", "Test User")

		out := env.run("config", "author.name")
		env.contains(out, "Test User")
	})

	t.Run("get all shows defaults", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config")
		env.contains(out, "author.name")
		env.contains(out, "imports.enabled")
		env.contains(out, "imports.max_depth")
		env.contains(out, "render.theme")
	})

	t.Run("local scope writes project config", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "--local", "imports.max_depth", "5")
		env.contains(out, "(local)")

		out = env.run("config", "imports.max_depth")
		env.contains(out, "5")
	})
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"author name", "author.name", "New Name"},
		{"author email", "author.email", "new@example.com"},
		{"imports enabled false", "imports.enabled", "false"},
		{"imports max depth", "imports.max_depth", "20"},
		{"render theme", "render.theme", "light"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			env.run("config", tc.key, tc.value)

			out := env.run("config", tc.key)
			env.contains(out, tc.value)
		})
	}
}

func TestConfig_Errors(t *testing.T) {
	t.Run("invalid key", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("config", "invalid.key", "value")
		if err == nil {
			t.Error("Config(invalid key) = nil, want error")
		}
	})

	t.Run("invalid enabled value", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("config", "imports.enabled", "maybe")
		if err == nil {
			t.Error("Config(invalid value) = nil, want error")
		}
	})

	t.Run("max depth out of range", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("config", "imports.max_depth", "0")
		if err == nil {
			t.Error("Config(max_depth 0) = nil, want error")
		}
	})
}

func TestConfig_DisablesImports(t *testing.T) {
	env := newTestEnv(t)
	env.write("intro.md", "Welcome.")
	env.write("main.md", "@intro.md")

	env.run("config", "imports.enabled", "false")

	out := env.run("expand", "main.md")
	env.equals(out, "@intro.md")
}
