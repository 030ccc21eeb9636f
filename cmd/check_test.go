package cmd

import (
	"encoding/json"
	"testing"
)

func TestCheck(t *testing.T) {
	t.Run("reports each directive status", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("ok.md", "fine")
		env.write("main.md", "@ok.md @gone.md @notes.txt @/etc/passwd.md @main.md")

		out := env.run("check", "main.md")
		env.contains(out, "ok           ok.md")
		env.contains(out, "missing      gone.md")
		env.contains(out, "unsupported  notes.txt")
		env.contains(out, "denied       /etc/passwd.md")
		env.contains(out, "cycle        main.md")
	})

	t.Run("allow extends the allowed directories", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("main.md", "@/etc/passwd.md")

		out := env.run("check", "main.md")
		env.contains(out, "denied       /etc/passwd.md")

		// Inside the extended allowlist the scope gate passes and the
		// directive fails later, on existence.
		out = env.run("check", "--allow", "/etc", "main.md")
		env.contains(out, "missing      /etc/passwd.md")
	})

	t.Run("strict fails on bad directives", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("main.md", "@gone.md")

		_, err := env.runErr("check", "--strict", "main.md")
		if err == nil {
			t.Error("Check --strict with missing import = nil, want error")
		}
	})

	t.Run("strict passes on clean file", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("ok.md", "fine")
		env.write("main.md", "@ok.md")

		env.run("check", "--strict", "main.md")
	})
}

func TestCheck_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.write("ok.md", "fine")
	env.write("main.md", "@ok.md @gone.md")

	out := env.run("check", "-o", "json", "main.md")

	var report struct {
		Path       string `json:"path"`
		Directives []struct {
			Path   string `json:"path"`
			Status string `json:"status"`
		} `json:"directives"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(report.Directives) != 2 {
		t.Fatalf("Directives = %d, want 2", len(report.Directives))
	}
	if report.Directives[0].Status != "ok" || report.Directives[1].Status != "missing" {
		t.Errorf("statuses = %s, %s; want ok, missing",
			report.Directives[0].Status, report.Directives[1].Status)
	}
}
