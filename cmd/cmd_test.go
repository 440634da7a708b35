package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeMarkdown(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCommandTree(t *testing.T) {
	path := writeMarkdown(t, "doc.md", "# Hi\n\n- item\n")
	out, err := runCmd(t, "parse", path, "--format", "tree")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, want := range []string{"document", "header level=1", `text content="item"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseCommandJSONPerFile(t *testing.T) {
	a := writeMarkdown(t, "a.md", "one")
	b := writeMarkdown(t, "b.md", "two")
	out, err := runCmd(t, "parse", a, b, "--format", "json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one JSON line per file, got %d:\n%s", len(lines), out)
	}
	var first struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid json line: %v", err)
	}
	if first.Path != a {
		t.Errorf("path = %q, want %q", first.Path, a)
	}
}

func TestParseCommandReportsMissingFiles(t *testing.T) {
	ok := writeMarkdown(t, "ok.md", "fine")
	out, err := runCmd(t, "parse", ok, filepath.Join(t.TempDir(), "missing.md"), "--format", "tree")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(out, `text content="fine"`) {
		t.Errorf("readable file should still be dumped:\n%s", out)
	}
}

func TestRenderCommandHTML(t *testing.T) {
	path := writeMarkdown(t, "doc.md", "**bold**")
	out, err := runCmd(t, "render", path, "--engine", "html")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<p><strong>bold</strong></p>\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRenderCommandRejectsUnknownEngine(t *testing.T) {
	path := writeMarkdown(t, "doc.md", "x")
	if _, err := runCmd(t, "render", path, "--engine", "pdf"); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}

func TestCompareCommand(t *testing.T) {
	path := writeMarkdown(t, "doc.md", "# Title\n\n- a\n- b\n")
	out, err := runCmd(t, "compare", path)
	if err != nil {
		t.Fatalf("compare: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "ok    ") {
		t.Errorf("output = %q", out)
	}

	bad := writeMarkdown(t, "bad.md", "    indented code\n")
	out, err = runCmd(t, "compare", bad)
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	if !strings.Contains(out, "code blocks: ir=0 reference=1") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigCommandShowsDefaults(t *testing.T) {
	out, err := runCmd(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"not found", "engine: native", "format: yaml"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseCommandSelect(t *testing.T) {
	path := writeMarkdown(t, "doc.md", "# A\n\ntext\n\n## B\n")
	out, err := runCmd(t, "parse", path, "--format", "tree", "--select", "header")
	parseSelect = ""
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "selection\n  header level=1\n    text content=\"A\"\n  header level=2\n    text content=\"B\"\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}
