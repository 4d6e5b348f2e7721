// cmd/arcbatch/main_test.go

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/creativeyann17/go-arcbatch/internal/config"
	"github.com/creativeyann17/go-arcbatch/pkg/batch"
)

// fakeTool is a codec script: a directory target receives payload.bin,
// a file target receives a copy of the input, inputs named *bad* fail
const fakeTool = `#!/bin/sh
out="$2"
in="$3"
case "$in" in
  *bad*) echo "corrupt archive" >&2; exit 1 ;;
esac
if [ -d "$out" ]; then
  cp "$in" "$out/payload.bin"
else
  cp "$in" "$out"
fi
`

func writeTool(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	path := filepath.Join(t.TempDir(), "arctool")
	if err := os.WriteFile(path, []byte(fakeTool), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, env config.Env, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(env)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSniffCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.arc", "Yaz0 compressed")
	writeFile(t, dir, "b.arc", "RARC raw")
	writeFile(t, dir, "c.txt", "hello")

	out, err := run(t, config.Env{},
		"sniff", filepath.Join(dir, "a.arc"), filepath.Join(dir, "b.arc"), filepath.Join(dir, "c.txt"), filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{"YAZ0", "RARC", "UNKNOWN", "UNKNOWN"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, want[i]) {
			t.Errorf("line %d = %q, want prefix %q", i, line, want[i])
		}
	}
}

func TestExtractCommand(t *testing.T) {
	tool := writeTool(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeFile(t, src, "A/x.arc", "RARC x")
	writeFile(t, src, "B/y.ARC", "Yaz0RARC y")
	writeFile(t, src, "B/bad.arc", "RARC broken")
	report := filepath.Join(t.TempDir(), "report.json.zst")

	env := config.Env{Codec: tool, LogLevel: "ERROR"}
	out, err := run(t, env, "extract", src, dst, "--temp-dir", t.TempDir(), "--report", report)
	if err != nil {
		t.Fatalf("item failures must not fail the command: %v\n%s", err, out)
	}

	for rel, want := range map[string]string{
		"A/x/payload.bin": "RARC x",
		"B/y/payload.bin": "Yaz0RARC y",
	} {
		data, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(rel)))
		if err != nil {
			t.Errorf("%s: %v", rel, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", rel, data, want)
		}
	}

	if !strings.Contains(out, "Extracted:       2") || !strings.Contains(out, "Failed:          1") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	r, err := batch.ReadReport(report)
	if err != nil {
		t.Fatal(err)
	}
	if r.Succeeded != 2 || r.Failed != 1 {
		t.Errorf("report counts = %d/%d", r.Succeeded, r.Failed)
	}

	// Same tree with --strict reports the failure
	if _, err := run(t, env, "extract", src, dst, "--strict", "--quiet"); err == nil {
		t.Error("expected error with --strict")
	}
}

func TestExtractCommandCodecMissing(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "x.arc", "RARC")
	dst := filepath.Join(t.TempDir(), "out")
	env := config.Env{Codec: filepath.Join(t.TempDir(), "no-such-tool"), LogLevel: "ERROR"}

	if _, err := run(t, env, "extract", src, dst); err == nil {
		t.Error("expected error for missing codec")
	}

	// Dry run does not need the codec
	out, err := run(t, env, "extract", src, dst, "--dry-run")
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !strings.Contains(out, "DRY-RUN") {
		t.Errorf("dry run banner missing:\n%s", out)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("dry run created the destination root (err = %v)", err)
	}
}

func TestExtractCommandArgs(t *testing.T) {
	if _, err := run(t, config.Env{}, "extract", "only-one"); err == nil {
		t.Error("expected error for missing destination argument")
	}
	if _, err := run(t, config.Env{Codec: "sh"}, "extract", t.TempDir(), t.TempDir(), "--log-level", "chatty"); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, config.Env{}, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "arcbatch "+version) {
		t.Errorf("unexpected output %q", out)
	}
}
