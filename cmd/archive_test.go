package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPackThenUnpack(t *testing.T) {
	setupHome(t)
	src := t.TempDir()
	chdir(t, src)
	writeFile(t, filepath.Join(src, "main.cpp"), "#include \"util/math.h\"\n#include <vector>\nint main() {}\n")
	writeFile(t, filepath.Join(src, "util", "math.h"), "int add(int a, int b);\n")

	archivePath := filepath.Join(t.TempDir(), "bundle.txt")
	_, _, err := execute(t, "", "pack", "main.cpp", "-o", archivePath)
	if err != nil {
		t.Fatalf("pack error = %v", err)
	}
	data, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), ">>>>main.cpp\n") || !strings.Contains(string(data), ">>>>util/math.h\n") {
		t.Fatalf("archive = %q", data)
	}

	dest := t.TempDir()
	if err := os.Mkdir(filepath.Join(dest, "util"), 0755); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "", "unpack", archivePath, "-C", dest)
	if err != nil {
		t.Fatalf("unpack error = %v", err)
	}
	if !strings.Contains(out, "Unpacking complete. 2 files unpacked.") {
		t.Errorf("output = %s", out)
	}
	got, err := os.ReadFile(filepath.Join(dest, "util", "math.h"))
	if err != nil || string(got) != "int add(int a, int b);\n" {
		t.Errorf("math.h = %q, %v", got, err)
	}
}

func TestPackWarnsOnMissingInclude(t *testing.T) {
	setupHome(t)
	src := t.TempDir()
	chdir(t, src)
	writeFile(t, filepath.Join(src, "main.cpp"), "#include \"missing.h\"\n")

	out, errOut, err := execute(t, "", "pack", "main.cpp")
	if err != nil {
		t.Fatalf("pack error = %v", err)
	}
	if out != ">>>>main.cpp\n#include \"missing.h\"\n" {
		t.Errorf("archive = %q", out)
	}
	if !strings.Contains(errOut, "Included file not found") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestPackMissingRoot(t *testing.T) {
	setupHome(t)
	chdir(t, t.TempDir())
	if _, _, err := execute(t, "", "pack", "nope.cpp"); err == nil {
		t.Error("packing a missing file should fail")
	}
}

func TestUnpackFromStdin(t *testing.T) {
	setupHome(t)
	dest := t.TempDir()

	out, errOut, err := execute(t, ">>>>a.txt\nhello\n>>>>missing/b.txt\nskip\n>>>>../../c.txt\nsafe", "unpack", "--dir", dest)
	if err != nil {
		t.Fatalf("unpack error = %v", err)
	}
	if !strings.Contains(out, "Starting to unpack from stdin") || !strings.Contains(out, "2 files unpacked") {
		t.Errorf("output = %s", out)
	}
	if !strings.Contains(errOut, "Directory 'missing' for file 'missing/b.txt' does not exist") {
		t.Errorf("stderr = %s", errOut)
	}
	if got, _ := os.ReadFile(filepath.Join(dest, "c.txt")); string(got) != "safe\n" {
		t.Errorf("c.txt = %q", got)
	}
}

func TestUnpackWithoutMarkers(t *testing.T) {
	setupHome(t)
	out, _, err := execute(t, "just text", "unpack")
	if err != nil {
		t.Fatalf("unpack error = %v", err)
	}
	if !strings.Contains(out, "No file markers") {
		t.Errorf("output = %s", out)
	}
}

func TestStacktraceCommand(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "app.py"), "raise ValueError()\n")
	writeFile(t, filepath.Join(dir, "trace.txt"), "Traceback:\n  at app.py:1 in main\n  at https://cdn.example.com/x.js:9\n")

	out, _, err := execute(t, "", "stacktrace", "trace.txt")
	if err != nil {
		t.Fatalf("stacktrace error = %v", err)
	}
	if !strings.HasPrefix(out, "Traceback:") {
		t.Errorf("trace should come first:\n%s", out)
	}
	if !strings.Contains(out, ">>> ") || !strings.Contains(out, "raise ValueError()") {
		t.Errorf("referenced file missing:\n%s", out)
	}

	if _, _, err := execute(t, "", "stacktrace", "absent.txt"); err == nil {
		t.Error("a missing trace file should fail")
	}
}
