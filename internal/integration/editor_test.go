package integration

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func testEditor(env map[string]string, onPath ...string) *externalEditor {
	return &externalEditor{
		getenv: func(key string) string { return env[key] },
		lookPath: func(name string) (string, error) {
			for _, p := range onPath {
				if p == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		},
	}
}

func TestEditorArgv(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		onPath []string
		want   []string
	}{
		{name: "EDITOR wins", env: map[string]string{"EDITOR": "hx", "VISUAL": "code"}, want: []string{"hx"}},
		{name: "EDITOR with args", env: map[string]string{"EDITOR": "code  --wait"}, want: []string{"code", "--wait"}},
		{name: "blank EDITOR falls to VISUAL", env: map[string]string{"EDITOR": "  ", "VISUAL": "emacs"}, want: []string{"emacs"}},
		{name: "nano on PATH", onPath: []string{"vi", "nano"}, want: []string{"nano"}},
		{name: "vim before vi", onPath: []string{"vi", "vim"}, want: []string{"vim"}},
		{name: "nothing found", want: []string{"vi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testEditor(tt.env, tt.onPath...).Argv()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Argv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEditorCommand(t *testing.T) {
	ed := testEditor(map[string]string{"EDITOR": "code --wait"})

	cmd := ed.Command("/tmp/entry.md")
	want := []string{"code", "--wait", "/tmp/entry.md"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("Args = %v, want %v", cmd.Args, want)
	}
}

func TestEditorInspect(t *testing.T) {
	ed := testEditor(nil)
	path := filepath.Join(t.TempDir(), "2026-01-20T143000.md")
	if err := os.WriteFile(path, []byte("before"), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	before := ed.ModTime(path)
	if before.IsZero() {
		t.Fatal("expected a modification time")
	}

	res, err := ed.Inspect(path, before)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if res.Modified {
		t.Error("untouched file reported as modified")
	}

	if err := os.WriteFile(path, []byte("after"), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	later := before.Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	res, err = ed.Inspect(path, before)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !res.Modified {
		t.Error("edited file not reported as modified")
	}
	if res.Content != "after" {
		t.Errorf("Content = %q, want %q", res.Content, "after")
	}
}

func TestEditorInspect_MissingFile(t *testing.T) {
	ed := testEditor(nil)
	path := filepath.Join(t.TempDir(), "gone.md")

	if !ed.ModTime(path).IsZero() {
		t.Error("expected zero ModTime for a missing file")
	}
	res, err := ed.Inspect(path, time.Time{})
	if err != nil {
		t.Fatalf("Inspect() error = %v, want a deleted file reported as emptied", err)
	}
	if !res.Modified || res.Content != "" {
		t.Errorf("Inspect() = %+v, want modified with empty content", res)
	}
}

func TestEditorInspect_DeletedDuringEdit(t *testing.T) {
	ed := testEditor(nil)
	path := filepath.Join(t.TempDir(), "2026-03-01T090000.md")
	if err := os.WriteFile(path, []byte("# notes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	before := ed.ModTime(path)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	res, err := ed.Inspect(path, before)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if !res.Modified || res.Content != "" {
		t.Errorf("Inspect() = %+v, want modified with empty content", res)
	}
}
