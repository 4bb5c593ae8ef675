package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInitWorkspace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "team")
	if IsWorkspace(dir) {
		t.Fatal("empty directory reported as workspace")
	}
	if err := InitWorkspace(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsWorkspace(dir) {
		t.Fatal("workspace not detected after init")
	}
	if err := InitWorkspace(dir); !errors.Is(err, ErrWorkspaceExists) {
		t.Errorf("expected ErrWorkspaceExists, got %v", err)
	}
}

func TestFindWorkspace(t *testing.T) {
	root := t.TempDir()
	if err := InitWorkspace(root); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "alex", "journal")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	got, err := FindWorkspace(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindWorkspace() = %q, want %q", got, want)
	}
}

func TestListReportDirs(t *testing.T) {
	s, ws := newTestStore(t)
	writeFile(t, filepath.Join(ws, "zoe", ProfileFile), "---\nname: Zoe\n---\n")
	writeFile(t, filepath.Join(ws, "alex", ProfileFile), "---\nname: Alex\n---\n")
	writeFile(t, filepath.Join(ws, ".hidden", ProfileFile), "---\nname: Hidden\n---\n")
	writeFile(t, filepath.Join(ws, "notes", "readme.md"), "no profile")
	writeFile(t, filepath.Join(ws, "alex", "team", "sam", ProfileFile), "---\nname: Sam\n---\n")

	dirs, err := s.ListReportDirs(ws)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dirs) != 2 || filepath.Base(dirs[0]) != "alex" || filepath.Base(dirs[1]) != "zoe" {
		t.Errorf("ListReportDirs() = %v", dirs)
	}

	alex := filepath.Join(ws, "alex")
	if !s.HasTeamDir(alex) || s.HasTeamDir(filepath.Join(ws, "zoe")) {
		t.Error("HasTeamDir mismatch")
	}
	team, err := s.ListTeamMemberDirs(alex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(team) != 1 || filepath.Base(team[0]) != "sam" {
		t.Errorf("ListTeamMemberDirs() = %v", team)
	}

	none, err := s.ListTeamMemberDirs(filepath.Join(ws, "zoe"))
	if err != nil || len(none) != 0 {
		t.Errorf("expected no team, got %v, %v", none, err)
	}
}
