package fsys

import (
	"archive/zip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOS_ReadDirSorted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	if err := os.Mkdir(filepath.Join(dir, "c"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := OS{}.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), filepath.Join(dir, "c")}
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d]: got %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestOS_ReadDirMissing(t *testing.T) {
	_, err := OS{}.ReadDir(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestOS_Move(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "hello")
	dst := filepath.Join(dir, ".txt")
	if err := (OS{}).Mkdir(dst); err != nil {
		t.Fatal(err)
	}

	got, err := OS{}.Move(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dst, "a.txt") {
		t.Errorf("got %s", got)
	}
	if Exists(OS{}, src) {
		t.Error("source should be gone")
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("content: got %q", data)
	}
}

func TestOS_MoveRefusesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "new")
	writeFile(t, filepath.Join(dir, ".txt", "a.txt"), "old")

	_, err := OS{}.Move(src, filepath.Join(dir, ".txt"))
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}
	if !Exists(OS{}, src) {
		t.Error("source must stay in place")
	}
}

func TestZip_Archive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "sub", "b.py"), "b")
	writeFile(t, filepath.Join(root, "backup", "old.zip"), "old")

	target := filepath.Join(root, "snap.zip")
	if err := (Zip{}).Archive(root, target, filepath.Join(root, "backup")); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.OpenReader(target)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = zr.Close() }()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	want := []string{"a.txt", "sub/", "sub/b.py"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d]: got %s, want %s", i, names[i], want[i])
		}
	}
}

func TestZip_ArchiveSymlinkedRoot(t *testing.T) {
	realDir := t.TempDir()
	writeFile(t, filepath.Join(realDir, "a.txt"), "a")
	writeFile(t, filepath.Join(realDir, "b.py"), "b")
	writeFile(t, filepath.Join(realDir, "backup", "old.zip"), "old")

	root := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(realDir, root); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	target := filepath.Join(root, "snap.zip")
	if err := (Zip{}).Archive(root, target, filepath.Join(root, "backup")); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.OpenReader(target)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = zr.Close() }()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	want := []string{"a.txt", "b.py"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d]: got %s, want %s", i, names[i], want[i])
		}
	}
}

func TestZip_ArchiveMissingRootLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "snap.zip")
	err := (Zip{}).Archive(filepath.Join(dir, "missing"), target)
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if Exists(OS{}, target) {
		t.Error("partial archive should be removed")
	}
}
