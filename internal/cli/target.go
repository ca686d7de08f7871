package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/ppiankov/sortforge/internal/backup"
	"github.com/ppiankov/sortforge/internal/config"
	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/fsys"
	"github.com/ppiankov/sortforge/internal/organize"
	"github.com/ppiankov/sortforge/internal/reporter"
)

// target is a resolved directory plus the settings that apply to it.
type target struct {
	root     string
	settings *config.Settings
	fs       fsys.FS
}

// resolveTarget picks the directory from args, then config, then cwd.
func resolveTarget(args []string) (*target, error) {
	cfg, err := config.LoadSettings(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dir := "."
	switch {
	case len(args) > 0:
		dir = args[0]
	case cfg.Root != "":
		dir = cfg.Root
	}

	dir, err = expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("target directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("target %s is not a directory", abs)
	}

	return &target{root: abs, settings: cfg, fs: fsys.OS{}}, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func (t *target) backupDir() string {
	dir := t.settings.BackupDir
	if dir == "" {
		dir = backup.DefaultFolder
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(t.root, dir)
}

// organize runs one locked organizing pass with commentary on text.
func (t *target) organize(text *reporter.TextReporter, log *errlog.Log) (organize.Result, error) {
	lock, err := organize.Acquire(t.root)
	if err != nil {
		return organize.Result{}, err
	}
	defer lock.Release()

	opts := []organize.Option{organize.WithPace(t.settings.Pace)}
	if text != nil {
		opts = append(opts, organize.WithNotify(text.Event))
	}
	return organize.Run(t.fs, t.root, log, opts...)
}

// backup runs one locked backup with commentary on text.
func (t *target) backup(text *reporter.TextReporter, log *errlog.Log) (backup.Artifact, error) {
	lock, err := organize.Acquire(t.root)
	if err != nil {
		return backup.Artifact{}, err
	}
	defer lock.Release()

	opts := []backup.Option{}
	if t.settings.BackupPrefix != "" {
		opts = append(opts, backup.WithPrefix(t.settings.BackupPrefix))
	}
	if text != nil {
		opts = append(opts, backup.WithNotify(text.BackupStep))
	}
	return backup.New(t.fs, fsys.Zip{}, opts...).Backup(t.root, t.backupDir(), log)
}

// isTerminal checks if stdout is a terminal.
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
