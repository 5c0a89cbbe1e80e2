// Package backup creates, lists and restores copies of the vault database.
// Every backup is a plain file copy next to a JSON sidecar with a unique id
// and the origin path, so a backup can be restored without extra input.
package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/filex"
)

// DefaultMaxBackups is how many scheduled backups are kept around.
const DefaultMaxBackups = 5

// ErrorCorrupted marks a backup file that fails the SQLite integrity check.
var ErrorCorrupted = errors.New("backup file is corrupted")

var now = time.Now

// Info describes one backup found on disk.
type Info struct {
	ID          string
	Path        string
	Filename    string
	Date        time.Time
	Size        int64
	Description string
}

type metadata struct {
	ID          string `json:"id"`
	OriginalDB  string `json:"original_db"`
	BackupDate  string `json:"backup_date"`
	Description string `json:"description"`
}

func timestampedName(base, ext string, ts time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, ts.Format("20060102_150405"), ext)
}

// defaultDir is the backups subdirectory next to the database file.
func defaultDir(dbPath string) (string, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	return filepath.Join(filepath.Dir(abs), "backups"), nil
}

// Create copies the database into backupDir and writes the metadata sidecar.
// An empty backupDir falls back to a backups directory next to the database.
// It returns the path of the new backup file.
func Create(dbPath, backupDir string) (string, error) {
	if backupDir == "" {
		var err error
		if backupDir, err = defaultDir(dbPath); err != nil {
			return "", err
		}
	}
	if _, err := filex.EnsureDir(backupDir); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	ts := now()
	backupPath := filepath.Join(backupDir, timestampedName("backup", "db", ts))

	if err := filex.CopyFile(dbPath, backupPath); err != nil {
		return "", fmt.Errorf("failed to copy database: %w", err)
	}

	meta := metadata{
		ID:          uuid.NewString(),
		OriginalDB:  dbPath,
		BackupDate:  ts.Format(common.TimeFormat),
		Description: "Automatisches Backup vom " + ts.Format("02.01.2006 15:04"),
	}
	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup metadata: %w", err)
	}
	if err := os.WriteFile(backupPath+".json", raw, 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup metadata: %w", err)
	}

	return backupPath, nil
}

// List returns the backups in backupDir, newest first. The date and
// description come from the sidecar when present, otherwise from the file
// itself. A missing directory is created and yields an empty list.
func List(backupDir string) ([]Info, error) {
	if _, err := filex.EnsureDir(backupDir); err != nil {
		return nil, fmt.Errorf("failed to open backup directory: %w", err)
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".db") {
			continue
		}

		fi, err := de.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(backupDir, de.Name())
		info := Info{
			Path:     path,
			Filename: de.Name(),
			Date:     fi.ModTime(),
			Size:     fi.Size(),
		}

		if raw, err := os.ReadFile(path + ".json"); err == nil {
			var meta metadata
			if json.Unmarshal(raw, &meta) == nil {
				info.ID = meta.ID
				info.Description = meta.Description
				if t, err := time.Parse(common.TimeFormatParse, meta.BackupDate); err == nil {
					info.Date = t
				}
			}
		}

		backups = append(backups, info)
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].Date.After(backups[j].Date) })

	return backups, nil
}

// Restore copies a backup over targetPath after checking its integrity. An
// empty targetPath falls back to the origin recorded in the sidecar. An
// existing target is saved as a pre_restore copy first. It returns the path
// the backup was restored to.
func Restore(backupPath, targetPath string) (string, error) {
	if !filex.Exists(backupPath) {
		return "", fmt.Errorf("backup %s: %w", backupPath, os.ErrNotExist)
	}
	if err := integrityCheck(backupPath); err != nil {
		return "", err
	}

	if targetPath == "" {
		if raw, err := os.ReadFile(backupPath + ".json"); err == nil {
			var meta metadata
			if json.Unmarshal(raw, &meta) == nil {
				targetPath = meta.OriginalDB
			}
		}
	}
	if targetPath == "" {
		return "", errors.New("no restore target given and none recorded in the metadata")
	}

	if filex.Exists(targetPath) {
		abs, err := filepath.Abs(targetPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve restore target: %w", err)
		}
		pre := filepath.Join(filepath.Dir(abs), timestampedName("pre_restore", "db", now()))
		if err := filex.CopyFile(targetPath, pre); err != nil {
			return "", fmt.Errorf("failed to save current database: %w", err)
		}
	}

	if err := filex.CopyFile(backupPath, targetPath); err != nil {
		return "", fmt.Errorf("failed to restore backup: %w", err)
	}

	return targetPath, nil
}

// Delete removes a backup file and its metadata sidecar.
func Delete(backupPath string) error {
	if err := os.Remove(backupPath); err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	if filex.Exists(backupPath + ".json") {
		if err := os.Remove(backupPath + ".json"); err != nil {
			return fmt.Errorf("failed to delete backup metadata: %w", err)
		}
	}
	return nil
}

// CreateScheduled creates a backup and prunes the oldest ones so at most
// maxBackups remain. A maxBackups of zero or less keeps DefaultMaxBackups.
func CreateScheduled(dbPath, backupDir string, maxBackups int) (string, error) {
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}
	if backupDir == "" {
		var err error
		if backupDir, err = defaultDir(dbPath); err != nil {
			return "", err
		}
	}

	path, err := Create(dbPath, backupDir)
	if err != nil {
		return "", err
	}

	backups, err := List(backupDir)
	if err != nil {
		return path, fmt.Errorf("backup created but pruning failed: %w", err)
	}
	if len(backups) > maxBackups {
		for _, old := range backups[maxBackups:] {
			if err := Delete(old.Path); err != nil {
				return path, fmt.Errorf("backup created but pruning failed: %w", err)
			}
		}
	}

	return path, nil
}

// integrityCheck opens the file read-only as SQLite and runs the built-in
// integrity check.
func integrityCheck(path string) error {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrorCorrupted, err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("%w: %v", ErrorCorrupted, err)
	}
	if result != "ok" {
		return fmt.Errorf("%w: integrity check returned %q", ErrorCorrupted, result)
	}

	return nil
}
