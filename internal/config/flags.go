package config

import (
	"flag"
	"os"

	"github.com/Tech-Artist89/Passwortmanager/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the vault database file (default from Config)
//	-b string   directory for database backups (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the vault database file")
	fs.StringVar(&cfg.BackupDir, "b", cfg.BackupDir, "directory for database backups")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
