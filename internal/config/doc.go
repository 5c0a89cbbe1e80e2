// Package config loads runtime configuration for the password manager CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the vault database file
//	-b string   directory for database backups
//
// # JSON schema
//
//	{
//	  "db_path": "passwortmanager.db",
//	  "backup_dir": "backups",
//	  "log_level": "info"
//	}
//
// Settings that live inside the vault database (theme, language, auto-lock)
// are not configured here; this package only covers process-level knobs.
package config
