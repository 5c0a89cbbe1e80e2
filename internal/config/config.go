package config

// Config holds process-level settings for the password manager CLI.
//
// Fields:
//   - DBPath: path to the SQLite vault database.
//   - BackupDir: directory for backups; empty means a backups directory
//     next to the database file.
//   - LogLevel: minimum level for diagnostic output (debug, info, warn,
//     error).
type Config struct {
	DBPath    string
	BackupDir string
	LogLevel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "passwortmanager.db"
	c.BackupDir = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
