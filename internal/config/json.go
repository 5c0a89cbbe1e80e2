package config

import (
	"encoding/json"
	"os"

	"github.com/Tech-Artist89/Passwortmanager/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// non-empty values are copied into the runtime Config.
type JsonConfig struct {
	DBPath    string `json:"db_path"`
	BackupDir string `json:"backup_dir"`
	LogLevel  string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via
// flagx.ConfigFilePath(); without them no JSON is loaded. Read or unmarshal
// errors panic, the caller decides whether to recover. Only fields present
// and non-empty in the file override earlier values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.BackupDir != "" {
		cfg.BackupDir = jc.BackupDir
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
