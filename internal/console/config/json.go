package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/wmsconsole/internal/flagx"
	"github.com/dmitrijs2005/wmsconsole/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointers
// tell "absent" from "zero", so a file only overrides what it names.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	DatabasePath   *string         `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	MirrorCookie   *bool           `json:"mirror_cookie"`
	Locale         *string         `json:"locale"`
	LogFile        *string         `json:"log_file"`
	LogLevel       *string         `json:"log_level"`
	RowsPerPage    *int            `json:"rows_per_page"`
}

// parseJson overlays Config with values loaded from the JSON file given by
// -c or -config. Without either flag nothing happens. Read and decode
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MirrorCookie != nil {
		cfg.MirrorCookie = *jc.MirrorCookie
	}
	if jc.Locale != nil {
		cfg.Locale = *jc.Locale
	}
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.RowsPerPage != nil {
		cfg.RowsPerPage = *jc.RowsPerPage
	}
}
