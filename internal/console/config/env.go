package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/wmsconsole/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvAPIBaseURL     = "WMS_API_BASE_URL"
	EnvDatabasePath   = "WMS_DB_PATH"
	EnvRequestTimeout = "WMS_REQUEST_TIMEOUT"
	EnvLocale         = "WMS_LOCALE"
	EnvLogFile        = "WMS_LOG_FILE"
	EnvLogLevel       = "WMS_LOG_LEVEL"
	EnvMirrorCookie   = "WMS_MIRROR_COOKIE"
	EnvRowsPerPage    = "WMS_ROWS_PER_PAGE"
)

// parseEnv loads the dotenv file (missing is fine) and overlays Config with
// the WMS_* variables that are set. Variables already in the process
// environment win over the file.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(flagx.EnvFileFlag()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(EnvAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvDatabasePath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv(EnvLocale); ok {
		cfg.Locale = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvMirrorCookie); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.MirrorCookie = b
	}
	if v, ok := os.LookupEnv(EnvRowsPerPage); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RowsPerPage = n
	}
}
