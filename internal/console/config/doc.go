// Package config loads runtime configuration for the warehouse console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), optionally read from a dotenv
//     file selected with -env (default ".env").
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string      backend API base URL
//	-d string      path of the local SQLite database (":memory:" for none)
//	-t duration    per-request timeout, 0 disables it
//	-l string      log file; empty logs to stderr
//	-log-level     debug, info, warn or error
//	-locale        ru or en, used for fallback messages and prices
//	-cookie        mirror the session token into the Auth cookie
//	-rows int      rows per page in listings
//
// Environment
//
//	WMS_API_BASE_URL, WMS_DB_PATH, WMS_REQUEST_TIMEOUT, WMS_LOCALE,
//	WMS_LOG_FILE, WMS_LOG_LEVEL, WMS_MIRROR_COOKIE, WMS_ROWS_PER_PAGE
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8090/api/v1",
//	  "database_path": "console.db",
//	  "request_timeout": "10s",
//	  "mirror_cookie": false,
//	  "locale": "ru",
//	  "log_file": "",
//	  "log_level": "info",
//	  "rows_per_page": 10
//	}
//
// Malformed input in any source panics, as the console cannot start with a
// half-applied configuration.
package config
