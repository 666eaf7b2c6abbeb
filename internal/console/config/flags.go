package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/wmsconsole/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Only the flags listed in doc.go are looked at; os.Args is filtered with
// flagx.FilterArgs so other layers can define their own flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-l", "-log-level", "-locale", "-cookie", "-rows"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout (0 = none)")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file (empty = stderr)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "message locale (ru, en)")
	fs.BoolVar(&cfg.MirrorCookie, "cookie", cfg.MirrorCookie, "mirror the token into the Auth cookie")
	fs.IntVar(&cfg.RowsPerPage, "rows", cfg.RowsPerPage, "rows per page")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
