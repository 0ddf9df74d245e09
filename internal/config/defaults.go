package config

const (
	defaultDataDir                 = "~/.local/share/statutes/data"
	defaultLogDir                  = "~/.local/share/statutes/logs"
	defaultCommitteeCachePath      = "~/.cache/statutes/committees.db"
	defaultCommitteeRequestTimeout = 30
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
	defaultPdftotextBinary         = "pdftotext"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Committees: Committees{
			RequestTimeout: defaultCommitteeRequestTimeout,
			CachePath:      defaultCommitteeCachePath,
		},
		Tools: Tools{
			Pdftotext: defaultPdftotextBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
