package config

const (
	defaultDatabasePath = "~/.local/share/eitbwatch/catalog.db"
	defaultOutputDir    = "~/.local/share/eitbwatch/export"
	defaultLogDir       = "~/.local/share/eitbwatch/logs"
	defaultPlatform     = "primeran.eus"
	defaultBatchSize    = 500
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DatabasePath: defaultDatabasePath,
			OutputDir:    defaultOutputDir,
			LogDir:       defaultLogDir,
		},
		Catalog: Catalog{
			DefaultPlatform: defaultPlatform,
		},
		Migration: Migration{
			BatchSize: defaultBatchSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
