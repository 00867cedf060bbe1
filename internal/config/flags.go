package config

import (
	"flag"
	"fmt"
	"io"
)

// parseFlags parses the client command line.
//
// Flags:
//
//	-data-dir directory for credentials and encrypted data
//	-users-file credential file name inside the data directory
//	-meta-dsn SQLite DSN for scheduler state
//	-log-file log file path
//	-leech-threshold lapses before an item becomes a leech
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		dataDir        string
		usersFile      string
		metaDSN        string
		logFile        string
		leechThreshold int
		jsonConfigPath string
	)

	fs := flag.NewFlagSet("recall", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&dataDir, "data-dir", "", "Data directory")
	fs.StringVar(&usersFile, "users-file", "", "Credential file name")
	fs.StringVar(&metaDSN, "meta-dsn", "", "SQLite DSN for scheduler state")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.IntVar(&leechThreshold, "leech-threshold", 0, "Lapses before an item is a leech")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogFile: logFile,
		},
		Storage: Storage{
			DataDir:   dataDir,
			UsersFile: usersFile,
			MetaDSN:   metaDSN,
		},
		Scheduler: Scheduler{
			LeechThreshold: leechThreshold,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
