package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/always-cache/range-parser/blob"
	partialcontent "github.com/always-cache/range-parser/pkg/partial-content"
	"github.com/always-cache/range-parser/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// CLI flags
	portFlag           int
	dbFilenameFlag     string
	configFilenameFlag string
	combineFlag        bool
	maxRangesFlag      int
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on")
	flag.StringVar(&dbFilenameFlag, "db", "blobs.db", "Blob DB file name (use 'memory' for an in-memory store)")
	flag.StringVar(&configFilenameFlag, "config", "", "Config file (.yaml or .toml), overrides flags")
	flag.BoolVar(&combineFlag, "combine", false, "Combine overlapping and adjacent ranges")
	flag.IntVar(&maxRangesFlag, "max-ranges", 50, "Serve the full content for requests with more ranges than this")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	config := Config{
		Port:    portFlag,
		DB:      dbFilenameFlag,
		LogFile: logFilenameFlag,
		Trace:   verbosityTraceFlag,
		Ranges: RangesConfig{
			Combine:   combineFlag,
			MaxRanges: maxRangesFlag,
		},
	}
	if configFilenameFlag != "" {
		var err error
		if config, err = getConfig(configFilenameFlag, config); err != nil {
			log.Fatal().Err(err).Msg("Cannot load config")
		}
	}

	// set log level
	logLevel := zerolog.DebugLevel
	if config.Trace {
		logLevel = zerolog.TraceLevel
	}

	// set up log output to stdout
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stdout})
	if config.LogFile != "" {
		if logFileOutput, err := os.OpenFile(config.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()

	store, err := openStore(config.DB)
	if err != nil {
		log.Fatal().Err(err).Str("db", config.DB).Msg("Cannot open blob store")
	}

	srv := server.New(server.Config{
		Store: store,
		Ranges: partialcontent.Config{
			Combine:   config.Ranges.Combine,
			MaxRanges: config.Ranges.MaxRanges,
		},
		Logger: &log.Logger,
	})
	log.Info().Msgf("Serving blobs from %s on port %v", config.DB, config.Port)
	err = http.ListenAndServe(fmt.Sprintf(":%d", config.Port), srv)

	if err != nil {
		panic(err)
	}
}

func openStore(db string) (blob.Store, error) {
	if db == "memory" {
		return blob.NewMemStore(), nil
	}
	return blob.NewSQLiteStore(db)
}
