// Package cli implements the pracsi commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/NovantaCreativeTeam/pracsi-script/config"
)

var (
	configPath string
	logLevel   string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "pracsi",
	Short: "Flatten ELAN annotation documents into transcript tables",
	Long: "Converts a tiered ELAN (.eaf) annotation document into one chronologically " +
		"ordered table of speaker turns, pauses and notes, as CSV, JSON or SQLite.",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: config/$CONFIG_ENV/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override pipeline.log_level (debug, info, warn, error)")
}

func loadConfig() (*cfg.Root, *logrus.Logger, error) {
	conf, err := cfg.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		conf.Pipeline.LogLvl = logLevel
	}
	log, err := newLogger(conf)
	if err != nil {
		return nil, nil, err
	}
	return conf, log, nil
}

func newLogger(conf *cfg.Root) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(conf.Pipeline.LogLvl)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lvl)

	switch strings.ToLower(conf.Pipeline.LogFormat) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("log format %q (valid: text, json)", conf.Pipeline.LogFormat)
	}
	return log, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
