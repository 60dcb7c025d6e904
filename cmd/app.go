// Package cmd implements the sgrid command line: calendar tables of prices and
// dividends, the company listing, quotes, charts, company reports and the
// documentation.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/config"
	sglog "github.com/etnz/stockgrid/log"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands returns every sgrid subcommand, with its group.
func Commands() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"tables":    {&aggregateCmd{}, &pricesCmd{}, &dividendsCmd{}},
		"companies": {&listingCmd{}, &quoteCmd{}},
		"documents": {&chartCmd{}, &reportCmd{}},
		"help":      {&topicCmd{}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands() {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to the YAML configuration file (default $"+config.EnvConfigFile+")")
	// Verbose enables debug logs.
	Verbose = flag.Bool("v", false, "Verbose: log at debug level")

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// setup loads the configuration and builds the logger shared by commands.
func setup() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, zerolog.Nop(), err
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading configuration: %w", err)
	}
	level := cfg.Logging.Level
	if *Verbose {
		level = "debug"
	}
	return cfg, sglog.New(stderr, level), nil
}

// fail prints err and returns the exit status it maps to: malformed input is a
// usage error, anything else a failure.
func fail(format string, err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error "+format+": %v\n", err)
	var malformed *stockgrid.MalformedInputError
	if errors.As(err, &malformed) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
