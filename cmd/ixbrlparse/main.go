// Command ixbrlparse extracts facts from iXBRL and XBRL filings.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/saranrapjs/ixbrlparse/pkg/config"
	"github.com/saranrapjs/ixbrlparse/pkg/ixbrl"
	"github.com/saranrapjs/ixbrlparse/pkg/logging"
	"github.com/saranrapjs/ixbrlparse/pkg/transform"
)

var CLI struct {
	Config   string `help:"YAML configuration file" type:"path" env:"IXBRLPARSE_CONFIG"`
	LogLevel string `name:"log-level" help:"Override the configured log level (debug, info, warn, error)"`

	Parse   ParseCmd   `cmd:"" help:"Parse a filing and write its facts"`
	Summary SummaryCmd `cmd:"" help:"Print the latest value of every numeric concept in a filing"`
	Formats FormatsCmd `cmd:"" help:"List the transformation formats the registry knows"`
	Batch   BatchCmd   `cmd:"" help:"Parse many filings concurrently"`
	Fetch   FetchCmd   `cmd:"" help:"Download a filing from EDGAR, parse and store it"`
	Archive ArchiveCmd `cmd:"" help:"Parse filings stored in remote zip archives"`
	Search  SearchCmd  `cmd:"" help:"Search stored documents by concept or company name"`
}

// app carries what every command needs once flags and configuration
// have been read.
type app struct {
	cfg *config.Config
	log *zap.Logger
	out io.Writer
}

// registry builds the format registry, forcing strict mode when asked.
func (a *app) registry(strict bool) (*transform.Registry, error) {
	return a.cfg.Registry(transform.RegistryOpts{Strict: strict, Logger: a.log})
}

// parseOptions returns the options for a parse. An empty mode keeps the
// configured one.
func (a *app) parseOptions(mode string, strict bool) ([]ixbrl.Option, error) {
	r, err := a.registry(strict)
	if err != nil {
		return nil, err
	}
	opts, err := a.cfg.ParseOptions(r)
	if err != nil {
		return nil, err
	}
	if mode != "" {
		m, err := ixbrl.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ixbrl.WithMode(m))
	}
	return append(opts, ixbrl.WithLogger(a.log)), nil
}

func newApp(configPath, logLevel string, out io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, out: out}, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ixbrlparse"),
		kong.Description("Extract facts from inline XBRL and XBRL documents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	a, err := newApp(CLI.Config, CLI.LogLevel, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.log.Sync()

	err = ctx.Run(a)
	ctx.FatalIfErrorf(err)
}
