package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat"
)

// Context represents the global context for commands
type Context struct {
	Config *ojformat.Config
	Format string
	Out    io.Writer
}

// CLI represents the command-line interface
var CLI struct {
	Config  string     `help:"Configuration file path" default:"ojformat.yaml"`
	Verbose bool       `help:"Enable debug logging" short:"v"`
	Format  string     `help:"Output format (yaml, json, xml); overrides the configuration" enum:",yaml,json,xml" default:""`
	Parse   ParseCmd   `cmd:"" help:"Parse a format string and list its variables"`
	Infer   InferCmd   `cmd:"" help:"Infer a format tree from sample files"`
	Analyze AnalyzeCmd `cmd:"" help:"Analyze a Markdown problem statement"`
	Check   CheckCmd   `cmd:"" help:"Check the samples of a statement against its constraints"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, "ojformat v0.1.0")
	return err
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.WithField("level", level).Fatal("Invalid log level")
	}
}

func main() {
	ctx := kong.Parse(&CLI)

	log.SetFormatter(&nested.Formatter{})

	config, err := ojformat.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if CLI.Verbose {
		config.LogLevel = "debug"
	}

	setLogLevel(config.LogLevel)

	format := config.Output.Format
	if CLI.Format != "" {
		format = CLI.Format
	}

	appCtx := &Context{
		Config: config,
		Format: format,
		Out:    os.Stdout,
	}

	err = ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
