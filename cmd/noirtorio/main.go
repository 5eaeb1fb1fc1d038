package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sorahn/noirtorio/pkg/pack"
	"github.com/sorahn/noirtorio/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version bool `help:"Print version information and exit." short:"v"`
	Debug   bool `help:"Whether to enable debug logging."`

	Apply struct {
		Data    string   `arg:"" name:"data" help:"JSON dump of the content definition tree." type:"existingfile"`
		Configs []string `name:"config" help:"Pack configuration files." type:"file"`
		Output  string   `name:"output" short:"o" help:"Where to write the transformed tree. Defaults to rewriting the input in place."`
	} `cmd:"" help:"Recolor and redirect a content definition tree."`

	Pack struct {
		Dir    string   `arg:"" name:"dir" help:"Directory holding the pack's category definitions." type:"existingdir"`
		Roots  []string `name:"root" help:"Directories holding mod sources." type:"existingdir"`
		Target string   `help:"The output directory that should be used." default:"."`
		Zip    bool     `help:"Also write the pack as a zip archive."`
	} `cmd:"" help:"Compile a pack manifest from category definitions."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("noirtorio"),
		kong.Description("a desaturated resource pack generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.Version {
		fmt.Printf(
			"noirtorio %s (commit %s)\n",
			version.Version,
			version.GitCommit,
		)
		fmt.Printf(
			"built %s\n",
			version.BuildTime,
		)
		os.Exit(0)
	}

	switch ctx.Command() {
	case "apply <data>":
		err := applyCommand()
		if err != nil {
			writeError(err)
		}
	case "pack <dir>":
		err := packCommand()
		if err != nil {
			writeError(err)
		}
	case "config":
		os.Stdout.Write(pack.DEFAULT)
	}
}
