package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdmeta/cmd/mdmeta/commands"
	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
	"git.home.luguber.info/inful/mdmeta/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("mdmeta"),
		kong.Description("Augment a markdown file with front matter, heading and git provenance metadata."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Stdout: os.Stdout}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
