package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagelocale/cmd/pagelocale/commands"
	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("pagelocale"),
		kong.Description("Localize page manifests into canonical and language-prefixed pages"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	// AfterApply has installed the configured logger by now.
	global := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	if err := parser.Run(global); err != nil {
		foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
