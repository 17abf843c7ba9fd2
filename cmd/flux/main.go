package main

import (
	stderrors "errors"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/flux/cli"
)

func main() {
	var root cli.CLI
	ctx := kong.Parse(&root, cli.Options(&root)...)

	err := ctx.Run()
	var cmdErr *cli.CommandError
	if stderrors.As(err, &cmdErr) {
		if cmdErr.Unwrap() != nil {
			ctx.Errorf("%s", cmdErr.Error())
		}
		os.Exit(cmdErr.ExitCode())
	}
	ctx.FatalIfErrorf(err)
}
