package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/flux/config"
)

// ConfigCmd groups configuration file utilities.
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write a configuration file with the default settings."`
	Show ConfigShowCmd `cmd:"" help:"Print the configuration in effect."`
}

// ConfigInitCmd writes the defaults to the configuration path.
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing file without asking." short:"f"`
}

func (cmd *ConfigInitCmd) Run(ctx *kong.Context, globals *Globals) error {
	path := globals.Config
	t := newTheme(ctx.Stdout, "")

	if _, err := os.Stat(path); err == nil && !cmd.Force {
		confirmed, err := promptYesNo(fmt.Sprintf("File %q already exists. Overwrite it?", path))
		if err != nil {
			return usageError(fmt.Errorf("failed to read confirmation: %w", err))
		}
		if !confirmed {
			return usageError(fmt.Errorf("file already exists: %s (use --force to overwrite)", path))
		}
	}

	var buf bytes.Buffer
	if err := config.Default().Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return usageError(fmt.Errorf("failed to write %s: %w", path, err))
	}

	t.printSuccess(ctx.Stdout, "Wrote "+t.path.Render(path))
	return nil
}

// ConfigShowCmd prints the effective configuration, flags included.
type ConfigShowCmd struct{}

func (cmd *ConfigShowCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.session(ctx)
	if err != nil {
		return usageError(err)
	}
	return s.cfg.Encode(s.stdout)
}
