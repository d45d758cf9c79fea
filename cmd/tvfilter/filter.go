package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/KrX3D/TizenTube2/internal/di"
	"github.com/KrX3D/TizenTube2/internal/domain/entity"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/codec"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/navigation"
	"github.com/KrX3D/TizenTube2/internal/usecase/intercept"
)

// filterCommand filters one captured response offline.
type filterCommand struct {
	global *globalFlags

	file   string
	href   string
	nav    entity.NavState
	pretty bool
}

func addFilterCommand(app *kingpin.Application, g *globalFlags) {
	cmd := &filterCommand{global: g}
	c := app.Command("filter", "Filter a captured response read from a file or stdin and print it.").
		Action(func(*kingpin.ParseContext) error {
			if err := cmd.run(context.Background(), os.Stdin, os.Stdout, os.Stderr); err != nil {
				exitWithErr(err)
			}
			return nil
		})
	c.Arg("file", "Response JSON file; '-' or empty reads stdin.").StringVar(&cmd.file)
	c.Flag("href", "Full location the response was captured at.").StringVar(&cmd.href)
	c.Flag("hash", "location.hash, overrides --href.").StringVar(&cmd.nav.Hash)
	c.Flag("path", "location.pathname, overrides --href.").StringVar(&cmd.nav.Path)
	c.Flag("search", "location.search, overrides --href.").StringVar(&cmd.nav.Search)
	c.Flag("pretty", "Indent the output.").BoolVar(&cmd.pretty)
}

func (cmd *filterCommand) navState() (entity.NavState, error) {
	state := entity.NavState{}
	if cmd.href != "" {
		parsed, err := navigation.FromURL(cmd.href)
		if err != nil {
			return state, err
		}
		state = parsed
	}
	if cmd.nav.Hash != "" {
		state.Hash = cmd.nav.Hash
	}
	if cmd.nav.Path != "" {
		state.Path = cmd.nav.Path
	}
	if cmd.nav.Search != "" {
		state.Search = cmd.nav.Search
	}
	return state, nil
}

func (cmd *filterCommand) readInput(stdin io.Reader) ([]byte, error) {
	if cmd.file == "" || cmd.file == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(cmd.file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cmd.file, err)
	}
	return raw, nil
}

func (cmd *filterCommand) run(ctx context.Context, stdin io.Reader, stdout, report io.Writer) error {
	state, err := cmd.navState()
	if err != nil {
		return err
	}

	raw, err := cmd.readInput(stdin)
	if err != nil {
		return err
	}

	container, err := di.NewContainer(ctx, di.Config{
		Logger:       cmd.global.loggerConfig(),
		SettingsPath: cmd.global.settings,
		Navigation:   navigation.NewStatic(state),
		Report:       report,
	})
	if err != nil {
		return err
	}
	defer container.Close()

	tree, err := container.Decode(bytes.TrimSpace(raw))
	if err != nil {
		container.Reporter.ShowError(ctx, err)
		return err
	}
	if root, ok := tree.(map[string]any); ok {
		delete(root, intercept.ProcessedMarker)
	}

	encode := codec.Encode
	if cmd.pretty {
		encode = codec.EncodeIndent
	}
	out, err := encode(tree)
	if err != nil {
		return err
	}
	if _, err := stdout.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	container.Reporter.ShowSummary(ctx, container.Summary())
	return nil
}
