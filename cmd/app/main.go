package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/kbase/internal"
	"github.com/starford/kbase/internal/models"
	"github.com/starford/kbase/internal/scaffold"
	pkgconfig "github.com/starford/kbase/pkg/config"
)

var version = "dev"

// loadConfig reads the config file. A missing file is only an error for
// the long-running commands; check and new work from defaults.
func loadConfig(cmd *cli.Command, required bool) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	load := pkgconfig.LoadOptional[internal.Config]
	if required {
		load = pkgconfig.Load[internal.Config]
	}
	if err := load(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, internal.WithConfig(cfg), internal.WithVersion(version))
}

func check(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}
	err = internal.RunCheck(ctx, internal.CheckOptions{
		Slug:          cmd.Args().First(),
		Dir:           cmd.String("dir"),
		Verbose:       cmd.Bool("verbose"),
		MinScore:      int(cmd.Int("min-score")),
		AutomatedOnly: cmd.Bool("automated-only"),
		NoColor:       cmd.Bool("no-color"),
	}, internal.WithConfig(cfg))
	if errors.Is(err, internal.ErrCheckFailed) {
		return cli.Exit("", 1)
	}
	return err
}

func newEntry(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}
	_, err = internal.RunNew(scaffold.Entry{
		Title:    cmd.String("title"),
		Slug:     cmd.String("slug"),
		Summary:  cmd.String("summary"),
		Level:    models.Level(cmd.String("level")),
		Minutes:  int(cmd.Int("minutes")),
		Tags:     scaffold.ParseTags(cmd.String("tags")),
		Category: cmd.String("category"),
		Date:     time.Now(),
	}, internal.WithConfig(cfg))
	return err
}

func main() {
	cmd := &cli.Command{
		Name:   "kbase",
		Usage:  "Markdown knowledgebase reader with a content-quality auditor",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the reader API with live reload",
				Action: serve,
			},
			{
				Name:      "check",
				Usage:     "Score entries against the quality checklist",
				ArgsUsage: "[slug]",
				Action:    check,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "List passing checks too"},
					&cli.StringFlag{Name: "dir", Usage: "Content directory (default: content.path)"},
					&cli.IntFlag{Name: "min-score", Usage: "Exit 1 when any entry scores below this"},
					&cli.BoolFlag{Name: "automated-only", Usage: "Gate on the automated checks only"},
					&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio",
				Action: mcp,
			},
			{
				Name:   "new",
				Usage:  "Create a draft entry with a section skeleton",
				Action: newEntry,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Entry title", Required: true},
					&cli.StringFlag{Name: "slug", Usage: "File name without .md (default: from title)"},
					&cli.StringFlag{Name: "summary", Usage: "One-sentence summary"},
					&cli.StringFlag{Name: "level", Usage: "beginner, intermediate or advanced", Value: string(models.LevelBeginner)},
					&cli.IntFlag{Name: "minutes", Usage: "Reading time", Value: scaffold.DefaultMinutes},
					&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
					&cli.StringFlag{Name: "category", Usage: "Category"},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
