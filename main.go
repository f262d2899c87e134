package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/tictactoe-board/internal"
	"github.com/rocketscienceinc/tictactoe-board/internal/config"
)

// main - is the entry point of the application. It parses the command line and runs the chosen command.
func main() {
	cmd := &cli.Command{
		Name:  "tictactoe",
		Usage: "N x N tic-tac-toe for two players on one device",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "./config.yml",
				Usage:   "path to the yaml config file",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve the board over HTTP and WebSocket",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					conf, err := config.Load(cmd.String("config"))
					if err != nil {
						return err
					}

					return app.RunApp(ctx, initLogger(conf, os.Stdout), conf)
				},
			},
			{
				Name:  "play",
				Usage: "play in the terminal",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "dimension",
						Aliases: []string{"n"},
						Usage:   "board size, defaults to game.default-dimension",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					conf, err := config.Load(cmd.String("config"))
					if err != nil {
						return err
					}

					// stdout belongs to the board
					logger := initLogger(conf, os.Stderr)

					return app.RunTerminal(ctx, logger, conf, os.Stdin, os.Stdout, int(cmd.Int("dimension")))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "app run failed: %v\n", err)
		os.Exit(1)
	}
}

// initialize logger.
func initLogger(conf *config.Config, out *os.File) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}
