package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/inconshreveable/log15/v3"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/jigsawgame/game/config"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
	"github.com/wricardo/mcp-training/jigsawgame/logging"
)

var log = log15.New("module", "desktop")

const windowTitle = "Jigsaw - Desktop Client"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "jigsaw-desktop",
		Usage: "Play the jigsaw puzzle locally or watch a server session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Value:   "http://localhost:8080",
				Usage:   "game server base URL used by watch mode",
				Sources: cli.EnvVars("JIGSAW_SERVER"),
			},
			&cli.StringFlag{
				Name:  "watch",
				Usage: "session ID to watch instead of playing locally",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "puzzle config file (.json or .yaml) for local play",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logging.Setup(cmd.Bool("debug"))

	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	game := NewGame(nil)
	var next func() (Scene, error)
	subtitle := cfg.Messages.Welcome

	if sessionID := cmd.String("watch"); sessionID != "" {
		server := cmd.String("server")
		subtitle = fmt.Sprintf("Watching session %s on %s", sessionID, server)
		next = func() (Scene, error) {
			return newWatchScene(ctx, server, sessionID)
		}
	} else {
		next = func() (Scene, error) {
			return newPlayScene(cfg)
		}
	}
	game.SwitchTo(newIntroScene(game, "JIGSAW", subtitle, next))

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info("starting desktop client", "config", cfg.Name, "watch", cmd.String("watch"))
	return ebiten.RunGame(game)
}

// loadConfig reads a puzzle config file, or returns the default puzzle
func loadConfig(path string) (*puzzle.Config, error) {
	if path == "" {
		return puzzle.DefaultConfig(), nil
	}

	format, ok := config.FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("unsupported config file %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return config.Parse(data, format)
}
