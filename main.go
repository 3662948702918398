// Command jigsawgame starts the jigsaw puzzle server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, config directory, debug logging, session expiry,
// and optional ngrok tunneling for easy external access during development.
// Every flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/inconshreveable/log15/v3"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
	ngrokLog15 "golang.ngrok.com/ngrok/log/log15"

	"github.com/wricardo/mcp-training/jigsawgame/api"
	"github.com/wricardo/mcp-training/jigsawgame/game/config"
	"github.com/wricardo/mcp-training/jigsawgame/game/service"
	"github.com/wricardo/mcp-training/jigsawgame/game/session"
	"github.com/wricardo/mcp-training/jigsawgame/logging"
	"github.com/wricardo/mcp-training/jigsawgame/transport/mcp"
	"github.com/wricardo/mcp-training/jigsawgame/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Jigsaw Game Server"
)

// Session housekeeping
const (
	cleanupInterval   = time.Hour
	defaultSessionTTL = 24 * time.Hour
)

var log = log15.New("module", "main")

// main loads .env, then hands the command line to urfave/cli.
func main() {
	// Load .env file if it exists (ignore error if not found)
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newCommand()
	cmd.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		logging.Setup(cmd.Bool("debug"))
		if envErr == nil {
			log.Debug("loaded environment variables from .env file")
		} else if !os.IsNotExist(envErr) {
			log.Warn("error loading .env file", "err", envErr)
		}
		return ctx, nil
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Crit("fatal", "err", err)
		os.Exit(1)
	}
}

// newCommand builds the CLI: global flags, the server command (default) and stdio-mcp.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "jigsawgame",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing puzzle configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
			&cli.DurationFlag{
				Name:    "session-ttl",
				Value:   defaultSessionTTL,
				Usage:   "Drop sessions idle for longer than this",
				Sources: cli.EnvVars("SESSION_TTL"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: runServer,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint (default)",
				Action:  runServer,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server, reusing a running API server or starting an internal one",
				Action:  runStdioMCP,
			},
		},
	}
}

// initializeServices wires session/config managers and the game service.
func initializeServices(configDir string) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, configManager)

	log.Info("services ready", "config_dir", configDir, "configs", configManager.Count())
	return gameService, sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within ttl. It returns when ctx is cancelled.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				log.Info("cleaned up expired sessions", "removed", removed)
			}
		}
	}
}

// newRouter mounts the REST API, WebSocket hub and the /mcp endpoint on one mux.
// The /mcp tools call back into the REST API at baseURL.
func newRouter(gameService service.GameService, hub *websocket.Hub, baseURL string) http.Handler {
	apiServer := api.NewServer(gameService, hub)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled it also provisions a public tunnel. It blocks until ctx is cancelled.
func runServer(ctx context.Context, cmd *cli.Command) error {
	gameService, sessionManager, err := initializeServices(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go sessionCleanupRoutine(ctx, sessionManager, cleanupInterval, cmd.Duration("session-ttl"))

	hub := websocket.NewHub()
	go hub.Run(ctx)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	handler := newRouter(gameService, hub, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info("HTTP server listening", "addr", addr,
			"api", fmt.Sprintf("http://%s/api", addr),
			"ws", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr),
			"mcp", fmt.Sprintf("http://%s/mcp", addr))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), handler)
		}()
	}

	<-ctx.Done()
	log.Info("shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "err", err)
	}

	wg.Wait()
	log.Info("server stopped")

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// runNgrok serves handler through an ngrok tunnel until ctx is cancelled.
func runNgrok(ctx context.Context, authToken, domain string, handler http.Handler) {
	if authToken == "" {
		log.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	log.Info("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Info("using custom ngrok domain", "domain", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(authToken),
		ngrok.WithLogger(ngrokLog15.NewLogger(log15.New("module", "ngrok"))),
	)
	if err != nil {
		log.Error("failed to start ngrok tunnel", "err", err)
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Warn("failed to close ngrok tunnel", "err", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Info("ngrok tunnel established", "url", ngrokURL,
		"api", ngrokURL+"/api",
		"ws", ngrokURL+"/ws?session=<session_id>",
		"mcp", ngrokURL+"/mcp")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Error("ngrok server error", "err", err)
	}
	log.Info("ngrok tunnel closed")
}

// externalAPIAvailable reports whether an API server answers at baseURL.
func externalAPIAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runStdioMCP runs an MCP stdio server.
// It tries to reuse an API server at the configured host and port; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	externalURL := fmt.Sprintf("http://%s:%d", cmd.String("host"), cmd.Int("port"))
	log.Info("checking for external API server", "url", externalURL)

	baseURL := externalURL
	if !externalAPIAvailable(externalURL) {
		log.Info("no external API server found, starting internal HTTP server")

		gameService, sessionManager, err := initializeServices(cmd.String("config-dir"))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go sessionCleanupRoutine(ctx, sessionManager, cleanupInterval, cmd.Duration("session-ttl"))

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub()
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("internal HTTP server error", "err", err)
			}
		}()
		defer httpServer.Close()

		baseURL = fmt.Sprintf("http://%s", listener.Addr().String())
		log.Info("internal HTTP server started", "url", baseURL)
	} else {
		log.Info("external API server found, using it for MCP", "url", externalURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Info("MCP stdio server ready", "api", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
