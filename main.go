// Command ludo starts the Ludo game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, config directory, logging, UI timers, and optional
// ngrok tunneling for easy external access during development. Every flag can
// also be set from the environment or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/ludo/api"
	"github.com/wricardo/mcp-training/ludo/game/config"
	"github.com/wricardo/mcp-training/ludo/game/service"
	"github.com/wricardo/mcp-training/ludo/game/session"
	"github.com/wricardo/mcp-training/ludo/internal/logging"
	"github.com/wricardo/mcp-training/ludo/transport/mcp"
	"github.com/wricardo/mcp-training/ludo/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Ludo Game Server"
)

const cleanupInterval = time.Hour

// settings is the resolved command line and environment configuration.
type settings struct {
	host        string
	port        int
	configDir   string
	logLevel    string
	logFormat   string
	messageTTL  time.Duration
	finishDelay time.Duration
	sessionTTL  time.Duration
	externalAPI string

	ngrokEnabled bool
	ngrokAuth    string
	ngrokDomain  string
}

func (s settings) addr() string {
	return fmt.Sprintf("%s:%d", s.host, s.port)
}

func settingsFrom(cmd *cli.Command) settings {
	s := settings{
		host:         cmd.String("host"),
		port:         cmd.Int("port"),
		configDir:    cmd.String("config-dir"),
		logLevel:     cmd.String("log-level"),
		logFormat:    cmd.String("log-format"),
		messageTTL:   cmd.Duration("message-ttl"),
		finishDelay:  cmd.Duration("finish-delay"),
		sessionTTL:   cmd.Duration("session-ttl"),
		externalAPI:  cmd.String("external-api"),
		ngrokEnabled: cmd.Bool("ngrok"),
		ngrokAuth:    cmd.String("ngrok-auth"),
		ngrokDomain:  cmd.String("ngrok-domain"),
	}
	if cmd.Bool("debug") {
		s.logLevel = "debug"
	}
	return s
}

// newApp builds the command tree. Running without a subcommand starts the
// HTTP server.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "ludo",
		Usage:   "Ludo rules engine with REST, WebSocket and MCP surfaces",
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing game presets", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error", Sources: cli.EnvVars("LOG_LEVEL")},
			&cli.StringFlag{Name: "log-format", Value: "console", Usage: "console or json", Sources: cli.EnvVars("LOG_FORMAT")},
			&cli.BoolFlag{Name: "debug", Usage: "Shortcut for --log-level debug"},
			&cli.DurationFlag{Name: "message-ttl", Value: service.DefaultMessageTTL, Usage: "How long advisory messages stay visible (0 keeps them)", Sources: cli.EnvVars("MESSAGE_TTL")},
			&cli.DurationFlag{Name: "finish-delay", Value: service.DefaultFinishDelay, Usage: "Pause after a player finishes (0 waits for acknowledge)", Sources: cli.EnvVars("FINISH_DELAY")},
			&cli.DurationFlag{Name: "session-ttl", Value: 24 * time.Hour, Usage: "Remove sessions idle for longer than this", Sources: cli.EnvVars("SESSION_TTL")},
			&cli.StringFlag{Name: "external-api", Value: "http://localhost:8080", Usage: "API server reused by stdio-mcp when reachable", Sources: cli.EnvVars("EXTERNAL_API")},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  runServer,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server backed by an external or internal HTTP API",
				Action:  runStdioMCP,
			},
		},
		Action: runServer,
	}
}

// main loads .env, then runs the selected mode.
func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: error loading .env file: %v\n", err)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

// services groups the long-lived components shared by both modes.
type services struct {
	game      service.GameService
	sessions  *session.Manager
	scheduler *service.Scheduler
	hub       *websocket.Hub
	logger    *zap.Logger
}

// initializeServices wires the config and session managers, the hub and the
// game service. State changes, including timer-driven ones, are broadcast to
// the session's WebSocket clients.
func initializeServices(s settings, logger *zap.Logger) (*services, error) {
	configManager, err := config.NewManager(s.configDir, config.WithLogger(logger.Named("config")))
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager(session.WithLogger(logger.Named("session")))
	hub := websocket.NewHub(websocket.WithLogger(logger.Named("ws")))
	scheduler := service.NewScheduler(nil)

	gameService := service.NewGameService(sessionManager, configManager,
		service.WithLogger(logger.Named("service")),
		service.WithMessageTTL(s.messageTTL),
		service.WithFinishDelay(s.finishDelay),
		service.WithScheduler(scheduler),
		service.WithOnChange(hub.BroadcastToSession),
	)

	return &services{
		game:      gameService,
		sessions:  sessionManager,
		scheduler: scheduler,
		hub:       hub,
		logger:    logger,
	}, nil
}

// cleanupExpired removes idle sessions and their pending timers.
func (svc *services) cleanupExpired(maxAge time.Duration) int {
	removed := svc.sessions.CleanupExpiredSessions(maxAge)
	for _, id := range removed {
		svc.scheduler.CancelSession(id)
	}
	if len(removed) > 0 {
		svc.logger.Info("cleaned up expired sessions", zap.Int("count", len(removed)))
	}
	return len(removed)
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the provided retention window.
func (svc *services) sessionCleanupRoutine(ctx context.Context, maxAge time.Duration) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.cleanupExpired(maxAge)
		}
	}
}

func setup(cmd *cli.Command) (settings, *services, error) {
	s := settingsFrom(cmd)

	logger, err := logging.New(s.logLevel, s.logFormat)
	if err != nil {
		return s, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	svc, err := initializeServices(s, logger)
	if err != nil {
		return s, nil, err
	}
	return s, svc, nil
}

// newHandler combines the REST API, the WebSocket endpoint and the MCP
// streamable HTTP endpoint.
func newHandler(svc *services, baseURL string) http.Handler {
	apiServer := api.NewServer(svc.game, svc.hub, api.WithLogger(svc.logger.Named("api")))
	mcpClient := mcp.NewClient(baseURL)

	mux := http.NewServeMux()
	mux.Handle("/", apiServer)
	mux.Handle("/mcp", server.NewStreamableHTTPServer(mcpClient.GetMCPServer()))
	return mux
}

// runServer starts the HTTP server with REST API, WebSocket hub, and an /mcp endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func runServer(ctx context.Context, cmd *cli.Command) error {
	s, svc, err := setup(cmd)
	if err != nil {
		return err
	}
	logger := svc.logger
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := s.addr()
	handler := newHandler(svc, "http://"+addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("starting",
		zap.String("app", AppName),
		zap.String("version", Version),
		zap.String("mode", "server"),
		zap.String("config_dir", s.configDir))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.hub.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.sessionCleanupRoutine(ctx, s.sessionTTL)
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			zap.String("api", fmt.Sprintf("http://%s/api", addr)),
			zap.String("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)),
			zap.String("mcp", fmt.Sprintf("http://%s/mcp", addr)))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if s.ngrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, s, handler, logger.Named("ngrok"))
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			stop()
			wg.Wait()
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	svc.scheduler.Stop()

	wg.Wait()
	logger.Info("server stopped")
	return nil
}

// runNgrok serves handler through an ngrok tunnel until ctx is done.
func runNgrok(ctx context.Context, s settings, handler http.Handler, logger *zap.Logger) {
	if s.ngrokAuth == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if s.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(s.ngrokDomain))
		logger.Info("using custom ngrok domain", zap.String("domain", s.ngrokDomain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(s.ngrokAuth))
	if err != nil {
		logger.Error("failed to start ngrok tunnel", zap.Error(err))
		return
	}

	ngrokURL := tun.URL()
	logger.Info("ngrok tunnel established",
		zap.String("url", ngrokURL),
		zap.String("api", ngrokURL+"/api"),
		zap.String("mcp", ngrokURL+"/mcp"))

	tunnelServer := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		tunnelServer.Close()
	}()

	if err := tunnelServer.Serve(tun); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("ngrok server error", zap.Error(err))
	}
	logger.Info("ngrok tunnel closed")
}

// apiAvailable reports whether a Ludo API answers at baseURL.
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runStdioMCP runs an MCP stdio server. It reuses the external API when one
// answers; otherwise it starts an internal HTTP API bound to a random loopback
// port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	s, svc, err := setup(cmd)
	if err != nil {
		return err
	}
	logger := svc.logger
	defer logger.Sync()

	baseURL := s.externalAPI
	if baseURL != "" && apiAvailable(baseURL) {
		logger.Info("external API server found, using it for MCP", zap.String("url", baseURL))
	} else {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = "http://" + listener.Addr().String()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go svc.hub.Run(ctx)
		defer svc.scheduler.Stop()

		httpServer := &http.Server{
			Handler: api.NewServer(svc.game, svc.hub, api.WithLogger(logger.Named("api"))),
		}
		defer httpServer.Close()

		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("internal HTTP server error", zap.Error(err))
			}
		}()

		logger.Info("internal HTTP server started for MCP stdio", zap.String("url", baseURL))
	}

	mcpClient := mcp.NewClient(baseURL)
	logger.Info("MCP stdio server ready", zap.String("api", baseURL))

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
