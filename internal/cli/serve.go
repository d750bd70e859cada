package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amterp/foxhole/internal/api"
	"github.com/amterp/foxhole/internal/service"
	"github.com/amterp/ra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultPort = 3000

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start the HTTP API with live updates")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(0).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on (will try incrementally if in use; defaults to config or 3000)").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(port int) {
	app, err := NewApp(false, zapcore.InfoLevel)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	if port == 0 {
		port = app.Config.Server.Port
	}
	if port == 0 {
		port = defaultPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := service.NewSession(ctx, app.Store, app.Logger)

	// Find an available port starting from the requested one
	actualPort := findAvailablePort(port)
	server := api.NewServer(session, app.Prefs, actualPort, app.Backend.WatchDir, app.Logger)

	fmt.Printf("Foxhole API running at http://localhost:%d/api/v1 (%s storage)\n", actualPort, app.Backend.Name)
	fmt.Println("Press Ctrl+C to stop")

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			Fatal(err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			app.Logger.Warn("shutdown failed", zap.Error(err))
		}
		<-errCh
	}
}

// findAvailablePort tries ports starting from startPort until it finds one that's available.
func findAvailablePort(startPort int) int {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		if isPortAvailable(port) {
			return port
		}
	}
	// If we couldn't find a port after maxAttempts, return the original and let it fail naturally
	return startPort
}

// isPortAvailable checks if a port is available by attempting to listen on it.
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}
