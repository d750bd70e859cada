package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/amterp/foxhole/internal/service"
	"github.com/amterp/foxhole/internal/store"
	"go.uber.org/zap"
)

// Server wraps the HTTP server for the web view.
type Server struct {
	httpServer *http.Server
	watcher    *FileWatcher
	wsHub      *WebSocketHub
	logger     *zap.Logger
}

// NewServer creates a server for session on port. If watchDir is not empty,
// changes made there by other processes are picked up and broadcast.
func NewServer(session *service.Session, prefs *service.PrefsService, port int, watchDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	wsHub := NewWebSocketHub(session, logger)
	session.Subscribe(wsHub)

	handler := NewHandler(session, prefs, logger)
	handler.AddPrefsListener(wsHub)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)

	var watcher *FileWatcher
	if watchDir != "" {
		var err error
		watcher, err = NewFileWatcher(watchDir, logger)
		if err != nil {
			logger.Warn("failed to create file watcher", zap.Error(err))
		} else {
			watcher.Subscribe(&reloader{session: session, prefs: prefs, hub: wsHub, logger: logger})
		}
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      Logging(logger, Cors(mux)),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher: watcher,
		wsHub:   wsHub,
		logger:  logger,
	}
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. Blocks until shutdown.
func (s *Server) Serve(ln net.Listener) error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			s.logger.Warn("failed to start file watcher", zap.Error(err))
		}
	}

	err := s.httpServer.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn("failed to stop file watcher", zap.Error(err))
		}
	}
	s.wsHub.CloseAll()

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is configured to listen on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the server's root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// reloader reacts to on-disk changes made by other processes, such as the
// CLI writing while the server runs.
type reloader struct {
	session *service.Session
	prefs   *service.PrefsService
	hub     *WebSocketHub
	logger  *zap.Logger
}

// OnFileChange implements FileWatcherSubscriber.
func (r *reloader) OnFileChange(change FileChange) {
	ctx := context.Background()

	switch change.Key {
	case store.KeyCards:
		// Reload publishes to the hub only when the collection differs,
		// so the server's own writes are not echoed.
		r.session.Reload(ctx)
	case store.KeyTheme, store.KeyUserName:
		r.logger.Debug("preference changed on disk", zap.String("key", change.Key))
		r.hub.OnPrefs(r.prefs.Get(ctx))
	}
}
