package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/eggcatch/internal/config"
	applog "github.com/tomz197/eggcatch/internal/logging"
	"github.com/tomz197/eggcatch/internal/loop"
	"github.com/tomz197/eggcatch/internal/session"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	// closeGrace bounds the final server close once players have left.
	closeGrace = 5 * time.Second
)

// server is everything the SSH handlers share.
type server struct {
	tuning   config.Tuning
	sessions *session.Manager
	logger   *log.Logger
}

func main() {
	logger := applog.New(os.Stderr, config.GetEnv("LOG_LEVEL", "info"))
	if err := run(logger); err != nil {
		logger.Fatal("ssh server", "err", err)
	}
}

func run(logger *log.Logger) error {
	tuning, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load tuning: %w", err)
	}

	addr := net.JoinHostPort(config.GetEnv("SSH_HOST", defaultHost), config.GetEnv("SSH_PORT", defaultPort))
	hostKey := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	srv := &server{
		tuning:   tuning,
		sessions: session.NewManager(logger),
		logger:   logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			srv.play,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		ssh.WrapConn(noDelay),
	}
	if hostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("egg catch listening", "addr", addr, "hostKey", hostKey)
		serveErr <- s.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	// Players get the shutdown screen and a little longer to leave.
	if n := srv.sessions.Count(); n > 0 {
		logger.Info("draining sessions", "live", n)
		if !srv.sessions.Shutdown(loop.ShutdownDisplay + closeGrace) {
			logger.Warn("closing with sessions still open", "live", srv.sessions.Count())
		}
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), closeGrace)
	defer cancel()
	return s.Shutdown(closeCtx)
}

// noDelay disables Nagle's algorithm so key presses reach the game at once.
func noDelay(_ ssh.Context, conn net.Conn) net.Conn {
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}
	return conn
}

// play runs one independent egg-catch round per SSH session.
func (srv *server) play(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		defer next(sess)

		pty, windows, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "egg catch needs a terminal: connect with ssh -t")
			return
		}

		handle := srv.sessions.Register(sess.User())
		defer srv.sessions.Unregister(handle.ID)
		handle.Resize(pty.Window.Width, pty.Window.Height)
		go followWindow(handle, windows)

		logger := srv.logger.With("user", sess.User(), "session", handle.ID)
		logger.Info("round started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, loop.Options{
			Tuning:       srv.tuning,
			TermSizeFunc: handle.TermSize,
			Logger:       logger,
			Notices:      handle.Notices,
			Inactivity:   true,
		})
		if err != nil {
			logger.Error("round failed", "err", err)
			return
		}
		logger.Info("round ended")
	}
}

// followWindow copies window-change requests into the session handle until
// the client disconnects and the channel closes.
func followWindow(h *session.Handle, windows <-chan ssh.Window) {
	for win := range windows {
		h.Resize(win.Width, win.Height)
	}
}
