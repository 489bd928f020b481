package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/spacewaves/internal/config"
	"github.com/tomz197/spacewaves/internal/draw"
	"github.com/tomz197/spacewaves/internal/loop/client"
	gameconfig "github.com/tomz197/spacewaves/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// server tracks live game sessions so shutdown can notify and wait for them.
type server struct {
	logger     *log.Logger
	shutdownCh chan struct{}
	sessions   sync.WaitGroup
	idleWarn   time.Duration
	idleKick   time.Duration
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "ssh"})

	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}
	if level, err := log.ParseLevel(config.GetEnv("SPACEWAVES_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	srv := &server{
		logger:     logger,
		shutdownCh: make(chan struct{}),
		idleWarn:   config.GetEnvDuration("IDLE_WARN", gameconfig.InactivityWarnUser*time.Second),
		idleKick:   config.GetEnvDuration("IDLE_DISCONNECT", gameconfig.InactivityDisconnectUser*time.Second),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Show every player the shutdown notice and give them time to read it.
	close(srv.shutdownCh)
	wait := time.Duration(gameconfig.ShutdownDisplaySeconds*float64(time.Second)) + 5*time.Second
	if srv.wait(wait) {
		logger.Info("all players disconnected")
	} else {
		logger.Warn("players still connected, closing anyway", "waited", wait)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// wait blocks until every session ended or timeout passed. It reports
// whether all sessions ended.
func (srv *server) wait(timeout time.Duration) bool {
	ch := make(chan struct{})
	go func() {
		srv.sessions.Wait()
		close(ch)
	}()
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

// gameMiddleware runs an independent game for each SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		select {
		case <-srv.shutdownCh:
			fmt.Fprintln(sess, "Server is shutting down. Please reconnect in a moment.")
			return
		default:
		}

		srv.sessions.Add(1)
		defer srv.sessions.Done()

		srv.logger.Info("new game session",
			"user", sess.User(), "term", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		c := client.NewClient(reader, sess, client.Options{
			TermSizeFunc:   sizeTracker.getSize,
			Username:       sess.User(),
			Logger:         srv.logger,
			ShutdownCh:     srv.shutdownCh,
			IdleWarn:       srv.idleWarn,
			IdleDisconnect: srv.idleKick,
		})
		if err := c.Run(sess.Context()); err != nil {
			srv.logger.Error("game error", "user", sess.User(), "err", err)
		}

		srv.logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
