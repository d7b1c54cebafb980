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

	"chivarun/internal/config"
	"chivarun/internal/draw"
	"chivarun/internal/game"
	"chivarun/internal/loop"
	"chivarun/internal/obstacle"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultCourseFile  = "course.yaml"
	defaultAssetDir    = "assets/sprites"
	carSpriteRef       = "car.txt"
)

// Shared across all SSH sessions: the parsed course, the initial
// obstacle batch, and one sprite cache so each asset file is read once
// per process.
var (
	course      config.Course
	courseBatch []obstacle.Obstacle
	spriteCache *obstacle.SpriteCache
	carSprite   *draw.Sprite
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	courseFile := config.GetEnv("COURSE_FILE", defaultCourseFile)
	assetDir := config.GetEnv("ASSET_DIR", defaultAssetDir)

	var err error
	course, courseBatch, err = config.Load(courseFile)
	if err != nil {
		log.Fatal("failed to load course", "file", courseFile, "err", err)
	}

	resolver := draw.DirResolver(assetDir)
	spriteCache = obstacle.NewSpriteCache(obstacle.Resolver(resolver))
	if carSprite, err = resolver(carSpriteRef); err != nil {
		log.Warn("car sprite unavailable, sessions draw a plain box", "err", err)
	}

	log.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath, "course", courseFile)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
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
		log.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs one game per SSH session. Sessions share the
// sprite cache but get their own engine, so each player drives an
// independent course.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		log.Info("new game session",
			"user", sess.User(), "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		engine := game.NewEngine(course, courseBatch, spriteCache)
		reader := bufio.NewReader(sess)
		opts := loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			CarSprite:    carSprite,
		}
		if err := loop.Run(reader, sess, engine, opts); err != nil {
			log.Error("game error", "user", sess.User(), "err", err)
		}

		log.Info("session ended", "user", sess.User())
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
