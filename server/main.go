package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	mrand "math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"rummy-player/server/agent"
	"rummy-player/server/config"
	"rummy-player/server/engine"
	"rummy-player/server/learning"
	"rummy-player/server/registry"
	"rummy-player/server/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, closeLog := newLogger(cfg)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		logger.Error().Err(err).Str("mode", cfg.StatsMode).Msg("stats storage unavailable, learning stays in memory")
		backend = store.NewMemory()
	}
	learner := learning.Open(ctx, backend, cfg.PlayerName, logger)

	seed := cfg.DecisionSeed
	if seed == 0 {
		seed = int64(secureBaseSeed())
	}
	policy := engine.NewDrawPolicy(cfg.ExplorationRate, mrand.New(mrand.NewSource(seed)))
	sess := agent.NewSession(cfg.PlayerName, policy, learner, logger)

	fatal := func(err error, msg string) {
		_ = learner.Close(context.Background())
		closeLog()
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}

	// Listen before registering so the game server can call straight back.
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(err, "listen failed")
	}
	srv := &http.Server{
		Handler:      Router(sess, learner, stop, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	regCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	resp, err := registry.Register(regCtx, nil, cfg.RegisterURL(),
		registry.NewAnnouncement(cfg.PlayerName, cfg.Host, cfg.Port))
	cancel()
	if err != nil {
		_ = srv.Close()
		fatal(err, "failed to register with game server "+cfg.RegisterURL())
	}
	fmt.Printf("Registered %s at %s: %v\n", cfg.PlayerName, cfg.RegisterURL(), resp)
	logger.Info().Str("addr", addr).Str("player", cfg.PlayerName).
		Str("stats_mode", cfg.StatsMode).Float64("epsilon", cfg.ExplorationRate).Msg("serving")

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server stopped")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	if err := learner.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("final stats flush failed")
	}
	logger.Warn().Msg("player client stopped")
}

// newLogger writes to the configured log file and mirrors to the console.
// Info level in debug mode, warnings and up otherwise.
func newLogger(cfg config.Config) (zerolog.Logger, func()) {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.WarnLevel
	if cfg.Debug {
		level = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}

	var out io.Writer = console
	closeFn := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			out = zerolog.MultiLevelWriter(f, console)
			closed := false
			closeFn = func() {
				if !closed {
					closed = true
					_ = f.Close()
				}
			}
		} else {
			fmt.Fprintf(os.Stderr, "log file %s unavailable, logging to stderr: %v\n", cfg.LogFile, err)
		}
	}
	logger := zerolog.New(out).Level(level).With().Timestamp().Str("player", cfg.PlayerName).Logger()
	return logger, closeFn
}

func secureBaseSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err == nil {
		return binary.LittleEndian.Uint64(b[:]) ^ uint64(time.Now().UnixNano()) ^ uint64(os.Getpid())
	}
	return uint64(time.Now().UnixNano()) ^ 0xA5A5A5A5A5A5A5A5
}
