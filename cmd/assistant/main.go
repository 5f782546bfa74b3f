// Command assistant tracks a live Bisca game from the terminal and recommends plays.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"bisca/internal/app"
	"bisca/internal/config"
	"bisca/internal/logging"
	"bisca/internal/ports"
	"bisca/internal/ports/memory"
	"bisca/internal/ports/redisstore"
)

func main() {
	flags := pflag.NewFlagSet("assistant", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to a config file (json, yaml or toml)")
	flags.String("store", config.StoreMemory, "snapshot store: memory or redis")
	flags.String("snapshot.slot", "bisca-game-storage", "snapshot slot key")
	flags.Duration("snapshot.ttl", 0, "expire idle redis snapshots after this long (0 keeps them)")
	flags.String("redis.addr", "localhost:6379", "redis address")
	flags.String("redis.password", "", "redis password")
	flags.Int("redis.db", 0, "redis database")
	flags.String("log.level", "info", "log level: debug, info, warn or error")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewSlog(cfg.Log.Level, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open %s store: %v", cfg.Store, err)
		os.Exit(1)
	}
	defer closeStore()

	sess, err := app.OpenSession(ctx, app.NewService(nil, logger), store, cfg.Snapshot.Slot, logger.WithField("slot", cfg.Snapshot.Slot))
	if err != nil {
		logger.Error("Failed to open session: %v", err)
		os.Exit(1)
	}
	logger.Info("Assistant ready (store %s).", cfg.Store)

	if err := run(ctx, sess, cfg.Game.DefaultPlayerCount, os.Stdin, os.Stdout); err != nil {
		logger.Error("Input error: %v", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, func(), error) {
	if cfg.Store == config.StoreRedis {
		s, err := redisstore.New(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			TTL:      cfg.Snapshot.TTL,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return memory.NewStore(), func() {}, nil
}

// run reads commands from in until quit, EOF or cancellation.
func run(ctx context.Context, sess *app.Session, defaultPlayers int, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()
		if line == "" {
			fmt.Fprint(out, "> ")
			continue
		}
		cmd, err := parseCommand(line, defaultPlayers)
		if err != nil {
			fmt.Fprintln(out, err)
			fmt.Fprint(out, "> ")
			continue
		}
		if cmd.quit {
			return nil
		}
		execute(ctx, sess, cmd, out)
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

func execute(ctx context.Context, sess *app.Session, cmd command, out io.Writer) {
	state := sess.State()
	switch cmd.query {
	case queryScore:
		renderScore(out, sess.Service().Scorecard(state))
		return
	case queryLeader:
		renderLeader(out, state, sess.Service())
		return
	case queryStyles:
		renderStyles(out, state)
		return
	case queryHelp:
		fmt.Fprintln(out, usage)
		return
	}
	res := sess.Dispatch(ctx, cmd.action)
	renderResult(out, res, sess.State())
}
