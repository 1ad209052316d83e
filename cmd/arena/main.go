package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/actors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/config"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/events"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/handlers/tui"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/logging"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/repositories/matches"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/round"
)

// terminalChannel is the only channel a terminal session plays in
const terminalChannel = "terminal"

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file
	envErr := godotenv.Load()

	flags := pflag.NewFlagSet("arena", pflag.ContinueOnError)
	config.AddFlags(flags)
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return errors.ExitGeneric
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return errors.ExitGeneric
	}

	// The screen belongs to the UI, so logs only go to the file if there is one
	if err := logging.InitWithConsole("arena", cfg.Log, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logging: %v\n", err)
		return errors.ExitGeneric
	}
	defer func() { _ = logging.Sync() }()
	logger := logging.L()
	if envErr != nil {
		logger.Debug("no .env file found")
	}

	bus := events.NewBus()
	runtime := actors.NewRuntime(0, logger)
	defer runtime.Shutdown()

	if redisClient := connectRedis(cfg.Redis.URL, logger); redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("error closing Redis connection", zap.Error(err))
			}
		}()
		publisher, err := events.NewRedisPublisher(&events.RedisPublisherConfig{Client: redisClient})
		if err != nil {
			logger.Warn("spectator feed disabled", zap.Error(err))
		} else {
			bus.SubscribeAll(publisher)
		}
	}

	var pacer round.Pacer = round.NewTimerPacer(cfg.Arena.AttackPace)
	if cfg.Arena.AttackPace == 0 {
		pacer = round.NoPacer{}
	}

	matchService := match.NewService(&match.ServiceConfig{
		Repository:     matches.NewInMemoryRepository(),
		Runtime:        runtime,
		Bus:            bus,
		Pacer:          pacer,
		RevealMonsters: cfg.Arena.RevealMonsters,
		Logger:         logger,
	})

	players := make([]match.PlayerInput, len(cfg.Arena.Players))
	for i, p := range cfg.Arena.Players {
		players[i] = match.PlayerInput{Name: p.Name, Class: p.Class}
	}

	sink := tui.NewSink()
	bus.SubscribeAll(sink.Listener())

	model := tui.NewModel(&tui.ModelConfig{
		Matches: matchService,
		Input: &match.CreateMatchInput{
			ChannelID: terminalChannel,
			Monsters:  cfg.Arena.Monsters,
			Players:   players,
			Sink:      sink,
			Seed:      cfg.Arena.Seed,
			OnFatal:   sink.Fatal,
		},
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	sink.Attach(program)

	final, err := program.Run()
	if err != nil {
		fatal := errors.WrapWithCode(err, errors.CodeUnavailable, "failed to run the terminal UI").
			WithExitCode(errors.ExitPresentationInit)
		logger.Error("terminal UI failed", zap.Error(fatal))
		fmt.Fprintln(os.Stderr, fatal)
		return errors.ExitCode(fatal)
	}

	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		logger.Error("match stopped", zap.String("match_id", m.MatchID()), zap.Error(m.Err()))
		fmt.Fprintln(os.Stderr, m.Err())
		return errors.ExitCode(m.Err())
	}
	return 0
}

// connectRedis returns nil when url is empty or Redis cannot be reached
func connectRedis(url string, logger *zap.Logger) *redis.Client {
	if url == "" {
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("failed to parse Redis URL", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("failed to connect to Redis", zap.Error(err))
		_ = client.Close()
		return nil
	}

	logger.Info("connected to Redis")
	return client
}
