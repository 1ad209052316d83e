package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/actors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/clients/dnd5e"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/config"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/events"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/handlers/discord"
	httpapi "github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/handlers/http"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/logging"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/repositories/matches"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/round"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file
	envErr := godotenv.Load()

	flags := pflag.NewFlagSet("bot", pflag.ContinueOnError)
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
	if err := cfg.ValidateDiscord(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		return errors.ExitGeneric
	}

	if err := logging.Init("bot", cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logging: %v\n", err)
		return errors.ExitGeneric
	}
	defer func() { _ = logging.Sync() }()
	logger := logging.L()
	if envErr != nil {
		logger.Info("no .env file found")
	} else {
		logger.Info("loaded .env file")
	}

	logger.Info("starting bot",
		zap.String("app_id", cfg.Discord.AppID),
		zap.String("guild_id", cfg.Discord.GuildID))

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logger.Error("failed to create Discord session", zap.Error(err))
		return errors.ExitPresentationInit
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
			logger.Info("publishing match events to Redis")
		}
	}

	serviceCfg := &match.ServiceConfig{
		Repository:     matches.NewInMemoryRepository(),
		Runtime:        runtime,
		Bus:            bus,
		RevealMonsters: cfg.Arena.RevealMonsters,
		Logger:         logger,
	}
	if cfg.Arena.AttackPace == 0 {
		serviceCfg.Pacer = round.NoPacer{}
	} else {
		serviceCfg.Pacer = round.NewTimerPacer(cfg.Arena.AttackPace)
	}

	// Create D&D 5e API client for monster names
	if cfg.DND5E.MonsterNames {
		dndClient, err := dnd5e.New(&dnd5e.Config{
			HttpClient: &nethttp.Client{
				Timeout: cfg.DND5E.Timeout,
			},
		})
		if err != nil {
			logger.Warn("monster names disabled", zap.Error(err))
		} else {
			serviceCfg.MonsterNames = dndClient
		}
	}

	matchService := match.NewService(serviceCfg)

	handler := discord.NewHandler(&discord.HandlerConfig{
		Messenger:    dg,
		MatchService: matchService,
		Bus:          bus,
		Arena:        cfg.Arena,
		Logger:       logger,
	})
	dg.AddHandler(handler.HandleInteraction)

	if err := dg.Open(); err != nil {
		logger.Error("failed to open Discord connection", zap.Error(err))
		return errors.ExitPresentationInit
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Warn("failed to close Discord connection", zap.Error(err))
		}
	}()

	// Use empty guild ID for global commands
	if err := handler.RegisterCommands(dg, cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		logger.Error("failed to register commands", zap.Error(err))
		return errors.ExitGeneric
	}
	if cfg.Discord.GuildID == "" {
		logger.Info("registered global commands (may take up to 1 hour to propagate)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	if cfg.HTTP.Addr != "" {
		server := httpapi.NewServer(&httpapi.ServerConfig{
			Addr:         cfg.HTTP.Addr,
			MatchService: matchService,
			Logger:       logger,
		})
		g.Go(func() error {
			if err := server.Start(); err != nil && err != nethttp.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	logger.Info("bot is running, press CTRL-C to exit")
	if err := g.Wait(); err != nil {
		logger.Error("bot stopped", zap.Error(err))
		return errors.ExitGeneric
	}

	logger.Info("shutting down")
	return 0
}

// connectRedis returns nil when url is empty or Redis cannot be reached
func connectRedis(url string, logger *zap.Logger) *redis.Client {
	if url == "" {
		logger.Info("no REDIS_URL found, spectator feed disabled")
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
