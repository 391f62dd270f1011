package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"nexuslink/internal/application"
	"nexuslink/internal/delivery/discord"
	"nexuslink/internal/delivery/twitch"
	"nexuslink/internal/models"
	"nexuslink/internal/repository"
	"nexuslink/internal/resolver"
	"nexuslink/pkg/config"
	"nexuslink/pkg/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	db, err := repository.NewPostgresDB(&cfg.Repo)
	if err != nil {
		log.Error("failed to init db: %s", err.Error())
		return
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := repository.RunMigrations(db, migrationFS); err != nil {
		log.Error("failed to run migrations: %s", err.Error())
		return
	}
	log.Info("Migrations applied successfully")

	repos := repository.NewRepository(&cfg.Repo, db)

	resolvers := resolver.Registry{
		models.PlatformMinecraft: resolver.NewCached(resolver.NewMinecraftResolver()),
		models.PlatformTwitch:    resolver.NewTwitchResolver(cfg.TwitchClientID, cfg.TwitchClientSecret),
	}

	services := application.NewService(repos, resolvers, log)

	discordBot := discord.NewBot(&cfg, services, log)
	twitchBot := twitch.NewBot(&cfg, services, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := discordBot.Init(); err != nil {
		log.Error("failed to init discord bot: %s", err.Error())
		return
	}

	go func() {
		if err := discordBot.Run(ctx); err != nil {
			log.Error("discord bot run error: %s", err.Error())
		}
	}()

	go func() {
		if err := twitchBot.Run(ctx); err != nil {
			log.Error("twitch bot run error: %s", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	twitchBot.Stop()
	discordBot.Stop()
	log.Info("Bots Stopped")
}
