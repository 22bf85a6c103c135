package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env file", "error", err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "character-search",
		Short:         "Search characters by name",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().String("api-url", "", "character search endpoint")
	if err := viper.BindPFlag("api.url", root.PersistentFlags().Lookup("api-url")); err != nil {
		slog.Error("failed to bind api-url flag", "error", err)
	}

	root.AddCommand(newTUICmd(), newBotCmd())
	return root
}

func initConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("api.url", "http://localhost:8080/search")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ttl", "24h")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "character-search.log")

	tokenErr := viper.BindEnv("TelegramToken", "TELEGRAM_TOKEN")
	if tokenErr != nil {
		slog.Error("failed to bind telegram token", "error", tokenErr)
	}
	apiErr := viper.BindEnv("api.url", "CHARACTER_API_URL")
	if apiErr != nil {
		slog.Error("failed to bind character api url", "error", apiErr)
	}
	redisErr := viper.BindEnv("redis.password", "REDIS_PASSWORD")
	if redisErr != nil {
		slog.Error("failed to bind redis password", "error", redisErr)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

func logLevel() slog.Level {
	switch strings.ToLower(viper.GetString("log.level")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
