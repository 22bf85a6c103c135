package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"character-search/internal/api"
	"character-search/internal/bot"
	"character-search/internal/redis"
	"character-search/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Search characters from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}
}

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Serve character search as a Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot()
		},
	}
}

func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logFile, err := os.OpenFile(viper.GetString("log.file"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)

	characterAPI := api.NewCharacterAPI(viper.GetString("api.url"))
	program := tea.NewProgram(tui.NewModel(ctx, characterAPI), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		slog.Error("tui exited with error", "error", err)
		return err
	}
	return nil
}

func runBot() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)

	redisClient, err := redis.NewRedisClient(
		viper.GetString("redis.address"),
		viper.GetString("redis.password"),
		viper.GetInt("redis.db"),
		viper.GetDuration("redis.ttl"),
	)
	if err != nil {
		slog.Error("failed to create Redis client", "error", err)
		return err
	}
	defer redisClient.Close()

	characterAPI := api.NewCharacterAPI(viper.GetString("api.url"))
	tgBot, err := bot.NewBot(viper.GetString("TelegramToken"), redisClient, characterAPI)
	if err != nil {
		slog.Error("failed to create bot", slog.String("error", err.Error()))
		return err
	}

	tgBot.Start()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	<-stopChan
	slog.Info("Shutting down gracefully...")
	tgBot.Stop()
	slog.Info("Application shutdown complete")
	return nil
}
