package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/foodgram-next/internal/app"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiCyan  = "\033[36m"
)

var weakSecretMarkers = []string{"change-me", "change-in-production", "your-secret-key"}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var mode, configPath string
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Foodgram API 与通知 worker",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(mode, configPath)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", app.ModeAll, "启动模式: "+strings.Join(app.Modes, " | "))
	cmd.Flags().StringVar(&configPath, "config", "", "config.yml 所在目录")
	return cmd
}

func serve(mode, configPath string) error {
	fmt.Printf("%s%sFoodgram API%s  mode=%s\n", ansiCyan, ansiBold, ansiReset, mode)

	cfg := config.Load(configPath)
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	release := cfg.Server.Mode == "release"

	if err := checkSecrets(cfg, release); err != nil {
		return err
	}
	if err := i18n.Load(); err != nil {
		return fmt.Errorf("load locales: %w", err)
	}
	if err := prepareStorage(cfg, !release); err != nil {
		return err
	}
	ensureDefaultAdmin(release)

	if release {
		gin.SetMode(gin.ReleaseMode)
	}
	return app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	})
}

// checkSecrets release 模式下弱密钥直接拒绝启动
func checkSecrets(cfg *config.Config, release bool) error {
	secrets := []struct{ name, value string }{
		{"jwt", cfg.JWT.SecretKey},
		{"user_jwt", cfg.UserJWT.SecretKey},
	}
	for _, s := range secrets {
		if !isWeakSecret(s.value) {
			continue
		}
		if release {
			return fmt.Errorf("%s secret is weak or still the default value", s.name)
		}
		logger.Warnw("weak_secret_detected", "secret", s.name)
	}
	return nil
}

func prepareStorage(cfg *config.Config, debug bool) error {
	pool := cfg.Database.Pool
	err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           pool.MaxOpenConns,
		MaxIdleConns:           pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: pool.ConnMaxIdleTimeSeconds,
	}, debug)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// ensureDefaultAdmin 凭据来自 FG_DEFAULT_ADMIN_USERNAME / FG_DEFAULT_ADMIN_PASSWORD
func ensureDefaultAdmin(release bool) {
	username := os.Getenv("FG_DEFAULT_ADMIN_USERNAME")
	password := os.Getenv("FG_DEFAULT_ADMIN_PASSWORD")
	if release && password == "" {
		logger.Warnw("default_admin_skipped", "reason", "password_not_set")
		return
	}
	if err := models.InitDefaultAdmin(username, password); err != nil {
		logger.Warnw("default_admin_init_failed", "error", err)
	}
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	lower := strings.ToLower(secret)
	for _, marker := range weakSecretMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
