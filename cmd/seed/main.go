package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/spf13/cobra"
)

var configPath string

// defaultTags 初始标签，与前端配色保持一致
var defaultTags = []service.TagInput{
	{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Обед", Color: "#49B64E", Slug: "lunch"},
	{Name: "Ужин", Color: "#8775D2", Slug: "dinner"},
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "初始化 Foodgram 基础数据",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupDatabase()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config.yml 所在目录")

	root.AddCommand(newIngredientsCommand(), newTagsCommand(), newAdminCommand(), newPruneLoginLogsCommand())
	return root
}

func setupDatabase() error {
	cfg := config.Load(configPath)
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	seedConfig = cfg
	return nil
}

var seedConfig *config.Config

func newIngredientsCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "ingredients",
		Short: "从 JSON 或 CSV 文件导入食材，已存在的跳过",
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs, err := loadIngredientsFile(file)
			if err != nil {
				return err
			}
			svc := service.NewIngredientService(repository.NewIngredientRepository(models.DB))
			created, err := svc.Import(inputs)
			if err != nil {
				return fmt.Errorf("import ingredients: %w", err)
			}
			logger.Infow("seed_ingredients_imported", "file", file, "rows", len(inputs), "created", created)
			fmt.Fprintf(cmd.OutOrStdout(), "ingredients: %d rows, %d created\n", len(inputs), created)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "data/ingredients.json", "食材文件路径（.json 或 .csv）")
	return cmd
}

func newTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "创建默认标签（早餐/午餐/晚餐）",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := service.NewTagService(repository.NewTagRepository(models.DB))
			created := 0
			for _, input := range defaultTags {
				if _, err := svc.Create(context.Background(), input); err != nil {
					if errors.Is(err, service.ErrTagExists) {
						continue
					}
					return fmt.Errorf("create tag %s: %w", input.Slug, err)
				}
				created++
			}
			logger.Infow("seed_tags_created", "created", created)
			fmt.Fprintf(cmd.OutOrStdout(), "tags: %d created\n", created)
			return nil
		},
	}
}

func newAdminCommand() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "创建超级管理员，已存在时保持不变",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			svc := service.NewAuthService(seedConfig, repository.NewAdminRepository(models.DB))
			admin, created, err := svc.EnsureAdmin(username, password, true)
			if err != nil {
				return fmt.Errorf("ensure admin: %w", err)
			}
			logger.Infow("seed_admin_ensured", "admin_id", admin.ID, "username", admin.Username, "created", created)
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s (id=%d) created=%v\n", admin.Username, admin.ID, created)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "管理员用户名")
	cmd.Flags().StringVar(&password, "password", "", "管理员密码")
	return cmd
}

func newPruneLoginLogsCommand() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "prune-login-logs",
		Short: "删除超过保留天数的用户登录日志",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 {
				return errors.New("--days must be at least 1")
			}
			svc := service.NewUserLoginLogService(repository.NewUserLoginLogRepository(models.DB))
			removed, err := svc.Prune(days, time.Now())
			if err != nil {
				return fmt.Errorf("prune login logs: %w", err)
			}
			logger.Infow("seed_login_logs_pruned", "days", days, "removed", removed)
			fmt.Fprintf(cmd.OutOrStdout(), "login logs: %d removed\n", removed)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 90, "保留天数")
	return cmd
}
