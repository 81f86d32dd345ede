package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solodesk/solodesk/internal/api"
	"github.com/solodesk/solodesk/internal/auth"
	"github.com/solodesk/solodesk/internal/board"
	"github.com/solodesk/solodesk/internal/config"
	"github.com/solodesk/solodesk/internal/dao"
	"github.com/solodesk/solodesk/internal/events"
	"github.com/solodesk/solodesk/internal/logging"
	"github.com/solodesk/solodesk/internal/metrics"
	"github.com/solodesk/solodesk/internal/migrate"
	"github.com/solodesk/solodesk/internal/model"
	"github.com/solodesk/solodesk/internal/service"
)

var Version = "v0.1.0"

var (
	cfgPath       string
	migrationsDir string
)

func main() {
	root := &cobra.Command{
		Use:     "solodesk-server",
		Short:   "Freelancer business management server",
		Version: Version,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  func(*cobra.Command, []string) error { return serve() },
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations and exit",
		RunE:  func(*cobra.Command, []string) error { return runMigrations() },
	}
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "migrations", "directory containing *.sql migration files")

	root.AddCommand(serveCmd, migrateCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMigrations() error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := dao.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	abs, _ := filepath.Abs(migrationsDir)
	if err := migrate.Run(context.Background(), sqlDB, abs); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	fmt.Printf("migrations applied from %s\n", abs)
	return nil
}

func serve() error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.Init(cfg.Logging); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.L().Sync()
	ctx := context.Background()

	gdb, err := dao.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := dao.Ping(gdb, 5, 2*time.Second); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	taskDao := dao.NewTaskDao(gdb)
	clientDao := dao.NewClientDao(gdb)
	projectDao := dao.NewProjectDao(gdb)
	invoiceDao := dao.NewInvoiceDao(gdb)
	contractDao := dao.NewContractDao(gdb)
	userDao := dao.NewUserDao(gdb)

	bus := events.NewBus()
	taskSvc := service.NewTaskService(taskDao, bus)
	reminderSvc := service.NewReminderService(invoiceDao, taskDao, contractDao, clientDao)
	contractSvc := service.NewContractService(contractDao, clientDao, projectDao)
	badge := service.NewBadgeCounter(taskSvc, bus)

	boardMgr := board.NewManager(
		board.PersistFunc(func(ctx context.Context, taskID int64, to model.TaskStatus, sortOrder int) error {
			sess, ok := auth.FromContext(ctx)
			if !ok {
				return model.ErrNotFound
			}
			scope := model.TaskScope{TeamID: sess.TeamID, UserID: sess.UserID}
			return taskSvc.Move(ctx, scope, taskID, to, sortOrder)
		}),
		func(taskID int64, from, to model.TaskStatus, err error) {
			if err == nil {
				return
			}
			logging.Error(ctx, "board move failed, position reverted",
				zap.Int64("task_id", taskID), zap.String("from", string(from)),
				zap.String("to", string(to)), zap.Error(err))
		},
	)

	var sessions auth.SessionStore
	if cfg.Redis.Enabled {
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    cfg.Redis.Addresses,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		sessions = auth.NewRedisStore(client)
	} else {
		logging.Warn(ctx, "redis disabled, sessions are in-memory and lost on restart")
		sessions = auth.NewMemoryStore()
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	router := api.NewRouter(api.Dependencies{
		Auth:      api.NewAuthController(userDao, sessions, cfg.Auth),
		Tasks:     api.NewTaskController(taskSvc, boardMgr),
		Clients:   api.NewClientController(clientDao),
		Projects:  api.NewProjectController(projectDao, taskSvc),
		Invoices:  api.NewInvoiceController(invoiceDao),
		Contracts: api.NewContractController(contractDao, contractSvc),
		Dashboard: api.NewDashboardController(taskSvc, reminderSvc, badge, invoiceDao, userDao),
		Sessions:  sessions,
		AuthCfg:   cfg.Auth,
		Metrics:   m,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logging.Infof(ctx, "solodesk server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	}
	logging.Info(ctx, "shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error(ctx, "graceful shutdown failed", zap.Error(err))
	}
	boardMgr.Wait()
	logging.Info(ctx, "server exited")
	return nil
}
