package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/example/quizme/internal/attempt"
	"github.com/example/quizme/internal/bootstrap"
	"github.com/example/quizme/internal/config"
	"github.com/example/quizme/internal/database"
	"github.com/example/quizme/internal/question"
	"github.com/example/quizme/internal/schedule"
	"github.com/example/quizme/internal/schedule/sm2"
	"github.com/example/quizme/internal/selector"
	"github.com/example/quizme/internal/server"
	"github.com/example/quizme/internal/subscription"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "quizme-server",
		Short:         "Quiz trainer HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Connect() > %w", err)
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		return db.Close()
	})

	questions := question.NewDBQuestionRepository(db)
	recorder := attempt.NewRecorder(questions, attempt.NewDBAttemptRepository(db))
	manager := subscription.NewManager(subscription.NewDBUserTagRepository(db))
	scheduler := schedule.NewScheduler(
		schedule.NewDBScheduleRepository(db),
		newPolicy(cfg.Quiz.Policy),
		intervalUnits(cfg.Quiz.IntervalUnits),
	)

	handler := server.NewQuizHandler(
		logger,
		manager,
		selector.New(questions),
		questions,
		recorder,
		scheduler,
	)
	mux := http.NewServeMux()
	handler.Register(mux)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: corsMiddleware(
			server.IdentityMiddleware(h2c.NewHandler(mux, &http2.Server{})),
			cfg.Server.CORS.AllowedOrigins,
		),
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		logger.Info("starting server", "addr", srv.Addr, "policy", cfg.Quiz.Policy)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func newPolicy(name string) schedule.Policy {
	if name == "sm2" {
		return sm2.Policy{}
	}
	return schedule.NullPolicy{}
}

func intervalUnits(names []string) []schedule.Unit {
	units := make([]schedule.Unit, 0, len(names))
	for _, name := range names {
		units = append(units, schedule.Unit(name))
	}
	return units
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
