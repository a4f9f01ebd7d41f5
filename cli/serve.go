package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"carf-backend/ai"
	"carf-backend/catalog"
	"carf-backend/chat"
	"carf-backend/config"
	"carf-backend/conn"
	"carf-backend/dashboard"
	"carf-backend/gemini"
	"carf-backend/logger"
	"carf-backend/openai"
	"carf-backend/prompts"
	"carf-backend/quota"
	"carf-backend/server"
	"carf-backend/store"
	"carf-backend/suggestions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	src, closeSrc, err := openSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSrc()

	institutional, err := cfg.ReadInstitutionalContext()
	if err != nil {
		return err
	}
	svc := ai.NewService(newAdapter(cfg), prompts.New(institutional), log.With("component", "assistant"), cfg.StrictCatalog)

	router := server.NewRouter(server.RouterConfig{
		Log:               log,
		CORSOrigins:       cfg.CORSOrigins,
		Limiter:           quota.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log),
		DashboardHandler:  dashboard.NewHandler(src, log),
		CatalogHandler:    catalog.NewHandler(src, log),
		SuggestionHandler: suggestions.NewHandler(src, svc, log),
		ChatHandler:       chat.NewHandler(svc, cfg.UploadDir, cfg.MaxUploadMB, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr, "provider", cfg.Provider, "credential_env", cfg.CredentialEnv)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newAdapter(cfg config.Config) *ai.Adapter {
	a := &ai.Adapter{
		CredentialEnv:   cfg.CredentialEnv,
		ChatModel:       cfg.ChatModel,
		SuggestionModel: cfg.SuggestionModel,
		TTSModel:        cfg.TTSModel,
		TTSVoice:        cfg.TTSVoice,
		TTSLanguage:     cfg.TTSLanguage,
	}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		a.Connect = openai.Connector(cfg.OpenAIBaseURL)
	default:
		a.Connect = gemini.Connector(cfg.GeminiBaseURL)
	}
	return a
}

func openSource(ctx context.Context, cfg config.Config, log *logger.Logger) (store.Source, func(), error) {
	if !cfg.DB.Enabled() {
		log.Info("using JSON data files", "dir", cfg.DataDir)
		return store.NewJSONFiles(cfg.DataDir), func() {}, nil
	}
	db, err := conn.NewMySQL(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	log.Info("using MySQL data source", "host", cfg.DB.Host, "database", cfg.DB.Name)
	return store.NewMySQL(db), func() { _ = db.Close() }, nil
}
