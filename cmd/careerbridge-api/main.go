package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/careerbridge/careerbridge-core/internal/adapters/authapi"
	httpadapter "github.com/careerbridge/careerbridge-core/internal/adapters/http"
	"github.com/careerbridge/careerbridge-core/internal/adapters/llm"
	filestore "github.com/careerbridge/careerbridge-core/internal/adapters/storage/file"
	"github.com/careerbridge/careerbridge-core/internal/app/advice"
	"github.com/careerbridge/careerbridge-core/internal/app/conversation"
	"github.com/careerbridge/careerbridge-core/internal/app/insight"
	"github.com/careerbridge/careerbridge-core/internal/app/session"
	"github.com/careerbridge/careerbridge-core/internal/config"
	"github.com/careerbridge/careerbridge-core/internal/domain"
	"github.com/careerbridge/careerbridge-core/internal/observability"
)

func main() {
	root := &cobra.Command{
		Use:          "careerbridge-api",
		Short:        "CareerBridge AI interaction and session core",
		SilenceUsage: true,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log := observability.Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	gateway, err := buildGateway(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing gateway: %w", err)
	}
	log.Info("gateway ready", "backend", string(cfg.Backend))

	tokenStore := filestore.NewTokenStore(cfg.TokenPath)
	authClient := authapi.NewClient(cfg.AuthBaseURL, cfg.TokenFieldPreference, nil)

	sessionStore, err := session.NewStore(authClient, tokenStore, cfg.AutoLoginAfterRegister)
	if err != nil {
		return fmt.Errorf("initializing session store: %w", err)
	}
	log.Info("session restored", "authenticated", sessionStore.IsAuthenticated())

	conversations := conversation.NewRegistry(gateway, cfg.RequestTimeout())
	analyzer := insight.NewAnalyzer(gateway, cfg.InsightTimeout())
	adviceSvc := advice.NewService(gateway, cfg.InsightTimeout())

	handler := httpadapter.NewServer(conversations, analyzer, adviceSvc, sessionStore)

	addr := ":" + cfg.Port
	log.Info("CareerBridge API listening", "addr", addr)
	return http.ListenAndServe(addr, handler)
}

func buildGateway(ctx context.Context, cfg *config.Config) (domain.Gateway, error) {
	switch cfg.Backend {
	case config.BackendREST:
		return llm.NewRESTGateway(cfg.AIEndpointURL, cfg.AICredential, nil), nil
	case config.BackendProxy:
		return llm.NewProxyGateway(cfg.AIEndpointURL, nil), nil
	case config.BackendGenAI:
		return llm.NewGenAIGateway(ctx, cfg.AICredential, cfg.ModelName)
	case config.BackendMock:
		return llm.NewMockGateway(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
