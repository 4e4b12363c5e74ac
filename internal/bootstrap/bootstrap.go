package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkuznet/shop-assistant/internal/config"
	"github.com/mkuznet/shop-assistant/internal/core/ports"
	"github.com/mkuznet/shop-assistant/internal/core/usecase"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/dataset"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/faq"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/intent"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/llm/polish"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/queue/nats"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/recommend"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/repository/postgres"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/resilience"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/storage/localfs"
)

// knowledgeSource is what every data backend must provide.
type knowledgeSource interface {
	ports.TrainingSource
	ports.KnowledgeSource
	ports.CatalogSource
}

type App struct {
	Config config.Config

	Queue    ports.MessageQueue
	ChatUC   ports.ConversationService
	Trainer  ports.IntentTrainer
	Reloader ports.ModelReloader

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := localfs.New(cfg.ModelDir)
	if err != nil {
		closeSource()
		return nil, fmt.Errorf("init model storage: %w", err)
	}

	intentSvc := intent.NewService(source, store, cfg.ModelKey)
	report, trained, err := intentSvc.Bootstrap(ctx)
	if err != nil {
		closeSource()
		return nil, fmt.Errorf("bootstrap intent model: %w", err)
	}
	if trained {
		slog.Info("intent_model_trained", "report", report.String())
	}

	entries, err := source.ListFAQEntries(ctx)
	if err != nil {
		closeSource()
		return nil, fmt.Errorf("load faq entries: %w", err)
	}
	faqIndex := faq.NewIndex(entries)
	slog.Info("faq_index_ready", "entries", faqIndex.Size())

	catalog, err := source.ListProducts(ctx)
	if err != nil {
		closeSource()
		return nil, fmt.Errorf("load product catalog: %w", err)
	}

	overrides, err := dataset.LoadOverrides(cfg.OverridesPath)
	if err != nil {
		closeSource()
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	recommender := recommend.New(catalog, overrides.CategoryTable())
	replies := dataset.MergeReplies(overrides.Replies)

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		closeSource()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	chatUC := usecase.NewDispatcher(intentSvc, faqIndex, recommender, replies, cfg.RecommendTopK)
	if cfg.PolishEnabled {
		chatUC = chatUC.WithPolisher(polish.New(cfg.PolishURL, cfg.PolishModel, executor))
	}

	return &App{
		Config:   cfg,
		Queue:    queue,
		ChatUC:   chatUC,
		Trainer:  intentSvc,
		Reloader: intentSvc,

		closeFn: func() {
			queue.Close()
			closeSource()
		},
	}, nil
}

func openSource(ctx context.Context, cfg config.Config) (knowledgeSource, func(), error) {
	noop := func() {}

	switch cfg.DataBackend {
	case "csv", "":
		return dataset.NewCSVSource(cfg.DataDir), noop, nil
	case "xlsx":
		return dataset.NewXLSXSource(cfg.DataDir), noop, nil
	case "postgres":
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewKnowledgeRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return repo, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
