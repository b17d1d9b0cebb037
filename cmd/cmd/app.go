package cmd

import (
	"context"
	"fmt"

	"coolfinds/internal/article"
	"coolfinds/internal/config"
	"coolfinds/internal/imagegen"
	"coolfinds/internal/logger"
	"coolfinds/internal/media"
	"coolfinds/internal/pipeline"
	"coolfinds/internal/products"
	"coolfinds/internal/reddit"
	"coolfinds/internal/store"
	"coolfinds/internal/textgen"
	"coolfinds/internal/trends"
	"coolfinds/internal/visual"
)

// app bundles the wired components shared by the serve, run, and products
// commands.
type app struct {
	cfg      *config.Config
	store    *store.Store
	media    *media.DiskStore
	trends   *trends.Selector
	articles *article.Synthesizer
	products *products.Generator
	runner   *pipeline.Runner
}

// newApp wires every component from the loaded configuration. The caller
// owns Close.
func newApp(ctx context.Context) (*app, error) {
	cfg := config.Get()

	kv, err := store.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	mediaStore, err := media.NewDiskStore(cfg.Storage.MediaDir)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("failed to open media store: %w", err)
	}

	textClient, err := textgen.NewClient(ctx, cfg.AI.Text)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("failed to initialize text model client: %w", err)
	}

	imageClient, err := imagegen.NewClient(cfg.AI.Image)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("failed to initialize image model client: %w", err)
	}

	selector := trends.NewSelector(textClient)
	synthesizer := article.NewSynthesizer(textClient, cfg.Site.AffiliateTag)
	productGen := products.NewGenerator(textClient, cfg.Site.AffiliateTag)
	hero := visual.NewHeroPipeline(imageClient, mediaStore, cfg.Site.PublicOrigin, cfg.AI.Image.Steps)
	social := reddit.NewClient(cfg.Reddit, cfg.Site.WebsiteURL)
	runner := pipeline.NewRunner(selector, synthesizer, hero, kv, social)

	return &app{
		cfg:      cfg,
		store:    kv,
		media:    mediaStore,
		trends:   selector,
		articles: synthesizer,
		products: productGen,
		runner:   runner,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err)
	}
}
