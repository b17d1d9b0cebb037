// Package pipeline sequences one autonomous run: trend selection, article
// synthesis, hero image, persistence, social syndication. The bracketed
// stages (hero image, social post) are failure-isolated into the run's
// debug log; synthesis and persistence failures abort the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"coolfinds/internal/core"
	"coolfinds/internal/logger"

	"github.com/google/uuid"
)

// TrendSelector picks the topic driving the run. It never fails.
type TrendSelector interface {
	Select(ctx context.Context) core.Trend
}

// ArticleSynthesizer builds the article for a trend.
type ArticleSynthesizer interface {
	Synthesize(ctx context.Context, topic, category, style string) (core.Article, error)
}

// HeroAttacher generates and persists the hero image, mutating the article
// on success.
type HeroAttacher interface {
	Attach(ctx context.Context, a *core.Article) error
}

// ArticleStore persists the finished article.
type ArticleStore interface {
	PutArticle(key string, article core.Article) error
}

// SocialPoster submits the article's social draft.
type SocialPoster interface {
	Post(ctx context.Context, article core.Article) core.PostResult
}

// Runner owns one run's control flow.
type Runner struct {
	trends   TrendSelector
	articles ArticleSynthesizer
	hero     HeroAttacher
	store    ArticleStore
	social   SocialPoster
}

// NewRunner wires the run's collaborators.
func NewRunner(trends TrendSelector, articles ArticleSynthesizer, hero HeroAttacher, store ArticleStore, social SocialPoster) *Runner {
	return &Runner{
		trends:   trends,
		articles: articles,
		hero:     hero,
		store:    store,
		social:   social,
	}
}

// Run executes one autonomous generation. It always returns a structured
// result: success with the stored article's key, or failure with the error
// that aborted the run. Either way the debug log lists every attempted
// stage.
func (r *Runner) Run(ctx context.Context) core.RunResult {
	debug := &core.DebugLog{}
	runID := uuid.NewString()
	logger.Info("Starting autonomous run", "run_id", runID)

	trend := r.trends.Select(ctx)
	debug.Append(fmt.Sprintf("Trend selected: %s [%s]", trend.Topic, trend.Category))

	article, err := r.articles.Synthesize(ctx, trend.Topic, trend.Category, "engaging")
	if err != nil {
		logger.Error("Autonomous run aborted during synthesis", err, "run_id", runID)
		return core.RunResult{Success: false, Error: err.Error(), Debug: debug}
	}

	// Isolated stage: a missing hero image never stops the run.
	r.isolate(debug, "Hero image", func() (string, error) {
		if err := r.hero.Attach(ctx, &article); err != nil {
			return "", err
		}
		return "saved and URL synced: " + article.Image, nil
	})

	articleID := fmt.Sprintf("article-%s-%d", article.Slug, time.Now().UnixMilli())
	if err := r.store.PutArticle(articleID, article); err != nil {
		logger.Error("Autonomous run aborted during persistence", err, "run_id", runID)
		debug.Append("Persistence failed: " + err.Error())
		return core.RunResult{Success: false, Error: err.Error(), Debug: debug}
	}
	debug.Append("Article persisted: " + articleID)

	// Isolated stage: the article is already stored, the post is best-effort.
	r.isolate(debug, "Reddit post", func() (string, error) {
		result := r.social.Post(ctx, article)
		if !result.Success {
			return "", fmt.Errorf("%s", result.Error)
		}
		return "submitted", nil
	})

	logger.Info("Autonomous run finished", "run_id", runID, "article_id", articleID)
	return core.RunResult{
		Success:   true,
		Topic:     trend.Topic,
		ArticleID: articleID,
		Debug:     debug,
	}
}

// isolate runs one failure-isolated stage and appends its outcome to the
// debug log. The run proceeds regardless of the stage's result.
func (r *Runner) isolate(debug *core.DebugLog, name string, fn func() (string, error)) {
	detail, err := fn()
	if err != nil {
		debug.Append(fmt.Sprintf("%s failed: %s", name, err.Error()))
		return
	}
	debug.Append(fmt.Sprintf("%s: %s", name, detail))
}
