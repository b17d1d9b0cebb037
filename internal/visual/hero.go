// Package visual attaches the generated hero image to an article: it builds
// the photography prompt, runs the image model, persists the bytes to the
// object store, and rewrites the article's image fields to point at the
// stored object.
package visual

import (
	"context"
	"fmt"
	"time"

	"coolfinds/internal/core"
	"coolfinds/internal/media"
)

const heroPromptTemplate = "Breathtaking high-end commercial photography, professional lifestyle blog layout, %s. Warm natural lighting, editorial style, 8k resolution, photorealistic, sharp focus, clean composition, luxury aesthetic."

// ImageGenerator is the slice of the image model the pipeline needs.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, steps int) ([]byte, error)
}

// HeroPipeline generates and persists one hero image per article.
type HeroPipeline struct {
	images       ImageGenerator
	store        media.Store
	publicOrigin string
	steps        int
}

// NewHeroPipeline creates the pipeline. publicOrigin is the origin the
// stored image will be served from via /media/.
func NewHeroPipeline(images ImageGenerator, store media.Store, publicOrigin string, steps int) *HeroPipeline {
	if steps <= 0 {
		steps = 4
	}
	return &HeroPipeline{
		images:       images,
		store:        store,
		publicOrigin: publicOrigin,
		steps:        steps,
	}
}

// Attach generates the hero image and mutates the article's image fields on
// success. On any failure the article is left unchanged and the error is
// returned for the caller's debug log; Attach itself never aborts a run.
func (p *HeroPipeline) Attach(ctx context.Context, a *core.Article) error {
	prompt := fmt.Sprintf(heroPromptTemplate, a.ImagePrompt)

	data, err := p.images.Generate(ctx, prompt, p.steps)
	if err != nil {
		return fmt.Errorf("hero image generation failed: %w", err)
	}

	key := fmt.Sprintf("hero-%s-%d.png", a.Slug, time.Now().UnixMilli())
	if err := p.store.Put(ctx, key, data, "image/png"); err != nil {
		return fmt.Errorf("hero image storage failed: %w", err)
	}

	a.R2Key = key
	a.Image = fmt.Sprintf("%s/media/%s", p.publicOrigin, key)
	a.IsCloud = true
	return nil
}
