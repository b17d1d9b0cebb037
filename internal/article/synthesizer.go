// Package article assembles a complete Article from six concurrent
// text-generation calls. The synthesis fails only when a round trip itself
// fails; malformed output is cleaned and repaired, never rejected.
package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coolfinds/internal/core"
	"coolfinds/internal/textutil"

	"golang.org/x/sync/errgroup"
)

// DefaultCategory and DefaultStyle fill in an on-demand request that names
// neither.
const (
	DefaultCategory = "Tech"
	DefaultStyle    = "witty and engaging"
)

const tagCount = 5

// Sampling temperatures per field: creative fields run hot, structured
// fields run cooler.
const (
	titleTemp      = 0.9
	introTemp      = 0.7
	bodyTemp       = 0.5
	conclusionTemp = 0.7
	tagsTemp       = 0.5
	redditTemp     = 0.8
)

// TextGenerator is the slice of the text model the synthesizer needs.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Synthesizer builds articles from a topic string.
type Synthesizer struct {
	gen          TextGenerator
	affiliateTag string
}

// NewSynthesizer creates a synthesizer backed by gen. The affiliate tag is
// embedded into the body prompt's link format.
func NewSynthesizer(gen TextGenerator, affiliateTag string) *Synthesizer {
	return &Synthesizer{gen: gen, affiliateTag: affiliateTag}
}

// Synthesize fans out the six field generations, cleans and repairs each,
// and assembles the Article. If any one of the six calls fails the whole
// synthesis fails and no partial article is produced.
func (s *Synthesizer) Synthesize(ctx context.Context, topic, category, style string) (core.Article, error) {
	if category == "" {
		category = DefaultCategory
	}
	if style == "" {
		style = DefaultStyle
	}

	prompts := s.buildPrompts(topic, style)

	var titleRaw, introRaw, bodyRaw, conclusionRaw, tagsRaw, redditRaw string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { titleRaw, err = s.gen.Generate(gctx, prompts.title, titleTemp); return })
	g.Go(func() (err error) { introRaw, err = s.gen.Generate(gctx, prompts.intro, introTemp); return })
	g.Go(func() (err error) { bodyRaw, err = s.gen.Generate(gctx, prompts.body, bodyTemp); return })
	g.Go(func() (err error) { conclusionRaw, err = s.gen.Generate(gctx, prompts.conclusion, conclusionTemp); return })
	g.Go(func() (err error) { tagsRaw, err = s.gen.Generate(gctx, prompts.tags, tagsTemp); return })
	g.Go(func() (err error) { redditRaw, err = s.gen.Generate(gctx, prompts.reddit, redditTemp); return })
	if err := g.Wait(); err != nil {
		return core.Article{}, fmt.Errorf("article synthesis failed: %w", err)
	}

	content := textutil.RepairMarkdownLinks(textutil.Clean(bodyRaw))
	intro := textutil.Clean(introRaw)

	title := textutil.Clean(strings.SplitN(titleRaw, "\n", 2)[0])
	title = strings.Trim(title, `"'`)
	title = textutil.Truncate(title, 100)

	// A punctuation-only title slugs to "". Fall back to the topic, then
	// the category, so the slug is never empty.
	slug := textutil.Slugify(title)
	if slug == "" {
		slug = textutil.Slugify(topic)
	}
	if slug == "" {
		slug = textutil.Slugify(category)
	}

	now := time.Now().UTC()
	return core.Article{
		Title:           title,
		Slug:            slug,
		Category:        category,
		Intro:           intro,
		Content:         content,
		Conclusion:      textutil.Clean(conclusionRaw),
		MetaDescription: textutil.Truncate(intro, 150) + "...",
		Tags:            normalizeTags(tagsRaw, category),
		ImagePrompt:     fmt.Sprintf("Epic high-end lifestyle photography, %s concept, %s, cinematic lighting, 8k", category, title),
		RedditPost:      textutil.Clean(redditRaw),
		CreatedAt:       now,
		ReadTime:        textutil.EstimateReadTime(content),
		Products:        []core.FeaturedProduct{},
	}, nil
}

type fieldPrompts struct {
	title      string
	intro      string
	body       string
	conclusion string
	tags       string
	reddit     string
}

func (s *Synthesizer) buildPrompts(topic, style string) fieldPrompts {
	return fieldPrompts{
		title: fmt.Sprintf(`Create a punchy, creative headline for an article about: %s.
RULES: Avoid "Ultimate Guide" or "Best of". Be intriguing. Return ONLY the text.`, topic),

		intro: fmt.Sprintf(`Write a compelling 2-paragraph introduction for %s.
Tone: %s. Hook the reader immediately.
IMPORTANT: Start directly with the content. No "In this article..." filler.`, topic, style),

		body: fmt.Sprintf(`Write a detailed, high-quality article about %s.
FORMAT RULES:
1. Use exactly 5 sections starting with Markdown headers (###).
2. Headers MUST be clickable Markdown links: ### [Product Name](https://www.amazon.com/s?k=Product+Name&tag=%s)
3. CRITICAL: No spaces between the ] and the (. Example: [Name](URL).
4. Do NOT show the raw URL text, hide it behind the product name.`, topic, s.affiliateTag),

		conclusion: fmt.Sprintf(`Write a punchy closing paragraph for %s. No "In conclusion" or "Summarizing".`, topic),

		tags: fmt.Sprintf(`Generate 5 viral comma-separated tags for %s.`, topic),

		reddit: fmt.Sprintf(`Write a Reddit-style post for the subreddit r/tech or r/homeautomation about %s.
Style: Conversational, intriguing, maybe a bit controversial or helpful.
IMPORTANT: Do NOT include the link yet, just the body text.`, topic),
	}
}

// defaultTags pads a short tag list so every article carries exactly five.
var defaultTags = []string{"cool finds", "deals", "gear", "shopping", "trending"}

// normalizeTags splits the model's comma-separated answer, strips every
// character outside alphanumerics and spaces, and repairs the count to
// exactly five entries.
func normalizeTags(raw, category string) []string {
	tags := make([]string, 0, tagCount)
	for _, part := range strings.Split(raw, ",") {
		tag := textutil.SanitizeTag(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == tagCount {
			return tags
		}
	}

	if len(tags) == 0 {
		if tag := textutil.SanitizeTag(category); tag != "" {
			tags = append(tags, tag)
		}
	}
	for _, tag := range defaultTags {
		if len(tags) == tagCount {
			break
		}
		tags = append(tags, tag)
	}
	return tags
}
