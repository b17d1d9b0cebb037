package core

import "time"

// Trend represents the (topic, category) pair chosen to drive one article's
// generation. It is ephemeral: produced by the trend selector and consumed
// once by the article synthesizer.
type Trend struct {
	Topic    string `json:"topic"`    // Listicle-style title driving the article
	Category string `json:"category"` // One of the fixed blog categories
}

// Article is the central persisted entity, assembled once per run by the
// synthesizer and enriched in place by the hero image pipeline.
type Article struct {
	Title           string            `json:"title"`             // Cleaned headline, first line only, max 100 chars
	Slug            string            `json:"slug"`              // URL-safe identifier derived from Title
	Category        string            `json:"category"`          // Category the article was generated for
	Intro           string            `json:"intro"`             // Two-paragraph introduction
	Content         string            `json:"content"`           // Five-section markdown body with linked headers
	Conclusion      string            `json:"conclusion"`        // Closing paragraph
	MetaDescription string            `json:"metaDescription"`   // First 150 chars of Intro plus ellipsis
	Tags            []string          `json:"tags"`              // Exactly five tags, alphanumerics and spaces only
	ImagePrompt     string            `json:"imagePrompt"`       // Prompt seed consumed by the hero image pipeline
	RedditPost      string            `json:"redditPost"`        // Social post draft, link appended at submit time
	CreatedAt       time.Time         `json:"createdAt"`         // Timestamp of synthesis
	ReadTime        string            `json:"readTime"`          // Estimated reading duration, e.g. "4 min read"
	Products        []FeaturedProduct `json:"products"`          // Initialized empty; reserved for inline product picks
	Image           string            `json:"image,omitempty"`   // Public URL of the stored hero image
	R2Key           string            `json:"r2_key,omitempty"`  // Object store key of the hero image
	IsCloud         bool              `json:"isCloud,omitempty"` // True once the hero image is served from the store
}

// FeaturedProduct is one affiliate listing in the wholesale-replaced
// featured batch.
type FeaturedProduct struct {
	Title        string   `json:"title"`         // Short item name
	Price        string   `json:"price"`         // Display price, e.g. "$99"
	ASIN         string   `json:"asin"`          // Amazon item identifier
	Discount     string   `json:"discount"`      // Display discount, e.g. "20% OFF"
	Category     string   `json:"category"`      // Product category the item was generated for
	AffiliateURL string   `json:"affiliate_url"` // Amazon product URL with the affiliate tag
	ImageURL     string   `json:"image_url"`     // Placeholder image generated from the title
	Images       []string `json:"images"`        // Carousel image URLs, empty until sourced
}

// DebugLog collects human-readable stage outcomes within one autonomous run.
// It is append-only and never persisted beyond the run's own result payload.
type DebugLog struct {
	Logs []string `json:"logs"`
}

// Append adds one entry to the log.
func (d *DebugLog) Append(entry string) {
	d.Logs = append(d.Logs, entry)
}

// RunResult is the structured outcome of one autonomous run. A run always
// produces a RunResult, success or not.
type RunResult struct {
	Success   bool      `json:"success"`
	Topic     string    `json:"topic,omitempty"`     // Selected trend topic
	ArticleID string    `json:"articleId,omitempty"` // Store key the article was persisted under
	Error     string    `json:"error,omitempty"`     // Set when the run aborted
	Debug     *DebugLog `json:"debug"`               // Per-stage outcome log
}

// PostResult is the outcome of one social syndication attempt. A failed or
// skipped post is reported here, never raised as a pipeline failure.
type PostResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"` // Raw endpoint response on success
}
