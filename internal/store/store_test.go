package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"coolfinds/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewStore(tmpDir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	dbPath := filepath.Join(tmpDir, "coolfinds.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file should be created")
	}
}

func TestPutGetDelete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put("k1", "v1"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, ok, err := store.Get("k1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || value != "v1" {
		t.Errorf("Get = (%q, %v), want (v1, true)", value, ok)
	}

	// Overwrite
	if err := store.Put("k1", "v2"); err != nil {
		t.Fatalf("Put overwrite failed: %v", err)
	}
	value, _, _ = store.Get("k1")
	if value != "v2" {
		t.Errorf("Get after overwrite = %q, want v2", value)
	}

	if err := store.Delete("k1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, ok, err = store.Get("k1")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if ok {
		t.Error("Key should be gone after delete")
	}

	// Deleting a missing key is not an error
	if err := store.Delete("never-existed"); err != nil {
		t.Errorf("Delete of missing key failed: %v", err)
	}
}

func TestList(t *testing.T) {
	store := newTestStore(t)

	for _, key := range []string{"a", "b", "c"} {
		if err := store.Put(key, "v"); err != nil {
			t.Fatalf("Put %s failed: %v", key, err)
		}
	}

	keys, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 3 {
		t.Errorf("List returned %d keys, want 3", len(keys))
	}
}

func TestArticleRoundTrip(t *testing.T) {
	store := newTestStore(t)

	article := core.Article{
		Title:     "Desk Setup Mistakes",
		Slug:      "desk-setup-mistakes",
		Category:  "Tech",
		Intro:     "Your desk is lying to you.",
		Content:   "### [Lamp](https://example.com)",
		Tags:      []string{"desks", "setup", "tech", "gear", "office"},
		CreatedAt: time.Now().UTC(),
		ReadTime:  "3 min read",
		Products:  []core.FeaturedProduct{},
	}

	if err := store.PutArticle("article-desk-setup-mistakes-1", article); err != nil {
		t.Fatalf("PutArticle failed: %v", err)
	}

	articles, err := store.ListArticles()
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("ListArticles returned %d articles, want 1", len(articles))
	}
	if articles[0].Slug != article.Slug {
		t.Errorf("Slug = %q, want %q", articles[0].Slug, article.Slug)
	}
	if len(articles[0].Tags) != 5 {
		t.Errorf("Tags = %d entries, want 5", len(articles[0].Tags))
	}
}

func TestListArticles_SkipsFeaturedProducts(t *testing.T) {
	store := newTestStore(t)

	if err := store.PutFeaturedProducts([]core.FeaturedProduct{{Title: "Widget"}}); err != nil {
		t.Fatalf("PutFeaturedProducts failed: %v", err)
	}
	if err := store.PutArticle("article-a-1", core.Article{Slug: "a"}); err != nil {
		t.Fatalf("PutArticle failed: %v", err)
	}

	articles, err := store.ListArticles()
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("ListArticles returned %d articles, want 1 (featured batch skipped)", len(articles))
	}
}

func TestDeleteArticlesBySlug(t *testing.T) {
	store := newTestStore(t)

	_ = store.PutArticle("article-a-1", core.Article{Slug: "a"})
	_ = store.PutArticle("article-a-2", core.Article{Slug: "a"})
	_ = store.PutArticle("article-b-1", core.Article{Slug: "b"})

	deleted, err := store.DeleteArticlesBySlug("a")
	if err != nil {
		t.Fatalf("DeleteArticlesBySlug failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Deleted %d articles, want 2", deleted)
	}

	articles, _ := store.ListArticles()
	if len(articles) != 1 || articles[0].Slug != "b" {
		t.Errorf("Remaining articles = %v, want only slug b", articles)
	}
}

func TestFeaturedProducts_DefaultAndReplace(t *testing.T) {
	store := newTestStore(t)

	raw, err := store.FeaturedProductsJSON()
	if err != nil {
		t.Fatalf("FeaturedProductsJSON failed: %v", err)
	}
	if raw != "[]" {
		t.Errorf("Empty store should return [], got %q", raw)
	}

	first := []core.FeaturedProduct{{Title: "Widget", Category: "Tech Gadgets"}}
	if err := store.PutFeaturedProducts(first); err != nil {
		t.Fatalf("PutFeaturedProducts failed: %v", err)
	}

	// Wholesale replacement, not a merge.
	second := []core.FeaturedProduct{{Title: "Gadget", Category: "Home Essentials"}}
	if err := store.PutFeaturedProducts(second); err != nil {
		t.Fatalf("PutFeaturedProducts replace failed: %v", err)
	}

	raw, err = store.FeaturedProductsJSON()
	if err != nil {
		t.Fatalf("FeaturedProductsJSON failed: %v", err)
	}
	if want := `"Gadget"`; !strings.Contains(raw, want) {
		t.Errorf("Stored batch should contain %s, got %s", want, raw)
	}
	if unwanted := `"Widget"`; strings.Contains(raw, unwanted) {
		t.Errorf("Stored batch should have replaced the prior one, got %s", raw)
	}
}
