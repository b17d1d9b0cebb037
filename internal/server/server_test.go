package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"coolfinds/internal/config"
	"coolfinds/internal/core"
	"coolfinds/internal/media"
)

type fakeStore struct {
	entries  map[string]core.Article
	products string
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]core.Article{}, products: "[]"}
}

func (f *fakeStore) List() ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	keys := make([]string, 0, len(f.entries))
	for k := range f.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeStore) Delete(key string) error {
	delete(f.entries, key)
	return nil
}

func (f *fakeStore) ListArticles() ([]core.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	articles := make([]core.Article, 0, len(f.entries))
	for _, a := range f.entries {
		articles = append(articles, a)
	}
	return articles, nil
}

func (f *fakeStore) DeleteArticlesBySlug(slug string) (int, error) {
	deleted := 0
	for k, a := range f.entries {
		if a.Slug == slug {
			delete(f.entries, k)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeStore) PutFeaturedProducts(products []core.FeaturedProduct) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	f.products = string(raw)
	return nil
}

func (f *fakeStore) FeaturedProductsJSON() (string, error) {
	return f.products, nil
}

type fakeSynth struct {
	article core.Article
	err     error
	topic   string
}

func (f *fakeSynth) Synthesize(ctx context.Context, topic, category, style string) (core.Article, error) {
	f.topic = topic
	return f.article, f.err
}

type fakeProducts struct {
	batch []core.FeaturedProduct
}

func (f *fakeProducts) Generate(ctx context.Context) []core.FeaturedProduct {
	return f.batch
}

type fakeRunner struct {
	result core.RunResult
}

func (f *fakeRunner) Run(ctx context.Context) core.RunResult {
	return f.result
}

func newTestServer(t *testing.T, st *fakeStore, synth *fakeSynth, products *fakeProducts, runner *fakeRunner) *Server {
	t.Helper()
	mediaStore, err := media.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	cfg := config.Server{Host: "127.0.0.1", Port: 8787}
	return New(cfg, st, mediaStore, synth, products, runner)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestRootBanner(t *testing.T) {
	s := newTestServer(t, newFakeStore(), &fakeSynth{}, &fakeProducts{}, &fakeRunner{})
	rec := doJSON(t, s, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != "Amazing Cool Finds API - Autonomous Mode Active" {
		t.Errorf("banner = %q", got)
	}
}

func TestGenerateArticle(t *testing.T) {
	synth := &fakeSynth{article: core.Article{Title: "Best Desks", Slug: "best-desks"}}
	s := newTestServer(t, newFakeStore(), synth, &fakeProducts{}, &fakeRunner{})

	rec := doJSON(t, s, http.MethodPost, "/api/generate-article", `{"topic":"desks","category":"Home","style":"witty"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if synth.topic != "desks" {
		t.Errorf("topic passed = %q", synth.topic)
	}
	var got core.Article
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Slug != "best-desks" {
		t.Errorf("slug = %q", got.Slug)
	}
}

func TestGenerateArticleFailureReturnsErrorJSON(t *testing.T) {
	synth := &fakeSynth{err: errors.New("model overloaded")}
	s := newTestServer(t, newFakeStore(), synth, &fakeProducts{}, &fakeRunner{})

	rec := doJSON(t, s, http.MethodPost, "/api/generate-article", `{"topic":"desks"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] != "model overloaded" {
		t.Errorf("error = %q", payload["error"])
	}
}

func TestListArticles(t *testing.T) {
	st := newFakeStore()
	st.entries["article-a-1"] = core.Article{Title: "A", Slug: "a"}
	st.entries["article-b-2"] = core.Article{Title: "B", Slug: "b"}
	s := newTestServer(t, st, &fakeSynth{}, &fakeProducts{}, &fakeRunner{})

	rec := doJSON(t, s, http.MethodGet, "/api/articles", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []core.Article
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("articles = %d", len(got))
	}
}

func TestGetProductsDefaultsToEmptyArray(t *testing.T) {
	s := newTestServer(t, newFakeStore(), &fakeSynth{}, &fakeProducts{}, &fakeRunner{})
	rec := doJSON(t, s, http.MethodGet, "/api/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q", got)
	}
}

func TestGenerateProductsStoresBatch(t *testing.T) {
	st := newFakeStore()
	products := &fakeProducts{batch: []core.FeaturedProduct{{Title: "Gadget"}, {Title: "Widget"}}}
	s := newTestServer(t, st, &fakeSynth{}, products, &fakeRunner{})

	rec := doJSON(t, s, http.MethodPost, "/api/admin/generate-products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.Success || payload.Count != 2 {
		t.Errorf("payload = %+v", payload)
	}
	if !strings.Contains(st.products, "Gadget") {
		t.Errorf("stored batch = %s", st.products)
	}
}

func TestRunAutonomous(t *testing.T) {
	runner := &fakeRunner{result: core.RunResult{Success: true, Topic: "desks", ArticleID: "article-desks-1"}}
	s := newTestServer(t, newFakeStore(), &fakeSynth{}, &fakeProducts{}, runner)

	rec := doJSON(t, s, http.MethodPost, "/api/admin/run-autonomous", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got core.RunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Success || got.ArticleID != "article-desks-1" {
		t.Errorf("result = %+v", got)
	}
}

func TestClearArticles(t *testing.T) {
	st := newFakeStore()
	st.entries["article-a-1"] = core.Article{Slug: "a"}
	st.entries["article-b-2"] = core.Article{Slug: "b"}
	s := newTestServer(t, st, &fakeSynth{}, &fakeProducts{}, &fakeRunner{})

	rec := doJSON(t, s, http.MethodPost, "/api/admin/clear-articles", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Deleted 2 articles") {
		t.Errorf("body = %s", rec.Body.String())
	}
	if len(st.entries) != 0 {
		t.Errorf("entries remaining = %d", len(st.entries))
	}
}

func TestDeleteArticleBySlug(t *testing.T) {
	st := newFakeStore()
	st.entries["article-a-1"] = core.Article{Slug: "a"}
	st.entries["article-a-2"] = core.Article{Slug: "a"}
	st.entries["article-b-1"] = core.Article{Slug: "b"}
	s := newTestServer(t, st, &fakeSynth{}, &fakeProducts{}, &fakeRunner{})

	rec := doJSON(t, s, http.MethodPost, "/api/admin/delete-article", `{"slug":"a"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Success      bool `json:"success"`
		DeletedCount int  `json:"deletedCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.DeletedCount != 2 {
		t.Errorf("deletedCount = %d", payload.DeletedCount)
	}
	if _, ok := st.entries["article-b-1"]; !ok {
		t.Error("unrelated article was deleted")
	}
}

func TestServeImage(t *testing.T) {
	st := newFakeStore()
	s := newTestServer(t, st, &fakeSynth{}, &fakeProducts{}, &fakeRunner{})
	if err := s.media.Put(context.Background(), "hero-a-1.png", []byte("png-bytes"), "image/png"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rec := doJSON(t, s, http.MethodGet, "/media/hero-a-1.png", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "png-bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=31536000" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", origin)
	}
}

func TestServeImageNotFound(t *testing.T) {
	s := newTestServer(t, newFakeStore(), &fakeSynth{}, &fakeProducts{}, &fakeRunner{})
	rec := doJSON(t, s, http.MethodGet, "/media/missing.png", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListImages(t *testing.T) {
	s := newTestServer(t, newFakeStore(), &fakeSynth{}, &fakeProducts{}, &fakeRunner{})
	if err := s.media.Put(context.Background(), "hero-b-2.png", []byte("x"), "image/png"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.media.Put(context.Background(), "hero-a-1.png", []byte("x"), "image/png"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rec := doJSON(t, s, http.MethodGet, "/api/admin/list-images", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var keys []string
	if err := json.Unmarshal(rec.Body.Bytes(), &keys); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(keys) != 2 || keys[0] != "hero-a-1.png" {
		t.Errorf("keys = %v", keys)
	}
}
