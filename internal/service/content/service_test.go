package content

import (
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/store"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func newTestService() *Service {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	return NewWithRepository(NewStoreRepository(store.NewMemory()), func() time.Time {
		now = now.Add(time.Minute)
		return now
	})
}

func expectCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected service error, got %v", err)
	}
	if svcErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, svcErr.Code)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":            "hello-world",
		"  5 Ads Tips for Cafés  ": "5-ads-tips-for-caf",
		"already-a-slug":           "already-a-slug",
		"--Automation   in 2026--": "automation-in-2026",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreatePostDerivesSlugAndRejectsDuplicates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, PostInput{Title: strPtr("Why Automation Pays"), Body: strPtr("# Hi"), Tags: []string{"Ops", "ops", " "}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Slug != "why-automation-pays" {
		t.Fatalf("unexpected slug %q", post.Slug)
	}
	if len(post.Tags) != 1 || post.Tags[0] != "ops" {
		t.Fatalf("expected cleaned tags, got %v", post.Tags)
	}
	if post.Published {
		t.Fatalf("expected draft by default")
	}

	_, err = svc.CreatePost(ctx, PostInput{Title: strPtr("Why automation pays!"), Body: strPtr("x")})
	expectCode(t, err, ErrorCodeConflict)

	_, err = svc.CreatePost(ctx, PostInput{Title: strPtr("No body")})
	expectCode(t, err, ErrorCodeValidation)

	_, err = svc.CreatePost(ctx, PostInput{Title: strPtr("Bad slug"), Slug: strPtr("Bad Slug"), Body: strPtr("x")})
	expectCode(t, err, ErrorCodeValidation)
}

func TestUnpublishedPostsAreHidden(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	draft, _ := svc.CreatePost(ctx, PostInput{Title: strPtr("Draft"), Body: strPtr("soon")})
	_, err := svc.PostBySlug(ctx, draft.Slug)
	expectCode(t, err, ErrorCodeNotFound)

	published, err := svc.UpdatePost(ctx, draft.ID, PostInput{Published: boolPtr(true)})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.PublishedAt == "" {
		t.Fatalf("expected publishedAt to be set")
	}

	rendered, err := svc.PostBySlug(ctx, "DRAFT")
	if err != nil {
		t.Fatalf("post by slug: %v", err)
	}
	if !strings.Contains(rendered.HTML, "<p>soon</p>") {
		t.Fatalf("unexpected html %q", rendered.HTML)
	}
}

func TestPostBySlugDropsRawHTML(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, PostInput{
		Title:     strPtr("Safe"),
		Body:      strPtr("**bold** <script>alert(1)</script>"),
		Published: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	rendered, err := svc.PostBySlug(ctx, "safe")
	if err != nil {
		t.Fatalf("post by slug: %v", err)
	}
	if strings.Contains(rendered.HTML, "<script>") {
		t.Fatalf("expected raw html to be dropped, got %q", rendered.HTML)
	}
	if !strings.Contains(rendered.HTML, "<strong>bold</strong>") {
		t.Fatalf("expected markdown to render, got %q", rendered.HTML)
	}
}

func TestPublishedPostsRegionAndOrder(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	global, _ := svc.CreatePost(ctx, PostInput{Title: strPtr("Global"), Body: strPtr("x"), Published: boolPtr(true)})
	uk, _ := svc.CreatePost(ctx, PostInput{Title: strPtr("UK only"), Body: strPtr("x"), Region: strPtr("UK"), Published: boolPtr(true)})
	_, _ = svc.CreatePost(ctx, PostInput{Title: strPtr("India only"), Body: strPtr("x"), Region: strPtr("in"), Published: boolPtr(true)})
	_, _ = svc.CreatePost(ctx, PostInput{Title: strPtr("Draft"), Body: strPtr("x")})

	posts, err := svc.PublishedPosts(ctx, "uk")
	if err != nil {
		t.Fatalf("published posts: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != uk.ID || posts[1].ID != global.ID {
		t.Fatalf("unexpected posts %+v", posts)
	}

	all, _ := svc.PublishedPosts(ctx, "")
	if len(all) != 3 {
		t.Fatalf("expected every published post without a region, got %d", len(all))
	}
	everything, _ := svc.AllPosts(ctx)
	if len(everything) != 4 {
		t.Fatalf("expected drafts in admin list, got %d", len(everything))
	}
}

func TestUpdateAndDeletePost(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	post, _ := svc.CreatePost(ctx, PostInput{Title: strPtr("Old"), Excerpt: strPtr("teaser"), Body: strPtr("x")})

	updated, err := svc.UpdatePost(ctx, post.ID, PostInput{Title: strPtr("New"), Excerpt: strPtr("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "New" || updated.Slug != "old" || updated.Excerpt != "" {
		t.Fatalf("unexpected post %+v", updated)
	}
	got, _ := svc.GetPost(ctx, post.ID)
	if got.Excerpt != "" {
		t.Fatalf("expected excerpt to be cleared in storage, got %q", got.Excerpt)
	}

	_, err = svc.UpdatePost(ctx, "missing", PostInput{})
	expectCode(t, err, ErrorCodeNotFound)

	if err := svc.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectCode(t, svc.DeletePost(ctx, post.ID), ErrorCodeNotFound)
}

func TestProjectsOrderingAndFeatured(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _ = svc.CreateProject(ctx, ProjectInput{Title: strPtr("Zeta"), Summary: strPtr("s"), Order: intPtr(1)})
	_, _ = svc.CreateProject(ctx, ProjectInput{Title: strPtr("alpha"), Summary: strPtr("s"), Order: intPtr(1), Featured: boolPtr(true)})
	first, _ := svc.CreateProject(ctx, ProjectInput{Title: strPtr("Beta"), Summary: strPtr("s"), Order: intPtr(0)})

	projects, err := svc.Projects(ctx, false)
	if err != nil {
		t.Fatalf("projects: %v", err)
	}
	got := []string{projects[0].Title, projects[1].Title, projects[2].Title}
	if got[0] != "Beta" || got[1] != "alpha" || got[2] != "Zeta" {
		t.Fatalf("unexpected order %v", got)
	}

	featured, _ := svc.Projects(ctx, true)
	if len(featured) != 1 || featured[0].Title != "alpha" {
		t.Fatalf("unexpected featured %+v", featured)
	}

	_, err = svc.CreateProject(ctx, ProjectInput{Title: strPtr("Bad"), Summary: strPtr("s"), Link: strPtr("javascript:alert(1)")})
	expectCode(t, err, ErrorCodeValidation)

	updated, err := svc.UpdateProject(ctx, first.ID, ProjectInput{Order: intPtr(9)})
	if err != nil || updated.Order != 9 {
		t.Fatalf("update project: %+v %v", updated, err)
	}
	if err := svc.DeleteProject(ctx, first.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	_, err = svc.UpdateProject(ctx, first.ID, ProjectInput{})
	expectCode(t, err, ErrorCodeNotFound)
}

// laggyStore widens the window between the slug check and the insert.
type laggyStore struct {
	store.Store
}

func (s laggyStore) Select(ctx context.Context, table string, filter store.Filter) ([]store.Record, error) {
	recs, err := s.Store.Select(ctx, table, filter)
	time.Sleep(20 * time.Millisecond)
	return recs, err
}

func TestConcurrentCreatePostKeepsSlugUnique(t *testing.T) {
	st := store.NewMemory()
	fixed := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	svc := NewWithRepository(NewStoreRepository(laggyStore{Store: st}), func() time.Time { return fixed })

	const n = 4
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreatePost(context.Background(), PostInput{Title: strPtr("Launch Week"), Body: strPtr("x")})
			mu.Lock()
			defer mu.Unlock()
			var svcErr *Error
			switch {
			case err == nil:
				created++
			case errors.As(err, &svcErr) && svcErr.Code == ErrorCodeConflict:
				conflicts++
			default:
				t.Errorf("create: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 || conflicts != n-1 {
		t.Fatalf("expected 1 post and %d conflicts, got %d and %d", n-1, created, conflicts)
	}
	posts, err := st.Select(context.Background(), model.PostsTable, store.Filter{"slug": "launch-week"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected one stored post for the slug, got %d", len(posts))
	}
}

func TestSlugIsFreedOnRenameAndDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, PostInput{Title: strPtr("Alpha"), Body: strPtr("x")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdatePost(ctx, first.ID, PostInput{Slug: strPtr("beta")}); err != nil {
		t.Fatalf("rename: %v", err)
	}

	second, err := svc.CreatePost(ctx, PostInput{Title: strPtr("Alpha"), Body: strPtr("y")})
	if err != nil {
		t.Fatalf("expected old slug to be reusable after rename: %v", err)
	}
	_, err = svc.UpdatePost(ctx, second.ID, PostInput{Slug: strPtr("beta")})
	expectCode(t, err, ErrorCodeConflict)

	if err := svc.DeletePost(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.UpdatePost(ctx, second.ID, PostInput{Slug: strPtr("beta")}); err != nil {
		t.Fatalf("expected slug to be free after delete: %v", err)
	}
}
