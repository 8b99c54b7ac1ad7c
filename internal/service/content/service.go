package content

import (
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/store"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const (
	maxTitleLength = 200
	maxTags        = 20
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(st store.Store) *Service {
	return NewWithRepository(NewStoreRepository(st), time.Now)
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

// Slugify lowercases title and joins its letter and digit runs with dashes.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func (s *Service) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *Service) slugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	posts, err := s.repo.FindPosts(ctx, store.Filter{"slug": slug})
	if err != nil {
		return false, err
	}
	for _, p := range posts {
		if p.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) claimSlug(ctx context.Context, slug, postID string) error {
	err := s.repo.ClaimSlug(ctx, slug, postID)
	if errors.Is(err, ErrSlugTaken) {
		return newError(ErrorCodeConflict, "slug already in use", err)
	}
	if err != nil {
		return newError(ErrorCodeInternal, "failed to reserve slug", err)
	}
	return nil
}

func (s *Service) releaseSlug(ctx context.Context, slug, postID string) {
	if err := s.repo.ReleaseSlug(ctx, slug, postID); err != nil {
		slog.WarnContext(ctx, "release post slug", "slug", slug, "post_id", postID, "error", err)
	}
}

func validatePost(post model.PostItem) error {
	if post.Title == "" {
		return newError(ErrorCodeValidation, "title is required", nil)
	}
	if len(post.Title) > maxTitleLength {
		return newError(ErrorCodeValidation, "title is too long", nil)
	}
	if post.Slug == "" || post.Slug != Slugify(post.Slug) {
		return newError(ErrorCodeValidation, "slug must contain only lowercase letters, digits and dashes", nil)
	}
	if strings.TrimSpace(post.Body) == "" {
		return newError(ErrorCodeValidation, "body is required", nil)
	}
	if len(post.Tags) > maxTags {
		return newError(ErrorCodeValidation, "too many tags", nil)
	}
	return nil
}

func (s *Service) CreatePost(ctx context.Context, in PostInput) (model.PostItem, error) {
	now := s.stamp()
	post := model.PostItem{
		ID:         uuid.NewString(),
		Title:      trimmed(in.Title),
		Slug:       trimmed(in.Slug),
		Excerpt:    trimmed(in.Excerpt),
		Body:       trimmed(in.Body),
		CoverImage: trimmed(in.CoverImage),
		Tags:       cleanTags(in.Tags),
		Region:     strings.ToLower(trimmed(in.Region)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	if in.Published != nil && *in.Published {
		post.Published = true
		post.PublishedAt = now
	}
	if err := validatePost(post); err != nil {
		return model.PostItem{}, err
	}

	taken, err := s.slugTaken(ctx, post.Slug, "")
	if err != nil {
		return model.PostItem{}, newError(ErrorCodeInternal, "failed to check slug", err)
	}
	if taken {
		return model.PostItem{}, newError(ErrorCodeConflict, "slug already in use", nil)
	}
	if err := s.claimSlug(ctx, post.Slug, post.ID); err != nil {
		return model.PostItem{}, err
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		s.releaseSlug(ctx, post.Slug, post.ID)
		return model.PostItem{}, newError(ErrorCodeInternal, "failed to save post", err)
	}
	return post, nil
}

func (s *Service) UpdatePost(ctx context.Context, id string, in PostInput) (model.PostItem, error) {
	post, err := s.repo.GetPost(ctx, strings.TrimSpace(id))
	if errors.Is(err, ErrNotFound) {
		return model.PostItem{}, newError(ErrorCodeNotFound, "post not found", err)
	}
	if err != nil {
		return model.PostItem{}, newError(ErrorCodeInternal, "failed to load post", err)
	}
	oldSlug := post.Slug

	if in.Title != nil {
		post.Title = trimmed(in.Title)
	}
	if in.Slug != nil {
		post.Slug = trimmed(in.Slug)
	}
	if in.Excerpt != nil {
		post.Excerpt = trimmed(in.Excerpt)
	}
	if in.Body != nil {
		post.Body = trimmed(in.Body)
	}
	if in.CoverImage != nil {
		post.CoverImage = trimmed(in.CoverImage)
	}
	if in.Tags != nil {
		post.Tags = cleanTags(in.Tags)
	}
	if in.Region != nil {
		post.Region = strings.ToLower(trimmed(in.Region))
	}
	now := s.stamp()
	if in.Published != nil {
		if *in.Published && !post.Published {
			post.PublishedAt = now
		}
		post.Published = *in.Published
	}
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := validatePost(post); err != nil {
		return model.PostItem{}, err
	}
	taken, err := s.slugTaken(ctx, post.Slug, post.ID)
	if err != nil {
		return model.PostItem{}, newError(ErrorCodeInternal, "failed to check slug", err)
	}
	if taken {
		return model.PostItem{}, newError(ErrorCodeConflict, "slug already in use", nil)
	}
	if err := s.claimSlug(ctx, post.Slug, post.ID); err != nil {
		return model.PostItem{}, err
	}

	saved, err := s.repo.SavePost(ctx, post)
	if err != nil {
		if post.Slug != oldSlug {
			s.releaseSlug(ctx, post.Slug, post.ID)
		}
		if errors.Is(err, ErrNotFound) {
			return model.PostItem{}, newError(ErrorCodeNotFound, "post not found", err)
		}
		return model.PostItem{}, newError(ErrorCodeInternal, "failed to save post", err)
	}
	if post.Slug != oldSlug {
		s.releaseSlug(ctx, oldSlug, post.ID)
	}
	return saved, nil
}

func (s *Service) DeletePost(ctx context.Context, id string) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	err = s.repo.DeletePost(ctx, post.ID)
	if errors.Is(err, ErrNotFound) {
		return newError(ErrorCodeNotFound, "post not found", err)
	}
	if err != nil {
		return newError(ErrorCodeInternal, "failed to delete post", err)
	}
	s.releaseSlug(ctx, post.Slug, post.ID)
	return nil
}

func (s *Service) GetPost(ctx context.Context, id string) (model.PostItem, error) {
	post, err := s.repo.GetPost(ctx, strings.TrimSpace(id))
	if errors.Is(err, ErrNotFound) {
		return model.PostItem{}, newError(ErrorCodeNotFound, "post not found", err)
	}
	if err != nil {
		return model.PostItem{}, newError(ErrorCodeInternal, "failed to load post", err)
	}
	return post, nil
}

// AllPosts lists drafts and published posts, most recently created first.
func (s *Service) AllPosts(ctx context.Context) ([]model.PostItem, error) {
	posts, err := s.repo.FindPosts(ctx, nil)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list posts", err)
	}
	sortPosts(posts, func(p model.PostItem) string { return p.CreatedAt })
	return posts, nil
}

// PublishedPosts lists published posts for region, newest first. Posts
// without a region are shown everywhere.
func (s *Service) PublishedPosts(ctx context.Context, region string) ([]model.PostItem, error) {
	posts, err := s.repo.FindPosts(ctx, store.Filter{"published": true})
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list posts", err)
	}
	region = strings.ToLower(strings.TrimSpace(region))

	out := posts[:0]
	for _, p := range posts {
		if region == "" || p.Region == "" || p.Region == region {
			out = append(out, p)
		}
	}
	sortPosts(out, func(p model.PostItem) string { return p.PublishedAt })
	return out, nil
}

func (s *Service) PostBySlug(ctx context.Context, slug string) (RenderedPost, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return RenderedPost{}, newError(ErrorCodeValidation, "slug is required", nil)
	}
	posts, err := s.repo.FindPosts(ctx, store.Filter{"slug": slug, "published": true})
	if err != nil {
		return RenderedPost{}, newError(ErrorCodeInternal, "failed to load post", err)
	}
	if len(posts) == 0 {
		return RenderedPost{}, newError(ErrorCodeNotFound, "post not found", nil)
	}

	html, err := renderMarkdown(posts[0].Body)
	if err != nil {
		return RenderedPost{}, newError(ErrorCodeInternal, "failed to render post", err)
	}
	return RenderedPost{Post: posts[0], HTML: html}, nil
}
