package content

import (
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/store"
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("content not found")
	ErrSlugTaken = errors.New("slug already in use")
)

type Repository interface {
	CreatePost(ctx context.Context, post model.PostItem) error
	GetPost(ctx context.Context, id string) (model.PostItem, error)
	FindPosts(ctx context.Context, filter store.Filter) ([]model.PostItem, error)
	SavePost(ctx context.Context, post model.PostItem) (model.PostItem, error)
	DeletePost(ctx context.Context, id string) error
	ClaimSlug(ctx context.Context, slug, postID string) error
	ReleaseSlug(ctx context.Context, slug, postID string) error

	CreateProject(ctx context.Context, project model.ProjectItem) error
	GetProject(ctx context.Context, id string) (model.ProjectItem, error)
	FindProjects(ctx context.Context, filter store.Filter) ([]model.ProjectItem, error)
	SaveProject(ctx context.Context, project model.ProjectItem) (model.ProjectItem, error)
	DeleteProject(ctx context.Context, id string) error
}

type StoreRepository struct {
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func insert(ctx context.Context, st store.Store, table string, item any) error {
	rec, err := store.Encode(item)
	if err != nil {
		return err
	}
	_, err = st.Insert(ctx, table, rec)
	return err
}

func get[T any](ctx context.Context, st store.Store, table, id string) (T, error) {
	var out T
	rec, err := st.Get(ctx, table, id)
	if err != nil {
		return out, notFound(err)
	}
	err = store.Decode(rec, &out)
	return out, err
}

func find[T any](ctx context.Context, st store.Store, table string, filter store.Filter) ([]T, error) {
	recs, err := st.Select(ctx, table, filter)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var item T
		if err := store.Decode(rec, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// save overwrites every field of the stored record with item.
func save[T any](ctx context.Context, st store.Store, table, id string, item T) (T, error) {
	var out T
	rec, err := store.Encode(item)
	if err != nil {
		return out, err
	}
	updated, err := st.Update(ctx, table, id, rec)
	if err != nil {
		return out, notFound(err)
	}
	err = store.Decode(updated, &out)
	return out, err
}

func (r *StoreRepository) CreatePost(ctx context.Context, post model.PostItem) error {
	return insert(ctx, r.st, model.PostsTable, post)
}

func (r *StoreRepository) GetPost(ctx context.Context, id string) (model.PostItem, error) {
	return get[model.PostItem](ctx, r.st, model.PostsTable, id)
}

func (r *StoreRepository) FindPosts(ctx context.Context, filter store.Filter) ([]model.PostItem, error) {
	return find[model.PostItem](ctx, r.st, model.PostsTable, filter)
}

func (r *StoreRepository) SavePost(ctx context.Context, post model.PostItem) (model.PostItem, error) {
	return save(ctx, r.st, model.PostsTable, post.ID, post)
}

func (r *StoreRepository) DeletePost(ctx context.Context, id string) error {
	return notFound(r.st.Delete(ctx, model.PostsTable, id))
}

// ClaimSlug reserves slug for postID. Claiming a slug the post already owns
// succeeds; a slug owned by another post returns ErrSlugTaken.
func (r *StoreRepository) ClaimSlug(ctx context.Context, slug, postID string) error {
	for attempt := 0; attempt < 3; attempt++ {
		err := insert(ctx, r.st, model.PostSlugsTable, model.PostSlugItem{Slug: slug, PostID: postID})
		if !errors.Is(err, store.ErrConflict) {
			return err
		}
		claim, err := get[model.PostSlugItem](ctx, r.st, model.PostSlugsTable, slug)
		if errors.Is(err, ErrNotFound) {
			// released between the insert and the read
			continue
		}
		if err != nil {
			return err
		}
		if claim.PostID != postID {
			return ErrSlugTaken
		}
		return nil
	}
	return ErrSlugTaken
}

// ReleaseSlug drops the reservation when postID still holds it.
func (r *StoreRepository) ReleaseSlug(ctx context.Context, slug, postID string) error {
	claim, err := get[model.PostSlugItem](ctx, r.st, model.PostSlugsTable, slug)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if claim.PostID != postID {
		return nil
	}
	return notFoundOK(r.st.Delete(ctx, model.PostSlugsTable, slug))
}

func notFoundOK(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

func (r *StoreRepository) CreateProject(ctx context.Context, project model.ProjectItem) error {
	return insert(ctx, r.st, model.ProjectsTable, project)
}

func (r *StoreRepository) GetProject(ctx context.Context, id string) (model.ProjectItem, error) {
	return get[model.ProjectItem](ctx, r.st, model.ProjectsTable, id)
}

func (r *StoreRepository) FindProjects(ctx context.Context, filter store.Filter) ([]model.ProjectItem, error) {
	return find[model.ProjectItem](ctx, r.st, model.ProjectsTable, filter)
}

func (r *StoreRepository) SaveProject(ctx context.Context, project model.ProjectItem) (model.ProjectItem, error) {
	return save(ctx, r.st, model.ProjectsTable, project.ID, project)
}

func (r *StoreRepository) DeleteProject(ctx context.Context, id string) error {
	return notFound(r.st.Delete(ctx, model.ProjectsTable, id))
}
