package content

import (
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/store"
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

func validURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func validateProject(p model.ProjectItem) error {
	if p.Title == "" {
		return newError(ErrorCodeValidation, "title is required", nil)
	}
	if len(p.Title) > maxTitleLength {
		return newError(ErrorCodeValidation, "title is too long", nil)
	}
	if p.Summary == "" {
		return newError(ErrorCodeValidation, "summary is required", nil)
	}
	if !validURL(p.Link) || !validURL(p.ImageURL) {
		return newError(ErrorCodeValidation, "links must be absolute http(s) urls", nil)
	}
	if len(p.Tags) > maxTags {
		return newError(ErrorCodeValidation, "too many tags", nil)
	}
	return nil
}

func (s *Service) CreateProject(ctx context.Context, in ProjectInput) (model.ProjectItem, error) {
	now := s.stamp()
	project := model.ProjectItem{
		ID:        uuid.NewString(),
		Title:     trimmed(in.Title),
		Client:    trimmed(in.Client),
		Category:  strings.ToLower(trimmed(in.Category)),
		Summary:   trimmed(in.Summary),
		ImageURL:  trimmed(in.ImageURL),
		Link:      trimmed(in.Link),
		Tags:      cleanTags(in.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Featured != nil {
		project.Featured = *in.Featured
	}
	if in.Order != nil {
		project.Order = *in.Order
	}
	if err := validateProject(project); err != nil {
		return model.ProjectItem{}, err
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return model.ProjectItem{}, newError(ErrorCodeInternal, "failed to save project", err)
	}
	return project, nil
}

func (s *Service) UpdateProject(ctx context.Context, id string, in ProjectInput) (model.ProjectItem, error) {
	project, err := s.repo.GetProject(ctx, strings.TrimSpace(id))
	if errors.Is(err, ErrNotFound) {
		return model.ProjectItem{}, newError(ErrorCodeNotFound, "project not found", err)
	}
	if err != nil {
		return model.ProjectItem{}, newError(ErrorCodeInternal, "failed to load project", err)
	}

	if in.Title != nil {
		project.Title = trimmed(in.Title)
	}
	if in.Client != nil {
		project.Client = trimmed(in.Client)
	}
	if in.Category != nil {
		project.Category = strings.ToLower(trimmed(in.Category))
	}
	if in.Summary != nil {
		project.Summary = trimmed(in.Summary)
	}
	if in.ImageURL != nil {
		project.ImageURL = trimmed(in.ImageURL)
	}
	if in.Link != nil {
		project.Link = trimmed(in.Link)
	}
	if in.Tags != nil {
		project.Tags = cleanTags(in.Tags)
	}
	if in.Featured != nil {
		project.Featured = *in.Featured
	}
	if in.Order != nil {
		project.Order = *in.Order
	}
	if project.Tags == nil {
		project.Tags = []string{}
	}
	project.UpdatedAt = s.stamp()

	if err := validateProject(project); err != nil {
		return model.ProjectItem{}, err
	}
	saved, err := s.repo.SaveProject(ctx, project)
	if errors.Is(err, ErrNotFound) {
		return model.ProjectItem{}, newError(ErrorCodeNotFound, "project not found", err)
	}
	if err != nil {
		return model.ProjectItem{}, newError(ErrorCodeInternal, "failed to save project", err)
	}
	return saved, nil
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	err := s.repo.DeleteProject(ctx, strings.TrimSpace(id))
	if errors.Is(err, ErrNotFound) {
		return newError(ErrorCodeNotFound, "project not found", err)
	}
	if err != nil {
		return newError(ErrorCodeInternal, "failed to delete project", err)
	}
	return nil
}

// Projects lists portfolio entries by display order, then title.
func (s *Service) Projects(ctx context.Context, featuredOnly bool) ([]model.ProjectItem, error) {
	var filter store.Filter
	if featuredOnly {
		filter = store.Filter{"featured": true}
	}
	projects, err := s.repo.FindProjects(ctx, filter)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list projects", err)
	}
	sortProjects(projects)
	return projects, nil
}
