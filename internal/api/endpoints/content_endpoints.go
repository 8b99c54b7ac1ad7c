package endpoints

import (
	"blackarrow-backend/internal/dto"
	"blackarrow-backend/internal/model"
	"blackarrow-backend/internal/service/content"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type ContentEndpoints interface {
	PublishedPosts(http.ResponseWriter, *http.Request) error
	PostBySlug(http.ResponseWriter, *http.Request) error
	Projects(http.ResponseWriter, *http.Request) error

	AllPosts(http.ResponseWriter, *http.Request) error
	CreatePost(http.ResponseWriter, *http.Request) error
	GetPost(http.ResponseWriter, *http.Request) error
	UpdatePost(http.ResponseWriter, *http.Request) error
	DeletePost(http.ResponseWriter, *http.Request) error
	CreateProject(http.ResponseWriter, *http.Request) error
	UpdateProject(http.ResponseWriter, *http.Request) error
	DeleteProject(http.ResponseWriter, *http.Request) error
}

type contentEndpoints struct {
	service *content.Service
}

func NewContentEndpoints(service *content.Service) ContentEndpoints {
	return &contentEndpoints{service: service}
}

func toPostSummary(p model.PostItem) dto.PostSummary {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.PostSummary{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		Tags:        tags,
		Region:      p.Region,
		PublishedAt: p.PublishedAt,
	}
}

func toPostInput(req dto.PostRequest) content.PostInput {
	return content.PostInput{
		Slug:       req.Slug,
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Region:     req.Region,
		Published:  req.Published,
	}
}

func toProjectInput(req dto.ProjectRequest) content.ProjectInput {
	return content.ProjectInput{
		Title:    req.Title,
		Client:   req.Client,
		Category: req.Category,
		Summary:  req.Summary,
		ImageURL: req.ImageURL,
		Link:     req.Link,
		Tags:     req.Tags,
		Featured: req.Featured,
		Order:    req.Order,
	}
}

func (h *contentEndpoints) PublishedPosts(w http.ResponseWriter, r *http.Request) error {
	posts, err := h.service.PublishedPosts(r.Context(), r.URL.Query().Get("region"))
	if err != nil {
		return serviceError("list posts", err)
	}

	resp := dto.PostListResponse{Posts: make([]dto.PostSummary, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, toPostSummary(p))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *contentEndpoints) PostBySlug(w http.ResponseWriter, r *http.Request) error {
	rendered, err := h.service.PostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return serviceError("get post", err)
	}
	return WriteJSON(w, http.StatusOK, dto.PostDetailResponse{
		PostSummary: toPostSummary(rendered.Post),
		HTML:        rendered.HTML,
	})
}

// Projects serves both surfaces; ?featured=true narrows the list to featured work.
func (h *contentEndpoints) Projects(w http.ResponseWriter, r *http.Request) error {
	featuredOnly := false
	if raw := r.URL.Query().Get("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return &HTTPError{
				StatusCode: http.StatusBadRequest,
				Message:    "featured must be true or false",
				ErrorLog:   fmt.Errorf("parse featured %q: %w", raw, err),
			}
		}
		featuredOnly = v
	}

	projects, err := h.service.Projects(r.Context(), featuredOnly)
	if err != nil {
		return serviceError("list projects", err)
	}
	if projects == nil {
		projects = []model.ProjectItem{}
	}
	return WriteJSON(w, http.StatusOK, dto.ProjectListResponse{Projects: projects})
}

func (h *contentEndpoints) AllPosts(w http.ResponseWriter, r *http.Request) error {
	posts, err := h.service.AllPosts(r.Context())
	if err != nil {
		return serviceError("list posts", err)
	}
	if posts == nil {
		posts = []model.PostItem{}
	}
	return WriteJSON(w, http.StatusOK, dto.AdminPostListResponse{Posts: posts})
}

func (h *contentEndpoints) CreatePost(w http.ResponseWriter, r *http.Request) error {
	var req dto.PostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	post, err := h.service.CreatePost(r.Context(), toPostInput(req))
	if err != nil {
		return serviceError("create post", err)
	}
	return WriteJSON(w, http.StatusCreated, post)
}

func (h *contentEndpoints) GetPost(w http.ResponseWriter, r *http.Request) error {
	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return serviceError("get post", err)
	}
	return WriteJSON(w, http.StatusOK, post)
}

func (h *contentEndpoints) UpdatePost(w http.ResponseWriter, r *http.Request) error {
	var req dto.PostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	post, err := h.service.UpdatePost(r.Context(), chi.URLParam(r, "id"), toPostInput(req))
	if err != nil {
		return serviceError("update post", err)
	}
	return WriteJSON(w, http.StatusOK, post)
}

func (h *contentEndpoints) DeletePost(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		return serviceError("delete post", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *contentEndpoints) CreateProject(w http.ResponseWriter, r *http.Request) error {
	var req dto.ProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	project, err := h.service.CreateProject(r.Context(), toProjectInput(req))
	if err != nil {
		return serviceError("create project", err)
	}
	return WriteJSON(w, http.StatusCreated, project)
}

func (h *contentEndpoints) UpdateProject(w http.ResponseWriter, r *http.Request) error {
	var req dto.ProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	project, err := h.service.UpdateProject(r.Context(), chi.URLParam(r, "id"), toProjectInput(req))
	if err != nil {
		return serviceError("update project", err)
	}
	return WriteJSON(w, http.StatusOK, project)
}

func (h *contentEndpoints) DeleteProject(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		return serviceError("delete project", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
