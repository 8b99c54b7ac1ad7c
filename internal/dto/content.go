package dto

import "blackarrow-backend/internal/model"

// PostRequest is used for create and patch; omitted fields are left unchanged.
type PostRequest struct {
	Slug       *string  `json:"slug"`
	Title      *string  `json:"title"`
	Excerpt    *string  `json:"excerpt"`
	Body       *string  `json:"body"`
	CoverImage *string  `json:"coverImage"`
	Tags       []string `json:"tags"`
	Region     *string  `json:"region"`
	Published  *bool    `json:"published"`
}

type PostSummary struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	CoverImage  string   `json:"coverImage,omitempty"`
	Tags        []string `json:"tags"`
	Region      string   `json:"region,omitempty"`
	PublishedAt string   `json:"publishedAt"`
}

type PostListResponse struct {
	Posts []PostSummary `json:"posts"`
}

type PostDetailResponse struct {
	PostSummary
	HTML string `json:"html"`
}

type AdminPostListResponse struct {
	Posts []model.PostItem `json:"posts"`
}

type ProjectRequest struct {
	Title    *string  `json:"title"`
	Client   *string  `json:"client"`
	Category *string  `json:"category"`
	Summary  *string  `json:"summary"`
	ImageURL *string  `json:"imageUrl"`
	Link     *string  `json:"link"`
	Tags     []string `json:"tags"`
	Featured *bool    `json:"featured"`
	Order    *int     `json:"order"`
}

type ProjectListResponse struct {
	Projects []model.ProjectItem `json:"projects"`
}
