package model

type PostItem struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Body        string   `json:"body"`
	CoverImage  string   `json:"coverImage"`
	Tags        []string `json:"tags"`
	Region      string   `json:"region"`
	Published   bool     `json:"published"`
	PublishedAt string   `json:"publishedAt"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type ProjectItem struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Client    string   `json:"client"`
	Category  string   `json:"category"`
	Summary   string   `json:"summary"`
	ImageURL  string   `json:"imageUrl"`
	Link      string   `json:"link"`
	Tags      []string `json:"tags"`
	Featured  bool     `json:"featured"`
	Order     int      `json:"order"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// PostSlugItem reserves a slug for one post; the slug is the record id.
type PostSlugItem struct {
	Slug   string `json:"id"`
	PostID string `json:"postId"`
}
