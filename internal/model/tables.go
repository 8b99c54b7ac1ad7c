package model

const (
	LeadsTable     = "leads"
	PostsTable     = "posts"
	PostSlugsTable = "post_slugs"
	ProjectsTable  = "projects"
	RegionsTable   = "regions"
)
