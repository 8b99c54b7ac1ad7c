package content

import (
	"blackarrow-backend/internal/model"
	"sort"
	"strings"
)

func sortPosts(posts []model.PostItem, key func(model.PostItem) string) {
	sort.SliceStable(posts, func(i, j int) bool {
		ki, kj := key(posts[i]), key(posts[j])
		if ki == kj {
			return posts[i].ID < posts[j].ID
		}
		return ki > kj
	})
}

func sortProjects(projects []model.ProjectItem) {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Order != projects[j].Order {
			return projects[i].Order < projects[j].Order
		}
		return strings.ToLower(projects[i].Title) < strings.ToLower(projects[j].Title)
	})
}
