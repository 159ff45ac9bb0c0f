package models

type BlogPost struct {
	Identity
	Title    string   `json:"title" validate:"required"`
	Excerpt  string   `json:"excerpt" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Author   string   `json:"author" validate:"required"`
	Date     string   `json:"date" validate:"required"`
	Tags     []string `json:"tags,omitempty"`
	Image    string   `json:"image,omitempty"`
	ReadTime string   `json:"readTime,omitempty"`
}

func (b BlogPost) SortKey() string {
	return b.Date
}
