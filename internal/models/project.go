package models

type Project struct {
	Identity
	Title           string   `json:"title" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Date            string   `json:"date" validate:"required"`
	LongDescription string   `json:"longDescription,omitempty"`
	Images          []string `json:"images,omitempty"`
	Technologies    []string `json:"technologies,omitempty"`
	GithubURL       string   `json:"githubUrl,omitempty"`
	LiveURL         string   `json:"liveUrl,omitempty"`
	DemoURL         string   `json:"demoUrl,omitempty"`
	Featured        bool     `json:"featured"`
}

func (p Project) SortKey() string {
	return p.Date
}
