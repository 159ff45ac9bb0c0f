package models

type Certification struct {
	Identity
	Name          string `json:"name" validate:"required"`
	Issuer        string `json:"issuer" validate:"required"`
	Date          string `json:"date" validate:"required"`
	CredentialURL string `json:"credentialUrl,omitempty"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	Image         string `json:"image,omitempty"`
}

func (c Certification) SortKey() string {
	return c.Date
}
