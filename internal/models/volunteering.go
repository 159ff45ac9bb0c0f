package models

import "encoding/json"

// VolunteeringRecord stores Events as an opaque JSON document, normally a
// list of {name, date, description, role, impact} objects.
type VolunteeringRecord struct {
	Identity
	Role         string          `json:"role" validate:"required"`
	Organization string          `json:"organization" validate:"required"`
	Period       string          `json:"period" validate:"required"`
	Description  string          `json:"description" validate:"required"`
	Location     string          `json:"location,omitempty"`
	Image        string          `json:"image,omitempty"`
	Events       json.RawMessage `json:"events,omitempty"`
}

func (v VolunteeringRecord) SortKey() string {
	return v.Period
}
