package models

// AchievementType classifies an achievement.
type AchievementType string

const (
	AchievementAward         AchievementType = "award"
	AchievementCertification AchievementType = "certification"
	AchievementCompetition   AchievementType = "competition"
	AchievementPublication   AchievementType = "publication"
)

type Achievement struct {
	Identity
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Date        string          `json:"date" validate:"required"`
	Type        AchievementType `json:"type" validate:"required,achievement_type"`
	Icon        string          `json:"icon,omitempty"`
	Image       string          `json:"image,omitempty"`
}

func (a Achievement) SortKey() string {
	return a.Date
}
