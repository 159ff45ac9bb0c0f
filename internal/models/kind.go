package models

// Kind names one content category. The value doubles as the URL segment,
// the import document key and the cache key suffix.
type Kind string

const (
	KindProjects       Kind = "projects"
	KindBlogs          Kind = "blogs"
	KindCertifications Kind = "certifications"
	KindAchievements   Kind = "achievements"
	KindVolunteering   Kind = "volunteering"
)

// Kinds lists every kind in processing order.
func Kinds() []Kind {
	return []Kind{
		KindProjects,
		KindBlogs,
		KindCertifications,
		KindAchievements,
		KindVolunteering,
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
