// Package memory is the in-process content store used when no database is
// configured. It keeps the ordering and not-found semantics of the
// Postgres store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BorisDmv/portfolio-api/internal/models"
	"github.com/BorisDmv/portfolio-api/internal/repository"
)

// stamped is satisfied by pointers to the record structs.
type stamped[T any] interface {
	*T
	models.Record
	Stamp() models.Identity
	SetIdentity(models.Identity)
}

// Table holds the records of one kind.
type Table[T models.Record, P stamped[T]] struct {
	kind models.Kind
	now  func() time.Time

	mu      sync.Mutex
	nextID  int64
	records map[int64]T
}

func NewTable[T models.Record, P stamped[T]](kind models.Kind) *Table[T, P] {
	return &Table[T, P]{
		kind:    kind,
		now:     func() time.Time { return time.Now().UTC() },
		records: make(map[int64]T),
	}
}

func (t *Table[T, P]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]T, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortKey() != out[j].SortKey() {
			return out[i].SortKey() > out[j].SortKey()
		}
		return out[i].RecordID() > out[j].RecordID()
	})
	return out, nil
}

func (t *Table[T, P]) Create(ctx context.Context, rec T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	now := t.now()
	P(&rec).SetIdentity(models.Identity{ID: t.nextID, CreatedAt: now, UpdatedAt: now})
	t.records[t.nextID] = rec
	return &rec, nil
}

func (t *Table[T, P]) Update(ctx context.Context, id int64, rec T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.records[id]
	if !ok {
		return nil, models.NewNotFoundError(t.kind, id)
	}
	createdAt := P(&existing).Stamp().CreatedAt
	P(&rec).SetIdentity(models.Identity{ID: id, CreatedAt: createdAt, UpdatedAt: t.now()})
	t.records[id] = rec
	return &rec, nil
}

func (t *Table[T, P]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.records, id)
	return nil
}

// Store bundles one table per kind.
type Store struct {
	Projects       *Table[models.Project, *models.Project]
	Blogs          *Table[models.BlogPost, *models.BlogPost]
	Certifications *Table[models.Certification, *models.Certification]
	Achievements   *Table[models.Achievement, *models.Achievement]
	Volunteering   *Table[models.VolunteeringRecord, *models.VolunteeringRecord]
}

func NewStore() *Store {
	return &Store{
		Projects:       NewTable[models.Project](models.KindProjects),
		Blogs:          NewTable[models.BlogPost](models.KindBlogs),
		Certifications: NewTable[models.Certification](models.KindCertifications),
		Achievements:   NewTable[models.Achievement](models.KindAchievements),
		Volunteering:   NewTable[models.VolunteeringRecord](models.KindVolunteering),
	}
}

func (s *Store) Repositories() repository.Set {
	return repository.Set{
		Projects:       s.Projects,
		Blogs:          s.Blogs,
		Certifications: s.Certifications,
		Achievements:   s.Achievements,
		Volunteering:   s.Volunteering,
	}
}

// EnsureSchema is a no-op; tables exist from construction.
func (s *Store) EnsureSchema(context.Context) error {
	return nil
}
