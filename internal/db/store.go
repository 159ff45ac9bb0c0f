package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BorisDmv/portfolio-api/internal/models"
	"github.com/BorisDmv/portfolio-api/internal/repository"
)

var errNotInitialized = errors.New("db not initialized")

// Querier is the subset of pgxpool.Pool the store issues statements through.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the Postgres content store, one table per kind.
type Store struct {
	pool *pgxpool.Pool
	q    Querier

	projects       *Table[models.Project]
	blogs          *Table[models.BlogPost]
	certifications *Table[models.Certification]
	achievements   *Table[models.Achievement]
	volunteering   *Table[models.VolunteeringRecord]
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	s := NewStoreWithQuerier(pool)
	s.pool = pool
	return s, nil
}

// NewStoreWithQuerier builds a store over an existing connection or mock.
func NewStoreWithQuerier(q Querier) *Store {
	return &Store{
		q:              q,
		projects:       newProjectsTable(q),
		blogs:          newBlogsTable(q),
		certifications: newCertificationsTable(q),
		achievements:   newAchievementsTable(q),
		volunteering:   newVolunteeringTable(q),
	}
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Projects() *Table[models.Project] {
	return s.projects
}

func (s *Store) Blogs() *Table[models.BlogPost] {
	return s.blogs
}

func (s *Store) Certifications() *Table[models.Certification] {
	return s.certifications
}

func (s *Store) Achievements() *Table[models.Achievement] {
	return s.achievements
}

func (s *Store) Volunteering() *Table[models.VolunteeringRecord] {
	return s.volunteering
}

// Repositories exposes the tables through the record access contract.
func (s *Store) Repositories() repository.Set {
	return repository.Set{
		Projects:       s.projects,
		Blogs:          s.blogs,
		Certifications: s.certifications,
		Achievements:   s.achievements,
		Volunteering:   s.volunteering,
	}
}
