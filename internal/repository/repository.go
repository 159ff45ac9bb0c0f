// Package repository defines the record access contract shared by the
// content store backends, the cache and their callers.
package repository

import (
	"context"

	"github.com/BorisDmv/portfolio-api/internal/models"
)

// Repository is the per-kind record access contract.
type Repository[T models.Record] interface {
	// List returns every record ordered by its sort key, descending.
	List(ctx context.Context) ([]T, error)
	// Create inserts rec and returns it with the server-assigned fields.
	Create(ctx context.Context, rec T) (*T, error)
	// Update replaces every mutable field of the record with the given id.
	// A missing id yields a NOT_FOUND AppError.
	Update(ctx context.Context, id int64, rec T) (*T, error)
	// Delete removes the record. A missing id is not an error.
	Delete(ctx context.Context, id int64) error
}

// Set bundles one repository per kind.
type Set struct {
	Projects       Repository[models.Project]
	Blogs          Repository[models.BlogPost]
	Certifications Repository[models.Certification]
	Achievements   Repository[models.Achievement]
	Volunteering   Repository[models.VolunteeringRecord]
}

// SchemaManager bootstraps the backing tables.
type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
}
