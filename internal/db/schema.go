package db

import (
	"context"
	"fmt"
)

var schemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS projects (
	    id BIGSERIAL PRIMARY KEY,
	    title TEXT NOT NULL,
	    category TEXT NOT NULL,
	    description TEXT NOT NULL,
	    long_description TEXT,
	    images TEXT[],
	    technologies TEXT[],
	    github_url TEXT,
	    live_url TEXT,
	    demo_url TEXT,
	    date TEXT NOT NULL,
	    featured BOOLEAN NOT NULL DEFAULT false,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS blogs (
	    id BIGSERIAL PRIMARY KEY,
	    title TEXT NOT NULL,
	    excerpt TEXT NOT NULL,
	    content TEXT NOT NULL,
	    author TEXT NOT NULL,
	    date TEXT NOT NULL,
	    tags TEXT[],
	    image TEXT,
	    read_time TEXT,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS certifications (
	    id BIGSERIAL PRIMARY KEY,
	    name TEXT NOT NULL,
	    issuer TEXT NOT NULL,
	    date TEXT NOT NULL,
	    credential_url TEXT,
	    description TEXT,
	    category TEXT,
	    image TEXT,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS achievements (
	    id BIGSERIAL PRIMARY KEY,
	    title TEXT NOT NULL,
	    description TEXT NOT NULL,
	    date TEXT NOT NULL,
	    type TEXT NOT NULL CHECK (type IN ('award', 'certification', 'competition', 'publication')),
	    icon TEXT,
	    image TEXT,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS volunteering (
	    id BIGSERIAL PRIMARY KEY,
	    role TEXT NOT NULL,
	    organization TEXT NOT NULL,
	    period TEXT NOT NULL,
	    description TEXT NOT NULL,
	    location TEXT,
	    image TEXT,
	    events JSONB,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
}

// EnsureSchema creates any missing content table. Safe to call repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.q == nil {
		return errNotInitialized
	}
	for _, stmt := range schemaSQL {
		if _, err := s.q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
