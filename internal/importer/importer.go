// Package importer reconciles an externally sourced batch of records with
// the content store: update when the id matches an existing record, create
// otherwise, never abort the batch on a single bad entry.
package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/go-playground/validator/v10"

	"github.com/BorisDmv/portfolio-api/internal/metrics"
	"github.com/BorisDmv/portfolio-api/internal/models"
	"github.com/BorisDmv/portfolio-api/internal/repository"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// Outcome is one applied entry.
type Outcome struct {
	Index  int
	ID     int64
	Action Action
}

// Failure is one rejected entry. ID is the client-supplied id, if any.
type Failure struct {
	Index int
	ID    *int64
	Label string
	Err   error
}

// KindReport is the result for one kind, entries in input order.
type KindReport struct {
	Kind      models.Kind
	Succeeded []Outcome
	Failed    []Failure
}

// Report is the result of one import run.
type Report struct {
	Kinds []KindReport
}

// For returns the report of kind, empty if the kind was not processed.
func (r Report) For(kind models.Kind) KindReport {
	for _, kr := range r.Kinds {
		if kr.Kind == kind {
			return kr
		}
	}
	return KindReport{Kind: kind}
}

// Count returns the number of entries of kind that were applied.
func (r Report) Count(kind models.Kind) int {
	return len(r.For(kind).Succeeded)
}

// Failures returns every failed entry across kinds.
func (r Report) Failures() []Failure {
	var out []Failure
	for _, kr := range r.Kinds {
		out = append(out, kr.Failed...)
	}
	return out
}

type idSet map[int64]struct{}

// kindRunner binds one kind's repository to the generic import steps.
type kindRunner struct {
	kind     models.Kind
	snapshot func(ctx context.Context) (idSet, error)
	apply    func(ctx context.Context, entries []json.RawMessage, known idSet) (KindReport, error)
}

// Importer runs import batches against a repository set.
type Importer struct {
	runners []kindRunner
	logs    *log.Entry
}

// New binds one runner per kind of repos.
func New(repos repository.Set, validate *validator.Validate) *Importer {
	im := &Importer{
		logs: log.WithFields(log.Fields{
			"package": "portfolio", "module": "importer", "component": "import-engine",
		}),
	}
	im.runners = []kindRunner{
		runnerFor(im, models.KindProjects, repos.Projects, validate),
		runnerFor(im, models.KindBlogs, repos.Blogs, validate),
		runnerFor(im, models.KindCertifications, repos.Certifications, validate),
		runnerFor(im, models.KindAchievements, repos.Achievements, validate),
		runnerFor(im, models.KindVolunteering, repos.Volunteering, validate),
	}
	return im
}

// Run applies doc kind by kind, entries in order. Snapshots of the kinds in
// doc are taken before any write and not refreshed. Entry failures go to the
// report; only a snapshot failure or cancellation is returned, with the
// partial report.
func (im *Importer) Run(ctx context.Context, doc Document) (Report, error) {
	snapshots := make(map[models.Kind]idSet, len(im.runners))
	for _, r := range im.runners {
		if len(doc[r.kind]) == 0 {
			continue
		}
		known, err := r.snapshot(ctx)
		if err != nil {
			return Report{}, fmt.Errorf("snapshot %s: %w", r.kind, err)
		}
		snapshots[r.kind] = known
	}

	var report Report
	for _, r := range im.runners {
		kr, err := r.apply(ctx, doc[r.kind], snapshots[r.kind])
		report.Kinds = append(report.Kinds, kr)
		if err != nil {
			return report, err
		}
	}

	im.logs.WithFields(log.Fields{
		"projects":       report.Count(models.KindProjects),
		"blogs":          report.Count(models.KindBlogs),
		"certifications": report.Count(models.KindCertifications),
		"achievements":   report.Count(models.KindAchievements),
		"volunteering":   report.Count(models.KindVolunteering),
		"failed":         len(report.Failures()),
	}).Info("Import finished")
	return report, nil
}

func runnerFor[T models.Record](
	im *Importer, kind models.Kind, repo repository.Repository[T], validate *validator.Validate,
) kindRunner {
	return kindRunner{
		kind: kind,
		snapshot: func(ctx context.Context) (idSet, error) {
			existing, err := repo.List(ctx)
			if err != nil {
				return nil, err
			}
			known := make(idSet, len(existing))
			for _, rec := range existing {
				known[rec.RecordID()] = struct{}{}
			}
			return known, nil
		},
		apply: func(ctx context.Context, entries []json.RawMessage, known idSet) (KindReport, error) {
			report := KindReport{Kind: kind}
			for index, raw := range entries {
				if err := ctx.Err(); err != nil {
					return report, err
				}
				outcome, failure := applyEntry(ctx, repo, validate, known, index, raw)
				if failure != nil {
					im.logs.WithFields(log.Fields{
						"kind":  kind.String(),
						"index": index,
						"id":    idField(failure.ID),
						"label": failure.Label,
					}).WithError(failure.Err).Warn("Import entry failed")
					metrics.ImportItems.WithLabelValues(kind.String(), "failed").Inc()
					report.Failed = append(report.Failed, *failure)
					continue
				}
				metrics.ImportItems.WithLabelValues(kind.String(), string(outcome.Action)).Inc()
				report.Succeeded = append(report.Succeeded, outcome)
			}
			return report, nil
		},
	}
}

func applyEntry[T models.Record](
	ctx context.Context,
	repo repository.Repository[T],
	validate *validator.Validate,
	known idSet,
	index int,
	raw json.RawMessage,
) (Outcome, *Failure) {
	e, err := splitEntry(raw)
	if err != nil {
		return Outcome{}, &Failure{Index: index, Err: err}
	}
	fail := func(err error) (Outcome, *Failure) {
		return Outcome{}, &Failure{Index: index, ID: e.id, Label: e.label, Err: err}
	}

	rec, err := models.DecodeRecord[T](validate, e.payload)
	if err != nil {
		return fail(err)
	}

	if e.id != nil {
		if _, ok := known[*e.id]; ok {
			updated, err := repo.Update(ctx, *e.id, rec)
			if err != nil {
				return fail(err)
			}
			return Outcome{Index: index, ID: (*updated).RecordID(), Action: ActionUpdated}, nil
		}
	}

	created, err := repo.Create(ctx, rec)
	if err != nil {
		return fail(err)
	}
	return Outcome{Index: index, ID: (*created).RecordID(), Action: ActionCreated}, nil
}

func idField(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
