// Package pool assembles the question pool for a quiz from a set of files.
// Each file runs through its own read → parse → validate pipeline; failures
// stay isolated to the file that caused them.
package pool

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"quiz-practice-service/internal/domain"
	"quiz-practice-service/internal/format"
	"quiz-practice-service/internal/validate"
)

// FileSource supplies raw question-file content. Implementations live under
// internal/infra (directory on disk, Postgres table).
type FileSource interface {
	ListFiles(ctx context.Context) ([]string, error)
	ReadFile(ctx context.Context, name string) (string, error)
}

// Loader runs the per-file pipelines and aggregates the results.
type Loader struct {
	source FileSource
}

func NewLoader(source FileSource) *Loader {
	return &Loader{source: source}
}

type fileResult struct {
	questions []domain.Question
	errs      []domain.ParseError
}

// LoadPool loads the named files in parallel. Per-file failures (unreadable
// file, unsupported extension, broken JSON root) become FileError entries
// rather than aborting the batch. Aggregation follows the argument order and
// questions are renumbered sequentially, so one load always produces the
// same ids for the same inputs.
func (l *Loader) LoadPool(ctx context.Context, names []string) (domain.Pool, error) {
	results := make([]fileResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			results[i] = l.loadFile(gctx, name)
			return nil
		})
	}
	// Pipelines never return errors through the group; failures are data.
	if err := g.Wait(); err != nil {
		return domain.Pool{}, err
	}

	var pool domain.Pool
	nextID := 1
	for i, res := range results {
		if len(res.errs) > 0 {
			pool.Errors = append(pool.Errors, domain.FileError{File: names[i], Errors: res.errs})
		}
		for _, q := range res.questions {
			q.ID = nextID
			nextID++
			pool.Questions = append(pool.Questions, q)
		}
	}
	return pool, nil
}

func (l *Loader) loadFile(ctx context.Context, name string) fileResult {
	content, err := l.source.ReadFile(ctx, name)
	if err != nil {
		return fileFailure(fmt.Sprintf("read file: %v", err))
	}

	kind, err := format.Detect(name)
	if err != nil {
		return fileFailure(err.Error())
	}

	candidates, parseErrs, err := format.Parse(kind, content)
	if err != nil {
		return fileFailure(err.Error())
	}

	valid, rejected := validate.Filter(candidates)
	errs := parseErrs
	for _, r := range rejected {
		errs = append(errs, domain.ParseError{Line: r.Index + 1, Reason: r.Err.Error()})
	}
	return fileResult{questions: valid, errs: errs}
}

func fileFailure(reason string) fileResult {
	return fileResult{errs: []domain.ParseError{{Line: 0, Reason: reason}}}
}
