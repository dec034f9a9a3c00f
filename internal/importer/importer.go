// Package importer drives the ingestion pipeline for a batch of bank export
// files: detection, mapping, validation, duplicate detection, transactional
// persistence and archiving. Files are independent; one bad file never
// aborts the batch.
package importer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog"

	"github.com/ledgerfeed/ledgerfeed/internal/dedup"
	"github.com/ledgerfeed/ledgerfeed/internal/model"
	"github.com/ledgerfeed/ledgerfeed/internal/profile"
	"github.com/ledgerfeed/ledgerfeed/internal/validate"
)

// Stage is a file's position in the pipeline state machine.
type Stage string

const (
	StageDetecting     Stage = "detecting"
	StageMapping       Stage = "mapping"
	StageValidating    Stage = "validating"
	StageDeduplicating Stage = "deduplicating"
	StagePersisting    Stage = "persisting"
	StageArchiving     Stage = "archiving"
	StageDone          Stage = "done"
	StageFailed        Stage = "failed"
)

// Store is the slice of the persistence layer the pipeline needs.
type Store interface {
	EnsureAccount(ctx context.Context, name, institution string) (*model.Account, error)
	Fingerprints(ctx context.Context, accountID int64) ([]string, error)
	CommitBatch(ctx context.Context, accountID int64, txns []model.Transaction) error
	InsertRun(ctx context.Context, run *model.ImportRun) error
	FinalizeRun(ctx context.Context, run *model.ImportRun) error
}

// Archiver moves a fully committed source file to its terminal location.
type Archiver interface {
	Store(path string, now time.Time) (string, error)
}

// Reporter receives finalized runs, for stats export.
type Reporter interface {
	Report(run *model.ImportRun)
}

type Options struct {
	// Profiles are tried in order during detection.
	Profiles    []profile.Profile
	Concurrency int
	// Timeout bounds the processing of one file, commit included.
	Timeout  time.Duration
	Reporter Reporter
	Now      func() time.Time
}

type Importer struct {
	store    Store
	archiver Archiver
	opts     Options
}

func New(store Store, archiver Archiver, opts Options) *Importer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Profiles) == 0 {
		opts.Profiles = profile.Defaults()
	}

	return &Importer{store: store, archiver: archiver, opts: opts}
}

// ImportFiles processes a batch of files with bounded parallelism and
// returns one ImportRun per file, in input order. Every file produces
// exactly one outcome record, even when it fails before the first row.
func (i *Importer) ImportFiles(ctx context.Context, paths []string) []*model.ImportRun {
	runs := make([]*model.ImportRun, len(paths))

	sem := make(chan struct{}, i.opts.Concurrency)
	var wg sync.WaitGroup

	for n, path := range paths {
		wg.Add(1)
		go func(n int, path string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			fileCtx, cancel := context.WithTimeout(ctx, i.opts.Timeout)
			defer cancel()

			runs[n] = i.processFile(fileCtx, path)
		}(n, path)
	}

	wg.Wait()

	return runs
}

// processFile walks one file through the pipeline stages. Row-level errors
// only increment counters; file-level errors make the run Failed and the
// batch moves on.
func (i *Importer) processFile(ctx context.Context, path string) *model.ImportRun {
	run := &model.ImportRun{
		ID:         uuid.New(),
		SourceFile: path,
		StartedAt:  i.opts.Now(),
	}

	if err := i.store.InsertRun(ctx, run); err != nil {
		return i.fail(ctx, run, &model.StorageError{Err: err})
	}

	// Detecting
	header, rows, err := profile.ReadTable(path)
	if err != nil {
		return i.fail(ctx, run, &model.FileError{Path: path, Err: err})
	}

	p := profile.Detect(header, i.opts.Profiles)
	if p == nil {
		return i.fail(ctx, run, &model.FileError{Path: path, Err: errors.New("format unrecognized")})
	}
	run.Profile = p.Institution
	klog.Infof("Importing %s as %s (%d rows)", path, p.Institution, len(rows))

	account, err := i.store.EnsureAccount(ctx, p.Account, p.Institution)
	if err != nil {
		return i.fail(ctx, run, &model.StorageError{Err: err})
	}

	persisted, err := i.store.Fingerprints(ctx, account.ID)
	if err != nil {
		return i.fail(ctx, run, &model.StorageError{Err: err})
	}
	detector := dedup.NewDetector(persisted)

	// Mapping, Validating, Deduplicating, row by row
	index := profile.HeaderIndex(header)
	now := i.opts.Now()

	var batch []model.Transaction
	for n, record := range rows {
		run.RowsSeen++

		draft, rerr := profile.MapRow(p, index, record, n+1)
		if rerr != nil {
			run.RowsInvalid++
			klog.Warningf("%s: %v", path, rerr)
			continue
		}

		if errs := validate.Check(draft, now, n+1); len(errs) > 0 {
			run.RowsInvalid++
			for _, e := range errs {
				klog.Warningf("%s: %v", path, e)
			}
			continue
		}

		fp := dedup.Fingerprint(account.ID, draft.PostedDate, draft.Amount, draft.Description)
		if detector.Seen(fp) {
			run.RowsDuplicate++
			continue
		}

		batch = append(batch, model.Transaction{
			AccountID:   account.ID,
			PostedDate:  draft.PostedDate,
			Description: draft.Description,
			Amount:      draft.Amount,
			Category:    draft.Category,
			Fingerprint: fp,
			ImportRunID: run.ID,
		})
	}

	// Persisting: all surviving rows commit atomically or not at all.
	if err := i.store.CommitBatch(ctx, account.ID, batch); err != nil {
		return i.fail(ctx, run, err)
	}
	run.RowsImported = len(batch)

	// Archiving happens only after a successful commit; its failure is a
	// warning, never a rollback.
	if _, err := i.archiver.Store(path, i.opts.Now()); err != nil {
		aerr := &model.ArchiveError{Path: path, Err: err}
		run.Warning = aerr.Error()
		klog.Warningf("Imported but not archived: %v", aerr)
	}

	if run.RowsInvalid > 0 || run.RowsDuplicate > 0 {
		run.Outcome = model.OutcomePartial
	} else {
		run.Outcome = model.OutcomeSucceeded
	}

	i.finalize(ctx, run)

	return run
}

func (i *Importer) fail(ctx context.Context, run *model.ImportRun, err error) *model.ImportRun {
	run.Outcome = model.OutcomeFailed
	run.Error = err.Error()
	klog.Errorf("Import of %s failed: %v", run.SourceFile, err)

	i.finalize(ctx, run)

	return run
}

func (i *Importer) finalize(ctx context.Context, run *model.ImportRun) {
	run.CompletedAt = i.opts.Now()

	// Finalization must still reach the audit trail after a per-file timeout
	// has fired.
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
	}

	if err := i.store.FinalizeRun(ctx, run); err != nil {
		klog.Errorf("Failed to finalize import run %s: %v", run.ID, err)
	}

	if i.opts.Reporter != nil {
		i.opts.Reporter.Report(run)
	}
}
