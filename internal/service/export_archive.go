package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhasaulas/prof-agenda-api/pkg/jobs"
)

type exportStore interface {
	Save(filename string, data []byte) (string, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportArchive keeps a copy of every served export on disk, written off
// the request path. Copies past the retention window are swept daily.
// Losing a copy is acceptable; the download already reached the client.
type ExportArchive struct {
	store     exportStore
	queue     *jobs.Queue
	retention time.Duration
	logger    *zap.Logger
	cancel    context.CancelFunc
}

// NewExportArchive constructs an archive over the given store.
func NewExportArchive(store exportStore, retention time.Duration, logger *zap.Logger) *ExportArchive {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	a := &ExportArchive{store: store, retention: retention, logger: logger}
	a.queue = jobs.NewQueue("export-archive", a.handle, jobs.QueueConfig{Logger: logger})
	return a
}

// Start launches the archive workers and the daily retention sweep.
func (a *ExportArchive) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)
	a.queue.Start(ctx)
	go a.sweep(ctx)
}

// Stop drains the workers.
func (a *ExportArchive) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.queue.Stop()
}

// Submit enqueues an export copy. Failures only log; the caller already
// served the download.
func (a *ExportArchive) Submit(file ExportFile) {
	if a == nil {
		return
	}
	err := a.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "archive",
		Payload: file,
	})
	if err != nil {
		a.logger.Warn("failed to enqueue export copy", zap.String("filename", file.Filename), zap.Error(err))
	}
}

func (a *ExportArchive) handle(_ context.Context, job jobs.Job) error {
	file, ok := job.Payload.(ExportFile)
	if !ok {
		a.logger.Warn("unexpected archive payload", zap.String("job_id", job.ID))
		return nil
	}
	if _, err := a.store.Save(file.Filename, file.Content); err != nil {
		return err
	}
	return nil
}

func (a *ExportArchive) sweep(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := a.store.CleanupOlderThan(a.retention)
			if err != nil {
				a.logger.Warn("export retention sweep failed", zap.Error(err))
				continue
			}
			if len(deleted) > 0 {
				a.logger.Info("export retention sweep", zap.Int("deleted", len(deleted)))
			}
		}
	}
}
