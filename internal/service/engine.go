package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/altech-app/cloudsync/internal/adapter"
	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/store"
	"github.com/altech-app/cloudsync/models"
)

// defaultPushDebounce is the quiet window between a local save and the
// resulting background push.
const defaultPushDebounce = 3 * time.Second

type syncEngine struct {
	localStore store.LocalStore
	remote     adapter.RemoteStore
	detector   ConflictDetector
	merger     QuoteMerger
	notifier   *notifier
	logger     *logger.Logger

	deviceID string
	debounce time.Duration

	mu        sync.Mutex
	syncing   bool
	pulling   bool
	pending   map[models.DocumentKind]models.DocumentConflict
	pushTimer *time.Timer
	lastSync  time.Time
}

// NewSyncEngine constructs the engine around the given local and remote
// stores. deviceID attributes this installation's writes; debounce is the
// quiet window for SchedulePush, defaulting to 3 seconds when zero or
// negative.
func NewSyncEngine(localStore store.LocalStore, remote adapter.RemoteStore, deviceID string, debounce time.Duration, log *logger.Logger) SyncEngine {
	if debounce <= 0 {
		debounce = defaultPushDebounce
	}

	return &syncEngine{
		localStore: localStore,
		remote:     remote,
		detector:   NewConflictDetector(),
		merger:     NewQuoteMerger(),
		notifier:   newNotifier(),
		logger:     log,
		deviceID:   deviceID,
		debounce:   debounce,
		pending:    make(map[models.DocumentKind]models.DocumentConflict),
	}
}

// beginSync flips the engine into the syncing state. It returns false when
// another operation is already in flight, implementing the single-flight
// contract without queueing.
func (e *syncEngine) beginSync(pulling bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.syncing {
		return false
	}
	e.syncing = true
	e.pulling = pulling
	return true
}

// endSync returns the engine to idle. Completion is unconditional: it runs
// even when the operation failed partway through.
func (e *syncEngine) endSync(succeeded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.syncing = false
	e.pulling = false
	if succeeded {
		e.lastSync = time.Now()
	}
}

// PushToCloud implements SyncEngine.
func (e *syncEngine) PushToCloud(ctx context.Context, opts PushOptions) (models.PushReport, error) {
	log := e.logger.With().Str("func", "syncEngine.PushToCloud").Logger()

	if !e.remote.Available() {
		return models.PushReport{}, nil
	}
	if !e.beginSync(false) {
		log.Debug().Msg("push skipped: sync already in progress")
		return models.PushReport{}, nil
	}

	report, err := e.push(ctx, opts)
	e.endSync(err == nil && !report.Total())
	if err != nil {
		e.notifyFailure(opts.Background, err)
		return report, err
	}

	switch {
	case report.Total():
		// Every attempted write failed; connectivity is the likely cause.
		first := firstPushError(report)
		log.Error().Err(first).Msg("push failed for every kind")
		e.notifyFailure(opts.Background, first)
	case report.Partial():
		log.Warn().Int("failed", report.Failed()).Int("attempted", report.Attempted()).
			Msg("push partially failed")
		e.notifier.Notify(models.SyncEvent{Message: msgPartialPush, Kind: models.EventWarning})
	case !opts.Background:
		e.notifier.Notify(models.SyncEvent{Message: msgSynced, Kind: models.EventSuccess})
	}

	return report, nil
}

// push reads every local item and fans the remote writes out concurrently.
// Local read failures are hard errors; remote write failures are recorded
// per kind so the caller can tell partial from total failure.
func (e *syncEngine) push(ctx context.Context, opts PushOptions) (models.PushReport, error) {
	kinds := models.KnownDocumentKinds()
	if opts.SettingsOnly {
		kinds = []models.DocumentKind{models.KindSettings}
	}

	type job struct {
		key     string
		run     func(ctx context.Context) (time.Time, error)
		skipped bool
	}

	jobs := make([]job, 0, len(kinds)+1)
	for _, kind := range kinds {
		payload, err := e.localStore.GetDocument(ctx, kind)
		switch {
		case errors.Is(err, store.ErrDocumentNotFound):
			jobs = append(jobs, job{key: kind.String(), skipped: true})
			continue
		case err != nil:
			return models.PushReport{}, fmt.Errorf("read local document %s: %w", kind, err)
		}

		k := kind
		jobs = append(jobs, job{key: kind.String(), run: func(ctx context.Context) (time.Time, error) {
			return e.remote.SetDocument(ctx, k, payload, e.deviceID)
		}})
	}

	if !opts.SettingsOnly {
		quotes, err := e.localStore.GetQuotes(ctx)
		if err != nil {
			return models.PushReport{}, fmt.Errorf("read local quotes: %w", err)
		}
		if len(quotes) == 0 {
			jobs = append(jobs, job{key: models.QuoteCollectionKey, skipped: true})
		} else {
			jobs = append(jobs, job{key: models.QuoteCollectionKey, run: func(ctx context.Context) (time.Time, error) {
				return e.remote.UpsertQuotes(ctx, quotes, e.deviceID)
			}})
		}
	}

	outcomes := make([]models.PushOutcome, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		if j.skipped {
			outcomes[i] = models.PushOutcome{Key: j.key, Skipped: true}
			continue
		}

		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			writtenAt, err := j.run(ctx)
			outcomes[i] = models.PushOutcome{Key: j.key, Err: err, WrittenAt: writtenAt}
		}(i, j)
	}
	wg.Wait()

	// Successful writes advance their watermark to the server-assigned
	// timestamp; failed kinds keep theirs and retry next push.
	for _, o := range outcomes {
		if o.Skipped || o.Err != nil {
			continue
		}
		if err := e.advanceWatermark(ctx, o.Key, o.WrittenAt); err != nil {
			return models.PushReport{Outcomes: outcomes}, err
		}
	}

	return models.PushReport{Outcomes: outcomes}, nil
}

// PullFromCloud implements SyncEngine.
func (e *syncEngine) PullFromCloud(ctx context.Context) ([]models.Conflict, error) {
	log := e.logger.With().Str("func", "syncEngine.PullFromCloud").Logger()

	if !e.remote.Available() {
		return nil, nil
	}
	if !e.beginSync(true) {
		log.Debug().Msg("pull skipped: sync already in progress")
		return nil, nil
	}

	conflicts, pending, err := e.pull(ctx)
	e.endSync(err == nil)
	if err != nil {
		e.notifyFailure(false, err)
		return nil, err
	}

	// The new pending set replaces whatever the previous pull left behind;
	// stale conflicts would otherwise resolve against payloads that no
	// longer exist.
	e.mu.Lock()
	e.pending = pending
	e.mu.Unlock()

	if len(conflicts) > 0 {
		e.notifier.Notify(models.SyncEvent{Message: msgConflictsFound, Kind: models.EventWarning})
	} else {
		e.notifier.Notify(models.SyncEvent{Message: msgPulled, Kind: models.EventInfo})
	}

	return conflicts, nil
}

func (e *syncEngine) pull(ctx context.Context) ([]models.Conflict, map[models.DocumentKind]models.DocumentConflict, error) {
	var conflicts []models.Conflict
	pending := make(map[models.DocumentKind]models.DocumentConflict)

	for _, kind := range models.KnownDocumentKinds() {
		remote, err := e.remote.GetDocument(ctx, kind)
		if errors.Is(err, adapter.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("fetch remote document %s: %w", kind, err)
		}

		localPayload, err := e.localStore.GetDocument(ctx, kind)
		if err != nil && !errors.Is(err, store.ErrDocumentNotFound) {
			return nil, nil, fmt.Errorf("read local document %s: %w", kind, err)
		}

		watermark, err := e.localStore.GetWatermark(ctx, kind.String())
		if err != nil {
			return nil, nil, fmt.Errorf("read watermark %s: %w", kind, err)
		}

		if e.detector.Classify(remote, localPayload, watermark, e.deviceID) == DecisionApply {
			if err = e.localStore.SetDocument(ctx, kind, remote.Payload); err != nil {
				return nil, nil, fmt.Errorf("apply remote document %s: %w", kind, err)
			}
			if err = e.advanceWatermark(ctx, kind.String(), remote.WrittenAt); err != nil {
				return nil, nil, err
			}
			continue
		}

		dc := models.DocumentConflict{
			DocumentKind:    kind,
			RemotePayload:   remote.Payload,
			LocalPayload:    localPayload,
			RemoteWrittenAt: remote.WrittenAt,
			RemoteDeviceID:  remote.DeviceID,
			LocalWatermark:  watermark,
		}
		pending[kind] = dc
		conflicts = append(conflicts, models.Conflict{Kind: models.ConflictDocument, Document: &dc})
	}

	quoteConflicts, err := e.pullQuotes(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(quoteConflicts) > 0 {
		conflicts = append(conflicts, models.Conflict{
			Kind:   models.ConflictQuotes,
			Quotes: &models.QuoteConflict{Pairs: quoteConflicts},
		})
	}

	return conflicts, pending, nil
}

func (e *syncEngine) pullQuotes(ctx context.Context) ([]models.QuotePair, error) {
	remoteQuotes, err := e.remote.ListQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch remote quotes: %w", err)
	}
	if len(remoteQuotes) == 0 {
		return nil, nil
	}

	localQuotes, err := e.localStore.GetQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("read local quotes: %w", err)
	}

	watermark, err := e.localStore.GetWatermark(ctx, models.QuoteCollectionKey)
	if err != nil {
		return nil, fmt.Errorf("read quotes watermark: %w", err)
	}

	merged, pairs := e.merger.Merge(localQuotes, remoteQuotes, watermark, e.deviceID)

	if err = e.localStore.ReplaceQuotes(ctx, merged); err != nil {
		return nil, fmt.Errorf("store merged quotes: %w", err)
	}

	var latest time.Time
	for _, q := range remoteQuotes {
		if q.UpdatedAt.After(latest) {
			latest = q.UpdatedAt
		}
	}
	if !latest.IsZero() {
		if err = e.advanceWatermark(ctx, models.QuoteCollectionKey, latest); err != nil {
			return nil, err
		}
	}

	return pairs, nil
}

// ResolveConflict implements SyncEngine.
func (e *syncEngine) ResolveConflict(ctx context.Context, kind models.DocumentKind, choice models.Resolution) error {
	if !choice.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidResolution, choice)
	}

	e.mu.Lock()
	dc, ok := e.pending[kind]
	e.mu.Unlock()
	if !ok {
		// Already resolved, or superseded by a later pull. Either way there
		// is nothing left to decide.
		return nil
	}

	switch choice {
	case models.ResolutionRemote:
		if err := e.localStore.SetDocument(ctx, kind, dc.RemotePayload); err != nil {
			return fmt.Errorf("apply remote payload for %s: %w", kind, err)
		}
		if err := e.advanceWatermark(ctx, kind.String(), dc.RemoteWrittenAt); err != nil {
			return err
		}

	case models.ResolutionLocal:
		writtenAt, err := e.remote.SetDocument(ctx, kind, dc.LocalPayload, e.deviceID)
		if err != nil {
			return fmt.Errorf("re-push local payload for %s: %w", kind, err)
		}
		if err = e.advanceWatermark(ctx, kind.String(), writtenAt); err != nil {
			return err
		}
	}

	e.mu.Lock()
	delete(e.pending, kind)
	e.mu.Unlock()

	return nil
}

// SchedulePush implements SyncEngine.
func (e *syncEngine) SchedulePush(ctx context.Context) {
	if !e.remote.Available() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Writes landing while a pull applies remote data are the pull's own
	// effects; echoing them back would ping-pong between devices.
	if e.pulling {
		return
	}

	if e.pushTimer != nil {
		e.pushTimer.Stop()
	}
	e.pushTimer = time.AfterFunc(e.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		_, _ = e.PushToCloud(ctx, PushOptions{Background: true})
	})
}

// FullSync implements SyncEngine.
func (e *syncEngine) FullSync(ctx context.Context) ([]models.Conflict, error) {
	conflicts, err := e.PullFromCloud(ctx)
	if err != nil {
		return nil, err
	}

	if _, err = e.PushToCloud(ctx, PushOptions{}); err != nil {
		return conflicts, err
	}

	return conflicts, nil
}

// DeleteCloudData implements SyncEngine.
func (e *syncEngine) DeleteCloudData(ctx context.Context) error {
	if !e.remote.Available() {
		return nil
	}

	if err := e.remote.DeleteAccountData(ctx); err != nil {
		e.notifyFailure(false, err)
		return fmt.Errorf("delete cloud data: %w", err)
	}

	if err := e.localStore.ClearWatermarks(ctx); err != nil {
		return fmt.Errorf("clear watermarks: %w", err)
	}

	e.notifier.Notify(models.SyncEvent{Message: msgCloudWiped, Kind: models.EventInfo})
	return nil
}

// Status implements SyncEngine.
func (e *syncEngine) Status() models.SyncStatus {
	if !e.remote.Available() {
		return models.SyncStatus{State: models.SyncUnavailable, Label: statusLabelUnavailable}
	}

	e.mu.Lock()
	syncing, lastSync := e.syncing, e.lastSync
	e.mu.Unlock()

	switch {
	case syncing:
		return models.SyncStatus{State: models.SyncInProgress, Label: statusLabelSyncing, LastSync: lastSync}
	case !lastSync.IsZero():
		return models.SyncStatus{State: models.SyncSynced, Label: statusLabelSynced, LastSync: lastSync}
	default:
		return models.SyncStatus{State: models.SyncReady, Label: statusLabelReady}
	}
}

// Subscribe implements SyncEngine.
func (e *syncEngine) Subscribe(fn func(models.SyncEvent)) func() {
	return e.notifier.Subscribe(fn)
}

// advanceWatermark moves the watermark for key forward to t, never backward.
func (e *syncEngine) advanceWatermark(ctx context.Context, key string, t time.Time) error {
	current, err := e.localStore.GetWatermark(ctx, key)
	if err != nil {
		return fmt.Errorf("read watermark %s: %w", key, err)
	}
	if !t.After(current) {
		return nil
	}
	if err = e.localStore.SetWatermark(ctx, key, t); err != nil {
		return fmt.Errorf("advance watermark %s: %w", key, err)
	}
	return nil
}

func (e *syncEngine) notifyFailure(background bool, err error) {
	kind := models.EventError
	if background {
		kind = models.EventWarning
	}
	e.notifier.Notify(models.SyncEvent{Message: failureMessage(err), Kind: kind})
}

func firstPushError(report models.PushReport) error {
	for _, o := range report.Outcomes {
		if !o.Skipped && o.Err != nil {
			return o.Err
		}
	}
	return nil
}
