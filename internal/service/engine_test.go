package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/altech-app/cloudsync/internal/adapter"
	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/store"
	"github.com/altech-app/cloudsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type fakeLocalStore struct {
	mu         sync.Mutex
	docs       map[models.DocumentKind]json.RawMessage
	quotes     []models.Quote
	watermarks map[string]time.Time
	meta       map[string]string
}

func newFakeLocalStore() *fakeLocalStore {
	return &fakeLocalStore{
		docs:       make(map[models.DocumentKind]json.RawMessage),
		watermarks: make(map[string]time.Time),
		meta:       make(map[string]string),
	}
}

func (f *fakeLocalStore) GetDocument(_ context.Context, kind models.DocumentKind) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.docs[kind]
	if !ok {
		return nil, store.ErrDocumentNotFound
	}
	return payload, nil
}

func (f *fakeLocalStore) SetDocument(_ context.Context, kind models.DocumentKind, payload json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[kind] = payload
	return nil
}

func (f *fakeLocalStore) GetQuotes(_ context.Context) ([]models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Quote(nil), f.quotes...), nil
}

func (f *fakeLocalStore) ReplaceQuotes(_ context.Context, quotes []models.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes = append([]models.Quote(nil), quotes...)
	return nil
}

func (f *fakeLocalStore) GetWatermark(_ context.Context, key string) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watermarks[key], nil
}

func (f *fakeLocalStore) SetWatermark(_ context.Context, key string, t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watermarks[key] = t
	return nil
}

func (f *fakeLocalStore) ClearWatermarks(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watermarks = make(map[string]time.Time)
	return nil
}

func (f *fakeLocalStore) GetMeta(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meta[key], nil
}

func (f *fakeLocalStore) SetMeta(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meta[key] = value
	return nil
}

func (f *fakeLocalStore) watermark(key string) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watermarks[key]
}

func (f *fakeLocalStore) document(kind models.DocumentKind) json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[kind]
}

type fakeRemote struct {
	mu          sync.Mutex
	available   bool
	docs        map[models.DocumentKind]models.Document
	quotes      []models.Quote
	setErr      map[models.DocumentKind]error
	upsertErr   error
	writtenAt   time.Time
	setCalls    map[models.DocumentKind]int
	upsertCalls int
	deleteCalls int

	// gate, when non-nil, blocks GetDocument until closed. Used to hold a
	// pull open while concurrent operations are attempted.
	gate chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		available: true,
		docs:      make(map[models.DocumentKind]models.Document),
		setErr:    make(map[models.DocumentKind]error),
		setCalls:  make(map[models.DocumentKind]int),
		writtenAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRemote) SetToken(string) {}
func (f *fakeRemote) Token() string   { return "sometoken" }

func (f *fakeRemote) Available() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available
}

func (f *fakeRemote) GetDocument(_ context.Context, kind models.DocumentKind) (models.Document, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[kind]
	if !ok {
		return models.Document{}, adapter.ErrNotFound
	}
	return doc, nil
}

func (f *fakeRemote) SetDocument(_ context.Context, kind models.DocumentKind, payload json.RawMessage, deviceID string) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls[kind]++
	if err := f.setErr[kind]; err != nil {
		return time.Time{}, err
	}
	f.docs[kind] = models.Document{Kind: kind, Payload: payload, WrittenAt: f.writtenAt, DeviceID: deviceID}
	return f.writtenAt, nil
}

func (f *fakeRemote) ListQuotes(_ context.Context) ([]models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Quote(nil), f.quotes...), nil
}

func (f *fakeRemote) UpsertQuotes(_ context.Context, quotes []models.Quote, deviceID string) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.upsertErr != nil {
		return time.Time{}, f.upsertErr
	}
	for _, q := range quotes {
		q.UpdatedAt = f.writtenAt
		q.DeviceID = deviceID
		f.quotes = append(f.quotes, q)
	}
	return f.writtenAt, nil
}

func (f *fakeRemote) DeleteAccountData(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	f.docs = make(map[models.DocumentKind]models.Document)
	f.quotes = nil
	return nil
}

func (f *fakeRemote) documentSetCalls(kind models.DocumentKind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setCalls[kind]
}

func (f *fakeRemote) totalSetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.setCalls {
		n += c
	}
	return n
}

func newTestEngine(local *fakeLocalStore, remote *fakeRemote, debounce time.Duration) SyncEngine {
	return NewSyncEngine(local, remote, testDeviceID, debounce, logger.Nop())
}

type eventRecorder struct {
	mu     sync.Mutex
	events []models.SyncEvent
}

func (r *eventRecorder) record(e models.SyncEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) all() []models.SyncEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.SyncEvent(nil), r.events...)
}

// ── PushToCloud ──────────────────────────────────────────────────────────────

func TestPushToCloud_AdvancesWatermarksToServerTime(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)
	local.docs[models.KindReminders] = json.RawMessage(`[{"at":"07:00"}]`)
	local.quotes = []models.Quote{{ID: "q1", Name: "Warehouse"}}

	remote := newFakeRemote()
	e := newTestEngine(local, remote, time.Second)

	report, err := e.PushToCloud(context.Background(), PushOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Attempted())
	assert.Zero(t, report.Failed())

	assert.True(t, remote.writtenAt.Equal(local.watermark("settings")))
	assert.True(t, remote.writtenAt.Equal(local.watermark("reminders")))
	assert.True(t, remote.writtenAt.Equal(local.watermark(models.QuoteCollectionKey)))

	// Kinds with no local copy are skipped, not written as empty.
	assert.Zero(t, remote.documentSetCalls(models.KindCurrentForm))
	assert.True(t, local.watermark("currentForm").IsZero())
}

func TestPushToCloud_PartialFailureKeepsFailedWatermark(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)
	local.docs[models.KindReminders] = json.RawMessage(`[{"at":"07:00"}]`)

	remote := newFakeRemote()
	remote.setErr[models.KindReminders] = adapter.ErrUnavailable

	rec := &eventRecorder{}
	e := newTestEngine(local, remote, time.Second)
	e.Subscribe(rec.record)

	report, err := e.PushToCloud(context.Background(), PushOptions{})
	require.NoError(t, err)

	assert.True(t, report.Partial())
	assert.False(t, report.Total())

	assert.True(t, remote.writtenAt.Equal(local.watermark("settings")))
	assert.True(t, local.watermark("reminders").IsZero())

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventWarning, events[0].Kind)
	assert.Equal(t, msgPartialPush, events[0].Message)
}

func TestPushToCloud_TotalFailureAdvancesNothing(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)

	remote := newFakeRemote()
	remote.setErr[models.KindSettings] = adapter.ErrUnavailable

	rec := &eventRecorder{}
	e := newTestEngine(local, remote, time.Second)
	e.Subscribe(rec.record)

	report, err := e.PushToCloud(context.Background(), PushOptions{})
	require.NoError(t, err)

	assert.True(t, report.Total())
	assert.True(t, local.watermark("settings").IsZero())

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventError, events[0].Kind)
	assert.Equal(t, msgServerUnreached, events[0].Message)
}

func TestPushToCloud_SettingsOnly(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)
	local.docs[models.KindReminders] = json.RawMessage(`[{"at":"07:00"}]`)
	local.quotes = []models.Quote{{ID: "q1"}}

	remote := newFakeRemote()
	e := newTestEngine(local, remote, time.Second)

	_, err := e.PushToCloud(context.Background(), PushOptions{SettingsOnly: true})
	require.NoError(t, err)

	assert.Equal(t, 1, remote.documentSetCalls(models.KindSettings))
	assert.Zero(t, remote.documentSetCalls(models.KindReminders))
	assert.Zero(t, remote.upsertCalls)
}

func TestPushToCloud_UnavailableIsNoop(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)

	remote := newFakeRemote()
	remote.available = false

	e := newTestEngine(local, remote, time.Second)

	report, err := e.PushToCloud(context.Background(), PushOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Zero(t, remote.totalSetCalls())
}

// ── PullFromCloud ────────────────────────────────────────────────────────────

func TestPullFromCloud_FreshDeviceReplicatesEverything(t *testing.T) {
	local := newFakeLocalStore()

	remote := newFakeRemote()
	remote.docs[models.KindSettings] = models.Document{
		Kind: models.KindSettings, Payload: json.RawMessage(`{"theme":"dark"}`),
		WrittenAt: remote.writtenAt, DeviceID: "dev_other",
	}
	remote.docs[models.KindCurrentForm] = models.Document{
		Kind: models.KindCurrentForm, Payload: json.RawMessage(`{"week":12}`),
		WrittenAt: remote.writtenAt, DeviceID: "dev_other",
	}
	remote.quotes = []models.Quote{{ID: "q1", Name: "Warehouse", UpdatedAt: remote.writtenAt, DeviceID: "dev_other"}}

	e := newTestEngine(local, remote, time.Second)

	conflicts, err := e.PullFromCloud(context.Background())
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	assert.JSONEq(t, `{"theme":"dark"}`, string(local.document(models.KindSettings)))
	assert.JSONEq(t, `{"week":12}`, string(local.document(models.KindCurrentForm)))

	quotes, _ := local.GetQuotes(context.Background())
	require.Len(t, quotes, 1)
	assert.Equal(t, "q1", quotes[0].ID)

	assert.True(t, remote.writtenAt.Equal(local.watermark("settings")))
	assert.True(t, remote.writtenAt.Equal(local.watermark(models.QuoteCollectionKey)))
}

func TestPullFromCloud_DivergenceSurfacesConflict(t *testing.T) {
	watermark := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"light"}`)
	local.watermarks["settings"] = watermark

	remote := newFakeRemote()
	remote.docs[models.KindSettings] = models.Document{
		Kind: models.KindSettings, Payload: json.RawMessage(`{"theme":"dark"}`),
		WrittenAt: watermark.Add(time.Hour), DeviceID: "dev_other",
	}

	rec := &eventRecorder{}
	e := newTestEngine(local, remote, time.Second)
	e.Subscribe(rec.record)

	conflicts, err := e.PullFromCloud(context.Background())
	require.NoError(t, err)

	require.Len(t, conflicts, 1)
	require.Equal(t, models.ConflictDocument, conflicts[0].Kind)
	dc := conflicts[0].Document
	require.NotNil(t, dc)
	assert.Equal(t, models.KindSettings, dc.DocumentKind)
	assert.JSONEq(t, `{"theme":"dark"}`, string(dc.RemotePayload))
	assert.JSONEq(t, `{"theme":"light"}`, string(dc.LocalPayload))
	assert.Equal(t, "dev_other", dc.RemoteDeviceID)

	// Local copy and watermark untouched until the conflict is resolved.
	assert.JSONEq(t, `{"theme":"light"}`, string(local.document(models.KindSettings)))
	assert.True(t, watermark.Equal(local.watermark("settings")))

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventWarning, events[0].Kind)
}

func TestPullFromCloud_SelfWriteApplies(t *testing.T) {
	watermark := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"light"}`)
	local.watermarks["settings"] = watermark

	remote := newFakeRemote()
	remote.docs[models.KindSettings] = models.Document{
		Kind: models.KindSettings, Payload: json.RawMessage(`{"theme":"dark"}`),
		WrittenAt: watermark.Add(time.Hour), DeviceID: testDeviceID,
	}

	e := newTestEngine(local, remote, time.Second)

	conflicts, err := e.PullFromCloud(context.Background())
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.JSONEq(t, `{"theme":"dark"}`, string(local.document(models.KindSettings)))
}

func TestPullFromCloud_QuoteDivergenceReportsPairs(t *testing.T) {
	watermark := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := newFakeLocalStore()
	local.quotes = []models.Quote{{ID: "q1", Name: "Warehouse", Data: json.RawMessage(`{"v":"local"}`)}}
	local.watermarks[models.QuoteCollectionKey] = watermark

	remote := newFakeRemote()
	remote.quotes = []models.Quote{{
		ID: "q1", Name: "Warehouse", Data: json.RawMessage(`{"v":"remote"}`),
		UpdatedAt: watermark.Add(time.Hour), DeviceID: "dev_other",
	}}

	e := newTestEngine(local, remote, time.Second)

	conflicts, err := e.PullFromCloud(context.Background())
	require.NoError(t, err)

	require.Len(t, conflicts, 1)
	require.Equal(t, models.ConflictQuotes, conflicts[0].Kind)
	require.NotNil(t, conflicts[0].Quotes)
	require.Len(t, conflicts[0].Quotes.Pairs, 1)
	assert.Equal(t, "q1", conflicts[0].Quotes.Pairs[0].OriginalID)

	quotes, _ := local.GetQuotes(context.Background())
	assert.Len(t, quotes, 2)
}

func TestPullFromCloud_UnavailableIsNoop(t *testing.T) {
	remote := newFakeRemote()
	remote.available = false

	e := newTestEngine(newFakeLocalStore(), remote, time.Second)

	conflicts, err := e.PullFromCloud(context.Background())
	require.NoError(t, err)
	assert.Nil(t, conflicts)
}

// ── ResolveConflict ──────────────────────────────────────────────────────────

func pullOneConflict(t *testing.T, e SyncEngine) models.DocumentConflict {
	t.Helper()
	conflicts, err := e.PullFromCloud(context.Background())
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	require.NotNil(t, conflicts[0].Document)
	return *conflicts[0].Document
}

func newConflictedEngine(t *testing.T) (*fakeLocalStore, *fakeRemote, SyncEngine) {
	t.Helper()
	watermark := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"light"}`)
	local.watermarks["settings"] = watermark

	remote := newFakeRemote()
	remote.docs[models.KindSettings] = models.Document{
		Kind: models.KindSettings, Payload: json.RawMessage(`{"theme":"dark"}`),
		WrittenAt: watermark.Add(time.Hour), DeviceID: "dev_other",
	}

	return local, remote, newTestEngine(local, remote, time.Second)
}

func TestResolveConflict_Remote(t *testing.T) {
	local, _, e := newConflictedEngine(t)
	dc := pullOneConflict(t, e)

	err := e.ResolveConflict(context.Background(), models.KindSettings, models.ResolutionRemote)
	require.NoError(t, err)

	assert.JSONEq(t, `{"theme":"dark"}`, string(local.document(models.KindSettings)))
	assert.True(t, dc.RemoteWrittenAt.Equal(local.watermark("settings")))
}

func TestResolveConflict_Local(t *testing.T) {
	local, remote, e := newConflictedEngine(t)
	pullOneConflict(t, e)

	err := e.ResolveConflict(context.Background(), models.KindSettings, models.ResolutionLocal)
	require.NoError(t, err)

	// The local payload was re-pushed and now owns the remote slot.
	assert.Equal(t, 1, remote.documentSetCalls(models.KindSettings))
	assert.JSONEq(t, `{"theme":"light"}`, string(remote.docs[models.KindSettings].Payload))
	assert.JSONEq(t, `{"theme":"light"}`, string(local.document(models.KindSettings)))
	assert.True(t, remote.writtenAt.Equal(local.watermark("settings")))
}

func TestResolveConflict_Idempotent(t *testing.T) {
	_, remote, e := newConflictedEngine(t)
	pullOneConflict(t, e)

	require.NoError(t, e.ResolveConflict(context.Background(), models.KindSettings, models.ResolutionLocal))
	require.NoError(t, e.ResolveConflict(context.Background(), models.KindSettings, models.ResolutionLocal))

	// The second call found nothing pending and did not push again.
	assert.Equal(t, 1, remote.documentSetCalls(models.KindSettings))
}

func TestResolveConflict_NoPendingIsNoop(t *testing.T) {
	e := newTestEngine(newFakeLocalStore(), newFakeRemote(), time.Second)
	assert.NoError(t, e.ResolveConflict(context.Background(), models.KindSettings, models.ResolutionRemote))
}

func TestResolveConflict_InvalidChoice(t *testing.T) {
	e := newTestEngine(newFakeLocalStore(), newFakeRemote(), time.Second)
	err := e.ResolveConflict(context.Background(), models.KindSettings, models.Resolution("merge"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

// ── mutual exclusion and scheduling ──────────────────────────────────────────

func TestPushSkippedWhilePullInProgress(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"light"}`)

	remote := newFakeRemote()
	remote.docs[models.KindSettings] = models.Document{
		Kind: models.KindSettings, Payload: json.RawMessage(`{"theme":"light"}`),
		WrittenAt: remote.writtenAt, DeviceID: "dev_other",
	}
	gate := make(chan struct{})
	remote.gate = gate

	e := newTestEngine(local, remote, time.Second)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = e.PullFromCloud(context.Background())
	}()

	// Wait until the pull holds the syncing flag (blocked inside the fake).
	require.Eventually(t, func() bool {
		return e.Status().State == models.SyncInProgress
	}, time.Second, 5*time.Millisecond)

	report, err := e.PushToCloud(context.Background(), PushOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Zero(t, remote.totalSetCalls())

	close(gate)
	<-done
}

func TestSchedulePush_CoalescesBursts(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)

	remote := newFakeRemote()
	e := newTestEngine(local, remote, 30*time.Millisecond)

	for i := 0; i < 5; i++ {
		e.SchedulePush(context.Background())
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return remote.documentSetCalls(models.KindSettings) == 1
	}, time.Second, 5*time.Millisecond)

	// The burst collapsed into exactly one push.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, remote.documentSetCalls(models.KindSettings))
}

func TestSchedulePush_SuppressedWhilePulling(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"light"}`)

	remote := newFakeRemote()
	remote.docs[models.KindSettings] = models.Document{
		Kind: models.KindSettings, Payload: json.RawMessage(`{"theme":"light"}`),
		WrittenAt: remote.writtenAt, DeviceID: "dev_other",
	}
	gate := make(chan struct{})
	remote.gate = gate

	e := newTestEngine(local, remote, 20*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = e.PullFromCloud(context.Background())
	}()

	require.Eventually(t, func() bool {
		return e.Status().State == models.SyncInProgress
	}, time.Second, 5*time.Millisecond)

	// Saves landing mid-pull are the pull's own writes; no push may be armed.
	e.SchedulePush(context.Background())

	close(gate)
	<-done

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, remote.totalSetCalls())
}

func TestSchedulePush_UnavailableIsNoop(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)

	remote := newFakeRemote()
	remote.available = false

	e := newTestEngine(local, remote, 10*time.Millisecond)
	e.SchedulePush(context.Background())

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, remote.totalSetCalls())
}

// ── FullSync / DeleteCloudData / Status / Subscribe ──────────────────────────

func TestFullSync_PullsThenPushes(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)

	remote := newFakeRemote()
	remote.docs[models.KindCurrentForm] = models.Document{
		Kind: models.KindCurrentForm, Payload: json.RawMessage(`{"week":12}`),
		WrittenAt: remote.writtenAt, DeviceID: "dev_other",
	}

	e := newTestEngine(local, remote, time.Second)

	conflicts, err := e.FullSync(context.Background())
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// Pull adopted the remote form; push mirrored both documents back.
	assert.JSONEq(t, `{"week":12}`, string(local.document(models.KindCurrentForm)))
	assert.Equal(t, 1, remote.documentSetCalls(models.KindSettings))
}

func TestDeleteCloudData_WipesRemoteAndWatermarks(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)
	local.watermarks["settings"] = time.Now()

	remote := newFakeRemote()
	remote.docs[models.KindSettings] = models.Document{Kind: models.KindSettings}

	rec := &eventRecorder{}
	e := newTestEngine(local, remote, time.Second)
	e.Subscribe(rec.record)

	require.NoError(t, e.DeleteCloudData(context.Background()))

	assert.Equal(t, 1, remote.deleteCalls)
	assert.True(t, local.watermark("settings").IsZero())

	// Local data survives the wipe.
	assert.JSONEq(t, `{"theme":"dark"}`, string(local.document(models.KindSettings)))

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, msgCloudWiped, events[0].Message)
}

func TestStatus_Transitions(t *testing.T) {
	local := newFakeLocalStore()
	remote := newFakeRemote()
	remote.available = false

	e := newTestEngine(local, remote, time.Second)
	assert.Equal(t, models.SyncUnavailable, e.Status().State)

	remote.mu.Lock()
	remote.available = true
	remote.mu.Unlock()
	assert.Equal(t, models.SyncReady, e.Status().State)

	_, err := e.FullSync(context.Background())
	require.NoError(t, err)

	st := e.Status()
	assert.Equal(t, models.SyncSynced, st.State)
	assert.False(t, st.LastSync.IsZero())
}

func TestSubscribe_UnsubscribeStopsDelivery(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)

	remote := newFakeRemote()
	rec := &eventRecorder{}

	e := newTestEngine(local, remote, time.Second)
	unsubscribe := e.Subscribe(rec.record)

	_, err := e.PushToCloud(context.Background(), PushOptions{})
	require.NoError(t, err)
	require.Len(t, rec.all(), 1)

	unsubscribe()
	unsubscribe() // second call is harmless

	_, err = e.PushToCloud(context.Background(), PushOptions{})
	require.NoError(t, err)
	assert.Len(t, rec.all(), 1)
}

func TestBackgroundPushSuccessIsSilent(t *testing.T) {
	local := newFakeLocalStore()
	local.docs[models.KindSettings] = json.RawMessage(`{"theme":"dark"}`)

	remote := newFakeRemote()
	rec := &eventRecorder{}

	e := newTestEngine(local, remote, time.Second)
	e.Subscribe(rec.record)

	_, err := e.PushToCloud(context.Background(), PushOptions{Background: true})
	require.NoError(t, err)
	assert.Empty(t, rec.all())
}
