package service

import (
	"time"

	"github.com/altech-app/cloudsync/models"
)

// quoteMerger is the concrete implementation of QuoteMerger. Like the
// conflict detector it is stateless apart from a clock, which conflict-copy
// identities are derived from.
type quoteMerger struct {
	now func() time.Time
}

// NewQuoteMerger constructs a QuoteMerger using the system clock.
func NewQuoteMerger() QuoteMerger {
	return &quoteMerger{now: time.Now}
}

// Merge implements QuoteMerger.
//
// It builds an O(1) index of the remote collection, then makes two linear
// passes:
//
//   - Pass 1 (over local): every local quote is kept. When a remote
//     counterpart exists and diverges in a way the device has not
//     reconciled, a conflict copy of the remote version is appended next to
//     the kept local quote.
//   - Pass 2 (over remote): quotes the device has never seen are adopted.
//
// A remote counterpart does NOT produce a conflict copy when any of the
// following holds, mirroring the document detector's rules:
//
//  1. the remote write came from this device (self-write immunity);
//  2. the remote write is not newer than the quotes watermark (already
//     reconciled);
//  3. the payloads are equal (both sides agree).
//
// Deletions are not reconciled: a quote deleted on one device reappears
// after the next merge with the other device. Tracking tombstones would
// change the wire contract, so the limitation stands.
func (m *quoteMerger) Merge(local, remote []models.Quote, watermark time.Time, deviceID string) ([]models.Quote, []models.QuotePair) {
	remoteIndex := make(map[string]models.Quote, len(remote))
	for _, rq := range remote {
		remoteIndex[rq.ID] = rq
	}

	localIndex := make(map[string]struct{}, len(local))
	merged := make([]models.Quote, 0, len(local)+len(remote))
	var conflicts []models.QuotePair

	// ── Pass 1: local quotes win their slot; divergence forks a copy ────────
	for _, lq := range local {
		localIndex[lq.ID] = struct{}{}
		merged = append(merged, lq)

		rq, existsRemotely := remoteIndex[lq.ID]
		if !existsRemotely {
			continue
		}

		if rq.DeviceID != "" && rq.DeviceID == deviceID {
			continue
		}
		if !rq.UpdatedAt.After(watermark) {
			continue
		}
		if quotesEqual(lq, rq) {
			continue
		}

		copyQuote := rq.ConflictCopy(m.now())
		merged = append(merged, copyQuote)
		conflicts = append(conflicts, models.QuotePair{
			OriginalID: lq.ID,
			ConflictID: copyQuote.ID,
		})
	}

	// ── Pass 2: adopt remote-only quotes ────────────────────────────────────
	for _, rq := range remote {
		if _, existsLocally := localIndex[rq.ID]; existsLocally {
			continue
		}
		merged = append(merged, rq)
	}

	return merged, conflicts
}

func quotesEqual(a, b models.Quote) bool {
	return a.Name == b.Name && models.PayloadEqual(a.Data, b.Data)
}
