package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Quote is one record of the item collection. Unlike named documents, quotes
// form an unordered set keyed by ID: the sync merge unit is a single quote,
// not the whole collection.
type Quote struct {
	// ID is a stable, locally generated identifier, globally unique within
	// one account.
	ID string `json:"id"`

	// Name is the user-visible title of the quote. Conflict copies get a
	// "(conflict copy)" suffix appended so they can be told apart in lists.
	Name string `json:"name"`

	// Data is the opaque, application-defined quote payload.
	Data json.RawMessage `json:"data"`

	// UpdatedAt is the server-assigned timestamp of the last remote write.
	// Zero for quotes that have never been pushed.
	UpdatedAt time.Time `json:"updated_at"`

	// DeviceID attributes the last write to an installation.
	DeviceID string `json:"device_id"`

	// Conflict marks quotes created as conflict copies during a merge.
	Conflict bool `json:"conflict,omitempty"`

	// OriginalID references the quote this conflict copy diverged from.
	// Empty for regular quotes.
	OriginalID string `json:"original_id,omitempty"`
}

// ConflictCopy derives a conflict-copy quote from a divergent remote quote.
// The copy keeps the remote payload, receives a new derived identity, and is
// tagged so the quote list can surface it for manual review. Conflict copies
// are never removed automatically.
func (q Quote) ConflictCopy(at time.Time) Quote {
	name := q.Name
	if name == "" {
		name = "Quote"
	}

	return Quote{
		ID:         fmt.Sprintf("%s_conflict_%d", q.ID, at.UnixMilli()),
		Name:       name + " (conflict copy)",
		Data:       q.Data,
		UpdatedAt:  q.UpdatedAt,
		DeviceID:   q.DeviceID,
		Conflict:   true,
		OriginalID: q.ID,
	}
}
