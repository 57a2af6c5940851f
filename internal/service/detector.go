package service

import (
	"time"

	"github.com/altech-app/cloudsync/models"
)

// conflictDetector is the concrete implementation of ConflictDetector.
// It performs a purely in-memory comparison of one remote document against
// the device's local evidence; no storage layer or logger is required
// because the operation is stateless and produces no side effects.
type conflictDetector struct{}

// NewConflictDetector constructs a ConflictDetector ready for use.
// Because Classify is a stateless, in-memory operation, no dependencies
// (storage, config, logger) are needed.
func NewConflictDetector() ConflictDetector {
	return &conflictDetector{}
}

// Classify implements ConflictDetector.
//
// The checks run in order; the first one that matches decides:
//
//  1. The remote write came from this device. Whatever it contains, this
//     installation produced it, so applying it can never lose foreign data.
//  2. The remote write is not newer than the watermark. The device has
//     already reconciled it (or something after it); the local copy is the
//     same or strictly ahead.
//  3. The device has no local copy of this document. A fresh install adopts
//     the remote state wholesale.
//  4. The payloads are structurally equal. Both sides already agree, so the
//     only effect of applying is advancing the watermark.
//  5. Otherwise both sides hold divergent data written since the last
//     reconciliation, and only the caller can choose.
func (d *conflictDetector) Classify(remote models.Document, localPayload []byte, watermark time.Time, deviceID string) Decision {
	if remote.DeviceID != "" && remote.DeviceID == deviceID {
		return DecisionApply
	}

	if !remote.WrittenAt.After(watermark) {
		return DecisionApply
	}

	if localPayload == nil {
		return DecisionApply
	}

	if models.PayloadEqual(remote.Payload, localPayload) {
		return DecisionApply
	}

	return DecisionConflict
}
