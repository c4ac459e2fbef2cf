// Package session holds the bot's per-user ephemeral conversation state.
// Everything here lives in process memory only: a restart drops pending
// confirmations and message links, never ledger data.
package session

import (
	"sync"
	"time"

	"catatuang/internal/ai"
)

// Stage is the step a pending receipt is waiting on.
type Stage string

const (
	// StageAwaitingConfirmation means the parsed candidate was shown and
	// the bot is waiting for confirm / reject / cancel.
	StageAwaitingConfirmation Stage = "awaiting_confirmation"
	// StageAwaitingCorrection means the user rejected the candidate and
	// the bot is waiting for their free-text correction.
	StageAwaitingCorrection Stage = "awaiting_correction"
)

// PendingReceipt is an unconfirmed receipt parse held until the user
// confirms, corrects, or cancels it.
type PendingReceipt struct {
	Candidate       *ai.Candidate
	Stage           Stage
	SourceMessageID int
	CreatedAt       time.Time
}

// PendingReceipts stores at most one pending receipt per user. A new
// receipt photo replaces whatever was pending before.
type PendingReceipts struct {
	mu      sync.RWMutex
	pending map[int64]*PendingReceipt
}

// NewPendingReceipts creates an empty pending-receipt store.
func NewPendingReceipts() *PendingReceipts {
	return &PendingReceipts{pending: make(map[int64]*PendingReceipt)}
}

// Get returns the user's pending receipt, or nil.
func (p *PendingReceipts) Get(userID int64) *PendingReceipt {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pending[userID]
}

// Set stores the user's pending receipt, replacing any previous one.
func (p *PendingReceipts) Set(userID int64, receipt *PendingReceipt) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending[userID] = receipt
}

// Delete drops the user's pending receipt, if any.
func (p *PendingReceipts) Delete(userID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, userID)
}
