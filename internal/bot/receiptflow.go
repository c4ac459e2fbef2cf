package bot

import (
	"context"
	"time"

	"catatuang/internal/ai"
	"catatuang/internal/services"
	"catatuang/internal/session"
)

// PhotoKind is the outcome class of handling a receipt photo.
type PhotoKind int

const (
	PhotoQuotaExceeded PhotoKind = iota
	PhotoParseFailed
	PhotoAwaitingConfirmation
)

// PhotoOutcome is the result of HandlePhoto.
type PhotoOutcome struct {
	Kind      PhotoKind
	Quota     *services.QuotaResult
	Candidate *ai.Candidate
}

// FollowupKind is the outcome class of handling a message while a
// receipt confirmation is pending.
type FollowupKind int

const (
	// FollowupNone means no receipt was pending; the message belongs to
	// another flow.
	FollowupNone FollowupKind = iota
	FollowupCommitted
	FollowupAwaitingCorrection
	FollowupCancelled
	FollowupRevised
	FollowupReviseFailed
	// FollowupReprompted means the confirmation stage got input that is
	// neither confirm, reject, nor cancel; the candidate is unchanged and
	// the user is asked again.
	FollowupReprompted
)

// FollowupOutcome is the result of HandleFollowup.
type FollowupOutcome struct {
	Kind      FollowupKind
	Result    *services.TransactionResult
	Candidate *ai.Candidate
}

// ReceiptFlow drives the receipt confirmation conversation: photo in,
// candidate shown, then confirm / correct / cancel until the candidate
// is committed or dropped. State lives in the pending-receipt store, one
// slot per user.
type ReceiptFlow struct {
	pending      *session.PendingReceipts
	parser       ai.Parser
	transactions services.TransactionServicer
	quotas       services.QuotaServicer
}

// NewReceiptFlow creates a ReceiptFlow.
func NewReceiptFlow(pending *session.PendingReceipts, parser ai.Parser, transactions services.TransactionServicer, quotas services.QuotaServicer) *ReceiptFlow {
	return &ReceiptFlow{
		pending:      pending,
		parser:       parser,
		transactions: transactions,
		quotas:       quotas,
	}
}

// HandlePhoto parses a receipt photo into a pending candidate. Quota is
// consumed only after a successful parse: an unreadable photo costs the
// user nothing.
func (f *ReceiptFlow) HandlePhoto(ctx context.Context, userID string, chatUserID int64, messageID int, data []byte, mimeType string) (*PhotoOutcome, error) {
	quota, err := f.quotas.ReceiptQuota(userID)
	if err != nil {
		return nil, err
	}
	if !quota.OK {
		return &PhotoOutcome{Kind: PhotoQuotaExceeded, Quota: quota}, nil
	}

	candidate, err := f.parser.ParseImage(ctx, data, mimeType)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return &PhotoOutcome{Kind: PhotoParseFailed, Quota: quota}, nil
	}

	consumed, err := f.quotas.ConsumeReceiptQuota(userID)
	if err != nil {
		return nil, err
	}
	if !consumed.OK {
		return &PhotoOutcome{Kind: PhotoQuotaExceeded, Quota: consumed}, nil
	}

	// A new photo replaces any earlier pending receipt.
	f.pending.Set(chatUserID, &session.PendingReceipt{
		Candidate:       candidate,
		Stage:           session.StageAwaitingConfirmation,
		SourceMessageID: messageID,
		CreatedAt:       time.Now(),
	})
	return &PhotoOutcome{Kind: PhotoAwaitingConfirmation, Quota: consumed, Candidate: candidate}, nil
}

// HandleFollowup routes a text message sent while a receipt is pending.
//
// At the confirmation stage: confirm keywords commit the candidate,
// reject keywords move to the correction stage, cancel keywords drop
// the pending receipt, and anything else reprompts without touching the
// candidate. At the correction stage everything except cancel is a
// correction. FollowupNone means nothing was pending and the caller
// should treat the message as ordinary input.
func (f *ReceiptFlow) HandleFollowup(ctx context.Context, userID string, chatUserID int64, text string) (*FollowupOutcome, error) {
	pending := f.pending.Get(chatUserID)
	if pending == nil {
		return &FollowupOutcome{Kind: FollowupNone}, nil
	}

	if isCancel(text) {
		f.pending.Delete(chatUserID)
		return &FollowupOutcome{Kind: FollowupCancelled}, nil
	}

	if pending.Stage == session.StageAwaitingConfirmation {
		switch {
		case isConfirm(text):
			result, err := f.transactions.ProcessCandidate(userID, pending.Candidate, pending.Candidate.Description)
			if err != nil {
				return nil, err
			}
			f.pending.Delete(chatUserID)
			return &FollowupOutcome{Kind: FollowupCommitted, Result: result}, nil
		case isReject(text):
			pending.Stage = session.StageAwaitingCorrection
			f.pending.Set(chatUserID, pending)
			return &FollowupOutcome{Kind: FollowupAwaitingCorrection}, nil
		default:
			return &FollowupOutcome{Kind: FollowupReprompted, Candidate: pending.Candidate}, nil
		}
	}

	return f.revise(ctx, chatUserID, pending, text)
}

func (f *ReceiptFlow) revise(ctx context.Context, chatUserID int64, pending *session.PendingReceipt, feedback string) (*FollowupOutcome, error) {
	revised, err := f.parser.Revise(ctx, pending.Candidate, feedback)
	if err != nil {
		return nil, err
	}
	if revised == nil {
		// Keep waiting for a usable correction.
		pending.Stage = session.StageAwaitingCorrection
		f.pending.Set(chatUserID, pending)
		return &FollowupOutcome{Kind: FollowupReviseFailed}, nil
	}

	pending.Candidate = revised
	pending.Stage = session.StageAwaitingConfirmation
	f.pending.Set(chatUserID, pending)
	return &FollowupOutcome{Kind: FollowupRevised, Candidate: revised}, nil
}
