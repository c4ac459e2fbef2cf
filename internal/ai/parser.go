// Package ai is the boundary to the natural-language transaction parser.
// The parser is treated as a fallible black box: text or image bytes in,
// a typed candidate out, or nil when the model could not read the input.
// No call is ever retried here; callers decide whether to prompt again.
package ai

import (
	"context"

	"github.com/shopspring/decimal"
)

// CandidateType is the direction of a parsed transaction guess.
type CandidateType string

const (
	CandidateExpense CandidateType = "expense"
	CandidateIncome  CandidateType = "income"
)

// Candidate is an AI-produced, unconfirmed guess at a transaction. It is
// held in per-user ephemeral state until a human confirms or discards it.
type Candidate struct {
	Type        CandidateType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Confidence  float64         `json:"confidence"`
}

// Parser extracts transaction candidates from user input.
//
// All three calls return (nil, nil) when the model answered but could not
// produce a usable candidate, and a non-nil error only for transport or
// model failures.
type Parser interface {
	ParseText(ctx context.Context, input string) (*Candidate, error)
	ParseImage(ctx context.Context, data []byte, mimeType string) (*Candidate, error)
	Revise(ctx context.Context, previous *Candidate, feedback string) (*Candidate, error)
}
