package bot

import (
	"strings"

	"catatuang/internal/models"
	"catatuang/internal/services"
	"catatuang/internal/session"
)

// refLookupWindow bounds how far back an inline tx_ reference is matched.
const refLookupWindow = 50

// DeleteResolver turns a "hapus" reply into the transaction it targets.
//
// Resolution order: the bot's own message index (exact link from the
// replied-to confirmation message), then an inline tx_ reference token
// in the replied-to text, then the replied-to text matched against
// recorded raw inputs. Each step only fires when the one before found
// nothing.
type DeleteResolver struct {
	index        *session.MessageIndex
	transactions services.TransactionServicer
}

// NewDeleteResolver creates a DeleteResolver.
func NewDeleteResolver(index *session.MessageIndex, transactions services.TransactionServicer) *DeleteResolver {
	return &DeleteResolver{index: index, transactions: transactions}
}

// Resolve deletes the transaction a reply refers to, reversing its
// balance effect. It returns (nil, nil) when no transaction could be
// matched.
func (r *DeleteResolver) Resolve(userID string, chatID int64, repliedMessageID int, repliedText string) (*models.Transaction, error) {
	if id, ok := r.index.Lookup(chatID, repliedMessageID); ok {
		txn, err := r.transactions.DeleteByID(userID, id)
		if err != nil {
			return nil, err
		}
		if txn != nil {
			r.index.ClearTransaction(txn.ID)
			return txn, nil
		}
		// The link was stale; fall through to the other strategies.
		r.index.ClearTransaction(id)
	}

	if token := extractRefToken(repliedText); token != "" {
		txn, err := r.deleteByRefToken(userID, token)
		if err != nil || txn != nil {
			return txn, err
		}
	}

	if text := strings.TrimSpace(repliedText); text != "" {
		match, err := r.transactions.FindLatestByRawInput(userID, text)
		if err != nil {
			return nil, err
		}
		if match != nil {
			txn, err := r.transactions.DeleteByID(userID, match.ID)
			if err != nil {
				return nil, err
			}
			if txn != nil {
				r.index.ClearTransaction(txn.ID)
			}
			return txn, nil
		}
	}

	return nil, nil
}

func (r *DeleteResolver) deleteByRefToken(userID, token string) (*models.Transaction, error) {
	recent, err := r.transactions.ListRecent(userID, refLookupWindow)
	if err != nil {
		return nil, err
	}
	for i := range recent {
		if strings.EqualFold(strings.ReplaceAll(recent[i].ID, "-", ""), token) {
			txn, err := r.transactions.DeleteByID(userID, recent[i].ID)
			if err != nil {
				return nil, err
			}
			if txn != nil {
				r.index.ClearTransaction(txn.ID)
			}
			return txn, nil
		}
	}
	return nil, nil
}
