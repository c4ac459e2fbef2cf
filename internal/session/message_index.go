package session

import "sync"

// messageKey identifies one bot message in one chat.
type messageKey struct {
	ChatID    int64
	MessageID int
}

// MessageIndex links the bot's confirmation messages to the transactions
// they announced, so a reply like "hapus" can delete exactly the
// transaction the user replied to. The index is bidirectional: deleting
// a transaction through any path also unlinks its message.
type MessageIndex struct {
	mu            sync.RWMutex
	byMessage     map[messageKey]string
	byTransaction map[string]messageKey
}

// NewMessageIndex creates an empty message index.
func NewMessageIndex() *MessageIndex {
	return &MessageIndex{
		byMessage:     make(map[messageKey]string),
		byTransaction: make(map[string]messageKey),
	}
}

// Register links a sent bot message to a transaction ID.
func (m *MessageIndex) Register(chatID int64, messageID int, transactionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := messageKey{ChatID: chatID, MessageID: messageID}
	if prev, ok := m.byTransaction[transactionID]; ok {
		delete(m.byMessage, prev)
	}
	m.byMessage[key] = transactionID
	m.byTransaction[transactionID] = key
}

// Lookup returns the transaction a bot message announced, if linked.
func (m *MessageIndex) Lookup(chatID int64, messageID int) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byMessage[messageKey{ChatID: chatID, MessageID: messageID}]
	return id, ok
}

// Consume returns and unlinks the transaction for a bot message.
func (m *MessageIndex) Consume(chatID int64, messageID int) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := messageKey{ChatID: chatID, MessageID: messageID}
	id, ok := m.byMessage[key]
	if !ok {
		return "", false
	}
	delete(m.byMessage, key)
	delete(m.byTransaction, id)
	return id, true
}

// ClearTransaction unlinks a transaction deleted through another path.
func (m *MessageIndex) ClearTransaction(transactionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok := m.byTransaction[transactionID]
	if !ok {
		return
	}
	delete(m.byTransaction, transactionID)
	delete(m.byMessage, key)
}
