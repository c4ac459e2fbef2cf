// Package bot is the Telegram surface of the ledger. It owns message
// routing, the receipt confirmation conversation, and reply-to-delete,
// and delegates everything stateful to the service layer.
package bot

import (
	"context"
	"io"
	"net/http"
	"time"

	tele "gopkg.in/telebot.v3"

	"catatuang/internal/ai"
	"catatuang/internal/logger"
	"catatuang/internal/models"
	"catatuang/internal/period"
	"catatuang/internal/services"
	"catatuang/internal/session"
)

const (
	historyLimit   = 10
	pollTimeout    = 10 * time.Second
	requestTimeout = 60 * time.Second
)

const (
	replyGenericError = "😵 Ada gangguan sebentar. Coba lagi ya!"
	replyParseFailed  = "🤔 Aku belum paham maksudnya. Coba tulis seperti \"beli ayam 10rb\" atau \"gajian 5jt\"."
	replyPhotoFailed  = "🤔 Notanya tidak terbaca. Coba foto ulang yang lebih jelas ya."
	replyNotFound     = "🔍 Transaksinya tidak ketemu. Mungkin sudah dihapus?"
	replyEmptyLedger  = "Belum ada transaksi yang bisa dihapus."
	replyCancelled    = "👍 Oke, dibatalkan."
	replyAskCorrect   = "✏️ Oke, tulis koreksinya. Contoh: \"jumlahnya 75rb\" atau \"kategorinya transportasi\"."
	replyAskConfirm   = "🤔 Balas dengan \"benar\" atau \"salah\" ya. Ketik \"batal\" untuk membatalkan."
	replyReviseFailed = "🤔 Koreksinya belum bisa kuproses. Coba tulis dengan cara lain, atau \"batal\"."
	replyHelp         = "📒 Cara pakai:\n\n" +
		"• Tulis transaksi biasa: \"beli ayam 10rb\", \"gajian 5jt\"\n" +
		"• Kirim foto nota untuk dicatat otomatis\n" +
		"• Balas catatan transaksi dengan \"hapus\" untuk membatalkan\n\n" +
		"Perintah:\n" +
		"/saldo - lihat saldo\n" +
		"/riwayat - transaksi terakhir\n" +
		"/ringkasan - ringkasan bulan ini\n" +
		"/hapus - hapus transaksi terakhir\n" +
		"/bantuan - bantuan"
)

// Bot wires Telegram updates to the service layer.
type Bot struct {
	bot          *tele.Bot
	users        services.UserServicer
	accounts     services.AccountServicer
	transactions services.TransactionServicer
	summaries    services.SummaryServicer
	quotas       services.QuotaServicer
	parser       ai.Parser
	flow         *ReceiptFlow
	deletes      *DeleteResolver
	index        *session.MessageIndex
	clock        *period.Clock
}

// Deps bundles the collaborators a Bot needs.
type Deps struct {
	Users        services.UserServicer
	Accounts     services.AccountServicer
	Transactions services.TransactionServicer
	Summaries    services.SummaryServicer
	Quotas       services.QuotaServicer
	Parser       ai.Parser
	Pending      *session.PendingReceipts
	Index        *session.MessageIndex
	Clock        *period.Clock
}

// New creates the bot and registers all handlers. It does not start
// polling; call Start.
func New(token string, deps Deps) (*Bot, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		bot:          b,
		users:        deps.Users,
		accounts:     deps.Accounts,
		transactions: deps.Transactions,
		summaries:    deps.Summaries,
		quotas:       deps.Quotas,
		parser:       deps.Parser,
		flow:         NewReceiptFlow(deps.Pending, deps.Parser, deps.Transactions, deps.Quotas),
		deletes:      NewDeleteResolver(deps.Index, deps.Transactions),
		index:        deps.Index,
		clock:        deps.Clock,
	}
	bot.register()
	return bot, nil
}

// Start begins long polling and blocks until Stop is called.
func (b *Bot) Start() { b.bot.Start() }

// Stop stops the poller.
func (b *Bot) Stop() { b.bot.Stop() }

var (
	btnConfirm = tele.Btn{Unique: "receipt_confirm", Text: "✅ Benar"}
	btnReject  = tele.Btn{Unique: "receipt_reject", Text: "❌ Salah"}
)

func confirmMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnConfirm, btnReject))
	return markup
}

func (b *Bot) register() {
	b.bot.Handle("/start", b.onStart)
	b.bot.Handle("/saldo", b.onBalance)
	b.bot.Handle("/riwayat", b.onHistory)
	b.bot.Handle("/ringkasan", b.onSummary)
	b.bot.Handle("/hapus", b.onDeleteLast)
	b.bot.Handle("/bantuan", b.onHelp)
	b.bot.Handle(tele.OnText, b.onText)
	b.bot.Handle(tele.OnPhoto, b.onPhoto)
	b.bot.Handle(&btnConfirm, b.onCallbackKeyword("benar"))
	b.bot.Handle(&btnReject, b.onCallbackKeyword("salah"))
}

// resolveUser maps the Telegram sender to a ledger user, creating it
// with its seed data on first contact.
func (b *Bot) resolveUser(c tele.Context) (*models.User, error) {
	sender := c.Sender()
	return b.users.FindOrCreateByTelegram(sender.ID, sender.FirstName, sender.LastName, sender.Username)
}

func (b *Bot) fail(c tele.Context, err error, context string) error {
	logger.Get().Errorw("bot handler failed", "handler", context, "error", err)
	return c.Send(replyGenericError)
}

func (b *Bot) onStart(c tele.Context) error {
	user, err := b.resolveUser(c)
	if err != nil {
		return b.fail(c, err, "start")
	}
	name := user.FirstName
	if name == "" {
		name = "kamu"
	}
	return c.Send("👋 Halo " + name + "! Aku siap mencatat keuanganmu.\n\n" + replyHelp)
}

func (b *Bot) onHelp(c tele.Context) error {
	return c.Send(replyHelp)
}

func (b *Bot) onBalance(c tele.Context) error {
	user, err := b.resolveUser(c)
	if err != nil {
		return b.fail(c, err, "balance")
	}
	summary, err := b.accounts.TotalBalance(user.ID)
	if err != nil {
		return b.fail(c, err, "balance")
	}
	return c.Send(formatBalanceMessage(summary))
}

func (b *Bot) onHistory(c tele.Context) error {
	user, err := b.resolveUser(c)
	if err != nil {
		return b.fail(c, err, "history")
	}
	transactions, err := b.transactions.ListRecent(user.ID, historyLimit)
	if err != nil {
		return b.fail(c, err, "history")
	}
	return c.Send(formatHistoryMessage(transactions))
}

func (b *Bot) onSummary(c tele.Context) error {
	user, err := b.resolveUser(c)
	if err != nil {
		return b.fail(c, err, "summary")
	}

	local := b.clock.Now().In(b.clock.Location())
	year, monthNum := local.Year(), int(local.Month())
	month := b.clock.FormatMonth(local)

	summary, err := b.summaries.MonthSummary(user.ID, year, monthNum, services.DateFieldEffective)
	if err != nil {
		return b.fail(c, err, "summary")
	}
	breakdown, err := b.summaries.CategoryBreakdown(user.ID, year, monthNum)
	if err != nil {
		return b.fail(c, err, "summary")
	}
	return c.Send(formatSummaryMessage(month, summary, breakdown))
}

func (b *Bot) onDeleteLast(c tele.Context) error {
	user, err := b.resolveUser(c)
	if err != nil {
		return b.fail(c, err, "delete_last")
	}
	txn, err := b.transactions.DeleteMostRecent(user.ID)
	if err != nil {
		return b.fail(c, err, "delete_last")
	}
	if txn == nil {
		return c.Send(replyEmptyLedger)
	}
	b.index.ClearTransaction(txn.ID)
	return c.Send(formatDeletedMessage(txn))
}

// onText routes free text in priority order: a pending receipt
// conversation first, then reply-to-delete, then AI transaction entry.
func (b *Bot) onText(c tele.Context) error {
	user, err := b.resolveUser(c)
	if err != nil {
		return b.fail(c, err, "text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	outcome, err := b.flow.HandleFollowup(ctx, user.ID, c.Sender().ID, c.Text())
	if err != nil {
		return b.fail(c, err, "receipt_followup")
	}
	if outcome.Kind != FollowupNone {
		return b.sendFollowupReply(c, outcome)
	}

	if reply := c.Message().ReplyTo; reply != nil && isDeleteKeyword(c.Text()) {
		return b.handleReplyDelete(c, user, reply)
	}

	return b.handleChatEntry(ctx, c, user)
}

func (b *Bot) sendFollowupReply(c tele.Context, outcome *FollowupOutcome) error {
	switch outcome.Kind {
	case FollowupCommitted:
		return b.sendSavedMessage(c, outcome.Result)
	case FollowupAwaitingCorrection:
		return c.Send(replyAskCorrect)
	case FollowupCancelled:
		return c.Send(replyCancelled)
	case FollowupRevised:
		return c.Send(formatCandidateMessage(outcome.Candidate), confirmMarkup())
	case FollowupReviseFailed:
		return c.Send(replyReviseFailed)
	case FollowupReprompted:
		return c.Send(replyAskConfirm)
	default:
		return nil
	}
}

func (b *Bot) handleReplyDelete(c tele.Context, user *models.User, reply *tele.Message) error {
	txn, err := b.deletes.Resolve(user.ID, c.Chat().ID, reply.ID, reply.Text)
	if err != nil {
		return b.fail(c, err, "reply_delete")
	}
	if txn == nil {
		return c.Send(replyNotFound)
	}
	return c.Send(formatDeletedMessage(txn))
}

// handleChatEntry is the plain "beli ayam 10rb" path: consume one unit
// of chat quota, parse, and commit immediately.
func (b *Bot) handleChatEntry(ctx context.Context, c tele.Context, user *models.User) error {
	quota, err := b.quotas.ConsumeChatQuota(user.ID)
	if err != nil {
		return b.fail(c, err, "chat_quota")
	}
	if !quota.OK {
		return c.Send(formatQuotaExceededMessage("chat AI", quota))
	}

	candidate, err := b.parser.ParseText(ctx, c.Text())
	if err != nil {
		return b.fail(c, err, "parse_text")
	}
	if candidate == nil {
		return c.Send(replyParseFailed)
	}

	result, err := b.transactions.ProcessCandidate(user.ID, candidate, c.Text())
	if err != nil {
		return b.fail(c, err, "process_candidate")
	}
	return b.sendSavedMessage(c, result)
}

// sendSavedMessage announces a committed transaction and links the sent
// message to it so a "hapus" reply can target it precisely.
func (b *Bot) sendSavedMessage(c tele.Context, result *services.TransactionResult) error {
	msg, err := b.bot.Send(c.Chat(), formatSavedMessage(result))
	if err != nil {
		return err
	}
	b.index.Register(c.Chat().ID, msg.ID, result.Transaction.ID)
	return nil
}

func (b *Bot) onPhoto(c tele.Context) error {
	user, err := b.resolveUser(c)
	if err != nil {
		return b.fail(c, err, "photo")
	}

	photo := c.Message().Photo
	if photo == nil {
		return c.Send(replyPhotoFailed)
	}

	reader, err := b.bot.File(&photo.File)
	if err != nil {
		return b.fail(c, err, "photo_download")
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return b.fail(c, err, "photo_download")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	outcome, err := b.flow.HandlePhoto(ctx, user.ID, c.Sender().ID, c.Message().ID, data, detectImageMime(data))
	if err != nil {
		return b.fail(c, err, "photo_parse")
	}

	switch outcome.Kind {
	case PhotoQuotaExceeded:
		return c.Send(formatQuotaExceededMessage("scan nota", outcome.Quota))
	case PhotoParseFailed:
		return c.Send(replyPhotoFailed)
	default:
		return c.Send(formatCandidateMessage(outcome.Candidate), confirmMarkup())
	}
}

// detectImageMime sniffs the downloaded photo's content type. Telegram
// photos are jpeg in practice, but forwarded files can arrive as png or
// webp.
func detectImageMime(data []byte) string {
	return http.DetectContentType(data)
}

// onCallbackKeyword adapts the inline confirmation buttons to the same
// keyword path as typed replies.
func (b *Bot) onCallbackKeyword(keyword string) tele.HandlerFunc {
	return func(c tele.Context) error {
		user, err := b.resolveUser(c)
		if err != nil {
			return b.fail(c, err, "callback")
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		outcome, err := b.flow.HandleFollowup(ctx, user.ID, c.Sender().ID, keyword)
		if err != nil {
			return b.fail(c, err, "callback")
		}
		if err := c.Respond(); err != nil {
			logger.Get().Warnw("callback ack failed", "error", err)
		}
		if outcome.Kind == FollowupNone {
			return c.Send(replyNotFound)
		}
		return b.sendFollowupReply(c, outcome)
	}
}
