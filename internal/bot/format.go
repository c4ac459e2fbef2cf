package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"catatuang/internal/ai"
	"catatuang/internal/models"
	"catatuang/internal/services"
)

// FormatRupiah renders an amount as "Rp10.000" with dot thousands
// separators. Fractional cents, rare for rupiah, keep two digits after a
// comma ("Rp10.000,50").
func FormatRupiah(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	abs := amount.Abs()

	intPart := abs.Truncate(0)
	frac := abs.Sub(intPart)

	digits := intPart.String()
	var grouped strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	out := "Rp" + grouped.String()
	if !frac.IsZero() {
		cents := frac.Mul(decimal.New(100, 0)).Round(0).IntPart()
		out += fmt.Sprintf(",%02d", cents)
	}
	if negative {
		return "-" + out
	}
	return out
}

// RefToken renders a transaction ID as an inline reference token, the
// UUID lowercased with hyphens stripped so it survives being typed back.
func RefToken(transactionID string) string {
	return "tx_" + strings.ToLower(strings.ReplaceAll(transactionID, "-", ""))
}

func formatSavedMessage(result *services.TransactionResult) string {
	txn := result.Transaction

	header := "💸 Pengeluaran"
	if txn.Type == models.TransactionTypeIncome {
		header = "💵 Pemasukan"
	}

	var b strings.Builder
	b.WriteString("✅ Transaksi dicatat!\n\n")
	fmt.Fprintf(&b, "%s: %s\n", header, FormatRupiah(txn.Amount))
	if txn.Description != "" {
		fmt.Fprintf(&b, "📝 %s\n", txn.Description)
	}
	if txn.Category != nil {
		fmt.Fprintf(&b, "🏷️ %s\n", txn.Category.DisplayLabel())
	}
	fmt.Fprintf(&b, "💰 Saldo: %s\n", FormatRupiah(result.UpdatedBalance))
	fmt.Fprintf(&b, "\n🆔 %s\n", RefToken(txn.ID))
	b.WriteString("Balas pesan ini dengan \"hapus\" untuk membatalkan.")
	return b.String()
}

func formatDeletedMessage(txn *models.Transaction) string {
	return fmt.Sprintf("🗑️ Transaksi dihapus: %s (%s). Saldo sudah dikembalikan.",
		txn.Description, FormatRupiah(txn.Amount))
}

func formatBalanceMessage(summary *services.BalanceSummary) string {
	var b strings.Builder
	b.WriteString("💰 Saldo kamu:\n\n")
	for _, account := range summary.Accounts {
		icon := account.Icon
		if icon == "" {
			icon = "💳"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", icon, account.Name, FormatRupiah(account.Balance))
	}
	fmt.Fprintf(&b, "\nTotal: %s", FormatRupiah(summary.Total))
	return b.String()
}

func formatSummaryMessage(month string, summary *services.Summary, breakdown []services.CategoryAmount) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Ringkasan %s\n\n", month)
	fmt.Fprintf(&b, "💵 Pemasukan: %s\n", FormatRupiah(summary.TotalIncome))
	fmt.Fprintf(&b, "💸 Pengeluaran: %s\n", FormatRupiah(summary.TotalExpense))
	fmt.Fprintf(&b, "🧾 Transaksi: %d\n", summary.TransactionCount)

	if len(breakdown) > 0 {
		b.WriteString("\nPengeluaran per kategori:\n")
		for _, row := range breakdown {
			fmt.Fprintf(&b, "• %s: %s\n", row.Category, FormatRupiah(row.Amount))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatHistoryMessage(transactions []models.Transaction) string {
	if len(transactions) == 0 {
		return "Belum ada transaksi. Kirim pesan seperti \"beli ayam 10rb\" untuk mulai mencatat."
	}

	var b strings.Builder
	b.WriteString("🧾 Transaksi terakhir:\n\n")
	for i := range transactions {
		txn := &transactions[i]
		sign := "-"
		if txn.Type == models.TransactionTypeIncome {
			sign = "+"
		}
		label := txn.Description
		if label == "" && txn.Category != nil {
			label = txn.Category.DisplayLabel()
		}
		fmt.Fprintf(&b, "%s %s%s · %s\n", txn.Date.Format("02 Jan"), sign, FormatRupiah(txn.Amount), label)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatCandidateMessage(candidate *ai.Candidate) string {
	header := "💸 Pengeluaran"
	if candidate.Type == ai.CandidateIncome {
		header = "💵 Pemasukan"
	}

	var b strings.Builder
	b.WriteString("🧾 Hasil baca nota:\n\n")
	fmt.Fprintf(&b, "%s: %s\n", header, FormatRupiah(candidate.Amount))
	if candidate.Description != "" {
		fmt.Fprintf(&b, "📝 %s\n", candidate.Description)
	}
	if candidate.Category != "" {
		fmt.Fprintf(&b, "🏷️ %s\n", candidate.Category)
	}
	b.WriteString("\nSudah benar? Balas \"benar\" untuk simpan, \"salah\" untuk koreksi, atau \"batal\".")
	return b.String()
}

func formatQuotaExceededMessage(kind string, quota *services.QuotaResult) string {
	return fmt.Sprintf("🚫 Kuota %s harian habis (%d/%d). Coba lagi besok ya!",
		kind, quota.Used, quota.Limit)
}
