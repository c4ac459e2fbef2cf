package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/logger"
)

const textPrompt = `Kamu adalah asisten keuangan yang mengurai input transaksi keuangan dalam bahasa Indonesia ke format JSON.

TUGAS:
Analisis input pengguna dan ekstrak informasi transaksi keuangan.

FORMAT INPUT CONTOH:
- "beli ayam 10ribu cash" → pengeluaran makanan 10000
- "gajian 5jt bca" → pemasukan gaji 5000000
- "makan siang 25rb" → pengeluaran makanan 25000
- "bayar listrik 500rb" → pengeluaran tagihan 500000

KONVERSI MATA UANG:
- ribu/rb/k = x1.000 (contoh: 10ribu = 10.000)
- juta/jt/m = x1.000.000 (contoh: 5jt = 5.000.000)

CATATAN:
- Abaikan informasi akun/dompet/rekening, sistem memakai satu saldo gabungan.
- Jika pengguna menulis transfer antar akun, anggap sebagai "expense" dengan kategori paling relevan.

OUTPUT FORMAT (JSON ONLY):
{
  "type": "expense" | "income",
  "amount": number (dalam rupiah penuh, bukan ribu/juta),
  "category": string (nama kategori dari daftar),
  "description": string (deskripsi singkat dalam bahasa Indonesia),
  "confidence": number (0-1)
}

PENTING:
- Selalu output JSON valid saja, tanpa markdown atau penjelasan tambahan.
- Jangan bungkus respons dalam code fence.`

const imagePrompt = `Kamu adalah asisten keuangan yang membaca foto nota/struk belanja.

TUGAS:
Baca nota pada gambar dan ekstrak satu transaksi: total akhir yang dibayar, jenis (hampir selalu "expense"), kategori yang paling cocok, dan deskripsi singkat (nama toko atau isi belanja).

OUTPUT FORMAT (JSON ONLY):
{
  "type": "expense" | "income",
  "amount": number (total akhir dalam rupiah penuh),
  "category": string,
  "description": string,
  "confidence": number (0-1)
}

PENTING:
- Selalu output JSON valid saja, tanpa markdown atau penjelasan tambahan.
- Jika nota tidak terbaca, keluarkan confidence rendah (< 0.3).`

const revisePrompt = `Kamu adalah asisten keuangan. Pengguna mengoreksi hasil parsing transaksi sebelumnya.

HASIL SEBELUMNYA (JSON):
%s

KOREKSI PENGGUNA:
%s

TUGAS:
Terapkan koreksi pengguna pada hasil sebelumnya dan keluarkan transaksi lengkap yang sudah diperbaiki.

OUTPUT FORMAT (JSON ONLY):
{
  "type": "expense" | "income",
  "amount": number (dalam rupiah penuh),
  "category": string,
  "description": string,
  "confidence": number (0-1)
}

PENTING:
- Selalu output JSON valid saja, tanpa markdown atau penjelasan tambahan.`

// categoriesPrompt lists the system category set the model must pick
// from, both canonical and localized labels.
const categoriesPrompt = `KATEGORI PENGELUARAN (WAJIB PILIH SALAH SATU):
Food & Drinks (Makan & Minum), Transportation (Transportasi), Housing (Tempat Tinggal),
Shopping (Belanja), Bills (Tagihan), Installments (Cicilan), Health (Kesehatan),
Education (Pendidikan), Entertainment (Hiburan), Lifestyle (Gaya Hidup), Fashion,
Personal Care (Perawatan Diri), Social (Sosial), Lost Money (Uang Hilang),
Donation (Donasi), Family (Keluarga), Children (Anak), Work Needs (Keperluan Kerja),
Business (Bisnis), Investment (Investasi), Savings (Tabungan), Insurance (Asuransi),
Tax (Pajak), Gadget & Electronics, Subscription, Travel (Liburan), Hobbies (Hobi),
Sports (Olahraga)

KATEGORI PEMASUKAN:
Salary (Gaji), Bonus, Investment Return (Hasil Investasi), Gift (Hadiah),
Other Income (Pendapatan Lain)`

// geminiParser implements Parser on top of the Gemini API. Multiple API
// keys are rotated round-robin to spread free-tier quota.
type geminiParser struct {
	keys  []string
	model string

	mu   sync.Mutex
	next int
}

// NewGeminiParser creates a Parser backed by Gemini.
func NewGeminiParser(apiKeys []string, model string) (Parser, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("no Gemini API keys configured")
	}
	return &geminiParser{keys: apiKeys, model: model}, nil
}

func (p *geminiParser) client(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	key := p.keys[p.next%len(p.keys)]
	p.next = (p.next + 1) % len(p.keys)
	p.mu.Unlock()

	return genai.NewClient(ctx, &genai.ClientConfig{APIKey: key})
}

// ParseText extracts a transaction candidate from a chat message.
func (p *geminiParser) ParseText(ctx context.Context, input string) (*Candidate, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: textPrompt + "\n\n" + categoriesPrompt},
				{Text: "INPUT:\n" + input},
			},
		},
	}
	return p.generate(ctx, contents)
}

// ParseImage extracts a transaction candidate from a receipt photo.
func (p *geminiParser) ParseImage(ctx context.Context, data []byte, mimeType string) (*Candidate, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: imagePrompt + "\n\n" + categoriesPrompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			},
		},
	}
	return p.generate(ctx, contents)
}

// Revise combines a prior candidate with user feedback into a corrected
// candidate.
func (p *geminiParser) Revise(ctx context.Context, previous *Candidate, feedback string) (*Candidate, error) {
	prior, err := json.Marshal(previous)
	if err != nil {
		return nil, fmt.Errorf("marshal previous candidate: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: fmt.Sprintf(revisePrompt, prior, feedback) + "\n\n" + categoriesPrompt},
			},
		},
	}
	return p.generate(ctx, contents)
}

func (p *geminiParser) generate(ctx context.Context, contents []*genai.Content) (*Candidate, error) {
	client, err := p.client(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrParserUnavailable, err)
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrParserUnavailable, err)
	}

	raw := strings.TrimSpace(resp.Text())
	candidate, err := decodeCandidate(raw)
	if err != nil {
		// The model answered but not with a usable candidate. This is an
		// expected outcome for unreadable input, not a transport failure.
		logger.Get().Debugw("unusable parser output", "raw", raw, "reason", err)
		return nil, nil
	}
	return candidate, nil
}

// decodeCandidate parses and validates the model's strict-JSON reply.
// Code fences are stripped since models occasionally add them despite
// instructions.
func decodeCandidate(raw string) (*Candidate, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var candidate Candidate
	if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if candidate.Type != CandidateExpense && candidate.Type != CandidateIncome {
		return nil, fmt.Errorf("invalid type %q", candidate.Type)
	}
	if !candidate.Amount.IsPositive() {
		return nil, fmt.Errorf("non-positive amount %s", candidate.Amount)
	}
	if candidate.Confidence < 0 || candidate.Confidence > 1 {
		return nil, fmt.Errorf("confidence %f out of range", candidate.Confidence)
	}
	if candidate.Amount.GreaterThan(decimal.New(1, 15)) {
		return nil, fmt.Errorf("amount %s implausibly large", candidate.Amount)
	}
	return &candidate, nil
}
