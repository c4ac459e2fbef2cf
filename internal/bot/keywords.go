package bot

import (
	"regexp"
	"strings"
)

// Keyword sets for the receipt confirmation flow and reply-to-delete.
// Matching is whole-message, case-insensitive, after trimming.
var (
	confirmKeywords = map[string]struct{}{
		"benar": {}, "ya": {}, "oke": {}, "ok": {}, "setuju": {}, "sip": {},
	}
	rejectKeywords = map[string]struct{}{
		"salah": {}, "tidak": {}, "nggak": {}, "gak": {}, "no": {},
	}
	cancelKeywords = map[string]struct{}{
		"batal": {}, "cancel": {}, "stop": {},
	}
	deleteKeywords = map[string]struct{}{
		"del": {}, "hapus": {}, "delete": {}, "undo": {}, "batal": {}, "cancel": {},
	}
)

// refTokenPattern extracts an inline transaction reference from message text.
var refTokenPattern = regexp.MustCompile(`tx_([a-z0-9]+)`)

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func isConfirm(text string) bool {
	_, ok := confirmKeywords[normalize(text)]
	return ok
}

func isReject(text string) bool {
	_, ok := rejectKeywords[normalize(text)]
	return ok
}

func isCancel(text string) bool {
	_, ok := cancelKeywords[normalize(text)]
	return ok
}

func isDeleteKeyword(text string) bool {
	_, ok := deleteKeywords[normalize(text)]
	return ok
}

// extractRefToken returns the bare token of the first tx_ reference in
// the text, or "".
func extractRefToken(text string) string {
	match := refTokenPattern.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return ""
	}
	return match[1]
}
