// Package security 處理使用者輸入的自由文字。
// 申請的名稱與說明會出現在管理後台，寫入前先移除所有 HTML。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer 把輸入轉成純文字
type TextSanitizer interface {
	Sanitize(raw string) string
}

type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer 使用 StrictPolicy：不允許任何標籤，script / style 連同內容一起移除
func NewTextSanitizer() TextSanitizer {
	return &textSanitizer{policy: bluemonday.StrictPolicy()}
}

// 巢狀編碼超過這個層數時直接回傳轉義後的文字
const maxPasses = 4

// Sanitize 先解碼 HTML 實體再移除標籤，重複到結果不再變化，
// 編碼過的標籤也不會以 markup 的形式留下。對同一輸入結果固定。
func (s *textSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	out := strings.TrimSpace(raw)
	for i := 0; i < maxPasses; i++ {
		next := s.pass(out)
		if next == out {
			return out
		}
		out = next
	}
	return strings.TrimSpace(s.policy.Sanitize(html.UnescapeString(out)))
}

func (s *textSanitizer) pass(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(html.UnescapeString(in))))
}
