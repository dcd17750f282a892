// Package auth 提供登入、註冊、登出與 Email 驗證的 HTTP handler。
package auth

import "ipv4-bazaar/internal/model"

// Recorder 記錄登入與註冊結果
type Recorder interface {
	RecordLogin(kind model.IdentityKind, ok bool)
	RecordSignup(ok bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordLogin(model.IdentityKind, bool) {}
func (nopRecorder) RecordSignup(bool)                    {}

func orNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
