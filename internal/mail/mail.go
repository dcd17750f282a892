// Package mail 負責寄送帳號驗證信
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// Message 一封待寄出的信
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer 寄信的抽象，實際的 SMTP / API 供應商實作這個介面即可
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// VerificationMessage 組出含確認連結的驗證信
func VerificationMessage(to, baseURL, token string) Message {
	link := baseURL + "/api/auth/verify-email?token=" + url.QueryEscape(token)
	return Message{
		To:      to,
		Subject: "Confirm your IPv4 Bazaar account",
		Body: fmt.Sprintf(
			"Welcome to IPv4 Bazaar!\n\nPlease confirm your email address by opening the link below:\n\n%s\n\nIf you did not sign up, you can ignore this message.\n",
			link,
		),
	}
}

// LogMailer 不真的寄信，只把內容寫進 log，開發環境使用
type LogMailer struct {
	Logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{Logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("mail: empty recipient")
	}
	m.Logger.InfoContext(ctx, "mail sent",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

// FakeMailer 測試用，記錄所有寄出的信
type FakeMailer struct {
	SendFn func(ctx context.Context, msg Message) error
}

func (f *FakeMailer) Send(ctx context.Context, msg Message) error {
	if f.SendFn != nil {
		return f.SendFn(ctx, msg)
	}
	panic("unexpected Send")
}
