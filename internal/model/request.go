// File: internal/model/request.go
package model

import (
	"fmt"
	"time"
)

// Urgency 申請的緊急程度
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// Valid 檢查是否為已知的緊急程度
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// RequestStatus 申請的審核狀態
type RequestStatus string

const (
	StatusPending     RequestStatus = "pending"
	StatusUnderReview RequestStatus = "under_review"
	StatusApproved    RequestStatus = "approved"
	StatusRejected    RequestStatus = "rejected"
)

var statusTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:     {StatusUnderReview, StatusRejected},
	StatusUnderReview: {StatusApproved, StatusRejected},
}

// Valid 檢查是否為已知狀態
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal approved 與 rejected 之後不可再變更
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition 回傳 s -> next 是否為合法轉移
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition 驗證並回傳新狀態
func (s RequestStatus) Transition(next RequestStatus) (RequestStatus, error) {
	if !next.Valid() {
		return s, fmt.Errorf("unknown status %q", next)
	}
	if !s.CanTransition(next) {
		return s, fmt.Errorf("cannot move request from %s to %s", s, next)
	}
	return next, nil
}

// IPRequest 使用者送出的 IPv4 位址申請
type IPRequest struct {
	ID          string        `db:"id" json:"id"`
	UserID      string        `db:"user_id" json:"user_id"`
	Name        string        `db:"name" json:"name"`
	Description string        `db:"ip_request" json:"ip_request"`
	City        string        `db:"city" json:"city"`
	Urgency     Urgency       `db:"urgency" json:"urgency"`
	Status      RequestStatus `db:"status" json:"status"`
	AdminNotes  *string       `db:"admin_notes" json:"admin_notes,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
	User        *User         `json:"user,omitempty"`
}

// NewRequest 建立新申請時的欄位
type NewRequest struct {
	Name        string
	Description string
	City        string
	Urgency     Urgency
}

// RequestFilter 管理端列表的篩選條件；零值表示不篩選
type RequestFilter struct {
	Search  string
	Urgency Urgency
	Status  RequestStatus
	UserID  string
	Limit   int
}

// DashboardStats 管理後台統計
type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalRequests int64 `json:"totalRequests"`
}
