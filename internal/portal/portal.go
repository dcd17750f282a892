// Package portal 把畫面上的一個操作轉成一到多個後端呼叫並正規化結果。
// 所有遠端呼叫只嘗試一次，失敗立即以 apperr 回報。
package portal

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"ipv4-bazaar/internal/apperr"
	"ipv4-bazaar/internal/backend"
	"ipv4-bazaar/internal/model"
	"ipv4-bazaar/internal/security"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultLatestLimit = 10
	maxListLimit       = 500
)

// StatsUnavailableNotice 統計失敗時給管理員的提示
const StatsUnavailableNotice = "Dashboard statistics are temporarily unavailable"

// Recorder 接收業務事件，metrics 套件實作
type Recorder interface {
	RequestSubmitted(urgency model.Urgency)
	RequestStatusChanged(to model.RequestStatus)
}

type nopRecorder struct{}

func (nopRecorder) RequestSubmitted(model.Urgency)            {}
func (nopRecorder) RequestStatusChanged(model.RequestStatus) {}

type Service struct {
	backend   backend.Service
	sanitizer security.TextSanitizer
	recorder  Recorder
	logger    *slog.Logger
}

func New(b backend.Service, sanitizer security.TextSanitizer, recorder Recorder, logger *slog.Logger) *Service {
	if sanitizer == nil {
		sanitizer = security.NewTextSanitizer()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: b, sanitizer: sanitizer, recorder: recorder, logger: logger}
}

// translate 將邊界錯誤轉成 apperr
func translate(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, backend.ErrNotFound):
		return apperr.Wrap(apperr.NotFound, notFound, err)
	case errors.Is(err, backend.ErrEmailTaken):
		return apperr.Wrap(apperr.InvalidInput, "email is already in use", err)
	}
	return apperr.Wrap(apperr.RemoteUnavailable, "service temporarily unavailable", err)
}

/* ---------- 申請 ---------- */

// FetchUserRequests 某位使用者的申請，新到舊
func (s *Service) FetchUserRequests(ctx context.Context, userID string) ([]model.IPRequest, error) {
	if userID == "" {
		return nil, apperr.New(apperr.InvalidInput, "user id is required")
	}
	list, err := s.backend.ListRequests(ctx, model.RequestFilter{UserID: userID})
	if err != nil {
		return nil, translate(err, "")
	}
	return nonNil(list), nil
}

// FetchAllRequests 管理端列表，可依關鍵字、緊急程度與狀態篩選
func (s *Service) FetchAllRequests(ctx context.Context, f model.RequestFilter) ([]model.IPRequest, error) {
	if f.Urgency != "" && !f.Urgency.Valid() {
		return nil, apperr.New(apperr.InvalidInput, "unknown urgency")
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.New(apperr.InvalidInput, "unknown status")
	}
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit <= 0 || f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	list, err := s.backend.ListRequests(ctx, f)
	if err != nil {
		return nil, translate(err, "")
	}
	return nonNil(list), nil
}

// LatestRequests 後台首頁的最新申請
func (s *Service) LatestRequests(ctx context.Context, limit int) ([]model.IPRequest, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	list, err := s.backend.LatestRequests(ctx, limit)
	if err != nil {
		return nil, translate(err, "")
	}
	return nonNil(list), nil
}

// SubmitRequest 新增一筆 pending 的申請，回傳含擁有者資料的紀錄
func (s *Service) SubmitRequest(ctx context.Context, ownerID string, in model.NewRequest) (*model.IPRequest, error) {
	if ownerID == "" {
		return nil, apperr.New(apperr.InvalidInput, "user id is required")
	}
	if !in.Urgency.Valid() {
		return nil, apperr.New(apperr.InvalidInput, "urgency must be Low, Medium or High")
	}
	req := model.IPRequest{
		UserID:      ownerID,
		Name:        s.sanitizer.Sanitize(in.Name),
		Description: s.sanitizer.Sanitize(in.Description),
		City:        s.sanitizer.Sanitize(in.City),
		Urgency:     in.Urgency,
		Status:      model.StatusPending,
	}
	if req.Name == "" || req.Description == "" || req.City == "" {
		return nil, apperr.New(apperr.InvalidInput, "name, request and city are required")
	}

	created, err := s.backend.InsertRequest(ctx, req)
	if err != nil {
		return nil, translate(err, "user not found")
	}
	s.recorder.RequestSubmitted(created.Urgency)
	return created, nil
}

// UpdateRequestStatus 依狀態機檢查後更新，notes 為 nil 時保留原本備註
func (s *Service) UpdateRequestStatus(ctx context.Context, requestID string, next model.RequestStatus, notes *string) (*model.IPRequest, error) {
	current, err := s.backend.GetRequest(ctx, requestID)
	if err != nil {
		return nil, translate(err, "request not found")
	}
	if _, err := current.Status.Transition(next); err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err.Error(), err)
	}
	if notes != nil {
		clean := s.sanitizer.Sanitize(*notes)
		notes = &clean
	}

	updated, err := s.backend.UpdateRequestStatus(ctx, requestID, current.Status, next, notes)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, apperr.Wrap(apperr.InvalidInput, "request status changed concurrently, reload and retry", err)
		}
		return nil, translate(err, "request not found")
	}
	s.recorder.RequestStatusChanged(updated.Status)
	return updated, nil
}

/* ---------- 統計 ---------- */

// ComputeDashboardStats 同時查詢兩個數量，任一失敗就回傳零值與錯誤
func (s *Service) ComputeDashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var users, requests int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.backend.CountUsers(gctx)
		users = n
		return err
	})
	g.Go(func() error {
		n, err := s.backend.CountRequests(gctx)
		requests = n
		return err
	})
	if err := g.Wait(); err != nil {
		return model.DashboardStats{}, apperr.Wrap(apperr.RemoteUnavailable, StatsUnavailableNotice, err)
	}
	return model.DashboardStats{TotalUsers: users, TotalRequests: requests}, nil
}

// DashboardStatsOrZero 呼叫端的後備：失敗時回傳零值與提示文字，不回傳錯誤
func (s *Service) DashboardStatsOrZero(ctx context.Context) (model.DashboardStats, string) {
	stats, err := s.ComputeDashboardStats(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "compute dashboard stats", "error", err)
		return model.DashboardStats{}, StatsUnavailableNotice
	}
	return stats, ""
}

/* ---------- 使用者 ---------- */

func (s *Service) GetUserProfile(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.backend.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, apperr.Wrap(apperr.ProfileNotFound, "User profile not found", err)
		}
		return nil, translate(err, "")
	}
	return u, nil
}

// UpdateUserProfile 部分更新，回傳更新後的資料；呼叫端負責再交給 auth.Machine.UpdateUser
func (s *Service) UpdateUserProfile(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	patch, err := s.cleanPatch(patch)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.GetUserProfile(ctx, userID)
	}
	u, err := s.backend.UpdateUser(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, apperr.Wrap(apperr.ProfileNotFound, "User profile not found", err)
		}
		return nil, translate(err, "")
	}
	return u, nil
}

// ListUsers 管理端註冊列表，search 比對 name / email / city
func (s *Service) ListUsers(ctx context.Context, search string) ([]model.User, error) {
	list, err := s.backend.ListUsers(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, translate(err, "")
	}
	if list == nil {
		list = []model.User{}
	}
	return list, nil
}

// AdminUpdateUser 管理員修改使用者資料
func (s *Service) AdminUpdateUser(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	patch, err := s.cleanPatch(patch)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, apperr.New(apperr.InvalidInput, "nothing to update")
	}
	u, err := s.backend.UpdateUser(ctx, userID, patch)
	if err != nil {
		return nil, translate(err, "user not found")
	}
	return u, nil
}

// cleanPatch 清理文字欄位；清理後為空字串視為錯誤
func (s *Service) cleanPatch(p model.UserPatch) (model.UserPatch, error) {
	for _, f := range []struct {
		name string
		v    **string
	}{{"name", &p.Name}, {"email", &p.Email}, {"city", &p.City}} {
		if *f.v == nil {
			continue
		}
		clean := s.sanitizer.Sanitize(**f.v)
		if clean == "" {
			return p, apperr.New(apperr.InvalidInput, f.name+" must not be empty")
		}
		*f.v = &clean
	}
	return p, nil
}

func nonNil(list []model.IPRequest) []model.IPRequest {
	if list == nil {
		return []model.IPRequest{}
	}
	return list
}
