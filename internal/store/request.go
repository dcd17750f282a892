package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ipv4-bazaar/internal/database"
	"ipv4-bazaar/internal/model"
)

const requestColumns = `r.id, r.user_id, r.name, r.ip_request, r.city, r.urgency, r.status, r.admin_notes, r.created_at, r.updated_at,
	u.id, u.name, u.email, u.city, u.verification_status, u.created_at, u.updated_at`

// scanRequest 讀取申請與 LEFT JOIN 的擁有者欄位；擁有者不存在時 User 為 nil
func scanRequest(row scanner) (*model.IPRequest, error) {
	r := &model.IPRequest{}
	var urgency, status string
	var (
		uID, uName, uEmail, uCity, uStatus *string
		uCreated, uUpdated                 *time.Time
	)
	if err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Name,
		&r.Description,
		&r.City,
		&urgency,
		&status,
		&r.AdminNotes,
		&r.CreatedAt,
		&r.UpdatedAt,
		&uID,
		&uName,
		&uEmail,
		&uCity,
		&uStatus,
		&uCreated,
		&uUpdated,
	); err != nil {
		return nil, err
	}
	r.Urgency = model.Urgency(urgency)
	r.Status = model.RequestStatus(status)
	if uID != nil {
		owner := &model.User{ID: *uID}
		if uName != nil {
			owner.Name = *uName
		}
		if uEmail != nil {
			owner.Email = *uEmail
		}
		if uCity != nil {
			owner.City = *uCity
		}
		if uStatus != nil {
			owner.VerificationStatus = model.VerificationStatus(*uStatus)
		}
		if uCreated != nil {
			owner.CreatedAt = *uCreated
		}
		if uUpdated != nil {
			owner.UpdatedAt = *uUpdated
		}
		r.User = owner
	}
	return r, nil
}

// CreateRequest 寫入一筆申請並一併回傳擁有者資料
func CreateRequest(ctx context.Context, db database.Querier, req *model.IPRequest) (*model.IPRequest, error) {
	created, err := scanRequest(db.QueryRow(ctx,
		`WITH r AS (
		     INSERT INTO ip_requests (id, user_id, name, ip_request, city, urgency, status)
		     VALUES ($1, $2, $3, $4, $5, $6, $7)
		     RETURNING *
		 )
		 SELECT `+requestColumns+`
		 FROM r LEFT JOIN users u ON u.id = r.user_id`,
		req.ID,
		req.UserID,
		req.Name,
		req.Description,
		req.City,
		string(req.Urgency),
		string(req.Status),
	))
	if err != nil {
		return nil, wrap("CreateRequest", err)
	}
	return created, nil
}

func GetRequest(ctx context.Context, db database.Querier, requestID string) (*model.IPRequest, error) {
	r, err := scanRequest(db.QueryRow(ctx,
		`SELECT `+requestColumns+`
		 FROM ip_requests r LEFT JOIN users u ON u.id = r.user_id
		 WHERE r.id = $1`,
		requestID,
	))
	if err != nil {
		return nil, wrap("GetRequest", err)
	}
	return r, nil
}

// buildRequestQuery 依篩選條件組出查詢，結果一律新到舊
func buildRequestQuery(f model.RequestFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.UserID != "" {
		add("r.user_id = $%d", f.UserID)
	}
	if f.Urgency != "" {
		add("r.urgency = $%d", string(f.Urgency))
	}
	if f.Status != "" {
		add("r.status = $%d", string(f.Status))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(r.name ILIKE $%[1]d OR r.ip_request ILIKE $%[1]d OR u.name ILIKE $%[1]d OR u.email ILIKE $%[1]d)", n))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + requestColumns + ` FROM ip_requests r LEFT JOIN users u ON u.id = r.user_id`)
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY r.created_at DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args
}

func ListRequests(ctx context.Context, db database.Querier, f model.RequestFilter) ([]model.IPRequest, error) {
	query, args := buildRequestQuery(f)
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("ListRequests", err)
	}
	defer rows.Close()

	out := []model.IPRequest{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, wrap("ListRequests", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListRequests", err)
	}
	return out, nil
}

// UpdateRequestStatus 只在目前狀態仍為 from 時更新，避免覆蓋同時進行的變更
// notes 為 nil 時保留原本的 admin_notes
func UpdateRequestStatus(ctx context.Context, db database.Querier, requestID string, from, to model.RequestStatus, notes *string) error {
	tag, err := db.Exec(ctx,
		`UPDATE ip_requests
		 SET status = $3, admin_notes = COALESCE($4, admin_notes), updated_at = now()
		 WHERE id = $1 AND status = $2`,
		requestID,
		string(from),
		string(to),
		notes,
	)
	if err != nil {
		return wrap("UpdateRequestStatus", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateRequestStatus: %w", ErrNotFound)
	}
	return nil
}

func CountRequests(ctx context.Context, db database.Querier) (int64, error) {
	var n int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM ip_requests`).Scan(&n); err != nil {
		return 0, wrap("CountRequests", err)
	}
	return n, nil
}
