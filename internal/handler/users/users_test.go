package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ipv4-bazaar/internal/auth"
	"ipv4-bazaar/internal/backend"
	"ipv4-bazaar/internal/middleware"
	"ipv4-bazaar/internal/model"
	"ipv4-bazaar/internal/portal"
	"ipv4-bazaar/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type structValidator struct{ v *validator.Validate }

func (s structValidator) Validate(i any) error { return s.v.Struct(i) }

var ana = model.User{ID: "u-ana", Name: "Ana", Email: "ana@x.com", City: "Delhi", VerificationStatus: model.Verified}

// loggedIn 建立已登入 ana 的 Machine
func loggedIn(t *testing.T, b *backend.FakeService) (*auth.Machine, *session.MemoryStore) {
	t.Helper()
	b.SignInFn = func(context.Context, string, string) (*backend.AuthSession, error) {
		return &backend.AuthSession{AccountID: ana.ID, EmailConfirmed: true}, nil
	}
	b.GetUserByIDFn = func(context.Context, string) (*model.User, error) {
		u := ana
		return &u, nil
	}
	store := session.NewMemoryStore()
	m := auth.New(b, store, auth.DefaultAdminCredentials(), nil)
	_, err := m.Login(context.Background(), ana.Email, "secret1")
	require.NoError(t, err)
	return m, store
}

func call(t *testing.T, h echo.HandlerFunc, method, body string, m *auth.Machine) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = structValidator{v: validator.New()}
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if m != nil {
		c.Set(middleware.ContextMachineKey, m)
	}
	require.NoError(t, h(c))
	return rec
}

func TestGetMyUserHandler(t *testing.T) {
	m, _ := loggedIn(t, &backend.FakeService{})
	rec := call(t, GetMyUserHandler(), http.MethodGet, "", m)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"email":"ana@x.com"`)

	anon := auth.New(&backend.FakeService{}, session.NewMemoryStore(), auth.DefaultAdminCredentials(), nil)
	rec = call(t, GetMyUserHandler(), http.MethodGet, "", anon)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, GetMyUserHandler(), http.MethodGet, "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUpdateMyUserHandler(t *testing.T) {
	b := &backend.FakeService{}
	m, store := loggedIn(t, b)
	var gotPatch model.UserPatch
	b.UpdateUserFn = func(_ context.Context, id string, p model.UserPatch) (*model.User, error) {
		require.Equal(t, ana.ID, id)
		gotPatch = p
		u := ana
		u.City = *p.City
		return &u, nil
	}
	svc := portal.New(b, nil, nil, nil)

	rec := call(t, UpdateMyUserHandler(svc, nil), http.MethodPut, `{"city":"  <b>Mumbai</b> "}`, m)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Mumbai", *gotPatch.City)
	require.Nil(t, gotPatch.Name)
	require.Equal(t, "Mumbai", m.Identity().User.City)

	// 重新還原後仍是更新後的資料
	again := auth.New(b, store, auth.DefaultAdminCredentials(), nil)
	again.Restore(context.Background())
	require.Equal(t, "Mumbai", again.Identity().User.City)

	rec = call(t, UpdateMyUserHandler(svc, nil), http.MethodPut, `{"email":"nope"}`, m)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	b.UpdateUserFn = func(context.Context, string, model.UserPatch) (*model.User, error) {
		return nil, backend.ErrEmailTaken
	}
	rec = call(t, UpdateMyUserHandler(svc, nil), http.MethodPut, `{"email":"bo@x.com"}`, m)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "email is already in use")
	require.Equal(t, "ana@x.com", m.Identity().User.Email)

	b.UpdateUserFn = func(context.Context, string, model.UserPatch) (*model.User, error) {
		return nil, backend.ErrNotFound
	}
	rec = call(t, UpdateMyUserHandler(svc, nil), http.MethodPut, `{"name":"Ana S"}`, m)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMyRequestsHandler(t *testing.T) {
	b := &backend.FakeService{}
	m, _ := loggedIn(t, b)
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	b.ListRequestsFn = func(_ context.Context, f model.RequestFilter) ([]model.IPRequest, error) {
		require.Equal(t, ana.ID, f.UserID)
		owner := ana
		return []model.IPRequest{{ID: "r2", UserID: ana.ID, Name: "Second", Urgency: model.UrgencyHigh,
			Status: model.StatusPending, CreatedAt: created, User: &owner}}, nil
	}
	svc := portal.New(b, nil, nil, nil)

	rec := call(t, ListMyRequestsHandler(svc), http.MethodGet, "", m)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":"r2"`)
	require.Contains(t, rec.Body.String(), `"user":{"id":"u-ana"`)

	b.ListRequestsFn = func(context.Context, model.RequestFilter) ([]model.IPRequest, error) { return nil, nil }
	rec = call(t, ListMyRequestsHandler(svc), http.MethodGet, "", m)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	b.ListRequestsFn = func(context.Context, model.RequestFilter) ([]model.IPRequest, error) {
		return nil, errors.New("db down")
	}
	rec = call(t, ListMyRequestsHandler(svc), http.MethodGet, "", m)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateMyRequestHandler(t *testing.T) {
	b := &backend.FakeService{}
	m, _ := loggedIn(t, b)
	var inserted model.IPRequest
	b.InsertRequestFn = func(_ context.Context, r model.IPRequest) (*model.IPRequest, error) {
		inserted = r
		r.ID = "r-new"
		owner := ana
		r.User = &owner
		return &r, nil
	}
	svc := portal.New(b, nil, nil, nil)

	body := `{"name":"Branch","ip_request":"Need a /24","city":"Delhi","urgency":"High"}`
	rec := call(t, CreateMyRequestHandler(svc), http.MethodPost, body, m)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, ana.ID, inserted.UserID)
	require.Equal(t, model.StatusPending, inserted.Status)
	require.Contains(t, rec.Body.String(), `"status":"pending"`)
	require.Contains(t, rec.Body.String(), `"ip_request":"Need a /24"`)

	rec = call(t, CreateMyRequestHandler(svc), http.MethodPost,
		`{"name":"Branch","ip_request":"x","city":"Delhi","urgency":"urgent"}`, m)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	anon := auth.New(b, session.NewMemoryStore(), auth.DefaultAdminCredentials(), nil)
	rec = call(t, CreateMyRequestHandler(svc), http.MethodPost, body, anon)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
