package auth

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"ipv4-bazaar/internal/apperr"
	"ipv4-bazaar/internal/backend"
	"ipv4-bazaar/internal/model"
	"ipv4-bazaar/internal/session"

	"github.com/stretchr/testify/require"
)

/* ---------- 假實作 ---------- */

// world 是記憶體中的遠端服務：身分帳號以 email 登入，users 列以帳號 id 為鍵
type world struct {
	passwords map[string]string     // email → 密碼
	accounts  map[string]string     // email → 帳號 id
	users     map[string]model.User // id → users 列
	deleted   []string
	insertErr error
}

func newWorld() *world {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &world{
		passwords: map[string]string{
			"ana@x.com": "secret1",
			"bo@x.com":  "secret2",
		},
		accounts: map[string]string{
			"ana@x.com": "u-ana",
			"bo@x.com":  "u-bo",
		},
		users: map[string]model.User{
			"u-ana": {ID: "u-ana", Name: "Ana", Email: "ana@x.com", City: "Delhi",
				VerificationStatus: model.Verified, CreatedAt: created, UpdatedAt: created},
			"u-bo": {ID: "u-bo", Name: "Bo", Email: "bo@x.com", City: "Pune",
				VerificationStatus: model.Unverified, CreatedAt: created, UpdatedAt: created},
		},
	}
}

func (w *world) service() *backend.FakeService {
	return &backend.FakeService{
		SignInFn: func(_ context.Context, email, password string) (*backend.AuthSession, error) {
			if pw, ok := w.passwords[email]; !ok || pw != password {
				return nil, backend.ErrInvalidLogin
			}
			id := w.accounts[email]
			return &backend.AuthSession{AccountID: id, AccessToken: "tok", EmailConfirmed: w.users[id].IsVerified()}, nil
		},
		GetUserByIDFn: func(_ context.Context, id string) (*model.User, error) {
			u, ok := w.users[id]
			if !ok {
				return nil, backend.ErrNotFound
			}
			return &u, nil
		},
		// 與 Postgres 實作相同：改 email 時身分帳號一併更新
		UpdateUserFn: func(_ context.Context, id string, p model.UserPatch) (*model.User, error) {
			u, ok := w.users[id]
			if !ok {
				return nil, backend.ErrNotFound
			}
			if p.Name != nil {
				u.Name = *p.Name
			}
			if p.City != nil {
				u.City = *p.City
			}
			if p.Email != nil && *p.Email != u.Email {
				w.passwords[*p.Email] = w.passwords[u.Email]
				w.accounts[*p.Email] = id
				delete(w.passwords, u.Email)
				delete(w.accounts, u.Email)
				u.Email = *p.Email
			}
			w.users[id] = u
			return &u, nil
		},
		SignUpFn: func(_ context.Context, email, password string) (*model.Account, error) {
			if _, ok := w.passwords[email]; ok {
				return nil, backend.ErrEmailTaken
			}
			id := "acct-" + email
			w.passwords[email] = password
			w.accounts[email] = id
			return &model.Account{ID: id, Email: email}, nil
		},
		InsertUserFn: func(_ context.Context, u model.User) (*model.User, error) {
			if w.insertErr != nil {
				return nil, w.insertErr
			}
			w.users[u.ID] = u
			return &u, nil
		},
		DeleteAccountFn: func(_ context.Context, id string) error {
			w.deleted = append(w.deleted, id)
			return nil
		},
	}
}

// flakyStore 在 MemoryStore 外包一層可注入的錯誤
type flakyStore struct {
	*session.MemoryStore
	getErr, setErr, delErr error
	// delOnly 非空時只有刪除這個 key 會失敗
	delOnly string
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, v []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, key, v)
}

func (s *flakyStore) Delete(ctx context.Context, keys ...string) error {
	if s.delErr != nil {
		if s.delOnly == "" {
			return s.delErr
		}
		for _, k := range keys {
			if k == s.delOnly {
				return s.delErr
			}
		}
	}
	return s.MemoryStore.Delete(ctx, keys...)
}

func newMachine(t *testing.T, w *world, s session.Store) *Machine {
	t.Helper()
	m := New(w.service(), s, DefaultAdminCredentials(), nil)
	m.Restore(context.Background())
	return m
}

func has(t *testing.T, s session.Store, key string) bool {
	t.Helper()
	_, ok, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	return ok
}

func put(t *testing.T, s session.Store, key string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), key, b))
}

/* ---------- Restore ---------- */

func TestRestore(t *testing.T) {
	ana := newWorld().users["u-ana"]
	admin := model.Admin{ID: AdminID, Username: "admin", Role: AdminRole}

	tests := []struct {
		name      string
		seed      func(s session.Store)
		kind      model.IdentityKind
		keepUser  bool
		keepAdmin bool
	}{
		{name: "empty", seed: func(session.Store) {}, kind: model.KindAnonymous},
		{
			name:     "user only",
			seed:     func(s session.Store) { put(t, s, session.KeyUser, ana) },
			kind:     model.KindEndUser,
			keepUser: true,
		},
		{
			name:      "admin only",
			seed:      func(s session.Store) { put(t, s, session.KeyAdmin, admin) },
			kind:      model.KindAdmin,
			keepAdmin: true,
		},
		{
			name: "both fails closed",
			seed: func(s session.Store) {
				put(t, s, session.KeyUser, ana)
				put(t, s, session.KeyAdmin, admin)
			},
			kind: model.KindAnonymous,
		},
		{
			name: "garbage user payload",
			seed: func(s session.Store) {
				require.NoError(t, s.Set(context.Background(), session.KeyUser, []byte("{not json")))
			},
			kind: model.KindAnonymous,
		},
		{
			name: "null payload with valid admin",
			seed: func(s session.Store) {
				require.NoError(t, s.Set(context.Background(), session.KeyUser, []byte("null")))
				put(t, s, session.KeyAdmin, admin)
			},
			kind:      model.KindAdmin,
			keepAdmin: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := session.NewMemoryStore()
			tc.seed(s)
			m := New(newWorld().service(), s, DefaultAdminCredentials(), nil)
			require.False(t, m.Initialized())

			m.Restore(context.Background())
			require.True(t, m.Initialized())
			require.Equal(t, tc.kind, m.Identity().Kind)
			require.Equal(t, tc.keepUser, has(t, s, session.KeyUser))
			require.Equal(t, tc.keepAdmin, has(t, s, session.KeyAdmin))
		})
	}
}

func TestRestoreStoreUnavailable(t *testing.T) {
	s := &flakyStore{MemoryStore: session.NewMemoryStore(), getErr: errors.New("redis down")}
	m := newMachine(t, newWorld(), s)
	require.True(t, m.Identity().IsAnonymous())
}

/* ---------- Login ---------- */

func TestLogin(t *testing.T) {
	w := newWorld()
	s := session.NewMemoryStore()
	m := newMachine(t, w, s)

	_, err := m.AdminLogin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, has(t, s, session.KeyAdmin))

	u, err := m.Login(context.Background(), " ana@x.com ", "secret1")
	require.NoError(t, err)
	require.Equal(t, "u-ana", u.ID)

	id := m.Identity()
	require.True(t, id.IsEndUser())
	require.Nil(t, id.Admin)
	require.True(t, has(t, s, session.KeyUser))
	require.False(t, has(t, s, session.KeyAdmin))
	require.False(t, m.Loading())
}

func TestLoginFailuresLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		prepare  func(w *world)
		kind     apperr.Kind
	}{
		{name: "unverified", email: "bo@x.com", password: "secret2", kind: apperr.UnverifiedAccount},
		{name: "unknown email", email: "zed@x.com", password: "secret1", kind: apperr.InvalidCredentials},
		{name: "wrong password", email: "ana@x.com", password: "nope", kind: apperr.InvalidCredentials},
		{
			name: "profile missing", email: "ana@x.com", password: "secret1",
			prepare: func(w *world) { delete(w.users, "u-ana") },
			kind:    apperr.ProfileNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, startAdmin := range []bool{false, true} {
				w := newWorld()
				if tc.prepare != nil {
					tc.prepare(w)
				}
				s := session.NewMemoryStore()
				m := newMachine(t, w, s)
				if startAdmin {
					_, err := m.AdminLogin(context.Background(), "admin", "admin123")
					require.NoError(t, err)
				}
				before := m.Identity()
				snapBefore, _ := s.Snapshot()

				_, err := m.Login(context.Background(), tc.email, tc.password)
				require.ErrorIs(t, err, tc.kind)
				require.Equal(t, tc.kind, apperr.KindOf(err))

				require.Equal(t, before, m.Identity())
				snapAfter, _ := s.Snapshot()
				require.JSONEq(t, string(snapBefore), string(snapAfter))
			}
		})
	}
}

func TestLoginAfterEmailChange(t *testing.T) {
	ctx := context.Background()
	w := newWorld()
	m := newMachine(t, w, session.NewMemoryStore())

	email := "ana@new.com"
	_, err := w.service().UpdateUser(ctx, "u-ana", model.UserPatch{Email: &email})
	require.NoError(t, err)

	_, err = m.Login(ctx, "ana@x.com", "secret1")
	require.ErrorIs(t, err, apperr.InvalidCredentials)
	require.True(t, m.Identity().IsAnonymous())

	u, err := m.Login(ctx, "ana@new.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "u-ana", u.ID)
	require.Equal(t, "ana@new.com", m.Identity().User.Email)
}

// 身分帳號與 users 列的 email 不同步時仍以帳號 id 找到 profile
func TestLoginResolvesProfileByAccountID(t *testing.T) {
	w := newWorld()
	u := w.users["u-ana"]
	u.Email = "stale@x.com"
	w.users["u-ana"] = u
	m := newMachine(t, w, session.NewMemoryStore())

	got, err := m.Login(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "u-ana", got.ID)
}

func TestLoginRemoteFailure(t *testing.T) {
	w := newWorld()
	svc := w.service()
	svc.SignInFn = func(context.Context, string, string) (*backend.AuthSession, error) {
		return nil, errors.New("dial tcp: refused")
	}
	m := New(svc, session.NewMemoryStore(), DefaultAdminCredentials(), nil)
	m.Restore(context.Background())

	_, err := m.Login(context.Background(), "ana@x.com", "secret1")
	require.ErrorIs(t, err, apperr.RemoteUnavailable)
	require.True(t, m.Identity().IsAnonymous())
}

func TestLoginPersistFailure(t *testing.T) {
	t.Run("set fails", func(t *testing.T) {
		s := &flakyStore{MemoryStore: session.NewMemoryStore(), setErr: errors.New("full")}
		m := newMachine(t, newWorld(), s)
		_, err := m.Login(context.Background(), "ana@x.com", "secret1")
		require.ErrorIs(t, err, apperr.RemoteUnavailable)
		require.True(t, m.Identity().IsAnonymous())
	})

	t.Run("delete fails rolls back", func(t *testing.T) {
		s := &flakyStore{MemoryStore: session.NewMemoryStore()}
		m := newMachine(t, newWorld(), s)
		_, err := m.AdminLogin(context.Background(), "admin", "admin123")
		require.NoError(t, err)

		s.delErr, s.delOnly = errors.New("timeout"), session.KeyAdmin
		_, err = m.Login(context.Background(), "ana@x.com", "secret1")
		require.ErrorIs(t, err, apperr.RemoteUnavailable)
		require.True(t, m.Identity().IsAdmin())

		s.delErr = nil
		require.True(t, has(t, s, session.KeyAdmin))
		require.False(t, has(t, s, session.KeyUser))
	})
}

func TestLoadingDuringRemoteCall(t *testing.T) {
	w := newWorld()
	svc := w.service()
	var m *Machine
	var during bool
	inner := svc.SignInFn
	svc.SignInFn = func(ctx context.Context, email, password string) (*backend.AuthSession, error) {
		during = m.Loading()
		return inner(ctx, email, password)
	}
	m = New(svc, session.NewMemoryStore(), DefaultAdminCredentials(), nil)
	m.Restore(context.Background())

	require.False(t, m.Loading())
	_, err := m.Login(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)
	require.True(t, during)
	require.False(t, m.Loading())
}

/* ---------- AdminLogin ---------- */

func TestAdminLogin(t *testing.T) {
	s := session.NewMemoryStore()
	m := newMachine(t, newWorld(), s)

	_, err := m.AdminLogin(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, apperr.InvalidCredentials)
	require.True(t, m.Identity().IsAnonymous())
	require.False(t, has(t, s, session.KeyAdmin))

	_, err = m.Login(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)

	a, err := m.AdminLogin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.Equal(t, "admin", a.Username)
	require.Equal(t, AdminID, a.ID)
	require.Equal(t, AdminEmail, a.Email)
	require.True(t, a.IsActive)

	id := m.Identity()
	require.True(t, id.IsAdmin())
	require.Equal(t, "admin", id.Admin.Username)
	require.Nil(t, id.User)
	require.False(t, has(t, s, session.KeyUser))
	require.True(t, has(t, s, session.KeyAdmin))
}

func TestAdminLoginCustomCredentials(t *testing.T) {
	m := New(newWorld().service(), session.NewMemoryStore(), AdminCredentials{Username: "ops", Password: "hunter22"}, nil)
	m.Restore(context.Background())

	_, err := m.AdminLogin(context.Background(), "admin", "admin123")
	require.ErrorIs(t, err, apperr.InvalidCredentials)

	a, err := m.AdminLogin(context.Background(), "ops", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "ops", a.Username)
}

/* ---------- Signup ---------- */

func TestSignup(t *testing.T) {
	w := newWorld()
	s := session.NewMemoryStore()
	m := newMachine(t, w, s)

	u, err := m.Signup(context.Background(), "Ana", "ana2@x.com", "Delhi", "secret1")
	require.NoError(t, err)
	require.Equal(t, model.Unverified, u.VerificationStatus)
	require.Equal(t, "Ana", u.Name)
	require.Equal(t, "Delhi", u.City)
	require.Equal(t, "acct-ana2@x.com", u.ID)

	require.True(t, m.Identity().IsAnonymous())
	require.False(t, has(t, s, session.KeyUser))

	_, err = m.Login(context.Background(), "ana2@x.com", "secret1")
	require.ErrorIs(t, err, apperr.UnverifiedAccount)
}

func TestSignupKeepsCurrentIdentity(t *testing.T) {
	m := newMachine(t, newWorld(), session.NewMemoryStore())
	_, err := m.Login(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)

	_, err = m.Signup(context.Background(), "Cy", "cy@x.com", "Goa", "secret3")
	require.NoError(t, err)
	require.Equal(t, "u-ana", m.Identity().User.ID)
}

func TestSignupFailures(t *testing.T) {
	t.Run("email taken", func(t *testing.T) {
		m := newMachine(t, newWorld(), session.NewMemoryStore())
		_, err := m.Signup(context.Background(), "Ana", "ana@x.com", "Delhi", "secret1")
		require.ErrorIs(t, err, apperr.AccountCreationFailed)
		require.ErrorIs(t, err, backend.ErrEmailTaken)
		require.Equal(t, "user already registered", apperr.MessageOf(err))
	})

	t.Run("profile insert fails rolls back account", func(t *testing.T) {
		w := newWorld()
		w.insertErr = errors.New("insert failed")
		m := newMachine(t, w, session.NewMemoryStore())

		_, err := m.Signup(context.Background(), "Ana", "new@x.com", "Delhi", "secret1")
		require.ErrorIs(t, err, apperr.AccountCreationFailed)
		require.Equal(t, "account creation failed", apperr.MessageOf(err))
		require.ErrorContains(t, err, "insert failed")
		require.Equal(t, []string{"acct-new@x.com"}, w.deleted)
		require.True(t, m.Identity().IsAnonymous())
	})

	t.Run("rollback failure is only logged", func(t *testing.T) {
		w := newWorld()
		w.insertErr = errors.New("insert failed")
		svc := w.service()
		svc.DeleteAccountFn = func(context.Context, string) error { return errors.New("gone") }
		m := New(svc, session.NewMemoryStore(), DefaultAdminCredentials(), nil)

		_, err := m.Signup(context.Background(), "Ana", "new@x.com", "Delhi", "secret1")
		require.ErrorIs(t, err, apperr.AccountCreationFailed)
	})
}

/* ---------- UpdateUser ---------- */

func TestUpdateUser(t *testing.T) {
	s := session.NewMemoryStore()
	m := newMachine(t, newWorld(), s)

	err := m.UpdateUser(context.Background(), model.User{ID: "u-ana"})
	require.ErrorIs(t, err, ErrNotEndUser)

	_, err = m.AdminLogin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.ErrorIs(t, m.UpdateUser(context.Background(), model.User{ID: "u-ana"}), ErrNotEndUser)

	u, err := m.Login(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)

	require.ErrorIs(t, m.UpdateUser(context.Background(), model.User{ID: "someone-else"}), apperr.InvalidInput)

	patched := *u
	patched.City = "Mumbai"
	require.NoError(t, m.UpdateUser(context.Background(), patched))
	require.Equal(t, "Mumbai", m.Identity().User.City)

	raw, ok, err := s.Get(context.Background(), session.KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	var stored model.User
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Equal(t, "Mumbai", stored.City)
}

func TestIdentityIsACopy(t *testing.T) {
	m := newMachine(t, newWorld(), session.NewMemoryStore())
	_, err := m.Login(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)

	id := m.Identity()
	id.User.Name = "Mallory"
	require.Equal(t, "Ana", m.Identity().User.Name)
}

/* ---------- Logout ---------- */

func TestLogout(t *testing.T) {
	for _, start := range []string{"anonymous", "user", "admin", "stale"} {
		t.Run(start, func(t *testing.T) {
			s := session.NewMemoryStore()
			m := newMachine(t, newWorld(), s)
			switch start {
			case "user":
				_, err := m.Login(context.Background(), "ana@x.com", "secret1")
				require.NoError(t, err)
			case "admin":
				_, err := m.AdminLogin(context.Background(), "admin", "admin123")
				require.NoError(t, err)
			case "stale":
				put(t, s, session.KeyUser, model.User{ID: "x"})
				put(t, s, session.KeyAdmin, model.Admin{ID: "y"})
			}

			require.NoError(t, m.Logout(context.Background()))
			require.NoError(t, m.Logout(context.Background()))
			require.True(t, m.Identity().IsAnonymous())
			require.False(t, has(t, s, session.KeyUser))
			require.False(t, has(t, s, session.KeyAdmin))
		})
	}
}

func TestLogoutStoreFailure(t *testing.T) {
	s := &flakyStore{MemoryStore: session.NewMemoryStore()}
	m := newMachine(t, newWorld(), s)
	_, err := m.Login(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)

	s.delErr = errors.New("redis down")
	err = m.Logout(context.Background())
	require.ErrorIs(t, err, apperr.RemoteUnavailable)
	require.True(t, m.Identity().IsAnonymous())
}

/* ---------- 性質 ---------- */

func TestMutualExclusionOverRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ops := []func(m *Machine) error{
		func(m *Machine) error { _, err := m.Login(context.Background(), "ana@x.com", "secret1"); return err },
		func(m *Machine) error { _, err := m.Login(context.Background(), "bo@x.com", "secret2"); return err },
		func(m *Machine) error { _, err := m.Login(context.Background(), "ana@x.com", "bad"); return err },
		func(m *Machine) error { _, err := m.AdminLogin(context.Background(), "admin", "admin123"); return err },
		func(m *Machine) error { _, err := m.AdminLogin(context.Background(), "admin", "nope"); return err },
		func(m *Machine) error { return m.Logout(context.Background()) },
	}

	for run := 0; run < 20; run++ {
		s := session.NewMemoryStore()
		m := newMachine(t, newWorld(), s)
		for step := 0; step < 30; step++ {
			_ = ops[rng.Intn(len(ops))](m)

			id := m.Identity()
			require.False(t, id.User != nil && id.Admin != nil)
			userKey, adminKey := has(t, s, session.KeyUser), has(t, s, session.KeyAdmin)
			require.False(t, userKey && adminKey)
			require.Equal(t, id.IsEndUser(), userKey)
			require.Equal(t, id.IsAdmin(), adminKey)

			// 模擬重啟：還原後的身分與目前一致
			snap, err := s.Snapshot()
			require.NoError(t, err)
			reloaded, err := session.LoadSnapshot(snap)
			require.NoError(t, err)
			again := newMachine(t, newWorld(), reloaded)
			require.Equal(t, id.Kind, again.Identity().Kind)
		}
	}
}

func TestUpdateUserRoundTripsThroughRestart(t *testing.T) {
	s := session.NewMemoryStore()
	m := newMachine(t, newWorld(), s)
	u, err := m.Login(context.Background(), "ana@x.com", "secret1")
	require.NoError(t, err)

	patched := *u
	patched.Name = "Ana Sharma"
	patched.City = "Bengaluru"
	patched.UpdatedAt = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, m.UpdateUser(context.Background(), patched))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	reloaded, err := session.LoadSnapshot(snap)
	require.NoError(t, err)

	again := newMachine(t, newWorld(), reloaded)
	id := again.Identity()
	require.True(t, id.IsEndUser())

	want, _ := json.Marshal(patched)
	got, _ := json.Marshal(id.User)
	require.Equal(t, string(want), string(got))
}
