package backend

import (
	"context"

	"ipv4-bazaar/internal/model"
)

// FakeService 以函式欄位模擬 Service，未設定的方法會 panic
type FakeService struct {
	SignUpFn              func(ctx context.Context, email, password string) (*model.Account, error)
	SignInFn              func(ctx context.Context, email, password string) (*AuthSession, error)
	ResendVerificationFn  func(ctx context.Context, email string) error
	ConfirmEmailFn        func(ctx context.Context, token string) (*model.Account, error)
	DeleteAccountFn       func(ctx context.Context, accountID string) error
	InsertUserFn          func(ctx context.Context, u model.User) (*model.User, error)
	GetUserByIDFn         func(ctx context.Context, id string) (*model.User, error)
	GetUserByEmailFn      func(ctx context.Context, email string) (*model.User, error)
	ListUsersFn           func(ctx context.Context, search string) ([]model.User, error)
	UpdateUserFn          func(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	SetUserVerifiedFn     func(ctx context.Context, id string) (*model.User, error)
	CountUsersFn          func(ctx context.Context) (int64, error)
	InsertRequestFn       func(ctx context.Context, r model.IPRequest) (*model.IPRequest, error)
	GetRequestFn          func(ctx context.Context, id string) (*model.IPRequest, error)
	ListRequestsFn        func(ctx context.Context, f model.RequestFilter) ([]model.IPRequest, error)
	LatestRequestsFn      func(ctx context.Context, limit int) ([]model.IPRequest, error)
	UpdateRequestStatusFn func(ctx context.Context, id string, from, to model.RequestStatus, notes *string) (*model.IPRequest, error)
	CountRequestsFn       func(ctx context.Context) (int64, error)
}

var _ Service = (*FakeService)(nil)

func (f *FakeService) SignUp(ctx context.Context, email, password string) (*model.Account, error) {
	if f.SignUpFn != nil {
		return f.SignUpFn(ctx, email, password)
	}
	panic("unexpected SignUp")
}

func (f *FakeService) SignIn(ctx context.Context, email, password string) (*AuthSession, error) {
	if f.SignInFn != nil {
		return f.SignInFn(ctx, email, password)
	}
	panic("unexpected SignIn")
}

func (f *FakeService) ResendVerification(ctx context.Context, email string) error {
	if f.ResendVerificationFn != nil {
		return f.ResendVerificationFn(ctx, email)
	}
	panic("unexpected ResendVerification")
}

func (f *FakeService) ConfirmEmail(ctx context.Context, token string) (*model.Account, error) {
	if f.ConfirmEmailFn != nil {
		return f.ConfirmEmailFn(ctx, token)
	}
	panic("unexpected ConfirmEmail")
}

func (f *FakeService) DeleteAccount(ctx context.Context, accountID string) error {
	if f.DeleteAccountFn != nil {
		return f.DeleteAccountFn(ctx, accountID)
	}
	panic("unexpected DeleteAccount")
}

func (f *FakeService) InsertUser(ctx context.Context, u model.User) (*model.User, error) {
	if f.InsertUserFn != nil {
		return f.InsertUserFn(ctx, u)
	}
	panic("unexpected InsertUser")
}

func (f *FakeService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if f.GetUserByIDFn != nil {
		return f.GetUserByIDFn(ctx, id)
	}
	panic("unexpected GetUserByID")
}

func (f *FakeService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.GetUserByEmailFn != nil {
		return f.GetUserByEmailFn(ctx, email)
	}
	panic("unexpected GetUserByEmail")
}

func (f *FakeService) ListUsers(ctx context.Context, search string) ([]model.User, error) {
	if f.ListUsersFn != nil {
		return f.ListUsersFn(ctx, search)
	}
	panic("unexpected ListUsers")
}

func (f *FakeService) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	if f.UpdateUserFn != nil {
		return f.UpdateUserFn(ctx, id, patch)
	}
	panic("unexpected UpdateUser")
}

func (f *FakeService) SetUserVerified(ctx context.Context, id string) (*model.User, error) {
	if f.SetUserVerifiedFn != nil {
		return f.SetUserVerifiedFn(ctx, id)
	}
	panic("unexpected SetUserVerified")
}

func (f *FakeService) CountUsers(ctx context.Context) (int64, error) {
	if f.CountUsersFn != nil {
		return f.CountUsersFn(ctx)
	}
	panic("unexpected CountUsers")
}

func (f *FakeService) InsertRequest(ctx context.Context, r model.IPRequest) (*model.IPRequest, error) {
	if f.InsertRequestFn != nil {
		return f.InsertRequestFn(ctx, r)
	}
	panic("unexpected InsertRequest")
}

func (f *FakeService) GetRequest(ctx context.Context, id string) (*model.IPRequest, error) {
	if f.GetRequestFn != nil {
		return f.GetRequestFn(ctx, id)
	}
	panic("unexpected GetRequest")
}

func (f *FakeService) ListRequests(ctx context.Context, flt model.RequestFilter) ([]model.IPRequest, error) {
	if f.ListRequestsFn != nil {
		return f.ListRequestsFn(ctx, flt)
	}
	panic("unexpected ListRequests")
}

func (f *FakeService) LatestRequests(ctx context.Context, limit int) ([]model.IPRequest, error) {
	if f.LatestRequestsFn != nil {
		return f.LatestRequestsFn(ctx, limit)
	}
	panic("unexpected LatestRequests")
}

func (f *FakeService) UpdateRequestStatus(ctx context.Context, id string, from, to model.RequestStatus, notes *string) (*model.IPRequest, error) {
	if f.UpdateRequestStatusFn != nil {
		return f.UpdateRequestStatusFn(ctx, id, from, to, notes)
	}
	panic("unexpected UpdateRequestStatus")
}

func (f *FakeService) CountRequests(ctx context.Context) (int64, error) {
	if f.CountRequestsFn != nil {
		return f.CountRequestsFn(ctx)
	}
	panic("unexpected CountRequests")
}
