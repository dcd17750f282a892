// File: internal/model/identity.go
package model

// IdentityKind 目前登入者的種類
type IdentityKind string

const (
	KindAnonymous IdentityKind = "anonymous"
	KindEndUser   IdentityKind = "end_user"
	KindAdmin     IdentityKind = "admin"
)

// Identity 同一時間只會有一種 Kind；EndUser 時 User 非 nil，Admin 時 Admin 非 nil
type Identity struct {
	Kind  IdentityKind `json:"kind"`
	User  *User        `json:"user,omitempty"`
	Admin *Admin       `json:"admin,omitempty"`
}

func Anonymous() Identity {
	return Identity{Kind: KindAnonymous}
}

func EndUser(u User) Identity {
	return Identity{Kind: KindEndUser, User: &u}
}

func AdminIdentity(a Admin) Identity {
	return Identity{Kind: KindAdmin, Admin: &a}
}

func (i Identity) IsAnonymous() bool { return i.Kind == KindAnonymous || i.Kind == "" }
func (i Identity) IsEndUser() bool   { return i.Kind == KindEndUser && i.User != nil }
func (i Identity) IsAdmin() bool     { return i.Kind == KindAdmin && i.Admin != nil }
