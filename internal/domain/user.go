package domain

import "time"

// Role is the closed set of account roles. Authorization code switches
// exhaustively over these values; no other string ever reaches it.
type Role string

const (
	RoleMember  Role = "member"
	RoleAdmin   Role = "admin"
	RoleBanned  Role = "banned"
	RoleDeleted Role = "deleted"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleAdmin, RoleBanned, RoleDeleted:
		return true
	}

	return false
}

// CanParticipate reports whether the role may create or join activities.
func (r Role) CanParticipate() bool {
	return r == RoleMember || r == RoleAdmin
}

type User struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Grade       string    `json:"grade"`
	ClassName   string    `json:"className"`
	MinecraftID string    `json:"minecraftId"`
	Role        Role      `json:"role"`
	IsVerified  bool      `json:"isVerified"`
	Bio         string    `json:"bio"`
	Points      int       `json:"points"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}
