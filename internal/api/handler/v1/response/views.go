package response

import (
	"time"

	"github.com/rdfzsc/campus-api/internal/domain"
)

// UserView is the profile shape returned by the API. Email and last
// login are only present for the owner and for admins.
type UserView struct {
	ID          uint        `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email,omitempty"`
	Grade       string      `json:"grade"`
	ClassName   string      `json:"className"`
	MinecraftID string      `json:"minecraftId"`
	Role        domain.Role `json:"role"`
	IsVerified  bool        `json:"isVerified"`
	Bio         string      `json:"bio"`
	Points      int         `json:"points"`
	CreatedAt   time.Time   `json:"createdAt"`
	LastLoginAt *time.Time  `json:"lastLoginAt,omitempty"`
}

func NewUserView(u domain.User, private bool) UserView {
	view := UserView{
		ID:          u.ID,
		Username:    u.Username,
		Grade:       u.Grade,
		ClassName:   u.ClassName,
		MinecraftID: u.MinecraftID,
		Role:        u.Role,
		IsVerified:  u.IsVerified,
		Bio:         u.Bio,
		Points:      u.Points,
		CreatedAt:   u.CreatedAt,
	}

	if private {
		view.Email = u.Email
		if !u.LastLoginAt.IsZero() {
			at := u.LastLoginAt
			view.LastLoginAt = &at
		}
	}

	return view
}

func NewUserViews(users []domain.User, private bool) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u, private))
	}

	return views
}

// ParticipantView is one roster row of an activity.
type ParticipantView struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	JoinedAt time.Time   `json:"joinedAt"`
}

func NewParticipantViews(participations []domain.ActivityParticipation) []ParticipantView {
	views := make([]ParticipantView, 0, len(participations))
	for _, p := range participations {
		views = append(views, ParticipantView{
			ID:       p.User.ID,
			Username: p.User.Username,
			Role:     p.User.Role,
			JoinedAt: p.JoinedAt,
		})
	}

	return views
}

// JoinedActivityView pairs an activity with when the user joined it.
type JoinedActivityView struct {
	Activity domain.Activity `json:"activity"`
	JoinedAt time.Time       `json:"joinedAt"`
}

func NewJoinedActivityViews(participations []domain.ActivityParticipation) []JoinedActivityView {
	views := make([]JoinedActivityView, 0, len(participations))
	for _, p := range participations {
		views = append(views, JoinedActivityView{
			Activity: p.Activity,
			JoinedAt: p.JoinedAt,
		})
	}

	return views
}
