package domain

import "time"

// ActivityStatus is the closed set of lifecycle states.
//
// Allowed transitions:
//
//	pending  -> approved | rejected | deleted
//	approved -> completed | deleted
//	any      -> deleted (admin), except repeat-delete which is rejected
type ActivityStatus string

const (
	StatusPending   ActivityStatus = "pending"
	StatusApproved  ActivityStatus = "approved"
	StatusRejected  ActivityStatus = "rejected"
	StatusCompleted ActivityStatus = "completed"
	StatusDeleted   ActivityStatus = "deleted"
)

func (s ActivityStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusDeleted:
		return true
	}

	return false
}

type Activity struct {
	ID              uint             `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	OrganizerID     uint             `json:"organizerId"`
	Organizer       User             `json:"organizer"`
	CategoryID      uint             `json:"categoryId"`
	Category        ActivityCategory `json:"category"`
	Location        string           `json:"location"`
	StartDate       time.Time        `json:"startDate"`
	EndDate         time.Time        `json:"endDate"`
	MaxParticipants *int             `json:"maxParticipants"` // nil = unlimited
	FeaturedImage   *string          `json:"featuredImage"`
	Status          ActivityStatus   `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type ActivityCategory struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ActivityParticipation is the join relationship between a User and an
// Activity. Rows are removed on leave; deleting an activity only flips
// the activity status and leaves participations in place.
type ActivityParticipation struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	User       User      `json:"user"`
	ActivityID uint      `json:"activityId"`
	Activity   Activity  `json:"activity"`
	JoinedAt   time.Time `json:"joinedAt"`
}
