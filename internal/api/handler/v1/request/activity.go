package request

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	errInvalidDate         = errors.New("dates must be RFC3339 timestamps")
	errStartAfterEnd       = errors.New("startDate must be before endDate")
	errInvalidCapacity     = errors.New("maxParticipants must be positive, or -1 to clear the limit")
	errInvalidStatusUpdate = errors.New("status must be one of pending, approved, rejected, completed, deleted")
)

// OptionalInt distinguishes an absent JSON field from an explicit null.
type OptionalInt struct {
	Set   bool
	Null  bool
	Value int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true

	if string(data) == "null" {
		o.Null = true
		return nil
	}

	return json.Unmarshal(data, &o.Value)
}

type CreateActivityRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	CategoryID      uint    `json:"categoryId"`
	Location        string  `json:"location"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	MaxParticipants *int    `json:"maxParticipants"`
	FeaturedImage   *string `json:"featuredImage"`

	ParsedStartDate time.Time `json:"-"`
	ParsedEndDate   time.Time `json:"-"`
}

func (req *CreateActivityRequest) Validate() error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&req.Description, validation.Required, validation.RuneLength(1, 5000)),
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.Location, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.MaxParticipants, validation.Min(1)),
		validation.Field(&req.FeaturedImage, validation.RuneLength(0, 255)),
	)
	if err != nil {
		return err
	}

	req.ParsedStartDate, err = time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return errInvalidDate
	}

	req.ParsedEndDate, err = time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return errInvalidDate
	}

	if !req.ParsedStartDate.Before(req.ParsedEndDate) {
		return errStartAfterEnd
	}

	return nil
}

// UpdateActivityRequest carries a partial activity update. Absent fields
// stay untouched; maxParticipants null or -1 clears the capacity limit.
type UpdateActivityRequest struct {
	Title           *string     `json:"title"`
	Description     *string     `json:"description"`
	CategoryID      *uint       `json:"categoryId"`
	Location        *string     `json:"location"`
	StartDate       *string     `json:"startDate"`
	EndDate         *string     `json:"endDate"`
	MaxParticipants OptionalInt `json:"maxParticipants"`
	FeaturedImage   *string     `json:"featuredImage"`
	Status          *string     `json:"status"`

	ParsedStartDate *time.Time `json:"-"`
	ParsedEndDate   *time.Time `json:"-"`
}

func (req *UpdateActivityRequest) Validate() error {
	trimInPlace(req.Title)
	trimInPlace(req.Description)
	trimInPlace(req.Location)

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		validation.Field(&req.Description, validation.NilOrNotEmpty, validation.RuneLength(1, 5000)),
		validation.Field(&req.CategoryID, validation.Min(uint(1))),
		validation.Field(&req.Location, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		validation.Field(&req.FeaturedImage, validation.RuneLength(0, 255)),
	)
	if err != nil {
		return err
	}

	if req.Status != nil {
		switch *req.Status {
		case "pending", "approved", "rejected", "completed", "deleted":
		default:
			return errInvalidStatusUpdate
		}
	}

	if req.MaxParticipants.Set && !req.MaxParticipants.Null {
		if req.MaxParticipants.Value == 0 || req.MaxParticipants.Value < -1 {
			return errInvalidCapacity
		}
	}

	if req.StartDate != nil {
		start, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return errInvalidDate
		}

		req.ParsedStartDate = &start
	}

	if req.EndDate != nil {
		end, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return errInvalidDate
		}

		req.ParsedEndDate = &end
	}

	// Ordering is only checked when both dates arrive together.
	if req.ParsedStartDate != nil && req.ParsedEndDate != nil &&
		!req.ParsedStartDate.Before(*req.ParsedEndDate) {
		return errStartAfterEnd
	}

	return nil
}

// CapacityUpdate translates the wire field for the service layer: nil is
// no change, -1 clears the limit, positive sets it.
func (req *UpdateActivityRequest) CapacityUpdate() *int {
	if !req.MaxParticipants.Set {
		return nil
	}

	v := req.MaxParticipants.Value
	if req.MaxParticipants.Null {
		v = -1
	}

	return &v
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *CreateCategoryRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&req.Description, validation.RuneLength(0, 5000)),
	)
}
