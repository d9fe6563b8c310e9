package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type AddPointsRequest struct {
	Points            int     `json:"points"`
	Description       string  `json:"description"`
	RelatedEntityType *string `json:"relatedEntityType"`
	RelatedEntityID   *uint   `json:"relatedEntityId"`
}

func (req *AddPointsRequest) Validate() error {
	req.Description = strings.TrimSpace(req.Description)

	// Required rejects the zero value, which also outlaws no-op records.
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Points, validation.Required),
		validation.Field(&req.Description, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&req.RelatedEntityType, validation.NilOrNotEmpty, validation.RuneLength(1, 50)),
		validation.Field(&req.RelatedEntityID, validation.Min(uint(1))),
	)
}

type JoinLeaveRequest struct {
	UserID uint `json:"userId"`
}
