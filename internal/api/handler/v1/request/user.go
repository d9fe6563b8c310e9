package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errPasswordNotUpdatable = errors.New("password cannot be changed here, use the change password endpoint")

// UpdateUserRequest carries a partial profile update. Absent fields stay
// untouched.
type UpdateUserRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Grade       *string `json:"grade"`
	ClassName   *string `json:"className"`
	MinecraftID *string `json:"minecraftId"`
	Bio         *string `json:"bio"`
	Role        *string `json:"role"`
	IsVerified  *bool   `json:"isVerified"`
	Password    *string `json:"password"`
}

func (req *UpdateUserRequest) Validate(maxBioLength int) error {
	if req.Password != nil {
		return errPasswordNotUpdatable
	}

	trimInPlace(req.Username)
	trimInPlace(req.Email)
	trimInPlace(req.Grade)
	trimInPlace(req.ClassName)
	trimInPlace(req.MinecraftID)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		validation.Field(&req.Email, validation.NilOrNotEmpty, validation.RuneLength(1, 255), is.Email),
		validation.Field(&req.Grade, validation.RuneLength(0, 255)),
		validation.Field(&req.ClassName, validation.RuneLength(0, 255)),
		validation.Field(&req.MinecraftID, validation.RuneLength(0, 15)),
		validation.Field(&req.Bio, validation.RuneLength(0, maxBioLength)),
		validation.Field(&req.Role, validation.In("member", "admin", "banned", "deleted")),
	)
}

func trimInPlace(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
