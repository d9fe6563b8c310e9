package request

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// At least 8 characters with 1 letter and 1 number. Lookaheads need
// regexp2, the stdlib engine rejects them.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordRegex = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
)

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Grade       string `json:"grade"`
	ClassName   string `json:"className"`
	MinecraftID string `json:"minecraftId"`
}

func (req *RegisterRequest) Validate() error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Grade = strings.TrimSpace(req.Grade)
	req.ClassName = strings.TrimSpace(req.ClassName)
	req.MinecraftID = strings.TrimSpace(req.MinecraftID)

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&req.Email, validation.Required, validation.RuneLength(1, 255), is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Grade, validation.RuneLength(0, 255)),
		validation.Field(&req.ClassName, validation.RuneLength(0, 255)),
		validation.Field(&req.MinecraftID, validation.RuneLength(0, 15)),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	req.Email = strings.TrimSpace(req.Email)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (req *ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.OldPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.NewPassword)
}

func validatePassword(password string) error {
	ok, err := passwordRegex.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}
