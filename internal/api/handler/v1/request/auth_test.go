package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123",
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validRegisterRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("trims username and email", func(t *testing.T) {
		req := validRegisterRequest()
		req.Username = "  alice  "
		req.Email = " alice@example.com "
		require.NoError(t, req.Validate())
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "alice@example.com", req.Email)
	})

	t.Run("bad email", func(t *testing.T) {
		req := validRegisterRequest()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("minecraft id under 16 chars", func(t *testing.T) {
		req := validRegisterRequest()
		req.MinecraftID = "fifteen_chars_x"
		assert.NoError(t, req.Validate())

		req.MinecraftID = "sixteen_chars_xy"
		assert.Error(t, req.Validate())
	})
}

func TestPasswordPolicy(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"letters and digits", "Password123", true},
		{"exactly eight", "abcdefg1", true},
		{"symbols allowed", "p@ssw0rd!", true},
		{"too short", "abc1234", false},
		{"no digit", "passwordonly", false},
		{"no letter", "1234567890", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegisterRequest()
			req.Password = tc.password

			err := req.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestChangePasswordRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := ChangePasswordRequest{OldPassword: "whatever", NewPassword: "NewPassword1"}
		assert.NoError(t, req.Validate())
	})

	t.Run("weak new password", func(t *testing.T) {
		req := ChangePasswordRequest{OldPassword: "whatever", NewPassword: "short1"}
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("old password not policed", func(t *testing.T) {
		req := ChangePasswordRequest{OldPassword: "x", NewPassword: "NewPassword1"}
		assert.NoError(t, req.Validate())
	})
}

func TestUpdateUserRequestValidate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("password rejected", func(t *testing.T) {
		req := UpdateUserRequest{Password: strPtr("NewPassword1")}
		assert.ErrorIs(t, req.Validate(100), errPasswordNotUpdatable)
	})

	t.Run("unknown role", func(t *testing.T) {
		req := UpdateUserRequest{Role: strPtr("superuser")}
		assert.Error(t, req.Validate(100))
	})

	t.Run("bio over the limit", func(t *testing.T) {
		req := UpdateUserRequest{Bio: strPtr("0123456789")}
		assert.Error(t, req.Validate(5))
		assert.NoError(t, req.Validate(10))
	})

	t.Run("minecraft id under 16 chars", func(t *testing.T) {
		req := UpdateUserRequest{MinecraftID: strPtr("sixteen_chars_xy")}
		assert.Error(t, req.Validate(100))

		req = UpdateUserRequest{MinecraftID: strPtr("fifteen_chars_x")}
		assert.NoError(t, req.Validate(100))
	})
}

func TestAddPointsRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := AddPointsRequest{Points: 10, Description: "tournament win"}
		assert.NoError(t, req.Validate())
	})

	t.Run("negative delta allowed", func(t *testing.T) {
		req := AddPointsRequest{Points: -5, Description: "late cancellation"}
		assert.NoError(t, req.Validate())
	})

	t.Run("zero delta rejected", func(t *testing.T) {
		req := AddPointsRequest{Points: 0, Description: "nothing happened"}
		assert.Error(t, req.Validate())
	})

	t.Run("missing description", func(t *testing.T) {
		req := AddPointsRequest{Points: 10, Description: "   "}
		assert.Error(t, req.Validate())
	})
}
