package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Go's regexp has no look-ahead.
var passwordExp = regexp2.MustCompile(`^(?=.*[A-Za-z])(?=.*\d).{6,}$`, regexp2.None)

var errInvalidPassword = errors.New("must be at least 6 characters and contain a letter and a number")

var passwordRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if ok, err := passwordExp.MatchString(s); err != nil || !ok {
		return errInvalidPassword
	}

	return nil
})

var nameRules = []validation.Rule{validation.Length(2, 50)}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *RegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, append([]validation.Rule{validation.Required}, nameRules...)...),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, passwordRule),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

// GoogleLoginRequest carries the ID token returned by Google Sign-In.
// Identity is read from its verified claims only.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

func (req *GoogleLoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.IDToken, validation.Required),
	)
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, append([]validation.Rule{validation.NilOrNotEmpty}, nameRules...)...),
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
	)
}
