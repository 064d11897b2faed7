package validators

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a single validator/v10 instance shared across the client.
type Validator struct {
	validate *validator.Validate
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,30}$`)

// NewValidator creates the shared validator and registers custom rules.
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate checks a tagged request struct before any remote call is made.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return err
	}
	return nil
}

// CheckPasswords enforces the sign-up password rules inline.
func CheckPasswords(password, confirm string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// CheckUploadSize rejects files over the configured limit before upload.
func CheckUploadSize(size, limit int64) error {
	if size > limit {
		return fmt.Errorf("file is too large: %d bytes (limit %d)", size, limit)
	}
	return nil
}
