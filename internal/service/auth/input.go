package auth

import (
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

// SignupInput holds parameters for the signup operation.
type SignupInput struct {
	InviteToken string
	Email       string
	Password    string
	Nickname    string
	Name        string
	Timezone    string
}

// Validate validates the signup input.
func (i SignupInput) Validate() error {
	var errs []domain.FieldError

	if i.InviteToken == "" {
		errs = append(errs, domain.FieldError{Field: "invite_token", Message: "required"})
	} else if _, err := uuid.Parse(i.InviteToken); err != nil {
		errs = append(errs, domain.FieldError{Field: "invite_token", Message: "must be a valid token"})
	}

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(i.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "must be a valid email address"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if utf8.RuneCountInString(i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	} else if len(i.Password) > 72 {
		// bcrypt truncates beyond 72 bytes
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if i.Nickname == "" {
		errs = append(errs, domain.FieldError{Field: "nickname", Message: "required"})
	} else if utf8.RuneCountInString(i.Nickname) > 32 {
		errs = append(errs, domain.FieldError{Field: "nickname", Message: "too long"})
	}

	if utf8.RuneCountInString(i.Name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if i.Timezone != "" {
		if _, err := time.LoadLocation(i.Timezone); err != nil {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "must be a valid IANA zone"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for the login operation.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
