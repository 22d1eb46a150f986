package event

import (
	"unicode/utf8"

	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/internal/schedule"
)

// EventInput holds parameters for creating or updating an event.
type EventInput struct {
	Title       string
	Description string
	Day         string
	TimeOfDay   string
}

// Validate validates the event input.
func (i EventInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if utf8.RuneCountInString(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if utf8.RuneCountInString(i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if !domain.DayOfWeek(i.Day).IsValid() {
		errs = append(errs, domain.FieldError{Field: "day", Message: "must be a day of week"})
	}

	if _, _, err := schedule.ParseTimeOfDay(i.TimeOfDay); err != nil {
		errs = append(errs, domain.FieldError{Field: "time", Message: "must be HH:MM (24-hour)"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RespondInput holds parameters for answering an event.
type RespondInput struct {
	Response string
}

// Validate validates the respond input.
func (i RespondInput) Validate() error {
	if !domain.ResponseType(i.Response).IsValid() {
		return domain.NewValidationError("response", "must be ACCEPTED or DECLINED")
	}
	return nil
}
