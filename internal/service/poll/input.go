package poll

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/internal/schedule"
)

// CreateInput holds parameters for creating a REGULAR poll.
type CreateInput struct {
	Title       string
	Description string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if utf8.RuneCountInString(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if utf8.RuneCountInString(i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SlotInput is one proposed slot of a time poll, in authoring order.
type SlotInput struct {
	Day       string
	TimeOfDay string
}

// CreateTimeInput holds parameters for creating a TIME poll with its slots.
type CreateTimeInput struct {
	Title       string
	Description string
	Slots       []SlotInput
}

// Validate validates the create-time input.
func (i CreateTimeInput) Validate() error {
	var errs []domain.FieldError

	if err := (CreateInput{Title: i.Title, Description: i.Description}).Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			errs = append(errs, verr.Errors...)
		}
	}

	if len(i.Slots) == 0 {
		errs = append(errs, domain.FieldError{Field: "slots", Message: "at least one slot required"})
	} else if len(i.Slots) > 50 {
		errs = append(errs, domain.FieldError{Field: "slots", Message: "too many slots"})
	}

	for idx, slot := range i.Slots {
		if !domain.DayOfWeek(slot.Day).IsValid() {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("slots[%d].day", idx),
				Message: "must be a day of week",
			})
		}
		if _, _, err := schedule.ParseTimeOfDay(slot.TimeOfDay); err != nil {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("slots[%d].time", idx),
				Message: "must be HH:MM (24-hour)",
			})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SlotResponseInput is one member answer in a batch slot-response submission.
type SlotResponseInput struct {
	SlotID    uuid.UUID
	Available bool
}

// Validate validates a batch of slot responses.
func ValidateSlotResponses(responses []SlotResponseInput) error {
	if len(responses) == 0 {
		return domain.NewValidationError("responses", "at least one response required")
	}

	seen := make(map[uuid.UUID]bool, len(responses))
	for idx, r := range responses {
		if r.SlotID == uuid.Nil {
			return domain.NewValidationError(fmt.Sprintf("responses[%d].slot_id", idx), "required")
		}
		if seen[r.SlotID] {
			return domain.NewValidationError(fmt.Sprintf("responses[%d].slot_id", idx), "duplicate slot")
		}
		seen[r.SlotID] = true
	}

	return nil
}
