package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Session.TTL < time.Hour {
		return fmt.Errorf("session.ttl must be at least 1h (got %s)", c.Session.TTL)
	}
	if c.Session.PasswordHashCost < bcrypt.MinCost || c.Session.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("session.password_hash_cost must be within [%d, %d] (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Session.PasswordHashCost)
	}

	if c.Invite.TTL <= 0 {
		return fmt.Errorf("invite.ttl must be positive (got %s)", c.Invite.TTL)
	}

	if _, err := time.LoadLocation(c.Schedule.ReferenceZone); err != nil {
		return fmt.Errorf("schedule.reference_zone %q: %w", c.Schedule.ReferenceZone, err)
	}

	if c.Limits.AuthPerMinute <= 0 || c.Limits.APIPerMinute <= 0 {
		return fmt.Errorf("limits must be positive (auth=%d, api=%d)",
			c.Limits.AuthPerMinute, c.Limits.APIPerMinute)
	}

	return nil
}
