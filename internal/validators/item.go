package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-recall-keeper/models"
)

const (
	FieldTitle      = "title"
	FieldTags       = "tags"
	FieldInterval   = "interval"
	FieldEaseFactor = "ease_factor"
	FieldUsername   = "username"
	FieldPassword   = "password"
)

// Credentials is the username/password pair supplied on signup and login.
type Credentials struct {
	Username string
	Password string
}

// RecallValidator validates new items and credentials.
type RecallValidator struct{}

// NewRecallValidator returns the validator used by the services.
func NewRecallValidator() Validator {
	return &RecallValidator{}
}

// Validate dispatches on the dynamic type of obj. With no fields every rule
// for that type is checked.
func (v *RecallValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Item:
		return v.validateItem(value, fields...)
	case *models.Item:
		return v.validateItem(*value, fields...)

	case Credentials:
		return v.validateCredentials(value, fields...)
	case *Credentials:
		return v.validateCredentials(*value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *RecallValidator) validateItem(item models.Item, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldTags, FieldInterval, FieldEaseFactor}
	}

	for _, field := range fields {
		switch field {
		case FieldTitle:
			if strings.TrimSpace(item.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldTags:
			for _, tag := range item.Tags {
				if strings.ContainsAny(tag, "\r\n") {
					return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
				}
			}
		case FieldInterval:
			if item.Interval < 1 {
				return ErrInvalidInterval
			}
		case FieldEaseFactor:
			if item.EaseFactor < models.EaseMin || item.EaseFactor > models.EaseMax {
				return fmt.Errorf("%w: %v", ErrInvalidEaseFactor, item.EaseFactor)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *RecallValidator) validateCredentials(c Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldUsername:
			if c.Username == "" {
				return ErrEmptyUsername
			}
			// the credential file is line based with "---" separators
			if strings.ContainsAny(c.Username, "\r\n") || c.Username == "---" {
				return ErrInvalidUsername
			}
		case FieldPassword:
			if c.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}
