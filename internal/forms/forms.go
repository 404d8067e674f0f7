// Package forms holds the input schemas of the sign-in, sign-up and event forms.
package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so messages line up with request bodies.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Form is a validatable input with human-readable messages keyed by "field.tag".
type Form interface {
	messages() map[string]string
}

// Validate checks f against its struct tags and returns a *errs.ValidationError listing every
// failing field, or nil.
func Validate(f Form) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := f.messages()
	out := &errs.ValidationError{}
	seen := make(map[string]bool)
	for _, fe := range verrs {
		field := fe.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		msg, ok := msgs[field+"."+fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		out.Fields = append(out.Fields, errs.FieldError{Field: field, Message: msg})
	}
	return out
}

// SignIn is the body of POST /auth/login.
type SignIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (SignIn) messages() map[string]string {
	return map[string]string{
		"email.required":    "Email is required",
		"email.email":       "Please enter a valid email address",
		"password.required": "Password is required",
	}
}

// SignUp is the body of POST /auth/register.
type SignUp struct {
	Name            string      `json:"name" validate:"min=2"`
	Email           string      `json:"email" validate:"required,email"`
	Password        string      `json:"password" validate:"min=6"`
	ConfirmPassword string      `json:"confirm_password" validate:"min=6,eqfield=Password"`
	Role            models.Role `json:"role" validate:"oneof=attendee speaker admin"`
}

func (SignUp) messages() map[string]string {
	return map[string]string{
		"name.min":                 "Name must be at least 2 characters long",
		"email.required":           "Please enter a valid email address",
		"email.email":              "Please enter a valid email address",
		"password.min":             "Password must be at least 6 characters long",
		"confirm_password.min":     "Please confirm your password",
		"confirm_password.eqfield": "Passwords don't match",
		"role.oneof":               "Role must be attendee, speaker or admin",
	}
}

// Event is the body of POST /events.
type Event struct {
	Title       string   `json:"title" validate:"min=3"`
	Description string   `json:"description" validate:"min=10"`
	StartDate   string   `json:"start_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate     string   `json:"end_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Location    string   `json:"location" validate:"min=1"`
	Price       int      `json:"price" validate:"min=0"`
	VIPPrice    int      `json:"vip_price" validate:"min=0"`
	Tags        []string `json:"tags" validate:"min=1"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
}

func (Event) messages() map[string]string {
	return map[string]string{
		"title.min":           "Title must be at least 3 characters long",
		"description.min":     "Description must be at least 10 characters long",
		"start_date.required": "Start date is required",
		"start_date.datetime": "Start date must be an RFC 3339 timestamp",
		"end_date.required":   "End date is required",
		"end_date.datetime":   "End date must be an RFC 3339 timestamp",
		"location.min":        "Location is required",
		"price.min":           "Price must be 0 or greater",
		"vip_price.min":       "VIP price must be 0 or greater",
		"tags.min":            "At least one tag is required",
		"image_url.url":       "Image URL must be a valid URL",
	}
}

// Registration is the body of POST /events/:id/register.
type Registration struct {
	TicketType models.TicketType `json:"ticket_type" validate:"oneof=general vip"`
}

func (Registration) messages() map[string]string {
	return map[string]string{
		"ticket_type.oneof": "Ticket type must be general or vip",
	}
}
