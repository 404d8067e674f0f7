package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/backend/internal/errs"
)

func TestSignUpValid(t *testing.T) {
	f := SignUp{Name: "Ada", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1", Role: "attendee"}
	assert.NoError(t, Validate(f))
}

func TestSignUpFieldMessages(t *testing.T) {
	f := SignUp{Name: "A", Email: "not-an-email", Password: "123", ConfirmPassword: "1234567", Role: "guest"}
	err := Validate(f)
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)

	assert.Equal(t, "Name must be at least 2 characters long", ve.Message("name"))
	assert.Equal(t, "Please enter a valid email address", ve.Message("email"))
	assert.Equal(t, "Password must be at least 6 characters long", ve.Message("password"))
	assert.Equal(t, "Passwords don't match", ve.Message("confirm_password"))
	assert.Equal(t, "Role must be attendee, speaker or admin", ve.Message("role"))
}

func TestSignInRequiresBothFields(t *testing.T) {
	ve, ok := errs.AsValidation(Validate(SignIn{}))
	require.True(t, ok)
	assert.Equal(t, "Email is required", ve.Message("email"))
	assert.Equal(t, "Password is required", ve.Message("password"))
}

func TestEventForm(t *testing.T) {
	valid := Event{
		Title:       "Go Meetup",
		Description: "An evening of talks about Go in production.",
		StartDate:   "2025-06-15T09:00:00Z",
		EndDate:     "2025-06-15T18:00:00Z",
		Location:    "Virtual",
		Price:       0,
		VIPPrice:    25,
		Tags:        []string{"Go"},
	}
	assert.NoError(t, Validate(valid))

	bad := valid
	bad.Title = "Go"
	bad.Description = "short"
	bad.StartDate = "tomorrow"
	bad.Price = -1
	bad.Tags = nil
	ve, ok := errs.AsValidation(Validate(bad))
	require.True(t, ok)
	assert.Equal(t, "Title must be at least 3 characters long", ve.Message("title"))
	assert.Equal(t, "Description must be at least 10 characters long", ve.Message("description"))
	assert.Equal(t, "Start date must be an RFC 3339 timestamp", ve.Message("start_date"))
	assert.Equal(t, "Price must be 0 or greater", ve.Message("price"))
	assert.Equal(t, "At least one tag is required", ve.Message("tags"))
	assert.Empty(t, ve.Message("end_date"))
}

func TestRegistrationForm(t *testing.T) {
	assert.NoError(t, Validate(Registration{TicketType: "vip"}))
	ve, ok := errs.AsValidation(Validate(Registration{TicketType: "backstage"}))
	require.True(t, ok)
	assert.Equal(t, "Ticket type must be general or vip", ve.Message("ticket_type"))
}
