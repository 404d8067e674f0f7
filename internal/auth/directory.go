package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/pkg/utils"
)

// Seed is a user of the static credential list together with its plain password.
type Seed struct {
	User     models.User
	Password string
}

// DefaultUsers returns the demo accounts, one per role.
func DefaultUsers() []Seed {
	return []Seed{
		{
			User:     models.User{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin, Avatar: "https://i.pravatar.cc/150?img=1"},
			Password: "admin123",
		},
		{
			User:     models.User{ID: "2", Name: "Speaker User", Email: "speaker@example.com", Role: models.RoleSpeaker, Avatar: "https://i.pravatar.cc/150?img=2"},
			Password: "speaker123",
		},
		{
			User:     models.User{ID: "3", Name: "Attendee User", Email: "attendee@example.com", Role: models.RoleAttendee, Avatar: "https://i.pravatar.cc/150?img=3"},
			Password: "attendee123",
		},
	}
}

type credential struct {
	user models.User
	hash string
}

// Directory is the static credential list. It is read-only after construction; sign-up
// synthesizes a user without adding it to the list.
type Directory struct {
	creds []credential

	mu     sync.Mutex
	issued int
}

// NewDirectory hashes every seed password with the given bcrypt cost.
func NewDirectory(seeds []Seed, cost int) (*Directory, error) {
	d := &Directory{creds: make([]credential, 0, len(seeds))}
	for _, s := range seeds {
		hash, err := utils.HashPasswordCost(s.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", s.User.Email, err)
		}
		d.creds = append(d.creds, credential{user: s.User, hash: hash})
	}
	d.issued = len(d.creds)
	return d, nil
}

// SignIn returns the user whose email and password match exactly.
func (d *Directory) SignIn(_ context.Context, email, password string) (models.User, error) {
	for _, c := range d.creds {
		if c.user.Email == email && utils.CheckPassword(password, c.hash) {
			return c.user, nil
		}
	}
	return models.User{}, errs.ErrInvalidCredentials
}

// SignUp synthesizes a new user with the next sequential id. Ids are never reused within a
// directory. The credential list is not modified, so the account cannot sign in again.
func (d *Directory) SignUp(_ context.Context, name, email, _ string, role models.Role) (models.User, error) {
	for _, c := range d.creds {
		if c.user.Email == email {
			return models.User{}, errs.ErrEmailAlreadyRegistered
		}
	}
	if !role.Valid() {
		return models.User{}, errs.Invalid("role", "Role must be attendee, speaker or admin")
	}
	d.mu.Lock()
	d.issued++
	n := d.issued - 1
	d.mu.Unlock()
	return models.User{
		ID:     strconv.Itoa(n + 1),
		Name:   name,
		Email:  email,
		Role:   role,
		Avatar: "https://i.pravatar.cc/150?img=" + strconv.Itoa(n+4),
	}, nil
}

// Get returns the listed user with the given id.
func (d *Directory) Get(_ context.Context, id string) (models.User, error) {
	for _, c := range d.creds {
		if c.user.ID == id {
			return c.user, nil
		}
	}
	return models.User{}, errs.NotFound("user", id)
}

// List returns every listed user in seed order.
func (d *Directory) List(_ context.Context) []models.User {
	out := make([]models.User, 0, len(d.creds))
	for _, c := range d.creds {
		out = append(out, c.user)
	}
	return out
}
