package models

import "time"

// SubmitProfileRequest carries the full-edit form on submit. DateOfBirth and
// ProfilePictureURL are only set when the user picked a new value this
// session; otherwise the previously stored values are kept.
type SubmitProfileRequest struct {
	PhoneNumber       string `json:"phoneNumber"`
	Address           string `json:"address"`   // free text, comma-separated city, street, postcode
	Interests         string `json:"interests"` // free text, comma-separated
	DateOfBirth       string `json:"dateOfBirth"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// UpdateProfileRequest carries the secondary edit surface. Blank fields are
// dropped before transmission, so a field cannot be cleared this way.
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Interests   string `json:"interests"`
}

// Account is a locally registered identity, used when Firebase Auth is not
// configured. It is distinct from the User profile document.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if len(r.Password) < 6 {
		errors["password"] = "Password must be at least 6 characters"
	}

	return errors
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}
