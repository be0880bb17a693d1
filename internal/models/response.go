package models

// APIResponse is a generic API response wrapper
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   message,
	}
}

// NewValidationErrorResponse creates a validation error response
func NewValidationErrorResponse(errors map[string]string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   "Validation failed",
		Errors:  errors,
	}
}

// ProfileView is the profile as the edit form consumes it: the stored
// record plus its single-line renderings and the derived age.
type ProfileView struct {
	User      *User  `json:"user"`
	Address   string `json:"address"`
	Interests string `json:"interests"`
	Age       int    `json:"age"`
}

// AvatarUploadResponse is returned after a successful avatar upload. URL is
// what the client should pass back as profilePictureUrl on submit.
type AvatarUploadResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// DeleteAccountResponse reports what an account deletion removed.
type DeleteAccountResponse struct {
	AvatarURLs []string `json:"avatar_urls"`
}
