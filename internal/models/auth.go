package models

// Auth contains authentication response
type Auth struct {
	Token string `json:"accessToken"`
	Email string `json:"email,omitempty"`
}

// Credentials is the login request body
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the register request body
type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
