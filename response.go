package authgate

// Credentials is the request body of both /api/register and /api/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is returned with 201 by /api/register.
type RegisterResponse struct {
	Message string `json:"message" example:"User registered successfully"`
	UserID  string `json:"userId" example:"3f1c2a7e-5b0e-4d8e-9a51-0c7c1d2e4f60"`
	Token   string `json:"token"`
}

// LoginResponse is returned with 200 by /api/login.
type LoginResponse struct {
	Token string `json:"token"`
}

// MeResponse describes the caller identified by a bearer token.
type MeResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// ErrorResponse is the body of every non-2xx response. Message is safe to show to end users.
type ErrorResponse struct {
	Message string `json:"message" example:"Username already taken"`
}
