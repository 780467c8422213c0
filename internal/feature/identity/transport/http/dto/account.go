// Package dto defines data transfer objects for the identity feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /signup endpoint.
// It uses Gin's binding tags for validation (required, email format, password length).
type SignupReq struct {
	UserName string `json:"user_name" binding:"required,max=256"`
	Email    string `json:"email" binding:"required,email,max=256"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignupRes is returned after a successful signup.
type SignupRes struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

// LoginReq represents the request body for the /login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenRes carries a signed access token.
type TokenRes struct {
	Token string `json:"token"`
}

// ErrorRes is the body of every error response.
type ErrorRes struct {
	Error string `json:"error"`
}

// MessageRes is a plain acknowledgement.
type MessageRes struct {
	Message string `json:"message"`
}
