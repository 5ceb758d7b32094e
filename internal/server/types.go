package server

import "musichub/internal/models"

// signupRequest is the payload for POST /api/auth/signup.
type signupRequest struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	SecretKey    string `json:"secretKey"`
}

// signinRequest is the payload for POST /api/auth/signin.
type signinRequest struct {
	EmailAddress string `json:"emailAddress"`
	SecretKey    string `json:"secretKey"`
}

// authResponse is returned by both auth endpoints.
type authResponse struct {
	Message     string               `json:"message"`
	AccessToken string               `json:"accessToken"`
	UserAccount models.PublicAccount `json:"userAccount"`
}

// collectionRequest is the payload for creating or updating a collection.
type collectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// messageResponse carries a single human-readable message.
type messageResponse struct {
	Message string `json:"message"`
}
