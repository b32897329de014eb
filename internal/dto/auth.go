// Package dto holds the request and response shapes of the HTTP API and the
// explicit mappings between them and the domain models.
package dto

import "events-web-app/internal/models"

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the register request payload
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// TokenResponse carries the issued tokens
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UpdateUserRequest represents the update user payload
type UpdateUserRequest struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
		Role:     string(user.Role),
	}
}

func ToUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}

// ToUser maps the request onto a user carrying only the editable fields
func (r UpdateUserRequest) ToUser() (*models.User, error) {
	id, err := ParseID("id", r.ID)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:       id,
		Email:    r.Email,
		Username: r.Username,
		Role:     models.Role(r.Role),
	}, nil
}
