package user

import "kindSparkAPI/internal/pet"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *User    `json:"user"`
	Pet         *pet.Pet `json:"pet"`
	AccessToken string   `json:"access_token"`
}

type MeResponse struct {
	User *User    `json:"user"`
	Pet  *pet.Pet `json:"pet,omitempty"`
}
