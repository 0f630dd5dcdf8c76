package transport

import "time"

type CreateRoleRequest struct {
	Name string `json:"name" validate:"required"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Gender      *string   `json:"gender,omitempty"`
	PhoneNumber *string   `json:"phoneNumber,omitempty"`
	Address     *string   `json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
