package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/rmsato/todoapi/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the registration endpoint.
// The password is submitted twice and must match.
type RegisterRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password1 string `json:"password1"  validate:"required,min=8,max=72"`
	Password2 string `json:"password2"  validate:"required,eqfield=Password1"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name"  validate:"max=150"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the optional body of the token refresh
// endpoint; browser clients send the refresh token as a cookie instead.
type RefreshTokenRequest struct {
	Refresh string `json:"refresh"`
}

// UserUpdateRequest defines the payload for the account PATCH endpoint.
// Email and staff status are read-only and deliberately absent.
type UserUpdateRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name"  validate:"omitempty,max=150"`
}

// UserResponse is the public representation of an account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsStaff   bool      `json:"is_staff"`
}

// NewUserResponse builds the public view of a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsStaff:   user.IsStaff,
	}
}

// AuthResponse defines the successful response for registration and
// login. The access token is duplicated in the body for non-browser
// clients; browsers rely on the cookies.
type AuthResponse struct {
	Access string       `json:"access"`
	User   UserResponse `json:"user"`
}

// RefreshResponse defines the successful response for token refresh.
type RefreshResponse struct {
	Access string `json:"access"`
}

// DetailResponse carries a single human-readable message.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// TodoCreateRequest defines the payload for creating a todo. Priority
// defaults to MEDIUM and progress to 0. It doubles as the full-update
// (PUT) payload.
type TodoCreateRequest struct {
	TodoTitle string `json:"todo_title" validate:"required,max=255"`
	Priority  string `json:"priority"   validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Progress  *int   `json:"progress"   validate:"omitempty,min=0,max=100"`
}

// TodoPatchRequest defines the payload for partially updating a todo.
// Absent fields are left untouched.
type TodoPatchRequest struct {
	TodoTitle *string `json:"todo_title" validate:"omitempty,max=255"`
	Priority  *string `json:"priority"   validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Progress  *int    `json:"progress"   validate:"omitempty,min=0,max=100"`
}

// TodoResponse is the public representation of a todo. The user field
// carries the owner's email address.
type TodoResponse struct {
	ID        uuid.UUID       `json:"id"`
	User      string          `json:"user"`
	TodoTitle string          `json:"todo_title"`
	Priority  domain.Priority `json:"priority"`
	Progress  int             `json:"progress"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewTodoResponse builds the public view of a todo owned by ownerEmail.
func NewTodoResponse(todo *domain.Todo, ownerEmail string) TodoResponse {
	return TodoResponse{
		ID:        todo.ID,
		User:      ownerEmail,
		TodoTitle: todo.Title,
		Priority:  todo.Priority,
		Progress:  todo.Progress,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
}

// NewTodoListResponse builds the public view of a todo list.
func NewTodoListResponse(todos []*domain.Todo, ownerEmail string) []TodoResponse {
	responses := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, NewTodoResponse(todo, ownerEmail))
	}
	return responses
}

// WelcomeEmailRequest defines the payload the queue delivers to the
// welcome-email webhook.
type WelcomeEmailRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
