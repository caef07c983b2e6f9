package models

// Role is a user's access level.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is an account profile as returned by /users/me.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name,omitempty"`
	Role             Role   `json:"role"`
	IsActive         bool   `json:"is_active"`
	IsVerified       bool   `json:"is_verified"`
	ProfileImageURL  string `json:"profile_image_url,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// Organization owns programs and custom exercises.
type Organization struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	SubscriptionTier string `json:"subscription_tier"`
	CreatedAt        string `json:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// AuthTokens is the credential pair issued on login.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RegisterData is the JSON registration request body.
type RegisterData struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FullName         string `json:"full_name"`
	OrganizationName string `json:"organization_name"`
}
