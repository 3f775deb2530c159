package dto

import "github.com/formhub/formhub-go/models"

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserInput struct {
	Email    string          `json:"email" binding:"required,email"`
	Username string          `json:"username" binding:"required"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role"`
	SiteID   *uint           `json:"site_id"`
}

// UpdateUserInput carries a partial update; only non-nil fields
// overwrite existing values.
type UpdateUserInput struct {
	Email    *string          `json:"email"`
	Username *string          `json:"username"`
	Password *string          `json:"password"`
	Role     *models.UserRole `json:"role"`
	SiteID   *uint            `json:"site_id"`
	IsActive *bool            `json:"is_active"`
}

// Fields lists the json names of fields present in the update, used to
// enforce the password-only rule for plain users.
func (u UpdateUserInput) Fields() []string {
	var fields []string
	if u.Email != nil {
		fields = append(fields, "email")
	}
	if u.Username != nil {
		fields = append(fields, "username")
	}
	if u.Password != nil {
		fields = append(fields, "password")
	}
	if u.Role != nil {
		fields = append(fields, "role")
	}
	if u.SiteID != nil {
		fields = append(fields, "site_id")
	}
	if u.IsActive != nil {
		fields = append(fields, "is_active")
	}
	return fields
}

type ListUsersQuery struct {
	SiteID *uint            `form:"site_id"`
	Role   *models.UserRole `form:"role"`
	Skip   int              `form:"skip"`
	Limit  int              `form:"limit"`
}
