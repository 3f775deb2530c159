package models

import "time"

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleSiteAdmin  UserRole = "site_admin"
	RoleUser       UserRole = "user"
)

// RequiresSite reports whether the role must be bound to a site.
// Super admins are global and must not carry a site id.
func (r UserRole) RequiresSite() bool {
	return r == RoleSiteAdmin || r == RoleUser
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleSiteAdmin, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"size:100;not null;unique" json:"email"`
	Username  string     `gorm:"size:50;not null;unique" json:"username"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Role      UserRole   `gorm:"type:user_role;default:'user';not null" json:"role"`
	SiteID    *uint      `json:"site_id"`
	IsActive  bool       `gorm:"default:true;not null" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Site *Site `gorm:"foreignKey:SiteID" json:"site,omitempty"`
}
