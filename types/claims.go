package types

import (
	"github.com/formhub/formhub-go/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries identity, role and site scope through a signed token.
type Claims struct {
	UserID   uint            `json:"user_id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	SiteID   *uint           `json:"site_id"`
	jwt.RegisteredClaims
}
