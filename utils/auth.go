package utils

import (
	"errors"

	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/types"
	"github.com/gin-gonic/gin"
)

var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}

	return claims, nil
}

// ActorFromContext rebuilds the authz actor from the token claims.
func ActorFromContext(c *gin.Context) (authz.Actor, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return authz.Actor{}, err
	}
	return authz.NewActor(claims.UserID, claims.Role, claims.SiteID)
}
