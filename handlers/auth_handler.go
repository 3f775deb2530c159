package handlers

import (
	"net/http"

	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/response"
	"github.com/formhub/formhub-go/services"
	"github.com/formhub/formhub-go/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login godoc
// @Summary Authenticate and issue an access token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} response.TokenResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	user, token, err := h.users.Login(input.Email, input.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		Token: token,
		Type:  "bearer",
		User:  user,
	})
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} models.User
// @Failure 400 {object} response.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	// Registration works both anonymously and for a logged-in admin
	// creating accounts.
	var actor *authz.Actor
	if a, err := utils.ActorFromContext(c); err == nil {
		actor = &a
	}

	user, err := h.users.Register(actor, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Me godoc
// @Summary Current user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} response.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.users.GetUser(actor, actor.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
