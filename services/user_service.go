package services

import (
	"errors"
	"time"

	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/config"
	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/middleware"
	"github.com/formhub/formhub-go/models"
	"github.com/formhub/formhub-go/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repos *repositories.Repos
}

func NewUserService(repos *repositories.Repos) *UserService {
	return &UserService{repos: repos}
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password produce the same error so accounts cannot be
// enumerated.
func (s *UserService) Login(email, password string) (models.User, string, error) {
	user, err := s.repos.User.GetUserByEmail(email)
	if err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.User{}, "", ErrInactiveUser
	}

	now := time.Now()
	if err := s.repos.User.UpdateLastLogin(user.ID, now); err != nil {
		return models.User{}, "", err
	}
	user.LastLogin = &now

	token, err := middleware.GenerateToken(&user, time.Duration(config.TokenExpireMinutes)*time.Minute)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

// Register creates an account via the public endpoint. Super admins
// can never be minted here; site_admin accounts only by a super admin
// caller.
func (s *UserService) Register(actor *authz.Actor, input dto.CreateUserInput) (models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() || role == models.RoleSuperAdmin {
		return models.User{}, ErrInvalidRole
	}
	if role == models.RoleSiteAdmin {
		if actor == nil || actor.Role != models.RoleSuperAdmin {
			return models.User{}, ErrForbidden
		}
	}

	siteID := input.SiteID
	if actor != nil && actor.Role == models.RoleSiteAdmin {
		siteID = actor.SiteID
	}
	if role.RequiresSite() && siteID == nil {
		return models.User{}, ErrSiteRequired
	}

	return s.create(input.Email, input.Username, input.Password, role, siteID)
}

// CreateUser is the admin-facing creation path (POST /users).
func (s *UserService) CreateUser(actor authz.Actor, input dto.CreateUserInput) (models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() || role == models.RoleSuperAdmin {
		return models.User{}, ErrForbidden
	}

	siteID := input.SiteID
	switch actor.Role {
	case models.RoleSuperAdmin:
		// any site
	case models.RoleSiteAdmin:
		if role == models.RoleSiteAdmin {
			return models.User{}, ErrForbidden
		}
		siteID = actor.SiteID
	default:
		return models.User{}, ErrForbidden
	}
	if role.RequiresSite() && siteID == nil {
		return models.User{}, ErrSiteRequired
	}

	return s.create(input.Email, input.Username, input.Password, role, siteID)
}

func (s *UserService) create(email, username, password string, role models.UserRole, siteID *uint) (models.User, error) {
	if _, err := s.repos.User.GetUserByEmail(email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}
	if _, err := s.repos.User.GetUserByUsername(username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, ErrPasswordHash
	}

	user := models.User{
		Email:    email,
		Username: username,
		Password: string(hashed),
		Role:     role,
		SiteID:   siteID,
		IsActive: true,
	}
	if err := s.repos.User.CreateUser(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) ListUsers(actor authz.Actor, query dto.ListUsersQuery) ([]models.User, error) {
	filter := repositories.UserFilter{Skip: query.Skip, Limit: query.Limit}

	switch actor.Role {
	case models.RoleSuperAdmin:
		filter.SiteID = query.SiteID
		filter.Role = query.Role
	case models.RoleSiteAdmin:
		// Implicit tenant filter regardless of the requested one.
		filter.SiteID = actor.SiteID
		if query.Role != nil {
			if *query.Role == models.RoleSuperAdmin {
				return nil, ErrForbidden
			}
			filter.Role = query.Role
		}
	default:
		return nil, ErrForbidden
	}

	return s.repos.User.ListUsers(filter)
}

func (s *UserService) GetUser(actor authz.Actor, id uint) (models.User, error) {
	user, err := s.repos.User.GetUserByID(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}

	d := authz.Can(actor, authz.ActionRead, authz.Target{
		Kind:       authz.KindUser,
		SiteID:     user.SiteID,
		OwnerID:    user.ID,
		TargetRole: user.Role,
	})
	if err := decisionErr(d); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(actor authz.Actor, id uint, input dto.UpdateUserInput) (models.User, error) {
	user, err := s.repos.User.GetUserByID(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}

	d := authz.Can(actor, authz.ActionUpdate, authz.Target{
		Kind:       authz.KindUser,
		SiteID:     user.SiteID,
		OwnerID:    user.ID,
		TargetRole: user.Role,
	})
	if err := decisionErr(d); err != nil {
		return models.User{}, err
	}

	// Plain users may only rotate their own password.
	if actor.Role == models.RoleUser {
		for _, field := range input.Fields() {
			if field != "password" {
				return models.User{}, ErrForbidden
			}
		}
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.repos.User.GetUserByEmail(*input.Email); err == nil {
			return models.User{}, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, err
		}
		user.Email = *input.Email
	}
	if input.Username != nil && *input.Username != user.Username {
		if _, err := s.repos.User.GetUserByUsername(*input.Username); err == nil {
			return models.User{}, ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, err
		}
		user.Username = *input.Username
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, ErrPasswordHash
		}
		user.Password = string(hashed)
	}
	if input.Role != nil {
		if !input.Role.Valid() || *input.Role == models.RoleSuperAdmin || actor.Role != models.RoleSuperAdmin {
			return models.User{}, ErrForbidden
		}
		user.Role = *input.Role
	}
	if input.SiteID != nil {
		if actor.Role != models.RoleSuperAdmin {
			return models.User{}, ErrForbidden
		}
		user.SiteID = input.SiteID
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.repos.User.SaveUser(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(actor authz.Actor, id uint) error {
	user, err := s.repos.User.GetUserByID(id)
	if err != nil {
		return ErrNotFound
	}

	d := authz.Can(actor, authz.ActionDelete, authz.Target{
		Kind:       authz.KindUser,
		SiteID:     user.SiteID,
		OwnerID:    user.ID,
		TargetRole: user.Role,
	})
	if err := decisionErr(d); err != nil {
		return err
	}

	return s.repos.User.DeleteUser(id)
}
