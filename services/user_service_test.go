package services

import (
	"testing"
	"time"

	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/middleware"
	"github.com/formhub/formhub-go/models"
	"github.com/formhub/formhub-go/repositories"
	"github.com/formhub/formhub-go/repositories/mock_repositories"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func ptrUint(v uint) *uint                       { return &v }
func ptrString(v string) *string                 { return &v }
func ptrRole(r models.UserRole) *models.UserRole { return &r }
func ptrBool(v bool) *bool                       { return &v }

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return string(hashed)
}

// --------------------- Setup ---------------------
func setupUserServiceMocks(t *testing.T) (*UserService, *mock_repositories.MockUserRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockUser := mock_repositories.NewMockUserRepo(ctrl)
	repos := &repositories.Repos{
		User: mockUser,
	}
	svc := NewUserService(repos)
	return svc, mockUser
}

// --------------------- Login ---------------------
func TestLogin_Success(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	user := models.User{
		ID:       1,
		Email:    "alice@site.test",
		Username: "alice",
		Password: hashPassword(t, "123456"),
		Role:     models.RoleUser,
		SiteID:   ptrUint(1),
		IsActive: true,
	}
	mockUser.EXPECT().GetUserByEmail("alice@site.test").Return(user, nil)
	mockUser.EXPECT().UpdateLastLogin(uint(1), gomock.Any()).Return(nil)

	oldGen := middleware.GenerateToken
	middleware.GenerateToken = func(u *models.User, exp time.Duration) (string, error) {
		return "token123", nil
	}
	defer func() { middleware.GenerateToken = oldGen }()

	got, token, err := svc.Login("alice@site.test", "123456")
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "token123", token)
	assert.NotNil(t, got.LastLogin)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail("ghost@site.test").Return(models.User{}, gorm.ErrRecordNotFound)
	_, _, errUnknown := svc.Login("ghost@site.test", "123456")

	user := models.User{ID: 1, Email: "alice@site.test", Password: hashPassword(t, "123456"), IsActive: true}
	mockUser.EXPECT().GetUserByEmail("alice@site.test").Return(user, nil)
	_, _, errWrong := svc.Login("alice@site.test", "wrong")

	assert.Equal(t, ErrInvalidCredentials, errUnknown)
	assert.Equal(t, ErrInvalidCredentials, errWrong)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	user := models.User{ID: 1, Email: "bob@site.test", Password: hashPassword(t, "123456"), IsActive: false}
	mockUser.EXPECT().GetUserByEmail("bob@site.test").Return(user, nil)

	_, _, err := svc.Login("bob@site.test", "123456")
	assert.Equal(t, ErrInactiveUser, err)
}

func TestLogin_InactiveCheckAfterPassword(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	// Wrong password on an inactive account must not reveal the
	// account state.
	user := models.User{ID: 1, Email: "bob@site.test", Password: hashPassword(t, "123456"), IsActive: false}
	mockUser.EXPECT().GetUserByEmail("bob@site.test").Return(user, nil)

	_, _, err := svc.Login("bob@site.test", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
}

// --------------------- Register ---------------------
func TestRegister_DefaultsToUserRole(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail("alice@site.test").Return(models.User{}, gorm.ErrRecordNotFound)
	mockUser.EXPECT().GetUserByUsername("alice").Return(models.User{}, gorm.ErrRecordNotFound)
	mockUser.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *models.User) error {
		u.ID = 10
		return nil
	})

	input := dto.CreateUserInput{
		Email:    "alice@site.test",
		Username: "alice",
		Password: "123456",
		SiteID:   ptrUint(1),
	}
	user, err := svc.Register(nil, input)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "123456", user.Password)
}

func TestRegister_SuperAdminNeverMinted(t *testing.T) {
	svc, _ := setupUserServiceMocks(t)

	input := dto.CreateUserInput{
		Email:    "evil@site.test",
		Username: "evil",
		Password: "123456",
		Role:     models.RoleSuperAdmin,
	}
	_, err := svc.Register(nil, input)
	assert.Equal(t, ErrInvalidRole, err)
}

func TestRegister_SiteAdminRequiresSuperAdminCaller(t *testing.T) {
	svc, _ := setupUserServiceMocks(t)

	input := dto.CreateUserInput{
		Email:    "admin2@site.test",
		Username: "admin2",
		Password: "123456",
		Role:     models.RoleSiteAdmin,
		SiteID:   ptrUint(1),
	}

	_, err := svc.Register(nil, input)
	assert.Equal(t, ErrForbidden, err)

	caller := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	_, err = svc.Register(&caller, input)
	assert.Equal(t, ErrForbidden, err)
}

func TestRegister_SiteAdminCallerForcedToOwnSite(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail("carol@site.test").Return(models.User{}, gorm.ErrRecordNotFound)
	mockUser.EXPECT().GetUserByUsername("carol").Return(models.User{}, gorm.ErrRecordNotFound)
	mockUser.EXPECT().CreateUser(gomock.Any()).Return(nil)

	caller := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	input := dto.CreateUserInput{
		Email:    "carol@site.test",
		Username: "carol",
		Password: "123456",
		SiteID:   ptrUint(99),
	}
	user, err := svc.Register(&caller, input)
	assert.NoError(t, err)
	assert.Equal(t, ptrUint(1), user.SiteID)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail("alice@site.test").Return(models.User{ID: 1}, nil)

	input := dto.CreateUserInput{
		Email:    "alice@site.test",
		Username: "alice2",
		Password: "123456",
		SiteID:   ptrUint(1),
	}
	_, err := svc.Register(nil, input)
	assert.Equal(t, ErrEmailTaken, err)
}

func TestRegister_UserRoleRequiresSite(t *testing.T) {
	svc, _ := setupUserServiceMocks(t)

	input := dto.CreateUserInput{
		Email:    "dave@site.test",
		Username: "dave",
		Password: "123456",
	}
	_, err := svc.Register(nil, input)
	assert.Equal(t, ErrSiteRequired, err)
}

// --------------------- GetUser ---------------------
func TestGetUser_CrossSiteHidden(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	target := models.User{ID: 9, Role: models.RoleUser, SiteID: ptrUint(2)}
	mockUser.EXPECT().GetUserByID(uint(9)).Return(target, nil)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	_, err := svc.GetUser(actor, 9)
	assert.Equal(t, ErrNotFound, err)
}

func TestGetUser_OtherUserHiddenFromPlainUser(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	target := models.User{ID: 4, Role: models.RoleUser, SiteID: ptrUint(1)}
	mockUser.EXPECT().GetUserByID(uint(4)).Return(target, nil)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	_, err := svc.GetUser(actor, 4)
	assert.Equal(t, ErrNotFound, err)
}

// --------------------- ListUsers ---------------------
func TestListUsers_SiteAdminScopedToOwnSite(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	mockUser.EXPECT().ListUsers(repositories.UserFilter{SiteID: ptrUint(1)}).Return([]models.User{}, nil)

	// The requested site_id is ignored for site admins.
	_, err := svc.ListUsers(actor, dto.ListUsersQuery{SiteID: ptrUint(99)})
	assert.NoError(t, err)
}

func TestListUsers_SiteAdminCannotFilterSuperAdmins(t *testing.T) {
	svc, _ := setupUserServiceMocks(t)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	_, err := svc.ListUsers(actor, dto.ListUsersQuery{Role: ptrRole(models.RoleSuperAdmin)})
	assert.Equal(t, ErrForbidden, err)
}

func TestListUsers_PlainUserForbidden(t *testing.T) {
	svc, _ := setupUserServiceMocks(t)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	_, err := svc.ListUsers(actor, dto.ListUsersQuery{})
	assert.Equal(t, ErrForbidden, err)
}

// --------------------- UpdateUser ---------------------
func TestUpdateUser_PlainUserRotatesOwnPassword(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	existing := models.User{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1), Password: hashPassword(t, "oldpass")}
	mockUser.EXPECT().GetUserByID(uint(3)).Return(existing, nil)
	mockUser.EXPECT().SaveUser(gomock.Any()).DoAndReturn(func(u *models.User) error {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("newpass")))
		return nil
	})

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	_, err := svc.UpdateUser(actor, 3, dto.UpdateUserInput{Password: ptrString("newpass")})
	assert.NoError(t, err)
}

func TestUpdateUser_PlainUserCannotTouchOtherFields(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	existing := models.User{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	mockUser.EXPECT().GetUserByID(uint(3)).Return(existing, nil)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	_, err := svc.UpdateUser(actor, 3, dto.UpdateUserInput{Email: ptrString("new@site.test")})
	assert.Equal(t, ErrForbidden, err)
}

func TestUpdateUser_PartialLeavesOtherFields(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	existing := models.User{
		ID:       4,
		Email:    "dave@site.test",
		Username: "dave",
		Role:     models.RoleUser,
		SiteID:   ptrUint(1),
		IsActive: true,
	}
	mockUser.EXPECT().GetUserByID(uint(4)).Return(existing, nil)
	mockUser.EXPECT().SaveUser(gomock.Any()).Return(nil)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	updated, err := svc.UpdateUser(actor, 4, dto.UpdateUserInput{IsActive: ptrBool(false)})
	assert.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "dave@site.test", updated.Email)
	assert.Equal(t, "dave", updated.Username)
}

func TestUpdateUser_RoleChangeReservedToSuperAdmin(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	existing := models.User{ID: 4, Role: models.RoleUser, SiteID: ptrUint(1)}
	mockUser.EXPECT().GetUserByID(uint(4)).Return(existing, nil)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	_, err := svc.UpdateUser(actor, 4, dto.UpdateUserInput{Role: ptrRole(models.RoleSiteAdmin)})
	assert.Equal(t, ErrForbidden, err)
}

func TestUpdateUser_SiteAdminCannotMutatePeer(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	peer := models.User{ID: 5, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	mockUser.EXPECT().GetUserByID(uint(5)).Return(peer, nil)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	_, err := svc.UpdateUser(actor, 5, dto.UpdateUserInput{IsActive: ptrBool(false)})
	assert.Equal(t, ErrForbidden, err)
}

// --------------------- DeleteUser ---------------------
func TestDeleteUser_PlainUserForbidden(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	existing := models.User{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	mockUser.EXPECT().GetUserByID(uint(3)).Return(existing, nil)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	err := svc.DeleteUser(actor, 3)
	assert.Equal(t, ErrForbidden, err)
}

func TestDeleteUser_SiteAdminDeletesOwnSiteUser(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	existing := models.User{ID: 4, Role: models.RoleUser, SiteID: ptrUint(1)}
	mockUser.EXPECT().GetUserByID(uint(4)).Return(existing, nil)
	mockUser.EXPECT().DeleteUser(uint(4)).Return(nil)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	assert.NoError(t, svc.DeleteUser(actor, 4))
}
