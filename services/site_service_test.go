package services

import (
	"testing"

	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/models"
	"github.com/formhub/formhub-go/repositories"
	"github.com/formhub/formhub-go/repositories/mock_repositories"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupSiteServiceMocks(t *testing.T) (*SiteService, *mock_repositories.MockSiteRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockSite := mock_repositories.NewMockSiteRepo(ctrl)
	repos := &repositories.Repos{
		Site: mockSite,
	}
	svc := NewSiteService(repos)
	return svc, mockSite
}

func TestCreateSite_SuperAdminOnly(t *testing.T) {
	svc, _ := setupSiteServiceMocks(t)

	input := dto.CreateSiteInput{Name: "Acme", Subdomain: "acme"}

	_, err := svc.CreateSite(authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}, input)
	assert.Equal(t, ErrForbidden, err)

	_, err = svc.CreateSite(authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}, input)
	assert.Equal(t, ErrForbidden, err)
}

func TestCreateSite_SubdomainTaken(t *testing.T) {
	svc, mockSite := setupSiteServiceMocks(t)

	mockSite.EXPECT().GetSiteByName("Acme").Return(models.Site{}, gorm.ErrRecordNotFound)
	mockSite.EXPECT().GetSiteBySubdomain("acme").Return(models.Site{ID: 1}, nil)

	actor := authz.Actor{ID: 1, Role: models.RoleSuperAdmin}
	_, err := svc.CreateSite(actor, dto.CreateSiteInput{Name: "Acme", Subdomain: "acme"})
	assert.Equal(t, ErrSubdomainTaken, err)
}

func TestCreateSite_Success(t *testing.T) {
	svc, mockSite := setupSiteServiceMocks(t)

	mockSite.EXPECT().GetSiteByName("Acme").Return(models.Site{}, gorm.ErrRecordNotFound)
	mockSite.EXPECT().GetSiteBySubdomain("acme").Return(models.Site{}, gorm.ErrRecordNotFound)
	mockSite.EXPECT().CreateSite(gomock.Any()).DoAndReturn(func(s *models.Site) error {
		s.ID = 1
		return nil
	})

	actor := authz.Actor{ID: 1, Role: models.RoleSuperAdmin}
	site, err := svc.CreateSite(actor, dto.CreateSiteInput{Name: "Acme", Subdomain: "acme"})
	assert.NoError(t, err)
	assert.Equal(t, uint(1), site.ID)
}

func TestGetSite_SiteAdminReadsOwnOnly(t *testing.T) {
	svc, mockSite := setupSiteServiceMocks(t)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}

	mockSite.EXPECT().GetSiteByID(uint(1)).Return(models.Site{ID: 1, Name: "Acme"}, nil)
	site, err := svc.GetSite(actor, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Acme", site.Name)

	mockSite.EXPECT().GetSiteByID(uint(2)).Return(models.Site{ID: 2, Name: "Other"}, nil)
	_, err = svc.GetSite(actor, 2)
	assert.Equal(t, ErrForbidden, err)
}

func TestUpdateSite_UnchangedSubdomainSkipsConflictCheck(t *testing.T) {
	svc, mockSite := setupSiteServiceMocks(t)

	existing := models.Site{ID: 1, Name: "Acme", Subdomain: "acme"}
	mockSite.EXPECT().GetSiteByID(uint(1)).Return(existing, nil)
	mockSite.EXPECT().GetSiteByName("Acme Inc").Return(models.Site{}, gorm.ErrRecordNotFound)
	mockSite.EXPECT().SaveSite(gomock.Any()).Return(nil)

	actor := authz.Actor{ID: 1, Role: models.RoleSuperAdmin}
	updated, err := svc.UpdateSite(actor, 1, dto.UpdateSiteInput{Subdomain: ptrString("acme"), Name: ptrString("Acme Inc")})
	assert.NoError(t, err)
	assert.Equal(t, "Acme Inc", updated.Name)
	assert.Equal(t, "acme", updated.Subdomain)
}

func TestDeleteSite_MissingRow(t *testing.T) {
	svc, mockSite := setupSiteServiceMocks(t)

	mockSite.EXPECT().GetSiteByID(uint(9)).Return(models.Site{}, gorm.ErrRecordNotFound)

	actor := authz.Actor{ID: 1, Role: models.RoleSuperAdmin}
	assert.Equal(t, ErrNotFound, svc.DeleteSite(actor, 9))
}
