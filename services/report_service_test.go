package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/models"
	"github.com/formhub/formhub-go/repositories"
	"github.com/formhub/formhub-go/repositories/mock_repositories"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func setupReportServiceMocks(t *testing.T) (*ReportService, *mock_repositories.MockFormRepo, *mock_repositories.MockSiteRepo, *mock_repositories.MockUserRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockForm := mock_repositories.NewMockFormRepo(ctrl)
	mockSite := mock_repositories.NewMockSiteRepo(ctrl)
	mockUser := mock_repositories.NewMockUserRepo(ctrl)
	repos := &repositories.Repos{
		User: mockUser,
		Site: mockSite,
		Form: mockForm,
	}
	svc := NewReportService(repos, &fakeStore{})
	return svc, mockForm, mockSite, mockUser
}

func reportTestForm(t *testing.T) models.Form {
	t.Helper()
	fields := []models.FormField{{ID: "name", Label: "Name", Type: models.FieldTypeText}}
	fieldsJSON, err := json.Marshal(fields)
	assert.NoError(t, err)
	return models.Form{ID: 1, Title: "Survey", Fields: datatypes.JSON(fieldsJSON), SiteID: 1}
}

func TestGenerateResponseReport_StoresUnderPdfs(t *testing.T) {
	svc, mockForm, mockSite, mockUser := setupReportServiceMocks(t)

	form := reportTestForm(t)
	dataJSON, _ := json.Marshal(map[string]any{"name": "Alice"})
	resp := models.FormResponse{ID: 7, FormID: 1, UserID: 3, Data: datatypes.JSON(dataJSON)}

	mockForm.EXPECT().GetFormByID(uint(1)).Return(form, nil)
	mockSite.EXPECT().GetSiteByID(uint(1)).Return(models.Site{ID: 1, Name: "Acme"}, nil)
	mockForm.EXPECT().GetResponse(uint(1), uint(7)).Return(resp, nil)
	mockUser.EXPECT().GetUserByID(uint(3)).Return(models.User{ID: 3, Username: "alice", Email: "alice@acme.test"}, nil)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	path, err := svc.GenerateResponseReport(context.Background(), actor, 1, 7)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(path, "pdfs/form_response_7_"))
}

func TestGenerateSummaryReport_PlainUserForbidden(t *testing.T) {
	svc, mockForm, _, _ := setupReportServiceMocks(t)

	mockForm.EXPECT().GetFormByID(uint(1)).Return(reportTestForm(t), nil)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	_, err := svc.GenerateSummaryReport(context.Background(), actor, 1)
	assert.Equal(t, ErrForbidden, err)
}

func TestGenerateSummaryReport_Success(t *testing.T) {
	svc, mockForm, mockSite, _ := setupReportServiceMocks(t)

	form := reportTestForm(t)
	dataJSON, _ := json.Marshal(map[string]any{"name": "Alice"})
	responses := []models.FormResponse{{ID: 7, FormID: 1, UserID: 3, Data: datatypes.JSON(dataJSON)}}

	mockForm.EXPECT().GetFormByID(uint(1)).Return(form, nil)
	mockSite.EXPECT().GetSiteByID(uint(1)).Return(models.Site{ID: 1, Name: "Acme"}, nil)
	mockForm.EXPECT().ListResponses(uint(1)).Return(responses, nil)

	actor := authz.Actor{ID: 1, Role: models.RoleSuperAdmin}
	path, err := svc.GenerateSummaryReport(context.Background(), actor, 1)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(path, "pdfs/form_summary_1_"))
}
