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
)

func setupTicketServiceMocks(t *testing.T) (*TicketService, *mock_repositories.MockTicketRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockTicket := mock_repositories.NewMockTicketRepo(ctrl)
	repos := &repositories.Repos{
		Ticket: mockTicket,
	}
	svc := NewTicketService(repos)
	return svc, mockTicket
}

func ptrStatus(s models.TicketStatus) *models.TicketStatus       { return &s }
func ptrPriority(p models.TicketPriority) *models.TicketPriority { return &p }

// --------------------- CreateTicket ---------------------
func TestCreateTicket_PlainUser(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	mockTicket.EXPECT().CreateTicket(gomock.Any()).DoAndReturn(func(tk *models.Ticket) error {
		tk.ID = 1
		return nil
	})

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	input := dto.CreateTicketInput{Title: "Broken form", Description: "The survey 404s", Priority: models.TicketPriorityHigh}
	ticket, err := svc.CreateTicket(actor, input)
	assert.NoError(t, err)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, uint(3), ticket.CreatedByID)
	assert.Equal(t, uint(1), ticket.SiteID)
}

func TestCreateTicket_SuperAdminHasNoSite(t *testing.T) {
	svc, _ := setupTicketServiceMocks(t)

	actor := authz.Actor{ID: 1, Role: models.RoleSuperAdmin}
	input := dto.CreateTicketInput{Title: "x", Description: "y", Priority: models.TicketPriorityLow}
	_, err := svc.CreateTicket(actor, input)
	assert.Equal(t, ErrSiteRequired, err)
}

func TestCreateTicket_BadPriority(t *testing.T) {
	svc, _ := setupTicketServiceMocks(t)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	input := dto.CreateTicketInput{Title: "x", Description: "y", Priority: models.TicketPriority("urgent")}
	_, err := svc.CreateTicket(actor, input)
	assert.Equal(t, ErrValidation, err)
}

// --------------------- ListTickets ---------------------
func TestListTickets_RoleScopes(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	mockTicket.EXPECT().ListTickets().Return([]models.Ticket{}, nil)
	_, err := svc.ListTickets(authz.Actor{ID: 1, Role: models.RoleSuperAdmin})
	assert.NoError(t, err)

	mockTicket.EXPECT().ListTicketsBySite(uint(1)).Return([]models.Ticket{}, nil)
	_, err = svc.ListTickets(authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)})
	assert.NoError(t, err)

	mockTicket.EXPECT().ListTicketsByCreator(uint(3)).Return([]models.Ticket{}, nil)
	_, err = svc.ListTickets(authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)})
	assert.NoError(t, err)
}

// --------------------- GetTicket ---------------------
func TestGetTicket_OtherUsersTicketHidden(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	ticket := models.Ticket{ID: 1, SiteID: 1, CreatedByID: 4}
	mockTicket.EXPECT().GetTicketByID(uint(1)).Return(ticket, nil)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	_, err := svc.GetTicket(actor, 1)
	assert.Equal(t, ErrNotFound, err)
}

// --------------------- UpdateTicket ---------------------
func TestUpdateTicket_PartialMergeLeavesOtherFields(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	existing := models.Ticket{
		ID:          1,
		Title:       "Broken form",
		Description: "The survey 404s",
		Status:      models.TicketStatusOpen,
		Priority:    models.TicketPriorityHigh,
		CreatedByID: 3,
		SiteID:      1,
	}
	mockTicket.EXPECT().GetTicketByID(uint(1)).Return(existing, nil)
	mockTicket.EXPECT().SaveTicket(gomock.Any()).Return(nil)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	updated, err := svc.UpdateTicket(actor, 1, dto.UpdateTicketInput{Status: ptrStatus(models.TicketStatusResolved)})
	assert.NoError(t, err)
	assert.Equal(t, models.TicketStatusResolved, updated.Status)
	assert.Equal(t, "Broken form", updated.Title)
	assert.Equal(t, models.TicketPriorityHigh, updated.Priority)
}

func TestUpdateTicket_InvalidStatus(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	existing := models.Ticket{ID: 1, CreatedByID: 3, SiteID: 1}
	mockTicket.EXPECT().GetTicketByID(uint(1)).Return(existing, nil)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	_, err := svc.UpdateTicket(actor, 1, dto.UpdateTicketInput{Status: ptrStatus(models.TicketStatus("closed"))})
	assert.Equal(t, ErrValidation, err)
}

func TestUpdateTicket_CreatorMayUpdateOwn(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	existing := models.Ticket{ID: 1, CreatedByID: 3, SiteID: 1, Priority: models.TicketPriorityLow}
	mockTicket.EXPECT().GetTicketByID(uint(1)).Return(existing, nil)
	mockTicket.EXPECT().SaveTicket(gomock.Any()).Return(nil)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	updated, err := svc.UpdateTicket(actor, 1, dto.UpdateTicketInput{Priority: ptrPriority(models.TicketPriorityMedium)})
	assert.NoError(t, err)
	assert.Equal(t, models.TicketPriorityMedium, updated.Priority)
}

// --------------------- DeleteTicket ---------------------
func TestDeleteTicket_CommentsGoFirst(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	existing := models.Ticket{ID: 1, CreatedByID: 3, SiteID: 1}
	mockTicket.EXPECT().GetTicketByID(uint(1)).Return(existing, nil)
	gomock.InOrder(
		mockTicket.EXPECT().DeleteComments(uint(1)).Return(nil),
		mockTicket.EXPECT().DeleteTicket(uint(1)).Return(nil),
	)

	actor := authz.Actor{ID: 2, Role: models.RoleSiteAdmin, SiteID: ptrUint(1)}
	assert.NoError(t, svc.DeleteTicket(actor, 1))
}

func TestDeleteTicket_CreatorForbidden(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	existing := models.Ticket{ID: 1, CreatedByID: 3, SiteID: 1}
	mockTicket.EXPECT().GetTicketByID(uint(1)).Return(existing, nil)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	assert.Equal(t, ErrForbidden, svc.DeleteTicket(actor, 1))
}

// --------------------- Comments ---------------------
func TestAddComment_GatedByTicketVisibility(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	other := models.Ticket{ID: 1, CreatedByID: 4, SiteID: 1}
	mockTicket.EXPECT().GetTicketByID(uint(1)).Return(other, nil)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	_, err := svc.AddComment(actor, 1, dto.CreateTicketCommentInput{Content: "me too"})
	assert.Equal(t, ErrNotFound, err)
}

func TestAddComment_OnOwnTicket(t *testing.T) {
	svc, mockTicket := setupTicketServiceMocks(t)

	own := models.Ticket{ID: 1, CreatedByID: 3, SiteID: 1}
	mockTicket.EXPECT().GetTicketByID(uint(1)).Return(own, nil)
	mockTicket.EXPECT().CreateComment(gomock.Any()).Return(nil)

	actor := authz.Actor{ID: 3, Role: models.RoleUser, SiteID: ptrUint(1)}
	comment, err := svc.AddComment(actor, 1, dto.CreateTicketCommentInput{Content: "still broken"})
	assert.NoError(t, err)
	assert.Equal(t, uint(3), comment.UserID)
	assert.Equal(t, uint(1), comment.TicketID)
}
