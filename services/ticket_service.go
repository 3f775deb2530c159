package services

import (
	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/models"
	"github.com/formhub/formhub-go/repositories"
)

type TicketService struct {
	repos *repositories.Repos
}

func NewTicketService(repos *repositories.Repos) *TicketService {
	return &TicketService{repos: repos}
}

// CreateTicket files a ticket in the actor's own site. Any site member
// may file; super admins have no site to file into.
func (s *TicketService) CreateTicket(actor authz.Actor, input dto.CreateTicketInput) (models.Ticket, error) {
	if actor.SiteID == nil {
		return models.Ticket{}, ErrSiteRequired
	}
	if !input.Priority.Valid() {
		return models.Ticket{}, ErrValidation
	}

	d := authz.Can(actor, authz.ActionCreate, authz.Target{Kind: authz.KindTicket, SiteID: actor.SiteID})
	if err := decisionErr(d); err != nil {
		return models.Ticket{}, err
	}

	ticket := models.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TicketStatusOpen,
		Priority:    input.Priority,
		CreatedByID: actor.ID,
		SiteID:      *actor.SiteID,
	}
	if err := s.repos.Ticket.CreateTicket(&ticket); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// ListTickets applies the role scope: super admin sees everything,
// site admins their site, users their own filings.
func (s *TicketService) ListTickets(actor authz.Actor) ([]models.Ticket, error) {
	switch actor.Role {
	case models.RoleSuperAdmin:
		return s.repos.Ticket.ListTickets()
	case models.RoleSiteAdmin:
		return s.repos.Ticket.ListTicketsBySite(*actor.SiteID)
	default:
		return s.repos.Ticket.ListTicketsByCreator(actor.ID)
	}
}

func (s *TicketService) GetTicket(actor authz.Actor, id uint) (models.Ticket, error) {
	ticket, err := s.repos.Ticket.GetTicketByID(id)
	if err != nil {
		return models.Ticket{}, ErrNotFound
	}

	d := authz.Can(actor, authz.ActionRead, authz.Target{
		Kind:    authz.KindTicket,
		SiteID:  &ticket.SiteID,
		OwnerID: ticket.CreatedByID,
	})
	if err := decisionErr(d); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// UpdateTicket merges only the fields present in the request; absent
// fields keep their stored values. Status transitions are
// unconstrained.
func (s *TicketService) UpdateTicket(actor authz.Actor, id uint, input dto.UpdateTicketInput) (models.Ticket, error) {
	ticket, err := s.repos.Ticket.GetTicketByID(id)
	if err != nil {
		return models.Ticket{}, ErrNotFound
	}

	d := authz.Can(actor, authz.ActionUpdate, authz.Target{
		Kind:    authz.KindTicket,
		SiteID:  &ticket.SiteID,
		OwnerID: ticket.CreatedByID,
	})
	if err := decisionErr(d); err != nil {
		return models.Ticket{}, err
	}

	if input.Title != nil {
		ticket.Title = *input.Title
	}
	if input.Description != nil {
		ticket.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return models.Ticket{}, ErrValidation
		}
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return models.Ticket{}, ErrValidation
		}
		ticket.Priority = *input.Priority
	}

	if err := s.repos.Ticket.SaveTicket(&ticket); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// DeleteTicket removes the ticket and its comments. Comments cascade
// with the parent.
func (s *TicketService) DeleteTicket(actor authz.Actor, id uint) error {
	ticket, err := s.repos.Ticket.GetTicketByID(id)
	if err != nil {
		return ErrNotFound
	}

	d := authz.Can(actor, authz.ActionDelete, authz.Target{
		Kind:    authz.KindTicket,
		SiteID:  &ticket.SiteID,
		OwnerID: ticket.CreatedByID,
	})
	if err := decisionErr(d); err != nil {
		return err
	}

	if err := s.repos.Ticket.DeleteComments(id); err != nil {
		return err
	}
	return s.repos.Ticket.DeleteTicket(id)
}

func (s *TicketService) AddComment(actor authz.Actor, ticketID uint, input dto.CreateTicketCommentInput) (models.TicketComment, error) {
	if _, err := s.GetTicket(actor, ticketID); err != nil {
		return models.TicketComment{}, err
	}

	comment := models.TicketComment{
		Content:  input.Content,
		TicketID: ticketID,
		UserID:   actor.ID,
	}
	if err := s.repos.Ticket.CreateComment(&comment); err != nil {
		return models.TicketComment{}, err
	}
	return comment, nil
}

func (s *TicketService) ListComments(actor authz.Actor, ticketID uint) ([]models.TicketComment, error) {
	if _, err := s.GetTicket(actor, ticketID); err != nil {
		return nil, err
	}
	return s.repos.Ticket.ListComments(ticketID)
}
