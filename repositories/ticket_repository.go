package repositories

import (
	"github.com/formhub/formhub-go/db"
	"github.com/formhub/formhub-go/models"
)

type TicketRepo interface {
	CreateTicket(ticket *models.Ticket) error
	GetTicketByID(id uint) (models.Ticket, error)
	ListTickets() ([]models.Ticket, error)
	ListTicketsBySite(siteID uint) ([]models.Ticket, error)
	ListTicketsByCreator(userID uint) ([]models.Ticket, error)
	SaveTicket(ticket *models.Ticket) error
	DeleteTicket(id uint) error

	CreateComment(comment *models.TicketComment) error
	ListComments(ticketID uint) ([]models.TicketComment, error)
	DeleteComments(ticketID uint) error
}

type DBTicketRepo struct{}

func (r *DBTicketRepo) CreateTicket(ticket *models.Ticket) error {
	return db.DB.Create(ticket).Error
}

func (r *DBTicketRepo) GetTicketByID(id uint) (models.Ticket, error) {
	var ticket models.Ticket
	err := db.DB.Preload("CreatedBy").First(&ticket, id).Error
	return ticket, err
}

func (r *DBTicketRepo) ListTickets() ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := db.DB.Preload("CreatedBy").Order("created_at desc").Find(&tickets).Error
	return tickets, err
}

func (r *DBTicketRepo) ListTicketsBySite(siteID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := db.DB.Where("site_id = ?", siteID).
		Preload("CreatedBy").Order("created_at desc").Find(&tickets).Error
	return tickets, err
}

func (r *DBTicketRepo) ListTicketsByCreator(userID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := db.DB.Where("created_by_id = ?", userID).
		Order("created_at desc").Find(&tickets).Error
	return tickets, err
}

func (r *DBTicketRepo) SaveTicket(ticket *models.Ticket) error {
	return db.DB.Save(ticket).Error
}

func (r *DBTicketRepo) DeleteTicket(id uint) error {
	return db.DB.Delete(&models.Ticket{}, id).Error
}

func (r *DBTicketRepo) CreateComment(comment *models.TicketComment) error {
	return db.DB.Create(comment).Error
}

func (r *DBTicketRepo) ListComments(ticketID uint) ([]models.TicketComment, error) {
	var comments []models.TicketComment
	err := db.DB.Where("ticket_id = ?", ticketID).
		Preload("User").Order("created_at").Find(&comments).Error
	return comments, err
}

func (r *DBTicketRepo) DeleteComments(ticketID uint) error {
	return db.DB.Where("ticket_id = ?", ticketID).Delete(&models.TicketComment{}).Error
}
