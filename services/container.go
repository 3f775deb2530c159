package services

import (
	"github.com/formhub/formhub-go/repositories"
	"github.com/formhub/formhub-go/storage"
)

type Services struct {
	User    *UserService
	Site    *SiteService
	Form    *FormService
	Message *MessageService
	Ticket  *TicketService
	Report  *ReportService
}

func New(repos *repositories.Repos, store storage.Store) *Services {
	return &Services{
		User:    NewUserService(repos),
		Site:    NewSiteService(repos),
		Form:    NewFormService(repos, store),
		Message: NewMessageService(repos, store),
		Ticket:  NewTicketService(repos),
		Report:  NewReportService(repos, store),
	}
}
