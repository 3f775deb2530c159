package handlers

import (
	"github.com/formhub/formhub-go/services"
)

type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Site    *SiteHandler
	Form    *FormHandler
	Message *MessageHandler
	Ticket  *TicketHandler
	Notify  *NotifyHandler
}

func New(svc *services.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(svc.User),
		User:    NewUserHandler(svc.User),
		Site:    NewSiteHandler(svc.Site),
		Form:    NewFormHandler(svc.Form, svc.Report),
		Message: NewMessageHandler(svc.Message),
		Ticket:  NewTicketHandler(svc.Ticket),
		Notify:  NewNotifyHandler(svc.Message),
	}
}
