package repositories

type Repos struct {
	User    UserRepo
	Site    SiteRepo
	Form    FormRepo
	Message MessageRepo
	Ticket  TicketRepo
}

func New() *Repos {
	return &Repos{
		User:    &DBUserRepo{},
		Site:    &DBSiteRepo{},
		Form:    &DBFormRepo{},
		Message: &DBMessageRepo{},
		Ticket:  &DBTicketRepo{},
	}
}
