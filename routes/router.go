package routes

import (
	"github.com/formhub/formhub-go/config"
	"github.com/formhub/formhub-go/handlers"
	"github.com/formhub/formhub-go/middleware"
	"github.com/formhub/formhub-go/repositories"
	"github.com/formhub/formhub-go/services"
	"github.com/formhub/formhub-go/storage"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, store storage.Store) {

	// init
	repos_instance := repositories.New()
	services_instance := services.New(repos_instance, store)
	handlers_instance := handlers.New(services_instance)

	// setup
	api := r.Group("/api")
	api.POST("/login", handlers_instance.Auth.Login)
	api.POST("/register", middleware.OptionalJWT(), handlers_instance.Auth.Register)

	if config.StorageBackend == "local" {
		r.Static("/uploads", config.UploadDir)
	}

	auth := api.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/me", handlers_instance.Auth.Me)
		auth.GET("/ws/notifications", handlers_instance.Notify.Notifications)

		sites := auth.Group("/sites")
		{
			sites.GET("", handlers_instance.Site.ListSites)
			sites.GET("/:id", handlers_instance.Site.GetSiteByID)
			sites.POST("", handlers_instance.Site.CreateSite)
			sites.PUT("/:id", handlers_instance.Site.UpdateSite)
			sites.DELETE("/:id", handlers_instance.Site.DeleteSite)
		}
		users := auth.Group("/users")
		{
			users.GET("", handlers_instance.User.ListUsers)
			users.GET("/:id", handlers_instance.User.GetUserByID)
			users.POST("", handlers_instance.User.CreateUser)
			users.PUT("/:id", handlers_instance.User.UpdateUser)
			users.DELETE("/:id", handlers_instance.User.DeleteUser)
		}
		forms := auth.Group("/forms")
		{
			forms.GET("", handlers_instance.Form.ListForms)
			forms.GET("/:id", handlers_instance.Form.GetFormByID)
			forms.POST("", handlers_instance.Form.CreateForm)
			forms.PUT("/:id", handlers_instance.Form.UpdateForm)
			forms.DELETE("/:id", handlers_instance.Form.DeleteForm)

			forms.POST("/:id/submit", handlers_instance.Form.SubmitResponse)
			forms.GET("/:id/responses", handlers_instance.Form.ListResponses)
			forms.POST("/:id/upload", handlers_instance.Form.UploadFile)

			forms.POST("/:id/responses/:responseId/report", handlers_instance.Form.GenerateResponseReport)
			forms.POST("/:id/report", handlers_instance.Form.GenerateSummaryReport)
		}
		messages := auth.Group("/messages")
		{
			messages.GET("", handlers_instance.Message.ListMessages)
			messages.GET("/unread-count", handlers_instance.Message.CountUnread)
			messages.GET("/:id", handlers_instance.Message.GetMessageByID)
			messages.POST("", handlers_instance.Message.SendMessage)
			messages.POST("/:id/attachment", handlers_instance.Message.AddAttachment)
			messages.DELETE("/:id", handlers_instance.Message.DeleteMessage)
		}
		tickets := auth.Group("/tickets")
		{
			tickets.GET("", handlers_instance.Ticket.ListTickets)
			tickets.GET("/:id", handlers_instance.Ticket.GetTicketByID)
			tickets.POST("", handlers_instance.Ticket.CreateTicket)
			tickets.PUT("/:id", handlers_instance.Ticket.UpdateTicket)
			tickets.DELETE("/:id", handlers_instance.Ticket.DeleteTicket)

			tickets.GET("/:id/comments", handlers_instance.Ticket.ListComments)
			tickets.POST("/:id/comments", handlers_instance.Ticket.AddComment)
		}
	}
}
