package handlers

import (
	"net/http"

	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/response"
	"github.com/formhub/formhub-go/services"
	"github.com/formhub/formhub-go/utils"
	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	svc *services.MessageService
}

func NewMessageHandler(svc *services.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// SendMessage godoc
// @Summary Send a message to another user
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} models.Message
// @Failure 403 {object} response.ErrorResponse "Recipient not allowed for sender role"
// @Router /messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.CreateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	msg, err := h.svc.SendMessage(actor, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListMessages returns the inbox by default; ?sent=true returns the
// actor's sent messages instead.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	received := c.Query("sent") != "true"
	skip := utils.ParseQueryInt(c, "skip", 0)
	limit := utils.ParseQueryInt(c, "limit", 100)

	messages, err := h.svc.ListMessages(actor, received, skip, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) GetMessageByID(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid message id"})
		return
	}

	msg, err := h.svc.GetMessage(actor, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) CountUnread(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	count, err := h.svc.CountUnread(actor.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *MessageHandler) AddAttachment(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid message id"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "missing file"})
		return
	}

	attachment, err := h.svc.AddAttachment(c.Request.Context(), actor, id, header)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid message id"})
		return
	}

	if err := h.svc.DeleteMessage(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
