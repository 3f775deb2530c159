package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/formhub/formhub-go/response"
	"github.com/formhub/formhub-go/services"
	"github.com/formhub/formhub-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type NotifyHandler struct {
	messages *services.MessageService
}

func NewNotifyHandler(messages *services.MessageService) *NotifyHandler {
	return &NotifyHandler{messages: messages}
}

type unreadEvent struct {
	Unread int64 `json:"unread"`
}

// Notifications streams the actor's unread message count over a
// websocket. A fresh count is pushed only when the value changes.
func (h *NotifyHandler) Notifications(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "websocket upgrade failed: " + err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	writeChan := make(chan []byte, 16)

	go func() {
		defer conn.Close()
		for {
			select {
			case msg := <-writeChan:
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go h.pollUnread(ctx, actor.ID, writeChan)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			cancel()
			break
		}
	}
}

func (h *NotifyHandler) pollUnread(ctx context.Context, userID uint, writeChan chan<- []byte) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	last := int64(-1)
	for {
		count, err := h.messages.CountUnread(userID)
		if err == nil && count != last {
			last = count
			if msg, err := json.Marshal(unreadEvent{Unread: count}); err == nil {
				select {
				case writeChan <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
