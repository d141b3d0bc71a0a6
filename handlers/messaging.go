package handlers

import (
	"net/http"

	"handyhelp/middleware"
	"handyhelp/models"
	"handyhelp/services/messaging"
	"handyhelp/utils"

	"github.com/gin-gonic/gin"
)

// MessagingHandler serves the chat routes for both sides of a booking.
type MessagingHandler struct {
	Service messaging.MessagingService
}

func NewMessagingHandler(s messaging.MessagingService) *MessagingHandler {
	return &MessagingHandler{Service: s}
}

// HandymanInboxHandler handles GET /api/messages?handymanId=.
func (h *MessagingHandler) HandymanInboxHandler(c *gin.Context) {
	rows, err := h.Service.HandymanInbox(c.Request.Context(), c.Query("handymanId"))
	h.writeInbox(c, rows, err)
}

// UserInboxHandler handles GET /api/user-messages?userId=.
func (h *MessagingHandler) UserInboxHandler(c *gin.Context) {
	rows, err := h.Service.UserInbox(c.Request.Context(), c.Query("userId"))
	h.writeInbox(c, rows, err)
}

func (h *MessagingHandler) writeInbox(c *gin.Context, rows []models.InboxRow, err error) {
	if err != nil {
		// Client errors use "message", server errors use "error".
		key := "message"
		if utils.KindOf(err) == utils.KindStore {
			key = "error"
		}
		respondError(c, err, key, "Error fetching messages")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// HandymanConversationHandler handles GET /api/conversation/:bookingId.
func (h *MessagingHandler) HandymanConversationHandler(c *gin.Context) {
	h.conversation(c, models.KindHandyman)
}

// UserConversationHandler handles GET /api/user-conversation/:bookingId.
func (h *MessagingHandler) UserConversationHandler(c *gin.Context) {
	h.conversation(c, models.KindUser)
}

func (h *MessagingHandler) conversation(c *gin.Context, view models.PartyKind) {
	msgs, err := h.Service.Conversation(c.Request.Context(), c.Param("bookingId"), view)
	if err != nil {
		respondError(c, err, "error", "Error fetching conversation")
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// HandymanSendMessageHandler handles POST /api/send-message.
func (h *MessagingHandler) HandymanSendMessageHandler(c *gin.Context) {
	h.send(c, models.SenderHandyman)
}

// UserSendMessageHandler handles POST /api/send-message-user.
func (h *MessagingHandler) UserSendMessageHandler(c *gin.Context) {
	h.send(c, models.SenderUser)
}

func (h *MessagingHandler) send(c *gin.Context, sender models.ChatSender) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	msg, err := h.Service.SendMessage(c.Request.Context(), middleware.PrincipalFrom(c), req, sender)
	if err != nil {
		respondError(c, err, "error", "Failed to send message")
		return
	}
	c.JSON(http.StatusOK, msg)
}
