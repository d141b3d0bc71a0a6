package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Identity endpoints
	RegisterUserHandler         gin.HandlerFunc
	AuthenticateUserHandler     gin.HandlerFunc
	RegisterHandymanHandler     gin.HandlerFunc
	AuthenticateHandymanHandler gin.HandlerFunc
	ListProfilesHandler         gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler     gin.HandlerFunc
	GetBookingHandler        gin.HandlerFunc
	RequestedProfilesHandler gin.HandlerFunc
	AcceptBookingHandler     gin.HandlerFunc
	DeclineBookingHandler    gin.HandlerFunc

	// Messaging endpoints
	HandymanInboxHandler        gin.HandlerFunc
	UserInboxHandler            gin.HandlerFunc
	HandymanConversationHandler gin.HandlerFunc
	UserConversationHandler     gin.HandlerFunc
	HandymanSendMessageHandler  gin.HandlerFunc
	UserSendMessageHandler      gin.HandlerFunc

	// Notification endpoints
	ListNotificationsHandler gin.HandlerFunc

	// Admin endpoints
	AdminHandler *AdminHandler
}

// NewHandlerBundle wires the handler structs into a bundle.
func NewHandlerBundle(u *UserHandler, h *HandymanHandler, b *BookingHandler, m *MessagingHandler, n *NotificationHandler, a *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		RegisterUserHandler:         u.RegisterUserHandler,
		AuthenticateUserHandler:     u.AuthenticateUserHandler,
		RegisterHandymanHandler:     h.RegisterHandymanHandler,
		AuthenticateHandymanHandler: h.AuthenticateHandymanHandler,
		ListProfilesHandler:         h.ListProfilesHandler,

		CreateBookingHandler:     b.CreateBookingHandler,
		GetBookingHandler:        b.GetBookingHandler,
		RequestedProfilesHandler: b.RequestedProfilesHandler,
		AcceptBookingHandler:     b.AcceptBookingHandler,
		DeclineBookingHandler:    b.DeclineBookingHandler,

		HandymanInboxHandler:        m.HandymanInboxHandler,
		UserInboxHandler:            m.UserInboxHandler,
		HandymanConversationHandler: m.HandymanConversationHandler,
		UserConversationHandler:     m.UserConversationHandler,
		HandymanSendMessageHandler:  m.HandymanSendMessageHandler,
		UserSendMessageHandler:      m.UserSendMessageHandler,

		ListNotificationsHandler: n.ListNotificationsHandler,

		AdminHandler: a,
	}
}
