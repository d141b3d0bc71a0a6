package repository

import (
	bookingRepo "handyhelp/database/repository/booking"
	chatRepo "handyhelp/database/repository/chat"
	handymanRepo "handyhelp/database/repository/handyman"
	notificationRepo "handyhelp/database/repository/notification"
	userRepo "handyhelp/database/repository/user"
	workflowRepo "handyhelp/database/repository/workflow"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories bundles every collection-backed repository of the application.
type Repositories struct {
	Users         userRepo.UserRepository
	Handymen      handymanRepo.HandymanRepository
	Bookings      bookingRepo.BookingRepository
	Chats         chatRepo.ChatRepository
	Notifications notificationRepo.NotificationRepository
	Workflows     workflowRepo.WorkflowRepository
}

// NewMongoRepositories builds all repositories on the given database and ensures their indexes.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:         userRepo.NewMongoUserRepo(db),
		Handymen:      handymanRepo.NewMongoHandymanRepo(db),
		Bookings:      bookingRepo.NewMongoBookingRepo(db),
		Chats:         chatRepo.NewMongoChatRepo(db),
		Notifications: notificationRepo.NewMongoNotificationRepo(db),
		Workflows:     workflowRepo.NewMongoWorkflowRepo(db),
	}
}
