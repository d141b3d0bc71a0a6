package messaging

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"handyhelp/database/repository/memstore"
	"handyhelp/models"
	"handyhelp/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// tickingClock returns a clock that advances one minute per call.
func tickingClock() func() time.Time {
	t := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

type parties struct {
	user     *models.User
	handyman *models.Handyman
}

func newTestService(t *testing.T) (*DefaultMessagingService, *memstore.Store, parties) {
	t.Helper()
	utils.Logger = zap.NewNop()
	ctx := context.Background()
	store := memstore.New()

	u := &models.User{FirstName: "Ana", LastName: "Reyes", Username: "ana"}
	require.NoError(t, store.Users().Create(ctx, u))
	h := &models.Handyman{FirstName: "Jun", LastName: "Cruz", Username: "jun"}
	require.NoError(t, store.Handymen().Create(ctx, h))

	svc := &DefaultMessagingService{
		Chats:    store.Chats(),
		Users:    store.Users(),
		Handymen: store.Handymen(),
		Clock:    tickingClock(),
	}
	return svc, store, parties{user: u, handyman: h}
}

func send(t *testing.T, svc *DefaultMessagingService, p parties, booking, contents string, sender models.ChatSender) {
	t.Helper()
	_, err := svc.SendMessage(context.Background(), models.Anonymous, models.SendMessageRequest{
		Contents:   contents,
		HandymanID: p.handyman.ID.Hex(),
		UserID:     p.user.ID.Hex(),
		BookingID:  booking,
	}, sender)
	require.NoError(t, err)
}

func TestSendMessageRequiresAllFields(t *testing.T) {
	svc, store, p := newTestService(t)
	full := models.SendMessageRequest{
		Contents:   "hello",
		HandymanID: p.handyman.ID.Hex(),
		UserID:     p.user.ID.Hex(),
		BookingID:  "b1",
	}

	tests := []struct {
		name   string
		mutate func(*models.SendMessageRequest)
	}{
		{"contents", func(r *models.SendMessageRequest) { r.Contents = "   " }},
		{"handyman", func(r *models.SendMessageRequest) { r.HandymanID = "" }},
		{"user", func(r *models.SendMessageRequest) { r.UserID = "" }},
		{"booking", func(r *models.SendMessageRequest) { r.BookingID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := full
			tt.mutate(&req)
			_, err := svc.SendMessage(context.Background(), models.Anonymous, req, models.SenderUser)
			assert.ErrorIs(t, err, ErrMissingFields)
		})
	}
	assert.Empty(t, store.AllChats())
}

func TestSendMessageTagsSenderFromRoute(t *testing.T) {
	svc, store, p := newTestService(t)

	send(t, svc, p, "b1", "from the handyman", models.SenderHandyman)
	send(t, svc, p, "b1", "from the user", models.SenderUser)

	chats := store.AllChats()
	require.Len(t, chats, 2)
	assert.Equal(t, models.SenderHandyman, chats[0].Sender)
	assert.Equal(t, models.SenderUser, chats[1].Sender)
	assert.True(t, chats[1].DateSent.After(chats[0].DateSent))
}

func TestSendMessageStoreFailure(t *testing.T) {
	svc, store, p := newTestService(t)
	store.FailOn("chats.Insert", 1, errors.New("disk full"))

	_, err := svc.SendMessage(context.Background(), models.Anonymous, models.SendMessageRequest{
		Contents: "hi", HandymanID: p.handyman.ID.Hex(), UserID: p.user.ID.Hex(), BookingID: "b1",
	}, models.SenderUser)
	assert.Equal(t, 500, utils.StatusFor(err))
	assert.Equal(t, "Failed to send message", utils.PublicMessage(err, "Failed to send message"))
}

func TestSendMessageOwnership(t *testing.T) {
	svc, _, p := newTestService(t)
	svc.EnforceAuth = true
	req := models.SendMessageRequest{
		Contents: "hi", HandymanID: p.handyman.ID.Hex(), UserID: p.user.ID.Hex(), BookingID: "b1",
	}

	asHandyman := models.Principal{ID: p.handyman.ID.Hex(), Kind: models.KindHandyman, Authenticated: true}
	_, err := svc.SendMessage(context.Background(), asHandyman, req, models.SenderUser)
	assert.Equal(t, 403, utils.StatusFor(err))

	_, err = svc.SendMessage(context.Background(), asHandyman, req, models.SenderHandyman)
	assert.NoError(t, err)
}

func TestHandymanInboxGroupsThreads(t *testing.T) {
	svc, _, p := newTestService(t)

	send(t, svc, p, "A", "first on A", models.SenderHandyman)
	send(t, svc, p, "B", "only message on B", models.SenderUser)
	send(t, svc, p, "A", "second on A", models.SenderHandyman)
	send(t, svc, p, "A", "the newest message on booking A is long", models.SenderUser)

	rows, err := svc.HandymanInbox(context.Background(), p.handyman.ID.Hex())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A", rows[0].BookingID)
	assert.Equal(t, "the newest message on bo", rows[0].LastMessage[:24])
	assert.Len(t, []rune(rows[0].LastMessage), utils.InboxPreviewLength)
	assert.Equal(t, "Ana", rows[0].UserFirstName)
	assert.Equal(t, "Reyes", rows[0].UserLastName)

	assert.Equal(t, "B", rows[1].BookingID)
	assert.Equal(t, "only message on B", rows[1].LastMessage)
	assert.True(t, rows[0].DateSent.After(rows[1].DateSent))
}

func TestUserInboxReportsHandymanName(t *testing.T) {
	svc, _, p := newTestService(t)
	send(t, svc, p, "A", strings.Repeat("ñ", 30), models.SenderHandyman)

	rows, err := svc.UserInbox(context.Background(), p.user.ID.Hex())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jun", rows[0].UserFirstName)
	assert.Equal(t, "Cruz", rows[0].UserLastName)
	assert.Equal(t, strings.Repeat("ñ", utils.InboxPreviewLength), rows[0].LastMessage)
}

func TestInboxErrors(t *testing.T) {
	svc, store, p := newTestService(t)
	ctx := context.Background()

	_, err := svc.HandymanInbox(ctx, "")
	assert.Equal(t, "handymanId is required", utils.PublicMessage(err, ""))
	_, err = svc.UserInbox(ctx, "xyz")
	assert.Equal(t, "Invalid userId format", utils.PublicMessage(err, ""))

	_, err = svc.HandymanInbox(ctx, p.handyman.ID.Hex())
	assert.ErrorIs(t, err, ErrNoMessages)
	assert.Equal(t, 404, utils.StatusFor(err))

	store.FailOn("chats.ListByUser", 1, errors.New("cursor killed"))
	_, err = svc.UserInbox(ctx, p.user.ID.Hex())
	assert.Equal(t, 500, utils.StatusFor(err))
}

func TestInboxWithMissingCounterparty(t *testing.T) {
	svc, _, p := newTestService(t)
	_, err := svc.SendMessage(context.Background(), models.Anonymous, models.SendMessageRequest{
		Contents: "hi", HandymanID: p.handyman.ID.Hex(), UserID: "64b7f0c2a1b2c3d4e5f60718", BookingID: "A",
	}, models.SenderHandyman)
	require.NoError(t, err)

	rows, err := svc.HandymanInbox(context.Background(), p.handyman.ID.Hex())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].UserFirstName)
}

func TestConversationOrderAndDetails(t *testing.T) {
	svc, _, p := newTestService(t)
	ctx := context.Background()

	for i, text := range []string{"one", "two", "three", "four"} {
		sender := models.SenderUser
		if i%2 == 1 {
			sender = models.SenderHandyman
		}
		send(t, svc, p, "A", text, sender)
	}
	send(t, svc, p, "B", "elsewhere", models.SenderUser)

	asHandyman, err := svc.Conversation(ctx, "A", models.KindHandyman)
	require.NoError(t, err)
	require.Len(t, asHandyman, 4)
	for i, want := range []string{"one", "two", "three", "four"} {
		assert.Equal(t, want, asHandyman[i].Contents)
	}
	require.NotNil(t, asHandyman[0].UserDetails)
	assert.Equal(t, "Ana Reyes", asHandyman[0].UserDetails.Full())
	assert.Nil(t, asHandyman[0].HandymanDetails)

	asUser, err := svc.Conversation(ctx, "A", models.KindUser)
	require.NoError(t, err)
	require.NotNil(t, asUser[0].HandymanDetails)
	assert.Equal(t, "Jun", asUser[0].HandymanDetails.FirstName)
	assert.Nil(t, asUser[0].UserDetails)

	empty, err := svc.Conversation(ctx, "none", models.KindUser)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestConversationOmitsMissingParty(t *testing.T) {
	svc, _, p := newTestService(t)
	_, err := svc.SendMessage(context.Background(), models.Anonymous, models.SendMessageRequest{
		Contents: "hi", HandymanID: "gone", UserID: p.user.ID.Hex(), BookingID: "A",
	}, models.SenderUser)
	require.NoError(t, err)

	msgs, err := svc.Conversation(context.Background(), "A", models.KindUser)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Nil(t, msgs[0].HandymanDetails)
}
