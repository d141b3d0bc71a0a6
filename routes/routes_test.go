package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"handyhelp/config"
	"handyhelp/database/repository/memstore"
	"handyhelp/handlers"
	"handyhelp/services/booking"
	"handyhelp/services/handyman"
	"handyhelp/services/messaging"
	"handyhelp/services/notification"
	"handyhelp/services/user"
	"handyhelp/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(t *testing.T, opts Options) (*gin.Engine, *memstore.Store) {
	t.Helper()
	utils.Logger = zap.NewNop()
	config.AppConfig.JWTSecret = "routes-secret"

	store := memstore.New()
	userService := &user.DefaultUserService{Repo: store.Users(), TokenTTL: time.Hour}
	handymanService := &handyman.DefaultHandymanService{Repo: store.Handymen(), TokenTTL: time.Hour}
	notificationService := notification.NewDefaultNotificationService(store.Notifications(), store.Handymen())
	bookingService := &booking.DefaultBookingService{
		Bookings:      store.Bookings(),
		Users:         store.Users(),
		Chats:         store.Chats(),
		Notifications: notificationService,
		Workflows:     store.Workflows(),
		EnforceAuth:   opts.EnforceAuth,
	}
	messagingService := &messaging.DefaultMessagingService{
		Chats:       store.Chats(),
		Users:       store.Users(),
		Handymen:    store.Handymen(),
		EnforceAuth: opts.EnforceAuth,
	}

	hb := handlers.NewHandlerBundle(
		handlers.NewUserHandler(userService),
		handlers.NewHandymanHandler(handymanService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewMessagingHandler(messagingService),
		handlers.NewNotificationHandler(notificationService),
		handlers.NewAdminHandler(userService, handymanService),
	)

	r := gin.New()
	RegisterRoutes(r, hb, opts)
	return r, store
}

func call(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

var userBody = map[string]any{
	"fname":              "Ana",
	"lname":              "Reyes",
	"username":           "ana",
	"password":           "pa55word",
	"dateOfBirth":        "1990-04-12",
	"contact":            "09171234567",
	"address":            "12 Mabini St",
	"dataPrivacyConsent": true,
}

var handymanBody = map[string]any{
	"fname":          "Jun",
	"lname":          "Cruz",
	"username":       "jun",
	"password":       "toolbox",
	"dateOfBirth":    "1985-09-30",
	"contact":        "09181112222",
	"address":        "4 Rizal Ave",
	"specialization": []string{"plumbing"},
}

type session struct {
	token string
	id    string
}

func login(t *testing.T, r http.Handler, path, key string, creds map[string]any) session {
	t.Helper()
	w := call(r, http.MethodPost, path, creds, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	decode(t, w, &resp)
	profile := resp[key].(map[string]any)
	idKey := "_id"
	if key == "handyman" {
		idKey = "id"
	}
	return session{token: resp["token"].(string), id: profile[idKey].(string)}
}

func signUpBoth(t *testing.T, r http.Handler) (session, session) {
	t.Helper()
	require.Equal(t, http.StatusCreated, call(r, http.MethodPost, "/register", userBody, "").Code)
	require.Equal(t, http.StatusCreated, call(r, http.MethodPost, "/register-handyman", handymanBody, "").Code)
	u := login(t, r, "/login-user", "user", map[string]any{"username": "ana", "password": "pa55word"})
	h := login(t, r, "/login-handyman", "handyman", map[string]any{"username": "jun", "password": "toolbox"})
	return u, h
}

func TestRoot(t *testing.T) {
	r, _ := newServer(t, Options{})
	w := call(r, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello, World!", w.Body.String())
}

func TestRegistrationResponsesArePlainText(t *testing.T) {
	r, _ := newServer(t, Options{})

	w := call(r, http.MethodPost, "/register", userBody, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", w.Body.String())

	w = call(r, http.MethodPost, "/register", userBody, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation error")

	w = call(r, http.MethodPost, "/register-handyman", handymanBody, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Handyman registered successfully", w.Body.String())
}

func TestLoginFailure(t *testing.T) {
	r, _ := newServer(t, Options{})
	require.Equal(t, http.StatusCreated, call(r, http.MethodPost, "/register", userBody, "").Code)

	w := call(r, http.MethodPost, "/login-user", map[string]any{"username": "ana", "password": "wrong"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid username or password"}`, w.Body.String())

	w = call(r, http.MethodPost, "/login-handyman", map[string]any{"username": "ana", "password": "pa55word"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingAcceptFlow(t *testing.T) {
	r, _ := newServer(t, Options{})
	u, h := signUpBoth(t, r)

	w := call(r, http.MethodPost, "/api/bookings", map[string]any{
		"userId":         u.id,
		"handymanId":     h.id,
		"serviceDetails": "Leaking sink",
		"dateOfService":  "2024-06-15",
		"urgentRequest":  true,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created map[string]string
	decode(t, w, &created)
	bookingID := created["bookingId"]
	assert.Equal(t, "Booking request saved successfully", created["message"])

	w = call(r, http.MethodGet, "/requested-profiles?handymanId="+h.id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var profiles []map[string]any
	decode(t, w, &profiles)
	require.Len(t, profiles, 1)
	assert.Equal(t, "June 15, 2024", profiles[0]["dateOfService"])
	assert.Equal(t, "Ana Reyes", profiles[0]["name"])

	accept := map[string]any{
		"bookingId":      bookingID,
		"handymanId":     h.id,
		"userId":         u.id,
		"serviceDetails": "Leaking sink",
		"name":           "Ana Reyes",
		"contact":        "09171234567",
		"address":        "12 Mabini St",
		"dateOfService":  "June 15, 2024",
	}
	w = call(r, http.MethodPost, "/accept-booking", accept, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodPost, "/decline-booking", map[string]any{
		"bookingId": bookingID, "handymanId": h.id, "userId": u.id,
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Booking is already accepted"}`, w.Body.String())

	w = call(r, http.MethodGet, "/api/bookings/"+bookingID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var b map[string]any
	decode(t, w, &b)
	assert.Equal(t, "accepted", b["status"])

	w = call(r, http.MethodGet, "/api/user-messages?userId="+u.id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var inbox []map[string]any
	decode(t, w, &inbox)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Jun", inbox[0]["userFirstName"])
	assert.Equal(t, "This is an auto-generate", inbox[0]["last_message"].(string)[:24])

	w = call(r, http.MethodGet, "/api/user-conversation/"+bookingID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var conversation []map[string]any
	decode(t, w, &conversation)
	require.Len(t, conversation, 1)
	assert.Equal(t, "handy", conversation[0]["sender"])
	assert.NotNil(t, conversation[0]["handyMan_details"])

	w = call(r, http.MethodGet, "/api/notifications/"+u.id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var notes []map[string]any
	decode(t, w, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, "Accepted your booking!", notes[0]["title"])
	assert.Equal(t, "Jun Cruz Accepted your booking!", notes[0]["description"])
}

func TestAcceptBookingMissingFields(t *testing.T) {
	r, _ := newServer(t, Options{})
	w := call(r, http.MethodPost, "/accept-booking", map[string]any{"bookingId": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())
}

func TestMessagingRoutes(t *testing.T) {
	r, store := newServer(t, Options{})
	u, h := signUpBoth(t, r)

	w := call(r, http.MethodGet, "/api/messages?handymanId="+h.id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"No messages found"}`, w.Body.String())

	w = call(r, http.MethodGet, "/api/messages", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"handymanId is required"}`, w.Body.String())

	w = call(r, http.MethodPost, "/api/send-message", map[string]any{
		"contents": "hi", "handyman_id": h.id, "user_id": u.id,
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())
	assert.Empty(t, store.AllChats())

	w = call(r, http.MethodPost, "/api/send-message-user", map[string]any{
		"contents": "Are you free on Monday?", "handyman_id": h.id, "user_id": u.id, "booking_id": "b1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodGet, "/api/messages?handymanId="+h.id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var inbox []map[string]any
	decode(t, w, &inbox)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Ana", inbox[0]["userFirstName"])
	assert.Equal(t, "Are you free on Monday?", inbox[0]["last_message"])

	w = call(r, http.MethodGet, "/api/conversation/b1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var conversation []map[string]any
	decode(t, w, &conversation)
	require.Len(t, conversation, 1)
	assert.Equal(t, "user", conversation[0]["sender"])
	details := conversation[0]["user_details"].(map[string]any)
	assert.Equal(t, "Reyes", details["lname"])
}

func TestNotificationsFailureIsPlainText(t *testing.T) {
	r, store := newServer(t, Options{})
	store.FailOn("notifications.ListByUser", 1, assert.AnError)

	w := call(r, http.MethodGet, "/api/notifications/u1", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), assert.AnError.Error())
}

func TestEnforcedAuth(t *testing.T) {
	r, _ := newServer(t, Options{EnforceAuth: true})
	u, h := signUpBoth(t, r)

	req := map[string]any{"userId": u.id, "handymanId": h.id, "serviceDetails": "Painting"}

	w := call(r, http.MethodPost, "/api/bookings", req, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, http.MethodPost, "/api/bookings", req, h.token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodPost, "/api/bookings", req, u.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created map[string]string
	decode(t, w, &created)

	decline := map[string]any{"bookingId": created["bookingId"], "handymanId": h.id, "userId": u.id}
	w = call(r, http.MethodPost, "/decline-booking", decline, u.token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodPost, "/decline-booking", decline, h.token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifiedProfilesAndAdmin(t *testing.T) {
	r, _ := newServer(t, Options{AdminToken: "admin-token"})
	_, h := signUpBoth(t, r)

	var profiles []map[string]any
	w := call(r, http.MethodGet, "/profiles", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &profiles)
	assert.Empty(t, profiles)

	w = call(r, http.MethodPatch, "/admin/handymen/"+h.id+"/status", map[string]any{"status": "verified"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, http.MethodPatch, "/admin/handymen/"+h.id+"/status", map[string]any{"status": "archived"}, "admin-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodPatch, "/admin/handymen/"+h.id+"/status", map[string]any{"status": "verified"}, "admin-token")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodGet, "/profiles", nil, "")
	decode(t, w, &profiles)
	require.Len(t, profiles, 1)
	assert.Equal(t, "jun", profiles[0]["username"])
	assert.NotContains(t, profiles[0], "password")
}
