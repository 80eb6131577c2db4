package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ManrajSaini/Railway-Management/config"
	"github.com/ManrajSaini/Railway-Management/models"
	"github.com/ManrajSaini/Railway-Management/repository"
	"github.com/ManrajSaini/Railway-Management/services"
)

// newTestServer wires the full router against the in-memory store
func newTestServer() (*gin.Engine, *services.AuthService) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiresIn:   time.Hour,
		AdminAPIKey:    "admin-key",
		PerSeatPrice:   100,
		LockWait:       time.Second,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}

	store := repository.NewMemoryStore()
	store.SeedTrain(&models.Train{
		ID:                 1,
		Name:               "Night Express",
		TotalSeats:         5,
		SourceStation:      &models.Station{ID: 1, Name: "Central", City: "Springfield"},
		DestinationStation: &models.Station{ID: 2, Name: "Harbour", City: "Shelbyville"},
	})

	authService := services.NewAuthService(nil, cfg)
	router := NewRouter(cfg,
		authService,
		NewAuthHandler(authService),
		NewTrainHandler(services.NewTrainService(nil)),
		NewBookingHandler(services.NewBookingService(store, cfg)),
	)
	return router, authService
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func userToken(t *testing.T, auth *services.AuthService, id int64) string {
	t.Helper()
	token, err := auth.GenerateToken(&models.User{ID: id, Email: fmt.Sprintf("user%d@example.com", id), Role: models.RoleUser})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

func errorKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

func TestBookingLifecycle(t *testing.T) {
	router, auth := newTestServer()
	token := userToken(t, auth, 1)

	// Create
	w := doJSON(t, router, http.MethodPost, "/api/bookings", token, models.BookingRequest{
		TrainID: 1, TravelDate: "2031-05-01", NumSeats: 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}
	var booking models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &booking); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if booking.Status != models.BookingConfirmed || booking.TotalAmount != 200 {
		t.Errorf("booking = status %q amount %v, want confirmed / 200", booking.Status, booking.TotalAmount)
	}
	if booking.Train == nil || booking.Train.Name != "Night Express" {
		t.Error("booking response is missing joined train metadata")
	}

	// Fetch it back
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/bookings/%d", booking.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("get status = %d, want 200", w.Code)
	}

	// Listed for the owner
	w = doJSON(t, router, http.MethodGet, "/api/bookings", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}
	var list []models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1", len(list))
	}

	// Invisible to a different user
	otherToken := userToken(t, auth, 2)
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/bookings/%d", booking.ID), otherToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign get status = %d, want 404", w.Code)
	}

	// Cancel by a different user fails and keeps the booking intact
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", booking.ID), otherToken, nil)
	if w.Code != http.StatusBadRequest || errorKind(t, w) != models.KindNotOwner {
		t.Errorf("foreign cancel = %d %q, want 400 not_owner", w.Code, w.Body.String())
	}

	// Cancel by the owner
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", booking.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("cancel status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	// Second cancel is rejected
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", booking.ID), token, nil)
	if w.Code != http.StatusBadRequest || errorKind(t, w) != models.KindAlreadyCancelled {
		t.Errorf("double cancel = %d %q, want 400 already_cancelled", w.Code, w.Body.String())
	}
}

func TestCreateBookingValidation(t *testing.T) {
	router, auth := newTestServer()
	token := userToken(t, auth, 1)

	// Zero seats is a seat-count error, not a binding error
	w := doJSON(t, router, http.MethodPost, "/api/bookings", token, models.BookingRequest{
		TrainID: 1, TravelDate: "2031-05-01", NumSeats: 0,
	})
	if w.Code != http.StatusBadRequest || errorKind(t, w) != models.KindInvalidSeatCount {
		t.Errorf("zero seats = %d %q, want 400 invalid_seat_count", w.Code, w.Body.String())
	}

	// More seats than the train has
	w = doJSON(t, router, http.MethodPost, "/api/bookings", token, models.BookingRequest{
		TrainID: 1, TravelDate: "2031-05-01", NumSeats: 6,
	})
	if w.Code != http.StatusBadRequest || errorKind(t, w) != models.KindInsufficientSeats {
		t.Errorf("oversize request = %d %q, want 400 insufficient_seats", w.Code, w.Body.String())
	}

	// Unknown train
	w = doJSON(t, router, http.MethodPost, "/api/bookings", token, models.BookingRequest{
		TrainID: 99, TravelDate: "2031-05-01", NumSeats: 1,
	})
	if w.Code != http.StatusNotFound || errorKind(t, w) != models.KindTrainNotFound {
		t.Errorf("unknown train = %d %q, want 404 train_not_found", w.Code, w.Body.String())
	}
}

func TestBookingsRequireAuth(t *testing.T) {
	router, _ := newTestServer()

	w := doJSON(t, router, http.MethodGet, "/api/bookings", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated list status = %d, want 401", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/bookings", "", models.BookingRequest{
		TrainID: 1, TravelDate: "2031-05-01", NumSeats: 1,
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated create status = %d, want 401", w.Code)
	}
}
