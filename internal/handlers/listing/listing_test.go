package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert"
	"github.com/gorilla/mux"
	"go.uber.org/zap/zaptest"

	"mazdady-market/internal/kafka"
	"mazdady-market/internal/marketplace"
	"mazdady-market/internal/middleware"
	"mazdady-market/internal/session"
	"mazdady-market/internal/social"
	"mazdady-market/internal/storage"
	types "mazdady-market/internal/types/market"
)

// fakeProducer implements kafka.EventProducer.
type fakeProducer struct {
	calledEvents []kafka.Event
	returnError  error
}

func (f *fakeProducer) SendEvent(ctx context.Context, event kafka.Event) error {
	f.calledEvents = append(f.calledEvents, event)
	return f.returnError
}

func (f *fakeProducer) Close() error {
	return nil
}

func newTestHandler(t *testing.T) (*ListingHandler, *fakeProducer) {
	t.Helper()
	st := storage.NewMemoryStorage()
	logger := zaptest.NewLogger(t).Sugar()

	sets := social.NewSets(st, logger)
	if err := sets.Load(context.Background()); err != nil {
		t.Fatalf("failed to load social sets: %v", err)
	}

	m := marketplace.NewMarketplace(st, logger, sets)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("failed to load marketplace: %v", err)
	}

	prod := &fakeProducer{}
	return NewListingHandler(logger, m, prod), prod
}

func withSession(req *http.Request, userID string) *http.Request {
	sess := &session.Session{ID: "sess-1", UserID: userID}
	return req.WithContext(middleware.ContextWithSession(req.Context(), sess))
}

func newRouter(h *ListingHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/listing", h.Create).Methods("POST")
	r.HandleFunc("/listing/{id}", h.GetByID).Methods("GET")
	r.HandleFunc("/listing/{id}", h.Update).Methods("PUT")
	r.HandleFunc("/listing/{id}/like", h.ToggleLike).Methods("POST")
	r.HandleFunc("/listing/{id}/favorite", h.ToggleFavorite).Methods("POST")
	r.HandleFunc("/listing/{id}/share", h.Share).Methods("POST")
	r.HandleFunc("/listing/{id}/review", h.AddReview).Methods("POST")
	r.HandleFunc("/listing/{id}/report", h.Report).Methods("POST")
	r.HandleFunc("/listings", h.Browse).Methods("GET")
	r.HandleFunc("/seller/{id}/listings", h.BySeller).Methods("GET")
	return r
}

func TestCreate_NoSession(t *testing.T) {
	h, _ := newTestHandler(t)

	body, _ := json.Marshal(types.CreateListing{Title: "Bike"})
	req := httptest.NewRequest(http.MethodPost, "/listing", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusUnauthorized)
}

func TestCreate_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/listing", bytes.NewBufferString(`{bad json`))
	req = withSession(req, "seller-1")
	rr := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusBadRequest)
}

func TestCreate_Success(t *testing.T) {
	h, _ := newTestHandler(t)

	form := types.CreateListing{
		Title:       "City bike",
		Description: "Aluminium frame, 21 gears",
		Price:       240,
		Currency:    "USD",
		Category:    "vehicles",
		Condition:   "used",
	}
	body, _ := json.Marshal(form)
	req := httptest.NewRequest(http.MethodPost, "/listing", bytes.NewReader(body))
	req = withSession(req, "seller-1")
	rr := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusCreated)

	var got types.Listing
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	assert.Equal(t, got.Title, "City bike")
	assert.Equal(t, got.SellerID, "seller-1")
	assert.Equal(t, got.Status, types.StatusActive)
}

func TestGetByID_RecordsViewAndEmitsEvent(t *testing.T) {
	h, prod := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/listing/ad-01", nil)
	req = withSession(req, "seller-3")
	rr := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusOK)

	var got types.Listing
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	assert.Equal(t, got.ID, "ad-01")

	if len(prod.calledEvents) != 1 {
		t.Fatalf("expected 1 view event, got %d", len(prod.calledEvents))
	}
	evt := prod.calledEvents[0]
	assert.Equal(t, evt.Type, kafka.View)
	assert.Equal(t, evt.UserID, "seller-3")
	assert.Equal(t, evt.ListingID, "ad-01")
}

func TestGetByID_NoSession_NoEvent(t *testing.T) {
	h, prod := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/listing/ad-01", nil)
	rr := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusOK)
	assert.Equal(t, len(prod.calledEvents), 0)
}

func TestGetByID_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/listing/ad-nope", nil)
	rr := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusNotFound)
}

func TestToggleLike_EmitsEventOnlyWhenLiked(t *testing.T) {
	h, prod := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/listing/ad-01/like", nil)
	req = withSession(req, "seller-3")
	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusOK)

	var resp struct {
		ListingID string `json:"listingId"`
		Active    bool   `json:"active"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	assert.Equal(t, resp.Active, true)
	assert.Equal(t, len(prod.calledEvents), 1)
	assert.Equal(t, prod.calledEvents[0].Type, kafka.Like)

	// second toggle removes the like, no new event
	req = httptest.NewRequest(http.MethodPost, "/listing/ad-01/like", nil)
	req = withSession(req, "seller-3")
	rr = httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, req)

	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	assert.Equal(t, resp.Active, false)
	assert.Equal(t, len(prod.calledEvents), 1)
}

func TestShare_Returns204AndEmits(t *testing.T) {
	h, prod := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/listing/ad-02/share", nil)
	req = withSession(req, "seller-2")
	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusNoContent)
	assert.Equal(t, len(prod.calledEvents), 1)
	assert.Equal(t, prod.calledEvents[0].Type, kafka.Share)
}

func TestAddReview_BadRating(t *testing.T) {
	h, _ := newTestHandler(t)

	body, _ := json.Marshal(map[string]interface{}{"rating": 9, "text": "great"})
	req := httptest.NewRequest(http.MethodPost, "/listing/ad-01/review", bytes.NewReader(body))
	req = withSession(req, "seller-3")
	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusBadRequest)
}

func TestAddReview_Success(t *testing.T) {
	h, _ := newTestHandler(t)

	body, _ := json.Marshal(map[string]interface{}{"rating": 4, "text": "solid"})
	req := httptest.NewRequest(http.MethodPost, "/listing/ad-04/review", bytes.NewReader(body))
	req = withSession(req, "seller-1")
	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusCreated)
}

func TestReport_Success(t *testing.T) {
	h, _ := newTestHandler(t)

	body, _ := json.Marshal(map[string]string{"reason": "spam"})
	req := httptest.NewRequest(http.MethodPost, "/listing/ad-01/report", bytes.NewReader(body))
	req = withSession(req, "seller-2")
	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusCreated)
}

func TestBrowse_FiltersAndSorts(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/listings?sort=price-low-high", nil)
	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusOK)

	var got []types.Listing
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("expected seeded listings, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Price > got[i].Price {
			t.Errorf("listings not sorted by price: %f before %f", got[i-1].Price, got[i].Price)
		}
	}
}

func TestBrowse_SearchEmitsEvent(t *testing.T) {
	h, prod := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/listings?q=camera", nil)
	req = withSession(req, "seller-3")
	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusOK)
	if len(prod.calledEvents) != 1 {
		t.Fatalf("expected 1 search event, got %d", len(prod.calledEvents))
	}
	assert.Equal(t, prod.calledEvents[0].Type, kafka.Search)
	assert.Equal(t, prod.calledEvents[0].Query, "camera")
}

func TestBrowse_NearbyWithoutLocation(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/listings?sort=nearby-first", nil)
	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusBadRequest)
}

func TestBySeller(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/seller/seller-1/listings", nil)
	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusOK)

	var got []types.Listing
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	assert.Equal(t, len(got), 2)
	for _, l := range got {
		assert.Equal(t, l.SellerID, "seller-1")
	}
}
