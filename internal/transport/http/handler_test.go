package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigtix/internal/model"
	"gigtix/internal/repository"
)

type fakeService struct {
	purchaseCalls int
	purchaseErr   error
	gigs          []model.Gig
	gigErr        error
}

func (f *fakeService) Purchase(ctx context.Context, req model.PurchaseRequest) (*model.PurchaseAck, error) {
	f.purchaseCalls++
	if f.purchaseErr != nil {
		return nil, f.purchaseErr
	}
	return &model.PurchaseAck{TicketID: "ticket-1"}, nil
}

func (f *fakeService) ListGigs(ctx context.Context) ([]model.Gig, error) {
	return f.gigs, f.gigErr
}

func (f *fakeService) GetGig(ctx context.Context, slug string) (*model.Gig, error) {
	for i := range f.gigs {
		if f.gigs[i].Slug == slug {
			return &f.gigs[i], nil
		}
	}
	return nil, repository.ErrGigNotFound
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Origin", "http://localhost:3000")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPurchase_Accepted(t *testing.T) {
	svc := &fakeService{}
	router := NewRouter(svc)

	rec := doRequest(router, http.MethodPost, "/purchase",
		`{"name":"Ada","email":"ada@example.com","gigId":"gig-42"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var ack model.PurchaseAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.Equal(t, "ticket-1", ack.TicketID)
	assert.Equal(t, 1, svc.purchaseCalls)
}

func TestPurchase_MalformedBody(t *testing.T) {
	svc := &fakeService{}
	router := NewRouter(svc)

	rec := doRequest(router, http.MethodPost, "/purchase", "not-json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.purchaseCalls, "no purchase attempt on malformed body")
}

func TestPurchase_ValidationError(t *testing.T) {
	svc := &fakeService{
		purchaseErr: fmt.Errorf("%w: 'name' is required", repository.ErrValidation),
	}
	router := NewRouter(svc)

	rec := doRequest(router, http.MethodPost, "/purchase",
		`{"name":"","email":"ada@example.com","gigId":"gig-42"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name")
}

func TestPurchase_PublishFailure(t *testing.T) {
	svc := &fakeService{
		purchaseErr: fmt.Errorf("%w: nats timeout", repository.ErrPublish),
	}
	router := NewRouter(svc)

	rec := doRequest(router, http.MethodPost, "/purchase",
		`{"name":"Ada","email":"ada@example.com","gigId":"gig-42"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "ticketId")
	// The response says "try again", not what broke internally.
	assert.NotContains(t, rec.Body.String(), "nats")
}

func TestListGigs(t *testing.T) {
	svc := &fakeService{gigs: []model.Gig{
		{Slug: "queen-dublin-1986", BandName: "Queen", City: "Dublin", Venue: "Slane Castle",
			Date: time.Date(1986, 7, 5, 19, 30, 0, 0, time.UTC), Price: 2200},
	}}
	router := NewRouter(svc)

	rec := doRequest(router, http.MethodGet, "/gigs", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var gigs []model.Gig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gigs))
	require.Len(t, gigs, 1)
	assert.Equal(t, "Queen", gigs[0].BandName)
}

func TestListGigs_EmptyCatalogueIsAnArray(t *testing.T) {
	router := NewRouter(&fakeService{})

	rec := doRequest(router, http.MethodGet, "/gigs", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetGig_NotFound(t *testing.T) {
	router := NewRouter(&fakeService{})

	rec := doRequest(router, http.MethodGet, "/gigs/no-such-gig", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// End-to-end through the real purchase pipeline with a fake bus: the id in
// the 202 body must match the id in the published message.
func TestPurchase_AckMatchesPublishedRecord(t *testing.T) {
	bus := &captureBus{}
	repo := repository.NewTicketRepo(nil, nil, bus, "tickets.purchased")
	router := NewRouter(repo)

	rec := doRequest(router, http.MethodPost, "/purchase",
		`{"name":"Ada","email":"ada@example.com","gigId":"gig-42"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var ack model.PurchaseAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	require.NotEmpty(t, ack.TicketID)

	require.Len(t, bus.messages, 1)
	var record model.PurchaseRecord
	require.NoError(t, json.Unmarshal(bus.messages[0], &record))
	assert.Equal(t, ack.TicketID, record.TicketID)
	assert.Equal(t, "gig-42", record.GigID)
}

type captureBus struct {
	messages [][]byte
	err      error
}

func (b *captureBus) Publish(subject string, data []byte) error {
	if b.err != nil {
		return b.err
	}
	b.messages = append(b.messages, data)
	return nil
}
