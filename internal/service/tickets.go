package service

import (
	"context"

	"gigtix/internal/model"
)

// TicketService defines the business operations of the ticket shop.
// Transport layers depend on this interface, not on the concrete repo,
// so tests can substitute a fake with no network access.
type TicketService interface {
	Purchase(ctx context.Context, req model.PurchaseRequest) (*model.PurchaseAck, error)
	ListGigs(ctx context.Context) ([]model.Gig, error)
	GetGig(ctx context.Context, slug string) (*model.Gig, error)
}
