package model

// PurchaseRequest is the POST /purchase payload. Validation is shape-only:
// a gigId that points at no known gig is still accepted.
type PurchaseRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	GigID string `json:"gigId" validate:"required"`
}

// PurchaseRecord is the message published to the ticket queue. It carries
// exactly the validated request fields plus the minted ticket id, no envelope.
type PurchaseRecord struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	GigID    string `json:"gigId"`
	TicketID string `json:"ticketId"`
}

// PurchaseAck is returned with 202. The ticket id lets the caller correlate
// later events (e.g. the confirmation email) with this request.
type PurchaseAck struct {
	TicketID string `json:"ticketId"`
}
