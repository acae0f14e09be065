package repository

// MessageBus is the narrow capability the purchase pipeline needs from the
// queue collaborator. Delivery, durability and consumption belong to the
// queue, not to this service.
type MessageBus interface {
	Publish(subject string, data []byte) error
}
