package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"gigtix/internal/model"
)

var (
	ErrValidation  = errors.New("invalid purchase request")
	ErrPublish     = errors.New("could not enqueue purchase")
	ErrGigNotFound = errors.New("gig not found")
)

type TicketRepo struct {
	redisClient *redis.Client
	dbPool      *pgxpool.Pool
	bus         MessageBus
	subject     string
	validate    *validator.Validate
}

// NewTicketRepo wires the gig store, the gig cache and the ticket queue.
// subject is the queue endpoint purchases are published to.
func NewTicketRepo(rdb *redis.Client, db *pgxpool.Pool, bus MessageBus, subject string) *TicketRepo {
	v := validator.New()
	// Report json field names in validation errors, not Go struct fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &TicketRepo{
		redisClient: rdb,
		dbPool:      db,
		bus:         bus,
		subject:     subject,
		validate:    v,
	}
}

// Purchase validates the request, mints a ticket id and publishes the record
// to the ticket queue. The publish is the only side effect and must succeed
// before the acknowledgement is returned; on failure no ack is produced and
// a retry by the caller mints a fresh ticket id.
func (r *TicketRepo) Purchase(ctx context.Context, req model.PurchaseRequest) (*model.PurchaseAck, error) {
	if err := r.validate.StructCtx(ctx, req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, len(fieldErrs))
			for i, fe := range fieldErrs {
				fields[i] = fmt.Sprintf("'%s' is required", fe.Field())
			}
			return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	record := model.PurchaseRecord{
		Name:     req.Name,
		Email:    req.Email,
		GigID:    req.GigID,
		TicketID: uuid.NewString(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal purchase record: %w", err)
	}

	if err := r.bus.Publish(r.subject, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublish, err)
	}

	slog.Info("purchase accepted",
		"gig_id", record.GigID,
		"ticket_id", record.TicketID,
	)

	return &model.PurchaseAck{TicketID: record.TicketID}, nil
}
