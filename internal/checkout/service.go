// Package checkout owns the order submission pipeline: it validates
// form input, freezes the cart into an order, persists it exactly once
// per attempt, and triggers the confirmation email after the insert
// has committed.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/cart"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/notifier"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/order"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/pricing"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/repository"
)

// State is the per-session submission state.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateConfirmed  State = "confirmed"
	StateFailed     State = "failed"
)

func (s State) String() string {
	return string(s)
}

// A failed submission may be retried; a confirmed one frees the
// session for a new order. There is no way back to idle while a
// request is in flight.
var allowedTransitions = map[State]map[State]bool{
	StateIdle:       {StateSubmitting: true},
	StateSubmitting: {StateConfirmed: true, StateFailed: true},
	StateFailed:     {StateSubmitting: true},
	StateConfirmed:  {StateSubmitting: true},
}

// Receipt is the summary shown on the confirmation view: the first
// line item, how many further items the order holds, and the amount due.
type Receipt struct {
	FirstItem  order.LineItem `json:"first_item"`
	OtherItems int            `json:"other_items"`
	GrandTotal float64        `json:"grand_total"`
}

// Confirmation is the successful outcome of a submission. EmailSent is
// false when the order was placed but the confirmation email failed.
type Confirmation struct {
	OrderID    string  `json:"order_id"`
	Receipt    Receipt `json:"receipt"`
	EmailSent  bool    `json:"email_sent"`
	GrandTotal float64 `json:"grand_total"`
}

type Service struct {
	carts    *cart.Store
	repo     repository.OrderRepository
	notifier notifier.Notifier
	timeout  time.Duration

	// Concurrent submissions for one session coalesce into a single
	// attempt; both callers observe the same outcome.
	sfg singleflight.Group

	mu     sync.Mutex
	states map[string]State
}

func NewService(carts *cart.Store, repo repository.OrderRepository, n notifier.Notifier, timeout time.Duration) *Service {
	s := &Service{
		carts:    carts,
		repo:     repo,
		notifier: n,
		timeout:  timeout,
		states:   make(map[string]State),
	}
	// Submission state lives exactly as long as the session's cart.
	carts.OnExpire(s.Forget)
	return s
}

// Forget drops the session's submission state. Invoked when the
// session's cart expires.
func (s *Service) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
}

// State returns the session's current submission state.
func (s *Service) State(sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[sessionID]; ok {
		return st
	}
	return StateIdle
}

func (s *Service) transition(sessionID string, next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.states[sessionID]
	if !ok {
		current = StateIdle
	}
	if !allowedTransitions[current][next] {
		return fmt.Errorf("invalid submission state transition from %s to %s", current, next)
	}
	s.states[sessionID] = next
	return nil
}

// Submit runs the full pipeline for one session. Validation failures
// and an empty cart are rejected before any external call is made.
func (s *Service) Submit(ctx context.Context, sessionID string, in Input) (*Confirmation, error) {
	in.Normalize()
	if verrs := in.Validate(); verrs != nil {
		return nil, verrs
	}

	snapshot := s.carts.Get(sessionID)
	if snapshot.Empty() {
		return nil, ErrEmptyCart
	}

	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		return s.submit(ctx, sessionID, in, snapshot)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Confirmation), nil
}

func (s *Service) submit(ctx context.Context, sessionID string, in Input, snapshot cart.Cart) (*Confirmation, error) {
	if err := s.transition(sessionID, StateSubmitting); err != nil {
		return nil, ErrSubmissionInFlight
	}

	o := buildOrder(in, snapshot)

	insertCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	orderID, err := s.repo.Insert(insertCtx, o)
	if err != nil {
		// Cart is deliberately left untouched so the user can retry.
		if terr := s.transition(sessionID, StateFailed); terr != nil {
			log.Error().Err(terr).Str("session_id", sessionID).Msg("checkout: failed state transition")
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("checkout: order insert failed")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// The order exists from here on. The confirmation email is best
	// effort and runs on its own context: the client going away must
	// not cancel it.
	emailSent := true
	notifyCtx, cancelNotify := context.WithTimeout(context.Background(), s.timeout)
	defer cancelNotify()

	if err := s.notifier.SendConfirmation(notifyCtx, notifier.Confirmation{
		To:         in.Email,
		Name:       in.Name,
		OrderID:    orderID,
		Items:      o.Items,
		GrandTotal: o.GrandTotal,
	}); err != nil {
		emailSent = false
		log.Error().Err(err).Str("order_id", orderID).Msg("checkout: order placed but confirmation email failed")
	}

	s.carts.Clear(sessionID)
	if terr := s.transition(sessionID, StateConfirmed); terr != nil {
		log.Error().Err(terr).Str("session_id", sessionID).Msg("checkout: failed state transition")
	}

	log.Info().
		Str("order_id", orderID).
		Str("session_id", sessionID).
		Float64("grand_total", o.GrandTotal).
		Bool("email_sent", emailSent).
		Msg("checkout: order confirmed")

	return &Confirmation{
		OrderID: orderID,
		Receipt: Receipt{
			FirstItem:  o.Items[0],
			OtherItems: len(o.Items) - 1,
			GrandTotal: o.GrandTotal,
		},
		EmailSent:  emailSent,
		GrandTotal: o.GrandTotal,
	}, nil
}

// buildOrder freezes the cart snapshot and pricing quote into the
// canonical order record, status pending.
func buildOrder(in Input, snapshot cart.Cart) *order.Order {
	quote := pricing.ForCart(snapshot)

	items := make([]order.LineItem, len(snapshot.Items))
	for i, it := range snapshot.Items {
		items[i] = order.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			ShortName: it.ShortName,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		}
	}

	return &order.Order{
		CustomerName:    in.Name,
		CustomerEmail:   in.Email,
		CustomerPhone:   in.Phone,
		ShippingAddress: in.Address,
		ZipCode:         in.ZipCode,
		City:            in.City,
		Country:         in.Country,
		PaymentMethod:   order.PaymentMethod(in.PaymentMethod),
		EMoneyNumber:    in.EMoneyNumber,
		EMoneyPin:       in.EMoneyPin,
		Items:           items,
		Subtotal:        quote.Subtotal,
		Shipping:        quote.Shipping,
		VAT:             quote.VAT,
		GrandTotal:      quote.GrandTotal,
		Status:          order.StatusPending,
		CreatedAt:       time.Now(),
	}
}
