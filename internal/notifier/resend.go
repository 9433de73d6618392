package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// ResendNotifier delivers confirmation emails through the Resend API.
// Calls run behind a circuit breaker so a dead provider fails fast
// instead of stalling every checkout.
type ResendNotifier struct {
	client  *resend.Client
	from    string
	baseURL string
	breaker *gobreaker.CircuitBreaker[*resend.SendEmailResponse]
}

func NewResendNotifier(apiKey, from, baseURL string) *ResendNotifier {
	breaker := gobreaker.NewCircuitBreaker[*resend.SendEmailResponse](gobreaker.Settings{
		Name:     "resend",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("notifier: circuit breaker state changed")
		},
	})

	return &ResendNotifier{
		client:  resend.NewClient(apiKey),
		from:    from,
		baseURL: baseURL,
		breaker: breaker,
	}
}

func (n *ResendNotifier) SendConfirmation(ctx context.Context, c Confirmation) error {
	html, err := RenderConfirmation(c, n.baseURL)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{c.To},
		Subject: fmt.Sprintf("Order Confirmation - %s", c.OrderID),
		Html:    html,
	}

	sent, err := n.breaker.Execute(func() (*resend.SendEmailResponse, error) {
		return n.client.Emails.SendWithContext(ctx, params)
	})
	if err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	log.Info().Str("email_id", sent.Id).Str("order_id", c.OrderID).Msg("notifier: confirmation email sent")
	return nil
}
