package payment

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/AshifurNahid/driving-school-api/internal/config"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

// Checkout holds what the client needs to hand the buyer to Mercado Pago.
type Checkout struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

type Result struct {
	Status            string
	ExternalReference string
	TransactionAmount float64
}

// Client wraps the Mercado Pago SDK. With no access token configured the
// client stays disabled and checkout endpoints degrade, booking does not.
type Client struct {
	prefs    preference.Client
	payments payment.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.MercadoPagoAccessToken == "" {
		return &Client{}, nil
	}

	mpCfg, err := mpconfig.New(cfg.MercadoPagoAccessToken)
	if err != nil {
		return nil, err
	}

	return &Client{
		prefs:    preference.NewClient(mpCfg),
		payments: payment.NewClient(mpCfg),
	}, nil
}

func (c *Client) Enabled() bool {
	return c.prefs != nil
}

// CreateCourseCheckout creates a checkout preference for one course
// purchase. externalRef ties the eventual payment back to our enrollment.
func (c *Client) CreateCourseCheckout(
	ctx context.Context,
	course *models.Course,
	externalRef string,
) (*Checkout, error) {

	if !c.Enabled() {
		return nil, httperr.ErrBusiness("payments_disabled")
	}

	req := preference.Request{
		ExternalReference: externalRef,
		Items: []preference.ItemRequest{
			{
				Title:       course.Title,
				Description: course.Description,
				Quantity:    1,
				UnitPrice:   course.Price,
			},
		},
	}

	resp, err := c.prefs.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Checkout{
		PreferenceID: resp.ID,
		InitPoint:    resp.InitPoint,
	}, nil
}

// GetPayment fetches a payment by the id Mercado Pago posts back, so the
// confirm endpoint can verify it really was approved.
func (c *Client) GetPayment(ctx context.Context, paymentID int) (*Result, error) {
	if !c.Enabled() {
		return nil, httperr.ErrBusiness("payments_disabled")
	}

	resp, err := c.payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return &Result{
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		TransactionAmount: resp.TransactionAmount,
	}, nil
}
