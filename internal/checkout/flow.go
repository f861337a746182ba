// Package checkout implements the Greenmile direct-checkout flow: an
// ephemeral single-purpose cart is created per attempt and handed off to the
// storefront's checkout, leaving the user's primary cart untouched.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Aadcode/greenmile-integration/internal/domain"
)

// CommerceClient is the subset of the commerce backend the flow needs.
type CommerceClient interface {
	ListRegions(ctx context.Context) ([]domain.Region, error)
	CreateCart(ctx context.Context, regionID string) (*domain.Cart, error)
	AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*domain.LineItem, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
}

// Handoff is what the HTTP layer needs to finish the checkout: persist the
// cart id under the checkout cookie and redirect.
type Handoff struct {
	AttemptID   string `json:"attempt_id"`
	CartID      string `json:"cart_id"`
	RedirectURL string `json:"redirect_url"`
}

// DefaultPathTemplate matches the storefront's checkout entry point; the
// single %s is the lower-cased country code.
const DefaultPathTemplate = "/%s/checkout?step=address"

type Flow struct {
	client       CommerceClient
	pathTemplate string
	log          *slog.Logger
}

func NewFlow(client CommerceClient, pathTemplate string, log *slog.Logger) (*Flow, error) {
	if client == nil {
		return nil, ErrNoCommerceClient
	}
	if pathTemplate == "" {
		pathTemplate = DefaultPathTemplate
	}
	if log == nil {
		log = slog.Default()
	}
	return &Flow{client: client, pathTemplate: pathTemplate, log: log}, nil
}

// DirectCheckout runs the gated steps: resolve region, create a fresh cart,
// add the variant, verify the add landed, and build the handoff. Each step's
// failure is terminal; no step is retried here.
func (f *Flow) DirectCheckout(ctx context.Context, variantID string, quantity int, countryCode string) (*Handoff, error) {
	if quantity < 1 {
		quantity = 1
	}
	attemptID := uuid.NewString()
	log := f.log.With("attempt_id", attemptID, "variant_id", variantID, "country", countryCode)

	region, err := f.resolveRegion(ctx, countryCode)
	if err != nil {
		log.Error("region resolution failed", "err", err)
		return nil, err
	}

	c, err := f.client.CreateCart(ctx, region.ID)
	if err != nil {
		log.Error("cart creation failed", "region_id", region.ID, "err", err)
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	log.Info("created ephemeral checkout cart", "cart_id", c.ID, "region_id", region.ID)

	if _, err := f.client.AddLineItem(ctx, c.ID, variantID, quantity); err != nil {
		log.Error("line item add failed", "cart_id", c.ID, "err", err)
		return nil, fmt.Errorf("failed to add line item: %w", err)
	}

	// The add call reporting success is not trusted on its own; re-fetch and
	// check, to catch backend inconsistency before the user lands in checkout.
	updated, err := f.client.GetCart(ctx, c.ID)
	if err != nil {
		log.Error("cart verification fetch failed", "cart_id", c.ID, "err", err)
		return nil, fmt.Errorf("failed to verify cart: %w", err)
	}
	if updated == nil || len(updated.Items) == 0 {
		log.Error("cart empty after add", "cart_id", c.ID)
		return nil, ErrItemNotAdded
	}

	return &Handoff{
		AttemptID:   attemptID,
		CartID:      c.ID,
		RedirectURL: fmt.Sprintf(f.pathTemplate, strings.ToLower(countryCode)),
	}, nil
}

// resolveRegion picks the first region whose country list contains the
// ISO-2 code, case-insensitively. Zero matches is a data/configuration
// error, not a transient one.
func (f *Flow) resolveRegion(ctx context.Context, countryCode string) (*domain.Region, error) {
	regions, err := f.client.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	code := strings.ToLower(countryCode)
	for i := range regions {
		for _, country := range regions[i].Countries {
			if strings.ToLower(country.ISO2) == code {
				return &regions[i], nil
			}
		}
	}
	return nil, &RegionNotFoundError{CountryCode: countryCode}
}
