// Package session owns the two cookie-scoped identifiers this system
// touches: the storefront's primary cart id and the ephemeral checkout cart
// id. They use distinct keys, so direct checkout never disturbs the primary
// cart.
package session

import (
	"net/http"
)

const (
	// PrimaryCartCookie is the storefront's own cart cookie; the bridge only
	// reads it, and clears it after a successful repair empties the cart.
	PrimaryCartCookie = "_medusa_cart_id"

	// CheckoutCartCookie binds the ephemeral checkout cart to the browser.
	CheckoutCartCookie = "_greenmile_cart_id"
)

type Manager struct {
	Secure bool
}

func (m Manager) SetCheckoutCart(w http.ResponseWriter, cartID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CheckoutCartCookie,
		Value:    cartID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m Manager) ClearPrimaryCart(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     PrimaryCartCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m Manager) PrimaryCartID(r *http.Request) string {
	return cookieValue(r, PrimaryCartCookie)
}

func (m Manager) CheckoutCartID(r *http.Request) string {
	return cookieValue(r, CheckoutCartCookie)
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
