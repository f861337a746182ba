package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInfo_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/product-info", r.URL.Path)

		var req ProductInfoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "shop.example", req.Shop)
		assert.Equal(t, "v1", req.VariantID)

		_, _ = w.Write([]byte(`{
			"price": 20,
			"discounted_price": "15.5",
			"urgency_price": "$12.00",
			"images": ["a.jpg"],
			"returned_variant": "v-greenmile-1"
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nil)
	info, err := client.ProductInfo(context.Background(), ProductInfoRequest{
		Shop: "shop.example", ProductID: "p1", VariantID: "v1", ProductPrice: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, "v-greenmile-1", info.ReturnedVariant)
	assert.Equal(t, "$20.00", info.Price.Format("$"))
	assert.Equal(t, "$15.50", info.DiscountedPrice.Format("$"))
	require.NotNil(t, info.UrgencyPrice)
	assert.Equal(t, "$12.00", info.UrgencyPrice.Format("$"))
}

func TestProductInfo_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"no offer for this product"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nil)
	_, err := client.ProductInfo(context.Background(), ProductInfoRequest{VariantID: "v1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no offer")
}

func TestProductInfo_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nil)
	for i := 0; i < 7; i++ {
		_, err := client.ProductInfo(context.Background(), ProductInfoRequest{VariantID: "v1"})
		require.Error(t, err)
	}

	// breaker trips after 5 consecutive failures; later calls never hit the wire
	assert.Equal(t, 5, hits)
}

func TestMoneyFormat(t *testing.T) {
	assert.Equal(t, "", Money("").Format("$"))
	assert.Equal(t, "$15.00", Money("15").Format("$"))
	assert.Equal(t, "kr 15.50", Money("15.5").Format("kr "))
	assert.Equal(t, "$9.99", Money("$9.99").Format("kr ")) // pre-formatted passes through
	assert.Equal(t, "n/a", Money("n/a").Format("$"))
}
