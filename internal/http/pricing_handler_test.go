package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aadcode/greenmile-integration/internal/pricing"
	"github.com/stretchr/testify/assert"
)

type pricingStub struct {
	info    *pricing.ProductInfo
	err     error
	lastReq pricing.ProductInfoRequest
}

func (s *pricingStub) ProductInfo(_ context.Context, req pricing.ProductInfoRequest) (*pricing.ProductInfo, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func TestProductInfo_Success(t *testing.T) {
	stub := &pricingStub{info: &pricing.ProductInfo{
		Price:           "20",
		DiscountedPrice: "15.5",
		ReturnedVariant: "v-greenmile-1",
	}}
	handler := NewPricingHandler(stub, "shop.example", 5*time.Second, nil)

	body := bytes.NewBufferString(`{"product_id":"p1","variant_id":"v1","product_price":20,"location":{"latitude":"55.6","longitude":"12.5"}}`)
	recorder := httptest.NewRecorder()
	handler.ProductInfo(recorder, httptest.NewRequest(http.MethodPost, "/", body))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"returned_variant":"v-greenmile-1"`)

	// shop comes from config, not from the caller
	assert.Equal(t, "shop.example", stub.lastReq.Shop)
	assert.Equal(t, "55.6", stub.lastReq.Location.Latitude)
}

func TestProductInfo_FailsSilent(t *testing.T) {
	tests := []struct {
		name string
		stub *pricingStub
		body string
	}{
		{"backend error", &pricingStub{err: errors.New("pricing down")}, `{"product_id":"p1"}`},
		{"malformed body", &pricingStub{}, `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPricingHandler(tt.stub, "shop.example", 5*time.Second, nil)
			recorder := httptest.NewRecorder()
			handler.ProductInfo(recorder, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body)))

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Empty(t, recorder.Body.String())
		})
	}
}
