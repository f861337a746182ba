package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aadcode/greenmile-integration/internal/domain"
	"github.com/Aadcode/greenmile-integration/internal/guard"
	"github.com/stretchr/testify/assert"
)

type variantSourceStub struct {
	variant *domain.Variant
	err     error
}

func (s variantSourceStub) Variant(context.Context, string) (*domain.Variant, error) {
	return s.variant, s.err
}

func newGuardHandler(source guard.VariantSource, sink EventSink) *GuardHandler {
	return NewGuardHandler(guard.New(source, nil), sink, 5*time.Second)
}

func TestValidateVariant_BlocksGreenmile(t *testing.T) {
	sink := &sinkRecorder{}
	handler := newGuardHandler(variantSourceStub{variant: &domain.Variant{ID: "v1", Title: "Greenmile Small"}}, sink)

	body := bytes.NewBufferString(`{"variant_id":"v1"}`)
	recorder := httptest.NewRecorder()
	handler.ValidateVariant(recorder, httptest.NewRequest(http.MethodPost, "/", body))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"allowed":false`)
	assert.Contains(t, recorder.Body.String(), "Buy Now")
	assert.Equal(t, 1, sink.intercepted)
}

func TestValidateVariant_AllowsNormal(t *testing.T) {
	sink := &sinkRecorder{}
	handler := newGuardHandler(variantSourceStub{variant: &domain.Variant{ID: "v2", Title: "Small"}}, sink)

	body := bytes.NewBufferString(`{"variant_id":"v2"}`)
	recorder := httptest.NewRecorder()
	handler.ValidateVariant(recorder, httptest.NewRequest(http.MethodPost, "/", body))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"allowed":true`)
	assert.Equal(t, 0, sink.intercepted)
}

func TestValidateVariant_FailsOpen(t *testing.T) {
	tests := []struct {
		name   string
		source variantSourceStub
		body   string
	}{
		{"lookup error", variantSourceStub{err: errors.New("backend down")}, `{"variant_id":"v1"}`},
		{"malformed body", variantSourceStub{}, `{`},
		{"empty body", variantSourceStub{}, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newGuardHandler(tt.source, nil)
			recorder := httptest.NewRecorder()
			handler.ValidateVariant(recorder, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body)))

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"allowed":true`)
		})
	}
}
