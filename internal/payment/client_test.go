package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticketbari-api/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var req createIntentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "BDT", req.Currency)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(createIntentResponse{
			ID:           "pi_123",
			ClientSecret: "pi_123_secret",
			Amount:       req.Amount,
			Currency:     req.Currency,
		})
	}))
	defer server.Close()

	client := NewClient(&config.PaymentConfig{
		BaseURL:   server.URL,
		SecretKey: "sk_test",
	})

	intent, err := client.CreateIntent(context.Background(), decimal.NewFromInt(1500), "BDT")
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.True(t, decimal.NewFromInt(1500).Equal(intent.Amount))
}

func TestClient_CreateIntent_ProcessorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(&config.PaymentConfig{BaseURL: server.URL, SecretKey: "sk_test"})

	_, err := client.CreateIntent(context.Background(), decimal.NewFromInt(100), "BDT")
	assert.Error(t, err)
}
