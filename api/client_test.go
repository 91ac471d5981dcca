// ABOUTME: Tests for the REST client
// ABOUTME: Verifies request shapes, auth header, and error body extraction
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-token", 5*time.Second, zap.NewNop())
}

func TestListCustomersSendsBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/customers", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"name":"Acme","status":"active"}]`))
	})

	customers, err := client.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Acme", customers[0].Name)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestCreateDealSendsNumbersAndNullForeignKey(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/deals", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9,"title":"Big deal"}`))
	})

	_, err := client.CreateDeal(context.Background(), DealPayload{
		Title:       "Big deal",
		Value:       1500.5,
		Stage:       "prospecting",
		Probability: 40,
		CustomerID:  nil,
	})
	require.NoError(t, err)

	// Numbers stay numbers and a blank foreign key is null, not "".
	assert.Equal(t, 1500.5, body["value"])
	assert.Equal(t, float64(40), body["probability"])
	val, present := body["customer_id"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestUpdateActivityPutsFullPayloadByID(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/activities/7", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))
		_, _ = w.Write([]byte(`{"id":7}`))
	})

	customerID := 3
	_, err := client.UpdateActivity(context.Background(), 7, ActivityPayload{
		Type:       "call",
		Subject:    "Follow up",
		DueDate:    "2024-03-15T10:30:00Z",
		Completed:  true,
		CustomerID: &customerID,
	})
	require.NoError(t, err)

	assert.Equal(t, "call", body["type"])
	assert.Equal(t, "Follow up", body["subject"])
	assert.Equal(t, "2024-03-15T10:30:00Z", body["due_date"])
	assert.Equal(t, true, body["completed"])
	assert.Equal(t, float64(3), body["customer_id"])
	// Full payload, not a diff: every editable field travels.
	assert.Contains(t, body, "description")
	assert.Contains(t, body, "deal_id")
}

func TestDeleteCustomer(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"message":"Customer deleted"}`))
	})

	require.NoError(t, client.DeleteCustomer(context.Background(), 12))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/customers/12", gotPath)
}

func TestServerErrorMessageExtraction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Email already exists"}`))
	})

	_, err := client.CreateCustomer(context.Background(), CustomerPayload{Name: "Acme"})
	require.Error(t, err)

	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusBadRequest, srvErr.StatusCode)
	assert.Equal(t, "Email already exists", srvErr.Message)
	assert.Equal(t, "Email already exists", srvErr.Error())
}

func TestServerErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.DeleteDeal(context.Background(), 1)
	require.Error(t, err)

	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Empty(t, srvErr.Message)
	assert.Contains(t, srvErr.Error(), "500")
}

func TestDashboardStatsDecoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"total_customers": 5,
			"active_customers": 3,
			"total_deals": 2,
			"total_deal_value": 20000.5,
			"deals_by_stage": [{"stage":"prospecting","count":2,"value":20000.5}]
		}`))
	})

	stats, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalCustomers)
	assert.Equal(t, 20000.5, stats.TotalDealValue)
	require.Len(t, stats.DealsByStage, 1)
	assert.Equal(t, "prospecting", stats.DealsByStage[0].Stage)
}
