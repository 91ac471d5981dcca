// ABOUTME: Tests for the generic entity form
// ABOUTME: Refetch-on-close, payload normalization, and failure handling
package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmterm/api"
)

func TestCancellingFormRefetchesExactlyOnce(t *testing.T) {
	backend := seededBackend()
	m := mount(t, newTestModel(backend), routeCustomers)
	require.Equal(t, 1, backend.listCustomersCalls)

	m, _ = press(m, "n")
	require.Equal(t, viewForm, m.mode)

	m, cmd := press(m, "esc")
	m = runCmd(t, m, cmd)

	assert.Nil(t, m.form)
	assert.Equal(t, viewTable, m.mode)
	assert.Equal(t, 2, backend.listCustomersCalls)
}

func TestSubmittingFormRefetchesExactlyOnce(t *testing.T) {
	backend := seededBackend()
	m := mount(t, newTestModel(backend), routeCustomers)

	m, _ = press(m, "n")
	m.form.field("name").input.SetValue("Initech")

	m, cmd := press(m, "enter")
	m = runCmd(t, m, cmd)

	require.NotNil(t, backend.createdCustomer)
	assert.Equal(t, "Initech", backend.createdCustomer.Name)
	assert.Equal(t, "active", backend.createdCustomer.Status)
	assert.Nil(t, m.form)
	assert.Equal(t, 2, backend.listCustomersCalls)
}

func TestRequiredFieldBlocksSubmitWithoutRequest(t *testing.T) {
	backend := seededBackend()
	m := mount(t, newTestModel(backend), routeCustomers)

	m, _ = press(m, "n")
	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Equal(t, "Name is required", m.form.errMsg)
	assert.Nil(t, backend.createdCustomer)
	assert.Equal(t, 1, backend.listCustomersCalls)
}

func TestDealSubmitNormalizesNumbers(t *testing.T) {
	backend := seededBackend()
	m := mount(t, newTestModel(backend), routeDeals)

	m, _ = press(m, "n")
	f := m.form
	f.field("title").input.SetValue("Big deal")
	f.field("value").input.SetValue("1500.50")
	f.field("probability").input.SetValue("40")
	f.field("customer_id").selected = 1 // first real option after the blank

	m, cmd := press(m, "enter")
	m = runCmd(t, m, cmd)

	deal := backend.createdDeal
	require.NotNil(t, deal)
	assert.Equal(t, 1500.5, deal.Value)
	assert.Equal(t, 40, deal.Probability)
	require.NotNil(t, deal.CustomerID)
	assert.Equal(t, 1, *deal.CustomerID)
	assert.Nil(t, m.form)
}

func TestActivityBlankForeignKeysBecomeNull(t *testing.T) {
	backend := seededBackend()
	m := mount(t, newTestModel(backend), routeActivities)

	m, _ = press(m, "n")
	m.form.field("subject").input.SetValue("Ping someone")

	m, cmd := press(m, "enter")
	m = runCmd(t, m, cmd)

	activity := backend.createdActivity
	require.NotNil(t, activity)
	assert.Equal(t, "call", activity.Type)
	assert.Nil(t, activity.CustomerID)
	assert.Nil(t, activity.DealID)
	assert.Empty(t, activity.DueDate)
	assert.Equal(t, viewTable, m.mode)
}

func TestEditActivityDueDateRoundTrips(t *testing.T) {
	backend := seededBackend()
	m := mount(t, newTestModel(backend), routeActivities)

	m, _ = press(m, "e")
	require.NotNil(t, m.form)
	require.NotNil(t, m.form.editing)

	// The widget shows the stored instant at minute precision.
	assert.Equal(t, "2024-03-15T10:30", m.form.field("due_date").input.Value())

	// Submitting without touching anything sends back the same instant.
	m, cmd := press(m, "enter")
	m = runCmd(t, m, cmd)

	update := backend.updatedActivity
	require.NotNil(t, update)
	assert.Equal(t, 7, backend.updatedActivityID)
	assert.Equal(t, "2024-03-15T10:30:00Z", update.DueDate)
}

func TestEditSendsFullDraftNotDiff(t *testing.T) {
	backend := seededBackend()
	m := mount(t, newTestModel(backend), routeCustomers)

	m, _ = press(m, "e")
	m.form.field("phone").input.SetValue("555-0100")

	m, cmd := press(m, "enter")
	m = runCmd(t, m, cmd)

	update := backend.updatedCustomer
	require.NotNil(t, update)
	assert.Equal(t, 1, backend.updatedCustomerID)
	assert.Equal(t, "Acme", update.Name)
	assert.Equal(t, "hello@acme.test", update.Email)
	assert.Equal(t, "555-0100", update.Phone)
	assert.Equal(t, "active", update.Status)
}

func TestSaveFailureShowsServerMessageAndKeepsDraft(t *testing.T) {
	backend := seededBackend()
	backend.saveErr = &api.ServerError{StatusCode: 400, Message: "Email already exists"}
	m := mount(t, newTestModel(backend), routeCustomers)

	m, _ = press(m, "n")
	m.form.field("name").input.SetValue("Initech")
	m.form.field("email").input.SetValue("dup@initech.test")

	m, cmd := press(m, "enter")
	m = runCmd(t, m, cmd)

	require.NotNil(t, m.form)
	assert.Equal(t, "Email already exists", m.form.errMsg)
	assert.False(t, m.form.submitting)
	assert.Equal(t, "Initech", m.form.field("name").input.Value())
	assert.Equal(t, "dup@initech.test", m.form.field("email").input.Value())
	assert.Equal(t, 1, backend.listCustomersCalls)
}

func TestSaveFailureFallsBackToGenericMessage(t *testing.T) {
	backend := seededBackend()
	backend.saveErr = errors.New("connection reset")
	m := mount(t, newTestModel(backend), routeCustomers)

	m, _ = press(m, "n")
	m.form.field("name").input.SetValue("Initech")

	m, cmd := press(m, "enter")
	m = runCmd(t, m, cmd)

	require.NotNil(t, m.form)
	assert.Equal(t, "Error saving customer", m.form.errMsg)
}

func TestInvalidDealValueStaysLocal(t *testing.T) {
	backend := seededBackend()
	m := mount(t, newTestModel(backend), routeDeals)

	m, _ = press(m, "n")
	f := m.form
	f.field("title").input.SetValue("Big deal")
	f.field("value").input.SetValue("not a number")
	f.field("customer_id").selected = 1

	m, cmd := press(m, "enter")
	m = runCmd(t, m, cmd)

	require.NotNil(t, m.form)
	assert.Equal(t, "value must be a number", m.form.errMsg)
	assert.Nil(t, backend.createdDeal)
}
