// ABOUTME: Backend interface consumed by the TUI views
// ABOUTME: Mirrors the REST client surface so tests can inject fakes
package tui

import (
	"context"

	"crmterm/api"
	"crmterm/models"
)

// Backend is the slice of the REST client the views depend on. *api.Client
// satisfies it; tests substitute a fake to observe request traffic.
type Backend interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, p api.CustomerPayload) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int, p api.CustomerPayload) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id int) error

	ListContacts(ctx context.Context) ([]models.Contact, error)
	CreateContact(ctx context.Context, p api.ContactPayload) (*models.Contact, error)
	UpdateContact(ctx context.Context, id int, p api.ContactPayload) (*models.Contact, error)
	DeleteContact(ctx context.Context, id int) error

	ListDeals(ctx context.Context) ([]models.Deal, error)
	CreateDeal(ctx context.Context, p api.DealPayload) (*models.Deal, error)
	UpdateDeal(ctx context.Context, id int, p api.DealPayload) (*models.Deal, error)
	DeleteDeal(ctx context.Context, id int) error

	ListActivities(ctx context.Context) ([]models.Activity, error)
	CreateActivity(ctx context.Context, p api.ActivityPayload) (*models.Activity, error)
	UpdateActivity(ctx context.Context, id int, p api.ActivityPayload) (*models.Activity, error)
	DeleteActivity(ctx context.Context, id int) error

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

var _ Backend = (*api.Client)(nil)
