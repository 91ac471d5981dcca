// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Customer, Contact, Deal, Activity, and dashboard stat structs
package models

import "time"

// Customer is an account record. Optional fields come back empty, not null.
type Customer struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Industry  string `json:"industry"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Contact is a person at a customer. CustomerID is required at creation.
type Contact struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	CustomerID *int   `json:"customer_id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// FullName joins first and last name for display.
func (c Contact) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type Deal struct {
	ID                int     `json:"id"`
	Title             string  `json:"title"`
	Value             float64 `json:"value"`
	Stage             string  `json:"stage"`
	Probability       int     `json:"probability"`
	ExpectedCloseDate string  `json:"expected_close_date"`
	CustomerID        *int    `json:"customer_id"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// Activity is a task or interaction. Both foreign keys are optional and
// independent of each other.
type Activity struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Completed   bool   `json:"completed"`
	CustomerID  *int   `json:"customer_id"`
	DealID      *int   `json:"deal_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// StageSummary is one row of the dashboard's deals-by-stage breakdown.
type StageSummary struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type DashboardStats struct {
	TotalCustomers  int            `json:"total_customers"`
	ActiveCustomers int            `json:"active_customers"`
	TotalDeals      int            `json:"total_deals"`
	TotalDealValue  float64        `json:"total_deal_value"`
	DealsByStage    []StageSummary `json:"deals_by_stage"`
}

// Customer status constants.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusProspect = "prospect"
)

// Deal stage constants.
const (
	StageProspecting   = "prospecting"
	StageQualification = "qualification"
	StageProposal      = "proposal"
	StageNegotiation   = "negotiation"
	StageClosedWon     = "closed-won"
	StageClosedLost    = "closed-lost"
)

// Activity type constants.
const (
	ActivityCall    = "call"
	ActivityEmail   = "email"
	ActivityMeeting = "meeting"
	ActivityNote    = "note"
)

// Stages lists deal stages in pipeline order.
var Stages = []string{
	StageProspecting,
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// ActivityTypes lists the activity type options in form order.
var ActivityTypes = []string{
	ActivityCall,
	ActivityEmail,
	ActivityMeeting,
	ActivityNote,
}

// Statuses lists the customer status options in form order.
var Statuses = []string{
	StatusActive,
	StatusInactive,
	StatusProspect,
}

// timestampLayouts covers the ISO shapes the backend emits: RFC3339 with or
// without fractional seconds, and timezone-naive isoformat (treated as UTC).
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses a backend timestamp string. Naive timestamps are
// interpreted as UTC. Returns the zero time when the string is empty or
// unparseable.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
