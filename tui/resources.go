// ABOUTME: Per-entity resource descriptors driving the generic list and form
// ABOUTME: One table of columns, lookups, fetchers, and submit builders per entity
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"crmterm/api"
	"crmterm/models"
)

// Route paths. Active navigation entries match against these exactly.
const (
	routeDashboard  = "/"
	routeCustomers  = "/customers"
	routeContacts   = "/contacts"
	routeDeals      = "/deals"
	routeActivities = "/activities"
)

// record is one row of a list view: the backend id plus the typed entity.
type record struct {
	id   int
	data interface{}
}

// selectOption is one choice in a form select. id is set for foreign-key
// selects and nil for the blank option and plain enum selects.
type selectOption struct {
	label string
	value string
	id    *int
}

// lookup is a related collection held by a list view for label resolution
// and form selects. A lookup whose fetch failed stays empty.
type lookup struct {
	loaded  bool
	options []selectOption
}

// resolveLabel maps a foreign key to a display label: "-" when the key is
// absent, the related record's label when it matches, "Unknown" otherwise.
func resolveLabel(id *int, lk lookup) string {
	if id == nil {
		return "-"
	}
	for _, opt := range lk.options {
		if opt.id != nil && *opt.id == *id {
			return opt.label
		}
	}
	return "Unknown"
}

// resource describes one entity type to the generic list view and form.
type resource struct {
	name    string // singular, lowercase, for messages
	title   string
	route   string
	lookups []string // related routes fetched alongside the own collection

	columns    []table.Column
	fetch      func(ctx context.Context, b Backend) ([]record, error)
	rowFor     func(rec record, lookups map[string]lookup) table.Row
	deleteByID func(ctx context.Context, b Backend, id int) error

	formFields func(editing *record, lookups map[string]lookup) []formField
	submit     func(ctx context.Context, b Backend, f *formState) error

	// toggle flips Activity.Completed with a full-record update. Nil for
	// every other entity.
	toggle func(ctx context.Context, b Backend, rec record) error
}

// lookupFetchers load a related collection as select options, keyed by route.
var lookupFetchers = map[string]func(ctx context.Context, b Backend) ([]selectOption, error){
	routeCustomers: func(ctx context.Context, b Backend) ([]selectOption, error) {
		customers, err := b.ListCustomers(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]selectOption, 0, len(customers))
		for _, c := range customers {
			id := c.ID
			opts = append(opts, selectOption{label: c.Name, id: &id})
		}
		return opts, nil
	},
	routeDeals: func(ctx context.Context, b Backend) ([]selectOption, error) {
		deals, err := b.ListDeals(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]selectOption, 0, len(deals))
		for _, d := range deals {
			id := d.ID
			opts = append(opts, selectOption{label: d.Title, id: &id})
		}
		return opts, nil
	},
}

var customersResource = &resource{
	name:  "customer",
	title: "Customers",
	route: routeCustomers,
	columns: []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 26},
		{Title: "Phone", Width: 14},
		{Title: "Company", Width: 18},
		{Title: "Industry", Width: 14},
		{Title: "Status", Width: 10},
	},
	fetch: func(ctx context.Context, b Backend) ([]record, error) {
		customers, err := b.ListCustomers(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]record, 0, len(customers))
		for _, c := range customers {
			records = append(records, record{id: c.ID, data: c})
		}
		return records, nil
	},
	rowFor: func(rec record, _ map[string]lookup) table.Row {
		c := rec.data.(models.Customer)
		return table.Row{c.Name, orDash(c.Email), orDash(c.Phone), orDash(c.Company), orDash(c.Industry), c.Status}
	},
	deleteByID: func(ctx context.Context, b Backend, id int) error {
		return b.DeleteCustomer(ctx, id)
	},
	formFields: func(editing *record, _ map[string]lookup) []formField {
		var c models.Customer
		if editing != nil {
			c = editing.data.(models.Customer)
		} else {
			c.Status = models.StatusActive
		}
		return []formField{
			newTextField("name", "Name", c.Name, true),
			newTextField("email", "Email", c.Email, false),
			newTextField("phone", "Phone", c.Phone, false),
			newTextField("company", "Company", c.Company, false),
			newTextField("industry", "Industry", c.Industry, false),
			newEnumField("status", "Status", models.Statuses, c.Status),
		}
	},
	submit: func(ctx context.Context, b Backend, f *formState) error {
		p := api.CustomerPayload{
			Name:     f.text("name"),
			Email:    f.text("email"),
			Phone:    f.text("phone"),
			Company:  f.text("company"),
			Industry: f.text("industry"),
			Status:   f.selectValue("status"),
		}
		if f.editing != nil {
			_, err := b.UpdateCustomer(ctx, f.editing.id, p)
			return err
		}
		_, err := b.CreateCustomer(ctx, p)
		return err
	},
}

var contactsResource = &resource{
	name:    "contact",
	title:   "Contacts",
	route:   routeContacts,
	lookups: []string{routeCustomers},
	columns: []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 26},
		{Title: "Phone", Width: 14},
		{Title: "Position", Width: 16},
		{Title: "Customer", Width: 20},
	},
	fetch: func(ctx context.Context, b Backend) ([]record, error) {
		contacts, err := b.ListContacts(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]record, 0, len(contacts))
		for _, c := range contacts {
			records = append(records, record{id: c.ID, data: c})
		}
		return records, nil
	},
	rowFor: func(rec record, lookups map[string]lookup) table.Row {
		c := rec.data.(models.Contact)
		return table.Row{
			c.FullName(),
			orDash(c.Email),
			orDash(c.Phone),
			orDash(c.Position),
			resolveLabel(c.CustomerID, lookups[routeCustomers]),
		}
	},
	deleteByID: func(ctx context.Context, b Backend, id int) error {
		return b.DeleteContact(ctx, id)
	},
	formFields: func(editing *record, lookups map[string]lookup) []formField {
		var c models.Contact
		if editing != nil {
			c = editing.data.(models.Contact)
		}
		return []formField{
			newTextField("first_name", "First name", c.FirstName, true),
			newTextField("last_name", "Last name", c.LastName, true),
			newTextField("email", "Email", c.Email, false),
			newTextField("phone", "Phone", c.Phone, false),
			newTextField("position", "Position", c.Position, false),
			newRefField("customer_id", "Customer", lookups[routeCustomers].options, c.CustomerID, "Select a customer", true),
		}
	},
	submit: func(ctx context.Context, b Backend, f *formState) error {
		p := api.ContactPayload{
			FirstName:  f.text("first_name"),
			LastName:   f.text("last_name"),
			Email:      f.text("email"),
			Phone:      f.text("phone"),
			Position:   f.text("position"),
			CustomerID: f.selectedID("customer_id"),
		}
		if f.editing != nil {
			_, err := b.UpdateContact(ctx, f.editing.id, p)
			return err
		}
		_, err := b.CreateContact(ctx, p)
		return err
	},
}

var dealsResource = &resource{
	name:    "deal",
	title:   "Deals",
	route:   routeDeals,
	lookups: []string{routeCustomers},
	columns: []table.Column{
		{Title: "Title", Width: 24},
		{Title: "Customer", Width: 20},
		{Title: "Value", Width: 14},
		{Title: "Stage", Width: 14},
		{Title: "Probability", Width: 11},
		{Title: "Expected Close", Width: 14},
	},
	fetch: func(ctx context.Context, b Backend) ([]record, error) {
		deals, err := b.ListDeals(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]record, 0, len(deals))
		for _, d := range deals {
			records = append(records, record{id: d.ID, data: d})
		}
		return records, nil
	},
	rowFor: func(rec record, lookups map[string]lookup) table.Row {
		d := rec.data.(models.Deal)
		return table.Row{
			d.Title,
			resolveLabel(d.CustomerID, lookups[routeCustomers]),
			"$" + formatAmount(d.Value),
			d.Stage,
			fmt.Sprintf("%d%%", d.Probability),
			orDash(dateOnly(d.ExpectedCloseDate)),
		}
	},
	deleteByID: func(ctx context.Context, b Backend, id int) error {
		return b.DeleteDeal(ctx, id)
	},
	formFields: func(editing *record, lookups map[string]lookup) []formField {
		var d models.Deal
		if editing != nil {
			d = editing.data.(models.Deal)
		} else {
			d.Stage = models.StageProspecting
		}
		valueStr := ""
		if editing != nil {
			valueStr = strconv.FormatFloat(d.Value, 'f', -1, 64)
		}
		return []formField{
			newTextField("title", "Title", d.Title, true),
			newTextField("value", "Value ($)", valueStr, true),
			newEnumField("stage", "Stage", models.Stages, d.Stage),
			newTextField("probability", "Probability (%)", strconv.Itoa(d.Probability), false),
			newTextField("expected_close_date", "Expected close date (YYYY-MM-DD)", dateOnly(d.ExpectedCloseDate), false),
			newRefField("customer_id", "Customer", lookups[routeCustomers].options, d.CustomerID, "Select a customer", true),
		}
	},
	submit: func(ctx context.Context, b Backend, f *formState) error {
		value, err := strconv.ParseFloat(f.text("value"), 64)
		if err != nil {
			return errFieldInvalid("value must be a number")
		}
		probability := 0
		if s := f.text("probability"); s != "" {
			probability, err = strconv.Atoi(s)
			if err != nil {
				return errFieldInvalid("probability must be a whole number")
			}
		}
		p := api.DealPayload{
			Title:             f.text("title"),
			Value:             value,
			Stage:             f.selectValue("stage"),
			Probability:       probability,
			ExpectedCloseDate: f.text("expected_close_date"),
			CustomerID:        f.selectedID("customer_id"),
		}
		if f.editing != nil {
			_, err := b.UpdateDeal(ctx, f.editing.id, p)
			return err
		}
		_, err = b.CreateDeal(ctx, p)
		return err
	},
}

var activitiesResource = &resource{
	name:    "activity",
	title:   "Activities",
	route:   routeActivities,
	lookups: []string{routeCustomers, routeDeals},
	columns: []table.Column{
		{Title: "Type", Width: 8},
		{Title: "Subject", Width: 24},
		{Title: "Due Date", Width: 17},
		{Title: "Customer", Width: 18},
		{Title: "Deal", Width: 18},
		{Title: "Status", Width: 12},
	},
	fetch: func(ctx context.Context, b Backend) ([]record, error) {
		activities, err := b.ListActivities(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]record, 0, len(activities))
		for _, a := range activities {
			records = append(records, record{id: a.ID, data: a})
		}
		return records, nil
	},
	rowFor: func(rec record, lookups map[string]lookup) table.Row {
		a := rec.data.(models.Activity)
		status := "○ Pending"
		if a.Completed {
			status = "✓ Completed"
		}
		return table.Row{
			a.Type,
			a.Subject,
			orDash(formatDateTime(a.DueDate)),
			resolveLabel(a.CustomerID, lookups[routeCustomers]),
			resolveLabel(a.DealID, lookups[routeDeals]),
			status,
		}
	},
	deleteByID: func(ctx context.Context, b Backend, id int) error {
		return b.DeleteActivity(ctx, id)
	},
	formFields: func(editing *record, lookups map[string]lookup) []formField {
		var a models.Activity
		if editing != nil {
			a = editing.data.(models.Activity)
		} else {
			a.Type = models.ActivityCall
		}
		return []formField{
			newEnumField("type", "Type", models.ActivityTypes, a.Type),
			newTextField("subject", "Subject", a.Subject, true),
			newTextField("description", "Description", a.Description, false),
			newTextField("due_date", "Due date (YYYY-MM-DDTHH:MM, UTC)", widgetDateTime(a.DueDate), false),
			newRefField("customer_id", "Customer", lookups[routeCustomers].options, a.CustomerID, "Select a customer (optional)", false),
			newRefField("deal_id", "Deal", lookups[routeDeals].options, a.DealID, "Select a deal (optional)", false),
			newCheckboxField("completed", "Completed", a.Completed),
		}
	},
	submit: func(ctx context.Context, b Backend, f *formState) error {
		dueDate, err := submitDateTime(f.text("due_date"))
		if err != nil {
			return errFieldInvalid("due date must look like 2024-03-15T10:30")
		}
		p := api.ActivityPayload{
			Type:        f.selectValue("type"),
			Subject:     f.text("subject"),
			Description: f.text("description"),
			DueDate:     dueDate,
			Completed:   f.checked("completed"),
			CustomerID:  f.selectedID("customer_id"),
			DealID:      f.selectedID("deal_id"),
		}
		if f.editing != nil {
			_, err := b.UpdateActivity(ctx, f.editing.id, p)
			return err
		}
		_, err = b.CreateActivity(ctx, p)
		return err
	},
	toggle: func(ctx context.Context, b Backend, rec record) error {
		a := rec.data.(models.Activity)
		p := api.ActivityPayload{
			Type:        a.Type,
			Subject:     a.Subject,
			Description: a.Description,
			DueDate:     a.DueDate,
			Completed:   !a.Completed,
			CustomerID:  a.CustomerID,
			DealID:      a.DealID,
		}
		_, err := b.UpdateActivity(ctx, a.ID, p)
		return err
	},
}

// resources indexes the entity descriptors by route.
var resources = map[string]*resource{
	routeCustomers:  customersResource,
	routeContacts:   contactsResource,
	routeDeals:      dealsResource,
	routeActivities: activitiesResource,
}

// navEntries is the sidebar order. Active highlighting is an exact route
// match, never a prefix match.
var navEntries = []struct {
	label string
	route string
}{
	{"Dashboard", routeDashboard},
	{"Customers", routeCustomers},
	{"Contacts", routeContacts},
	{"Deals", routeDeals},
	{"Activities", routeActivities},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// dateOnly truncates a backend date or timestamp to its date part.
func dateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// formatDateTime renders a backend timestamp for table rows.
func formatDateTime(s string) string {
	t := models.ParseTimestamp(s)
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// widgetDateTime converts a backend timestamp to the minute-precision UTC
// form the due-date widget edits.
func widgetDateTime(s string) string {
	t := models.ParseTimestamp(s)
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04")
}

// submitDateTime converts the widget form back to RFC3339 UTC for the wire.
// An empty widget stays empty (the field is unset, not invalid).
func submitDateTime(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
	if err != nil {
		return "", err
	}
	return t.Format(time.RFC3339), nil
}

// formatAmount groups the integer digits of an amount by thousands, keeping
// whatever decimal part the value carries.
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
