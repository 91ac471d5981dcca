// ABOUTME: Write payloads for create and update requests
// ABOUTME: Sans-id entity bodies with normalized optional foreign keys
package api

// Payloads carry what the backend accepts on POST/PUT: the full editable
// field set, never a partial diff. Optional foreign keys are pointers so a
// blank selection serializes as JSON null rather than an invalid reference.

type CustomerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Industry string `json:"industry"`
	Status   string `json:"status"`
}

type ContactPayload struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	CustomerID *int   `json:"customer_id"`
}

type DealPayload struct {
	Title             string  `json:"title"`
	Value             float64 `json:"value"`
	Stage             string  `json:"stage"`
	Probability       int     `json:"probability"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty"`
	CustomerID        *int    `json:"customer_id"`
}

type ActivityPayload struct {
	Type        string `json:"type"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	DueDate     string `json:"due_date,omitempty"`
	Completed   bool   `json:"completed"`
	CustomerID  *int   `json:"customer_id"`
	DealID      *int   `json:"deal_id"`
}
