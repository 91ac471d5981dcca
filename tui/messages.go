// ABOUTME: Completion messages for asynchronous backend calls
// ABOUTME: Each fetch or mutation command resolves to one of these
package tui

import "crmterm/models"

// recordsLoadedMsg delivers a list view's own collection. Messages carry the
// owning route so results landing after navigation are simply discarded.
type recordsLoadedMsg struct {
	route   string
	records []record
	err     error
}

// lookupLoadedMsg delivers a related collection used for label resolution and
// form select options. Lookup failures are logged and otherwise swallowed.
type lookupLoadedMsg struct {
	route       string // owning list view
	lookupRoute string // related collection
	options     []selectOption
	err         error
}

type statsLoadedMsg struct {
	stats *models.DashboardStats
	err   error
}

// saveDoneMsg resolves a form submit (create or update).
type saveDoneMsg struct {
	route string
	err   error
}

type deleteDoneMsg struct {
	route string
	err   error
}

type toggleDoneMsg struct {
	route string
	err   error
}
