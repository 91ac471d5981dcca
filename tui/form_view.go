// ABOUTME: Generic entity form overlay
// ABOUTME: Draft editing with text, select, and checkbox fields, and submit
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSelect
	fieldCheckbox
)

// formField is one editable widget in the draft. Text fields wrap a
// textinput; selects cycle through options; checkboxes toggle.
type formField struct {
	name     string
	label    string
	kind     fieldKind
	required bool

	input    textinput.Model
	options  []selectOption
	selected int
	checked  bool
}

// fieldError is a widget-level validation failure. It never reaches the
// network.
type fieldError string

func (e fieldError) Error() string { return string(e) }

func errFieldInvalid(msg string) error { return fieldError(msg) }

func newTextField(name, label, value string, required bool) formField {
	input := textinput.New()
	input.Placeholder = label
	input.CharLimit = 200
	input.SetValue(value)
	return formField{name: name, label: label, kind: fieldText, required: required, input: input}
}

// newEnumField builds a select over fixed string values.
func newEnumField(name, label string, values []string, current string) formField {
	options := make([]selectOption, 0, len(values))
	selected := 0
	for i, v := range values {
		options = append(options, selectOption{label: v, value: v})
		if v == current {
			selected = i
		}
	}
	return formField{name: name, label: label, kind: fieldSelect, options: options, selected: selected}
}

// newRefField builds a foreign-key select with a leading blank option, so an
// absent reference stays representable as an empty string rather than null
// until submit normalizes it.
func newRefField(name, label string, options []selectOption, currentID *int, blankLabel string, required bool) formField {
	all := make([]selectOption, 0, len(options)+1)
	all = append(all, selectOption{label: blankLabel})
	all = append(all, options...)
	selected := 0
	if currentID != nil {
		for i, opt := range all {
			if opt.id != nil && *opt.id == *currentID {
				selected = i
				break
			}
		}
	}
	return formField{name: name, label: label, kind: fieldSelect, required: required, options: all, selected: selected}
}

func newCheckboxField(name, label string, checked bool) formField {
	return formField{name: name, label: label, kind: fieldCheckbox, checked: checked}
}

// formState is the modal form's component-local state: the draft fields, the
// record being edited (nil when creating), and the submit status.
type formState struct {
	res        *resource
	editing    *record
	fields     []formField
	focus      int
	submitting bool
	errMsg     string
}

func newFormState(res *resource, editing *record, lookups map[string]lookup) *formState {
	f := &formState{
		res:     res,
		editing: editing,
		fields:  res.formFields(editing, lookups),
	}
	f.applyFocus()
	return f
}

func (f *formState) applyFocus() {
	for i := range f.fields {
		if i == f.focus && f.fields[i].kind == fieldText {
			f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
}

func (f *formState) field(name string) *formField {
	for i := range f.fields {
		if f.fields[i].name == name {
			return &f.fields[i]
		}
	}
	return nil
}

// text returns a text field's trimmed draft value.
func (f *formState) text(name string) string {
	if fld := f.field(name); fld != nil {
		return strings.TrimSpace(fld.input.Value())
	}
	return ""
}

// selectValue returns the chosen option's string value (enum selects).
func (f *formState) selectValue(name string) string {
	if fld := f.field(name); fld != nil && fld.selected < len(fld.options) {
		return fld.options[fld.selected].value
	}
	return ""
}

// selectedID returns the chosen option's id, or nil for the blank option.
// This is where an empty foreign key becomes null instead of empty string.
func (f *formState) selectedID(name string) *int {
	if fld := f.field(name); fld != nil && fld.selected < len(fld.options) {
		return fld.options[fld.selected].id
	}
	return nil
}

func (f *formState) checked(name string) bool {
	if fld := f.field(name); fld != nil {
		return fld.checked
	}
	return false
}

// missingRequired reports the first required field left blank, mirroring
// input-widget "required" enforcement. There is no semantic validation
// beyond this.
func (f *formState) missingRequired() string {
	for _, fld := range f.fields {
		if !fld.required {
			continue
		}
		switch fld.kind {
		case fieldText:
			if strings.TrimSpace(fld.input.Value()) == "" {
				return fld.label + " is required"
			}
		case fieldSelect:
			if fld.selected < len(fld.options) && fld.options[fld.selected].id == nil && fld.options[fld.selected].value == "" {
				return fld.label + " is required"
			}
		}
	}
	return ""
}

func (m Model) renderFormView() string {
	f := m.form

	entity := strings.ToUpper(f.res.name[:1]) + f.res.name[1:]
	title := "Add " + entity
	if f.editing != nil {
		title = "Edit " + entity
	}

	var s strings.Builder
	s.WriteString(formTitleStyle.Render(title))
	s.WriteString("\n\n")

	if f.errMsg != "" {
		s.WriteString(errorStyle.Render(f.errMsg))
		s.WriteString("\n\n")
	}

	for i, fld := range f.fields {
		marker := "  "
		if i == f.focus {
			marker = "> "
		}
		label := fld.label
		if fld.required {
			label += " *"
		}
		s.WriteString(marker)
		s.WriteString(formLabelStyle.Render(label))
		s.WriteString("\n")
		s.WriteString("  ")
		switch fld.kind {
		case fieldText:
			s.WriteString(fld.input.View())
		case fieldSelect:
			option := ""
			if fld.selected < len(fld.options) {
				option = fld.options[fld.selected].label
			}
			s.WriteString("◂ " + option + " ▸")
		case fieldCheckbox:
			if fld.checked {
				s.WriteString("[x] " + fld.label)
			} else {
				s.WriteString("[ ] " + fld.label)
			}
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if f.submitting {
		s.WriteString(loadingStyle.Render("Saving..."))
	} else {
		s.WriteString(helpStyle.Render("Tab: Next field • ←/→: Change option • Space: Toggle • Enter: Save • Esc: Cancel"))
	}

	return formBoxStyle.Render(s.String())
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.String() {
	case "esc":
		// Cancelling still refetches: closing the form always does.
		return m.closeForm()
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.fields)
		f.applyFocus()
		return m, nil
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
		f.applyFocus()
		return m, nil
	case "enter":
		if f.submitting {
			return m, nil
		}
		if missing := f.missingRequired(); missing != "" {
			f.errMsg = missing
			return m, nil
		}
		f.submitting = true
		f.errMsg = ""
		return m, m.submitForm()
	}

	fld := &f.fields[f.focus]
	switch fld.kind {
	case fieldSelect:
		switch msg.String() {
		case "left", "h":
			fld.selected = (fld.selected - 1 + len(fld.options)) % len(fld.options)
		case "right", "l", " ":
			fld.selected = (fld.selected + 1) % len(fld.options)
		}
		return m, nil
	case fieldCheckbox:
		if msg.String() == " " {
			fld.checked = !fld.checked
		}
		return m, nil
	}

	var cmd tea.Cmd
	fld.input, cmd = fld.input.Update(msg)
	return m, cmd
}

// submitForm issues the create or update request built from the draft.
func (m Model) submitForm() tea.Cmd {
	f := m.form
	return func() tea.Msg {
		err := f.res.submit(context.Background(), m.backend, f)
		return saveDoneMsg{route: f.res.route, err: err}
	}
}

var (
	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	formBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)
)
