package domain

import "strings"

// Well-known WorkItem field names
const (
	FieldChassis     = "chassis"
	FieldDescription = "description"
	FieldGroup       = "group"
	FieldLocation    = "location"
	FieldOdometer    = "odometer"
	FieldPlate       = "plate"
)

// WorkItem is one unit of input driving one workflow execution.
// It is never mutated after loading.
type WorkItem struct {
	Client string
	Fields map[string]string
	ID     string
	Row    int
}

// NewWorkItem creates a WorkItem with a trimmed identifier
func NewWorkItem(row int, id string) WorkItem {
	return WorkItem{
		ID:  strings.TrimSpace(id),
		Row: row,
	}
}

// Field returns the named field or an empty string
func (w WorkItem) Field(name string) string {
	if w.Fields == nil {
		return ""
	}
	return w.Fields[name]
}

// Vars returns the placeholder values used to bind locators for this item.
// "id" and "client" are always present; every field is exposed under its own name.
func (w WorkItem) Vars() map[string]string {
	vars := make(map[string]string, len(w.Fields)+2)
	for k, v := range w.Fields {
		vars[k] = v
	}
	vars["id"] = w.ID
	vars["client"] = w.Client
	return vars
}

// String returns the identifier, qualified by client when present
func (w WorkItem) String() string {
	if w.Client == "" {
		return w.ID
	}
	return w.Client + "/" + w.ID
}
