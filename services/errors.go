package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
	ErrUnknownVariant   = errors.New("unknown taxonomy variant")
)

// ValidationError reports every rejected field of a write or query at once
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Add appends a message for field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Merge folds field messages produced elsewhere into e
func (e *ValidationError) Merge(fields map[string][]string) {
	for field, messages := range fields {
		for _, m := range messages {
			e.Add(field, m)
		}
	}
}

// Err returns e when it holds at least one field, nil otherwise
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Actor is the authenticated requester a catalog operation runs on behalf of
type Actor struct {
	ID       uint
	Operator bool
}

// CanManage reports whether the actor may mutate a listing owned by ownerID
func (a Actor) CanManage(ownerID uint) bool {
	return a.Operator || (a.ID != 0 && a.ID == ownerID)
}
