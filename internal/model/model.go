// Package model holds the panel's client-side view of server entities and
// the identifier/name rules shared by the CLI and the TUI.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Project as the panel service reports it.
type Project struct {
	ID          int    `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// User as the panel service reports it. The password is write-only and never
// appears here.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellidos"`
	Email     string `json:"correo"`
	Username  string `json:"user"`
}

// DisplayName is the list label the panel shows for a user.
func (u User) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// ParseID coerces an identifier to an integer. Every id crossing a flow
// boundary goes through here; a non-numeric id aborts the flow before any
// network call is made.
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("id no numérico: %q", s)
	}
	return id, nil
}

// SplitFullName splits a display name on the first space into first/last.
// Server-provided fields take precedence over this split when present.
func SplitFullName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	first = parts[0]
	if len(parts) == 2 {
		last = strings.TrimSpace(parts[1])
	}
	return first, last
}
