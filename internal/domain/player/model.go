package player

import (
	"fmt"
	"strings"
)

// Player is a member of the weekly kickaround pool. Uniqueness on
// (first name, last name) is owned by the store.
type Player struct {
	ID        string
	FirstName string
	LastName  string
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("player first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("player last name is required")
	}

	return nil
}
