package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get player: %w", sql.ErrNoRows)) {
		t.Fatal("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatal("expected false for unrelated error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pq.Error{Code: "23505", Constraint: "gameweek_players_gameweek_id_player_id_key"}

	if !isUniqueViolation(uniqueErr) {
		t.Fatal("expected true for 23505 error")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", uniqueErr)) {
		t.Fatal("expected true for wrapped 23505 error")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("expected false for foreign key violation")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Fatal("expected false for unrelated error")
	}
}

func TestViolatedConstraint(t *testing.T) {
	uniqueErr := &pq.Error{Code: "23505", Constraint: "gameweeks_single_open_idx"}

	if got := violatedConstraint(fmt.Errorf("insert: %w", uniqueErr)); got != "gameweeks_single_open_idx" {
		t.Fatalf("unexpected constraint: %q", got)
	}
	if got := violatedConstraint(errors.New("boom")); got != "" {
		t.Fatalf("expected empty constraint, got %q", got)
	}
}
