// Package fsm implements the table-driven transition validator shared by the
// order, appointment, and shift lifecycles.
package fsm

import (
	"fmt"

	"github.com/fairyhunter13/salon-management-service/internal/model"
)

// Machine validates single-step transitions against a finite table mapping
// each state to the set of states reachable in one step. States absent from
// the table and states with an empty set are terminal.
type Machine[S ~string] struct {
	table map[S][]S
}

// New builds a Machine from a transition table.
func New[S ~string](table map[S][]S) Machine[S] {
	return Machine[S]{table: table}
}

// Can reports whether from -> to is a legal single step.
func (m Machine[S]) Can(from, to S) bool {
	for _, next := range m.table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Step validates from -> to, returning model.ErrInvalidTransition when the
// table does not permit it.
func (m Machine[S]) Step(from, to S) error {
	if !m.Can(from, to) {
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, from, to)
	}
	return nil
}

// Terminal reports whether no transition leaves s.
func (m Machine[S]) Terminal(s S) bool {
	return len(m.table[s]) == 0
}
