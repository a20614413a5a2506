package ui

import (
	"scrollpager/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerMsg contains the result of running the external pager
type pagerMsg struct {
	err error
}

// clearStatusMsg clears a transient status line
type clearStatusMsg struct {
	id int
}
