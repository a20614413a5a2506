package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPageRequested EventType = "PageRequested"
	EventPageLoaded    EventType = "PageLoaded"
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PageRequestedEvent is emitted when the view needs another page
type PageRequestedEvent struct {
	Page      int
	Direction Direction // DirectionDown appends, DirectionUp prepends
}

func (e PageRequestedEvent) Type() EventType { return EventPageRequested }

// PageLoadedEvent is emitted when a source delivered a page
type PageLoadedEvent struct {
	Page      Page
	Direction Direction
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
	Page    int // page being loaded, 0 when not page related
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Source    string
	StartPage int
	PageSize  int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
