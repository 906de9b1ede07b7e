package topic

// Topic names a channel on the event bus.
// Topics are matched exactly; there is no hierarchy or wildcard support.
type Topic string

// Suffixes for the two topic families that link a group with its buttons.
const (
	// ButtonSuffix is appended to a group name for member -> group traffic.
	ButtonSuffix = "Button"

	// GroupSuffix is appended to a group name for group -> member traffic.
	GroupSuffix = "ButtonGroup"
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// IsValid returns true if the topic can be subscribed to or published on.
// The only requirement is that it is non-empty.
func (t Topic) IsValid() bool {
	return t != ""
}

// Button returns the topic member buttons of the named group publish on.
// Returns an empty (invalid) topic when name is empty.
//
// Example: Button("nav") -> "navButton"
func Button(name string) Topic {
	if name == "" {
		return ""
	}
	return Topic(name + ButtonSuffix)
}

// Group returns the topic the named group broadcasts its state on.
// Returns an empty (invalid) topic when name is empty.
//
// Example: Group("nav") -> "navButtonGroup"
func Group(name string) Topic {
	if name == "" {
		return ""
	}
	return Topic(name + GroupSuffix)
}
