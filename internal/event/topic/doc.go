// Package topic provides the topic type used to key the event bus.
//
// # Topic Families
//
// A button group and its member buttons share nothing but a group name.
// Two topics are derived from that name:
//
//	<name>Button        member button -> group  (ChangeEvent)
//	<name>ButtonGroup   group -> member buttons (GroupState)
//
// For a group named "nav" these are "navButton" and "navButtonGroup".
//
// # Usage
//
//	t := topic.Button("nav") // "navButton"
//	g := topic.Group("nav")  // "navButtonGroup"
package topic
