// Package events carries in-process change notifications from the data
// owners (store, auth session, credential cache) to the views rendering them.
package events

// Publisher is what producers of change notifications depend on.
// Implementations must not block the caller.
type Publisher interface {
	Publish(event Event)
}

// Publish sends event through p, tolerating a nil publisher.
func Publish(p Publisher, event Event) {
	if p == nil {
		return
	}
	p.Publish(event)
}

// Compile-time verification that *Bus implements Publisher
var _ Publisher = (*Bus)(nil)
