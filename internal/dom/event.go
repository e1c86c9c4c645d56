package dom

// Event is dispatched to listeners registered with On.
type Event struct {
	Type   string
	Target *Element

	defaultPrevented bool
}

// PreventDefault marks the event's default action as canceled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

type listener struct {
	id uint64
	fn func(*Event)
}

// EventTarget holds listeners keyed by event type. Events do not bubble.
type EventTarget struct {
	listeners map[string][]listener
	nextID    uint64
}

// Subscription is the teardown handle returned by On.
type Subscription struct {
	target *EventTarget
	typ    string
	id     uint64
}

// On registers fn for events of the given type.
func (t *EventTarget) On(typ string, fn func(*Event)) *Subscription {
	if t.listeners == nil {
		t.listeners = make(map[string][]listener)
	}
	t.nextID++
	t.listeners[typ] = append(t.listeners[typ], listener{id: t.nextID, fn: fn})
	return &Subscription{target: t, typ: typ, id: t.nextID}
}

// Cancel removes the listener. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil || s.target == nil {
		return
	}
	ls := s.target.listeners[s.typ]
	for i, l := range ls {
		if l.id == s.id {
			s.target.listeners[s.typ] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	s.target = nil
}

// ListenerCount returns how many listeners are registered for typ.
func (t *EventTarget) ListenerCount(typ string) int {
	return len(t.listeners[typ])
}

// Dispatch calls every listener for ev.Type in registration order.
func (t *EventTarget) Dispatch(ev *Event) {
	ls := append([]listener(nil), t.listeners[ev.Type]...)
	for _, l := range ls {
		l.fn(ev)
	}
}

// Subscriptions groups handles so a widget can tear down everything it wired.
type Subscriptions []*Subscription

// Cancel cancels every subscription in the group.
func (ss Subscriptions) Cancel() {
	for _, s := range ss {
		s.Cancel()
	}
}
