package event

// Handler receives events of one type.
type Handler[T any] func(evt T)

type subscriber[T any] struct {
	id uint64
	fn Handler[T]
}

// Topic is a synchronous publish point for one event type. Delivery happens
// inline on Publish, in subscription order.
type Topic[T any] struct {
	next uint64
	subs []subscriber[T]
}

// Subscribe attaches fn and returns a function that detaches it. Detaching
// twice is a no-op.
func (t *Topic[T]) Subscribe(fn Handler[T]) (unsubscribe func()) {
	if t == nil || fn == nil {
		return func() {}
	}
	t.next++
	id := t.next
	t.subs = append(t.subs, subscriber[T]{id: id, fn: fn})
	return func() { t.remove(id) }
}

// Publish delivers evt to every current subscriber. Handlers attached or
// detached during delivery take effect from the next Publish.
func (t *Topic[T]) Publish(evt T) {
	if t == nil || len(t.subs) == 0 {
		return
	}
	subs := t.subs
	for _, s := range subs {
		s.fn(evt)
	}
}

// Len returns the number of subscribers.
func (t *Topic[T]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.subs)
}

func (t *Topic[T]) remove(id uint64) {
	for i, s := range t.subs {
		if s.id != id {
			continue
		}
		// copy so an in-flight Publish keeps iterating its own slice
		out := make([]subscriber[T], 0, len(t.subs)-1)
		out = append(out, t.subs[:i]...)
		t.subs = append(out, t.subs[i+1:]...)
		return
	}
}

func (t *Topic[T]) clear() {
	if t == nil {
		return
	}
	t.subs = nil
}

// Channel groups the five locomotion event streams. One Channel belongs to
// one simulation world; it is not safe for concurrent use.
type Channel struct {
	Moved         Topic[Moved]
	Jumped        Topic[Jumped]
	Dashed        Topic[Dashed]
	EnergyChanged Topic[EnergyChanged]
	GroundChanged Topic[GroundChanged]
}

func NewChannel() *Channel {
	return &Channel{}
}

func (c *Channel) PublishMoved(evt Moved) {
	if c == nil {
		return
	}
	c.Moved.Publish(evt)
}

func (c *Channel) PublishJumped(evt Jumped) {
	if c == nil {
		return
	}
	c.Jumped.Publish(evt)
}

func (c *Channel) PublishDashed(evt Dashed) {
	if c == nil {
		return
	}
	c.Dashed.Publish(evt)
}

func (c *Channel) PublishEnergyChanged(evt EnergyChanged) {
	if c == nil {
		return
	}
	c.EnergyChanged.Publish(evt)
}

func (c *Channel) PublishGroundChanged(evt GroundChanged) {
	if c == nil {
		return
	}
	c.GroundChanged.Publish(evt)
}

// Clear drops every subscription on every stream.
func (c *Channel) Clear() {
	if c == nil {
		return
	}
	c.Moved.clear()
	c.Jumped.clear()
	c.Dashed.clear()
	c.EnergyChanged.clear()
	c.GroundChanged.clear()
}

// Counts reports subscriber counts per stream.
func (c *Channel) Counts() map[Kind]int {
	if c == nil {
		return nil
	}
	return map[Kind]int{
		KindMoved:         c.Moved.Len(),
		KindJumped:        c.Jumped.Len(),
		KindDashed:        c.Dashed.Len(),
		KindEnergyChanged: c.EnergyChanged.Len(),
		KindGroundChanged: c.GroundChanged.Len(),
	}
}
