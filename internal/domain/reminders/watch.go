package reminders

import "sync"

// Feed is a push-style live view over the active reminder list. New
// subscribers immediately receive the latest published snapshot; every
// mutation publishes a fresh one. Slow subscribers only ever see the most
// recent snapshot, intermediate ones are dropped.
type Feed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan []Reminder
	latest []Reminder
	seeded bool
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[int]chan []Reminder)}
}

// Subscribe registers a listener. The returned cancel func must be called
// to stop observing; the channel is closed by it.
func (f *Feed) Subscribe() (<-chan []Reminder, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++

	ch := make(chan []Reminder, 1)
	f.subs[id] = ch
	if f.seeded {
		ch <- f.latest
	}

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (f *Feed) Publish(snapshot []Reminder) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.latest = snapshot
	f.seeded = true

	for _, sub := range f.subs {
		select {
		case <-sub:
		default:
		}
		sub <- snapshot
	}
}
