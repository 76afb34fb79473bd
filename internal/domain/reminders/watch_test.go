package reminders

import (
	"context"
	"testing"
	"time"
)

func TestFeedReplaysLatestSnapshotToNewSubscribers(t *testing.T) {
	feed := NewFeed()
	feed.Publish([]Reminder{{ID: 1, Title: "Rent"}})

	ch, cancel := feed.Subscribe()
	defer cancel()

	select {
	case snapshot := <-ch:
		if len(snapshot) != 1 || snapshot[0].ID != 1 {
			t.Fatalf("expected replayed snapshot, got %+v", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected immediate replay")
	}
}

func TestFeedDropsStaleSnapshots(t *testing.T) {
	feed := NewFeed()
	ch, cancel := feed.Subscribe()
	defer cancel()

	feed.Publish([]Reminder{{ID: 1}})
	feed.Publish([]Reminder{{ID: 1}, {ID: 2}})

	select {
	case snapshot := <-ch:
		if len(snapshot) != 2 {
			t.Fatalf("expected latest snapshot with 2 items, got %d", len(snapshot))
		}
	case <-time.After(time.Second):
		t.Fatalf("expected a snapshot")
	}
}

func TestFeedNoReplayBeforeFirstPublish(t *testing.T) {
	feed := NewFeed()
	ch, cancel := feed.Subscribe()
	defer cancel()

	select {
	case snapshot := <-ch:
		t.Fatalf("expected no snapshot, got %+v", snapshot)
	default:
	}
}

func TestFeedCancelClosesChannel(t *testing.T) {
	feed := NewFeed()
	ch, cancel := feed.Subscribe()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel")
	}

	// Publishing after cancel must not panic or block.
	feed.Publish([]Reminder{{ID: 1}})
}

func TestServiceWatchPublishesOnMutation(t *testing.T) {
	repo := newFakeRemindersRepo()
	svc := newTestService(repo, date(2025, time.June, 1))

	ch, cancel := svc.Watch()
	defer cancel()

	if _, err := svc.Create(context.Background(), CreateInput{Title: "Rent", DueDate: date(2025, time.June, 10)}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	select {
	case snapshot := <-ch:
		if len(snapshot) != 1 || snapshot[0].Title != "Rent" {
			t.Fatalf("expected active snapshot, got %+v", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected a snapshot after create")
	}
}
