package action_history

import (
	"context"
	"fmt"
	"testing"
)

type memStore struct {
	items []ActionHistoryItem
}

func (s *memStore) Load(_ context.Context) ([]ActionHistoryItem, error) {
	out := make([]ActionHistoryItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *memStore) Save(_ context.Context, items []ActionHistoryItem) error {
	s.items = make([]ActionHistoryItem, len(items))
	copy(s.items, items)
	return nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.items = nil
	return nil
}

func TestAppendPrepends(t *testing.T) {
	svc := NewActionHistoryService(&memStore{}, nil, nil)
	ctx := context.Background()

	first, err := svc.Append(ctx, ActionSaveFilter, 10, "VIP", nil, "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Append(ctx, ActionExportExcel, 10, "VIP", nil, "")
	if err != nil {
		t.Fatal(err)
	}

	items, _ := svc.List(ctx)
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Error("newest entry should be first")
	}
}

func TestCapEvictsOldestFIFO(t *testing.T) {
	svc := NewActionHistoryService(&memStore{}, nil, nil)
	ctx := context.Background()

	var firstID string
	for i := 0; i < MaxEntries; i++ {
		item, err := svc.Append(ctx, ActionSendZalo, i, fmt.Sprintf("f%d", i), nil, "")
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			firstID = item.ID
		}
	}

	items, _ := svc.List(ctx)
	if len(items) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(items), MaxEntries)
	}
	if items[len(items)-1].ID != firstID {
		t.Fatal("oldest entry should still be last before overflow")
	}

	// the 51st append evicts the first inserted entry
	if _, err := svc.Append(ctx, ActionSendEmail, 99, "overflow", nil, ""); err != nil {
		t.Fatal(err)
	}
	items, _ = svc.List(ctx)
	if len(items) != MaxEntries {
		t.Fatalf("len after overflow = %d, want %d", len(items), MaxEntries)
	}
	for _, item := range items {
		if item.ID == firstID {
			t.Fatal("oldest entry survived the cap")
		}
	}
	if items[0].FilterName != "overflow" {
		t.Error("newest entry should be first after overflow")
	}
}

func TestClear(t *testing.T) {
	svc := NewActionHistoryService(&memStore{}, nil, nil)
	ctx := context.Background()

	svc.Append(ctx, ActionSendSMS, 1, "", nil, "")
	if err := svc.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	items, _ := svc.List(ctx)
	if len(items) != 0 {
		t.Errorf("len after clear = %d, want 0", len(items))
	}
}

type countingPublisher struct {
	events []string
}

func (p *countingPublisher) Publish(event string, payload interface{}) {
	p.events = append(p.events, event)
}

func TestAppendPublishesEvent(t *testing.T) {
	pub := &countingPublisher{}
	svc := NewActionHistoryService(&memStore{}, pub, nil)

	svc.Append(context.Background(), ActionSaveFilter, 5, "x", nil, "")
	if len(pub.events) != 1 || pub.events[0] != "action_recorded" {
		t.Errorf("published events = %v", pub.events)
	}
}
