package event

import "testing"

type ping struct{ n int }

func TestPublishOrder(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(p ping) { got = append(got, p.n*10+1) })
	Subscribe(b, func(p ping) { got = append(got, p.n*10+2) })
	Subscribe(b, func(MapChanged) { t.Fatalf("wrong type delivered") })

	if n := Publish(b, ping{n: 3}); n != 2 {
		t.Fatalf("Publish: got %d handlers, want 2", n)
	}
	if len(got) != 2 || got[0] != 31 || got[1] != 32 {
		t.Fatalf("delivery order: got %v, want [31 32]", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	calls := 0
	s := Subscribe(b, func(MapChanged) { calls++ })
	Publish(b, MapChanged{})
	s.Unsubscribe()
	s.Unsubscribe()
	Publish(b, MapChanged{})

	if calls != 1 {
		t.Fatalf("calls: got %d, want 1", calls)
	}
	if c := Count[MapChanged](b); c != 0 {
		t.Fatalf("subscribers left: got %d, want 0", c)
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	b := NewBus()
	calls := 0
	var s *Subscription
	s = Subscribe(b, func(MapChanged) {
		calls++
		s.Unsubscribe()
	})
	Subscribe(b, func(MapChanged) { calls++ })

	Publish(b, MapChanged{})
	Publish(b, MapChanged{})
	if calls != 3 {
		t.Fatalf("calls: got %d, want 3", calls)
	}
}
