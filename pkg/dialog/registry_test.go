package dialog

import (
	"testing"
	"time"
)

func TestAddDialogAssignsDistinctIDs(t *testing.T) {
	r, _, _ := newTestRegistry(Config{})

	seen := make(map[uint64]bool)
	for i := 0; i < 200; i++ {
		e := r.AddDialog(noteDialog, map[string]any{"data": i})
		if seen[e.ID] {
			t.Fatalf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
		if !e.ModelValue() {
			t.Fatalf("entry %d: modelValue = false, want true", e.ID)
		}
	}

	if got := r.Len(); got != 200 {
		t.Errorf("Len() = %d, want 200", got)
	}

	// Insertion order is render order.
	entries := r.Dialogs()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].ID >= entries[i].ID {
			t.Fatalf("entries out of order at %d: %d >= %d", i, entries[i-1].ID, entries[i].ID)
		}
	}
}

func TestAddDialogMergesProps(t *testing.T) {
	tests := []struct {
		name     string
		defaults map[string]any
		props    any
		key      string
		want     any
	}{
		{
			name:     "call props win over defaults",
			defaults: map[string]any{"title": "Default"},
			props:    map[string]any{"title": "Mine"},
			key:      "title",
			want:     "Mine",
		},
		{
			name:     "defaults fill missing keys",
			defaults: map[string]any{"width": 60},
			props:    map[string]any{"title": "Mine"},
			key:      "width",
			want:     60,
		},
		{
			name:     "modelValue is forced true",
			defaults: map[string]any{"modelValue": false},
			props:    map[string]any{"modelValue": false},
			key:      ModelValueKey,
			want:     true,
		},
		{
			name:     "keys merge case-insensitively",
			defaults: map[string]any{"title": "Default"},
			props:    map[string]any{"Title": "Mine"},
			key:      "title",
			want:     "Mine",
		},
		{
			name:     "omitempty struct field takes the default",
			defaults: map[string]any{"title": "Default"},
			props:    noteProps{Data: 1},
			key:      "title",
			want:     "Default",
		},
		{
			name:     "struct field set by caller",
			defaults: map[string]any{"title": "Default"},
			props:    noteProps{Data: 1, Title: "Mine"},
			key:      "title",
			want:     "Mine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRegistry(Config{Props: tt.defaults})
			e := r.AddDialog(noteDialog, tt.props)
			got, ok := e.Props.Get(tt.key)
			if !ok {
				t.Fatalf("prop %q missing in %v", tt.key, e.Props.Map())
			}
			if got != tt.want {
				t.Errorf("prop %q = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestRemoveDialogLifecycle(t *testing.T) {
	r, clock, _ := newTestRegistry(Config{})

	hookCalls := 0
	e := r.AddDialog(noteDialog, map[string]any{"data": 1}, WithRemoveHook(func() {
		hookCalls++
		// The hook sees the entry closing but still listed.
		if e, ok := r.Entry(1); !ok || e.ModelValue() {
			t.Errorf("hook: entry listed=%v, want listed and closing", ok)
		}
	}))

	r.RemoveDialog(e.ID)

	if hookCalls != 1 {
		t.Fatalf("hook calls = %d, want 1", hookCalls)
	}
	if e.ModelValue() {
		t.Error("modelValue = true after RemoveDialog, want false")
	}
	if r.Len() != 1 {
		t.Errorf("Len() before delay = %d, want 1", r.Len())
	}

	clock.Fire()

	if r.Len() != 0 {
		t.Errorf("Len() after delay = %d, want 0", r.Len())
	}
	if _, ok := r.Entry(e.ID); ok {
		t.Error("entry still found after delay")
	}
}

func TestRemoveDialogIsIdempotent(t *testing.T) {
	r, clock, _ := newTestRegistry(Config{})

	hookCalls := 0
	keep := r.AddDialog(noteDialog, map[string]any{"data": 0})
	e := r.AddDialog(noteDialog, map[string]any{"data": 1}, WithRemoveHook(func() { hookCalls++ }))

	r.RemoveDialog(e.ID)
	r.RemoveDialog(e.ID)

	if hookCalls != 1 {
		t.Errorf("hook calls = %d, want 1", hookCalls)
	}
	if got := clock.Pending(); got != 1 {
		t.Errorf("scheduled splices = %d, want 1", got)
	}

	clock.Fire()
	// A stale splice for an already-removed entry must not touch others.
	r.splice(e)

	entries := r.Dialogs()
	if len(entries) != 1 || entries[0] != keep {
		t.Errorf("Dialogs() = %v, want only the kept entry", entries)
	}
}

func TestRemoveDialogUnknownID(t *testing.T) {
	r, clock, _ := newTestRegistry(Config{})

	hookCalls := 0
	e := r.AddDialog(noteDialog, nil, WithRemoveHook(func() { hookCalls++ }))

	r.RemoveDialog(e.ID + 100)

	if hookCalls != 0 {
		t.Errorf("hook calls = %d, want 0", hookCalls)
	}
	if clock.Pending() != 0 {
		t.Errorf("scheduled splices = %d, want 0", clock.Pending())
	}
	if !e.ModelValue() || r.Len() != 1 {
		t.Error("unknown id changed the registry")
	}
}

func TestRemoveDialogCloseDelay(t *testing.T) {
	tests := []struct {
		name     string
		cfg      time.Duration
		override []time.Duration
		want     time.Duration
	}{
		{name: "default", want: DefaultCloseDelay},
		{name: "configured", cfg: time.Second, want: time.Second},
		{name: "negative config uses default", cfg: -time.Second, want: DefaultCloseDelay},
		{name: "override", cfg: time.Second, override: []time.Duration{50 * time.Millisecond}, want: 50 * time.Millisecond},
		{name: "zero override", override: []time.Duration{0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, clock, _ := newTestRegistry(Config{CloseDelay: tt.cfg})
			e := r.AddDialog(noteDialog, nil)
			r.RemoveDialog(e.ID, tt.override...)
			if len(clock.delays) != 1 || clock.delays[0] != tt.want {
				t.Errorf("delays = %v, want [%v]", clock.delays, tt.want)
			}
		})
	}
}

func TestRemoveDialogRealTimer(t *testing.T) {
	r := New(Config{CloseDelay: 20 * time.Millisecond})
	e := r.AddDialog(noteDialog, map[string]any{"data": 1})

	r.RemoveDialog(e.ID)
	if r.Len() != 1 {
		t.Fatalf("Len() right after RemoveDialog = %d, want 1", r.Len())
	}

	deadline := time.Now().Add(2 * time.Second)
	for r.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("entry not removed after close delay")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSubscribe(t *testing.T) {
	r, clock, _ := newTestRegistry(Config{})
	ch, unsubscribe := r.Subscribe()

	e := r.AddDialog(noteDialog, nil)
	r.AddDialog(noteDialog, nil)

	// Two adds coalesce into one pending notification.
	select {
	case <-ch:
	default:
		t.Fatal("no notification after AddDialog")
	}
	select {
	case <-ch:
		t.Fatal("notifications did not coalesce")
	default:
	}

	r.RemoveDialog(e.ID)
	<-ch
	clock.Fire()
	<-ch

	unsubscribe()
	unsubscribe()
	if _, ok := <-ch; ok {
		t.Error("channel still open after unsubscribe")
	}
	r.AddDialog(noteDialog, nil)
}
