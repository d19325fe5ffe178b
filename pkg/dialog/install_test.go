package dialog

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFromContext(t *testing.T) {
	ctx, r := Install(context.Background(), Config{CloseDelay: time.Second})

	got := FromContext(ctx)
	if got != Dialogs(r) {
		t.Errorf("FromContext() = %v, want installed registry", got)
	}
	if !IsInstalled(got) {
		t.Error("IsInstalled(registry) = false")
	}
	if r.CloseDelay() != time.Second {
		t.Errorf("CloseDelay() = %v, want 1s", r.CloseDelay())
	}

	if IsInstalled(FromContext(context.Background())) {
		t.Error("FromContext without Install returned a registry")
	}
	if IsInstalled(FromContext(nil)) { //nolint:staticcheck // nil ctx is tolerated
		t.Error("FromContext(nil) returned a registry")
	}
}

func TestUninstalledLogsPerCall(t *testing.T) {
	var buf strings.Builder
	d := Uninstalled(newBufferLogger(&buf))

	if e := d.AddDialog(noteDialog, noteProps{Data: 1}); e != nil {
		t.Errorf("AddDialog() = %v, want nil", e)
	}
	d.RemoveDialog(1)
	d.RemoveDialog(1, time.Second)

	if n := strings.Count(buf.String(), NotInitializedMessage); n != 3 {
		t.Errorf("diagnostic logged %d times, want 3", n)
	}
	if len(d.Dialogs()) != 0 {
		t.Error("stub listed dialogs")
	}

	ch, unsubscribe := d.Subscribe()
	unsubscribe()
	if ch != nil {
		t.Error("stub subscription should never fire")
	}
}
