package dashboard

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// replaceFile swaps in new contents atomically, the way editors save
func replaceFile(t *testing.T, path string, body []byte) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, body, 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func runWatcher(t *testing.T, w *Watcher) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()
	return func() {
		cancelCtx()
		require.NoError(t, <-errc)
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFixture(t, smallFixture)
	p, err := NewProvider(path, nil)
	require.NoError(t, err)

	w := NewWatcher(p)
	w.debounceDur = 10 * time.Millisecond
	w.reloaded = make(chan struct{}, 1)
	stop := runWatcher(t, w)
	defer stop()

	// Give the watcher time to register the directory
	time.Sleep(50 * time.Millisecond)

	updated := []byte("user: Updated\nstats:\n  - {number: \"1\", label: Alerts, icon: bell}\n")
	replaceFile(t, path, updated)

	select {
	case <-w.reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}
	assert.Equal(t, "Updated", p.Snapshot().User)
}

func TestWatcher_BadEditKeepsData(t *testing.T) {
	path := writeFixture(t, smallFixture)
	p, err := NewProvider(path, nil)
	require.NoError(t, err)

	w := NewWatcher(p)
	w.debounceDur = 10 * time.Millisecond
	w.reloaded = make(chan struct{}, 1)
	stop := runWatcher(t, w)
	defer stop()

	time.Sleep(50 * time.Millisecond)
	replaceFile(t, path, []byte("reports: [\n"))

	select {
	case <-w.reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for reload attempt")
	}
	assert.Equal(t, "Jane Roe", p.Snapshot().User)
}

func TestWatcher_NoOverrideWaitsForContext(t *testing.T) {
	p, err := NewProvider("", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWatcher(p).Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
