package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCenter(now time.Time) *Center {
	c := NewCenter()
	c.now = func() time.Time { return now }
	return c
}

func TestTTL(t *testing.T) {
	assert.Equal(t, 3*time.Second, Success.TTL())
	assert.Equal(t, 5*time.Second, Error.TTL())
}

func TestCenter_SweepHonoursPerTypeDeadlines(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := fixedCenter(start)

	c.Notify(Notification{Type: Success, Title: "Saved"})
	c.Notify(Notification{Type: Error, Title: "Failed"})
	require.Len(t, c.Visible(), 2)

	assert.Equal(t, 0, c.Sweep(start.Add(2*time.Second)))
	assert.Equal(t, 1, c.Sweep(start.Add(3*time.Second)))

	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Failed", visible[0].Title)

	assert.Equal(t, 1, c.Sweep(start.Add(5*time.Second)))
	assert.Empty(t, c.Visible())
}

func TestCenter_DropsOldestOverCapacity(t *testing.T) {
	c := fixedCenter(time.Now())
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		c.Notify(Notification{Type: Success, Title: title})
	}

	visible := c.Visible()
	require.Len(t, visible, defaultMaxToasts)
	assert.Equal(t, "b", visible[0].Title)
	assert.Equal(t, "e", visible[len(visible)-1].Title)
}

func TestCenter_Dismiss(t *testing.T) {
	c := fixedCenter(time.Now())
	c.Notify(Notification{Type: Success, Title: "one"})
	c.Notify(Notification{Type: Success, Title: "two"})

	first := c.Visible()[0]
	c.Dismiss(first.ID)

	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "two", visible[0].Title)
}

func TestCenter_ConcurrentNotify(t *testing.T) {
	c := NewCenter()
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Notify(Notification{Type: Error})
		}()
	}
	wg.Wait()
	assert.Len(t, c.Visible(), defaultMaxToasts)
}

func TestFuncAndDiscard(t *testing.T) {
	var got []Notification
	var n Notifier = Func(func(x Notification) { got = append(got, x) })
	n.Notify(Notification{Type: Success, Title: "hi"})
	Discard.Notify(Notification{Type: Error})

	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Title)
}
