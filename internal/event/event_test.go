package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedSendOrder(t *testing.T) {
	var f Feed[int]
	var got []string

	f.Subscribe(func(v int) { got = append(got, "a") })
	f.Subscribe(func(v int) { got = append(got, "b") })
	f.Send(1)

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 2, f.Len())
}

func TestFeedUnsubscribe(t *testing.T) {
	var f Feed[string]
	calls := 0

	stop := f.Subscribe(func(string) { calls++ })
	f.Send("x")
	stop()
	f.Send("y")
	stop()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, f.Len())
}

func TestFeedNilListener(t *testing.T) {
	var f Feed[int]

	stop := f.Subscribe(nil)
	stop()
	f.Send(3)

	assert.Equal(t, 0, f.Len())
}

func TestFeedUnsubscribeDuringSend(t *testing.T) {
	var f Feed[int]
	var second int
	var stopSecond func()

	f.Subscribe(func(int) { stopSecond() })
	stopSecond = f.Subscribe(func(int) { second++ })

	f.Send(1)
	f.Send(2)

	assert.Equal(t, 1, second, "removal applies from the next send")
}

func TestFeedClear(t *testing.T) {
	var f Feed[int]
	f.Subscribe(func(int) {})
	f.Subscribe(func(int) {})

	f.Clear()

	assert.Equal(t, 0, f.Len())
}
