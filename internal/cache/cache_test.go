package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetThenGetWithinTTL(t *testing.T) {
	c := New(time.Minute)
	key := Key("click button", "", "A")
	c.Set(key, []byte("payload"))

	v, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), v)
}

func TestGetMiss(t *testing.T) {
	c := New(time.Minute)
	_, ok := c.Get(Key("nothing", "", "A"))
	assert.False(t, ok)
}

func TestSetThenWaitTTLThenGetMisses(t *testing.T) {
	c := New(time.Minute)
	fakeNow := time.Now()
	c.now = func() time.Time { return fakeNow }

	key := Key("q", "", "A")
	c.Set(key, []byte("v"))

	fakeNow = fakeNow.Add(2 * time.Minute)
	_, ok := c.Get(key)
	assert.False(t, ok, "entry past TTL must be treated as a miss")
	assert.Equal(t, 0, c.Len(), "expired entry must be removed on read")
}

func TestConcurrentIdenticalMissesLeaveOneEntry(t *testing.T) {
	c := New(time.Minute)
	key := Key("dup", "", "A")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := c.Get(key); !ok {
				c.Set(key, []byte("computed"))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
}

func TestCorruptEntryTreatedAsMiss(t *testing.T) {
	c := New(time.Minute)
	key := Key("corrupt", "", "A")
	c.m.Store(key, "not-an-entry")

	_, ok := c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
