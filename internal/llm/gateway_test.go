package llm

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewaySuccessReturnsResult(t *testing.T) {
	gw := NewGateway(Config{MaxConcurrency: 2})
	model := ModelFunc(func(_ context.Context, prompt string) (string, error) {
		return "echo:" + prompt, nil
	})

	out, err := gw.Call(context.Background(), model, "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", out)
}

func TestGatewayRetriesOnError(t *testing.T) {
	gw := NewGateway(Config{MaxConcurrency: 1, Retries: 2})
	var calls atomic.Int32
	model := ModelFunc(func(_ context.Context, _ string) (string, error) {
		n := calls.Add(1)
		if n < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	out, err := gw.Call(context.Background(), model, "q")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.EqualValues(t, 3, calls.Load())
}

func TestGatewayExhaustsRetriesAndReturnsError(t *testing.T) {
	gw := NewGateway(Config{MaxConcurrency: 1, Retries: 1})
	model := ModelFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("always fails")
	})

	_, err := gw.Call(context.Background(), model, "q")
	assert.Error(t, err)
}

func TestGatewayNeverExceedsMaxConcurrency(t *testing.T) {
	const max = 4
	gw := NewGateway(Config{MaxConcurrency: max})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			model := ModelFunc(func(_ context.Context, _ string) (string, error) {
				time.Sleep(time.Millisecond)
				return "", nil
			})
			_, _ = gw.Call(context.Background(), model, "q")
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, gw.peak.Load(), int64(max))
}

func TestGatewayHonorsCancellation(t *testing.T) {
	gw := NewGateway(Config{MaxConcurrency: 1, Retries: 5})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := ModelFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	_, err := gw.Call(ctx, model, "q")
	assert.Error(t, err)
}

func TestGatewayRecoversPanicInModel(t *testing.T) {
	gw := NewGateway(Config{MaxConcurrency: 1})
	model := ModelFunc(func(_ context.Context, _ string) (string, error) {
		panic("boom")
	})

	_, err := gw.Call(context.Background(), model, "q")
	assert.Error(t, err, "a panicking model call must surface as an error, not crash the process")
}
