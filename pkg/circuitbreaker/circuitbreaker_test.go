package circuitbreaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stackmate/walletcfg/pkg/circuitbreaker"
	"github.com/stretchr/testify/require"
)

var errProbe = errors.New("probe failed")

func TestCircuitBreaker(t *testing.T) {
	t.Run("trips_after_failures", func(t *testing.T) {
		cb := circuitbreaker.NewCircuitBreaker("test", time.Minute)
		require.Equal(t, "test", cb.Name())

		for i := 0; i < circuitbreaker.MaxNumOfFailingRequests; i++ {
			_, err := cb.Execute(func() (interface{}, error) {
				return nil, errProbe
			})
			require.ErrorIs(t, err, errProbe)
		}
		require.Equal(t, gobreaker.StateOpen, cb.State())

		called := false
		_, err := cb.Execute(func() (interface{}, error) {
			called = true
			return nil, nil
		})
		require.ErrorIs(t, err, gobreaker.ErrOpenState)
		require.False(t, called)
	})

	t.Run("stays_closed_below_ratio", func(t *testing.T) {
		cb := circuitbreaker.NewCircuitBreaker("test", time.Minute)

		for i := 0; i < 10; i++ {
			fail := i%3 == 2
			cb.Execute(func() (interface{}, error) {
				if fail {
					return nil, errProbe
				}
				return i, nil
			})
		}
		require.Equal(t, gobreaker.StateClosed, cb.State())
	})

	t.Run("half_open_after_timeout", func(t *testing.T) {
		cb := circuitbreaker.NewCircuitBreaker("test", 50*time.Millisecond)

		for i := 0; i < circuitbreaker.MaxNumOfFailingRequests; i++ {
			cb.Execute(func() (interface{}, error) { return nil, errProbe })
		}
		require.Equal(t, gobreaker.StateOpen, cb.State())

		time.Sleep(100 * time.Millisecond)
		require.Equal(t, gobreaker.StateHalfOpen, cb.State())

		res, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
		require.NoError(t, err)
		require.Equal(t, "ok", res)
		require.Equal(t, gobreaker.StateClosed, cb.State())
	})
}
