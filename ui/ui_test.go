package ui

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStyleSet_AddOnce(t *testing.T) {
	req := require.New(t)
	var s StyleSet

	req.True(s.Add("label {}"))
	req.False(s.Add("label {}"))
	req.True(s.Add("button {}"))
	req.False(s.Add("button {}"))
}

func TestStyleSet_Concurrent(t *testing.T) {
	var (
		s     StyleSet
		added atomic.Int32
		wg    sync.WaitGroup
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Add("window {}") {
				added.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), added.Load())
}
