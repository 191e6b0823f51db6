package bar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sokolawesome/forgebar/mocks"
	"github.com/sokolawesome/forgebar/ui/uitest"
)

func TestTickDriver_StartTicksImmediately(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	comp := mocks.NewMockCompositor(ctrl)
	tk := uitest.New()
	m := NewManager(comp, tk, discardLogger())
	register(t, m, tk, "DP-1")
	m.Freeze()

	comp.EXPECT().ActiveWorkspace(gomock.Any()).Return(2, nil).Times(1)

	d := NewTickDriver(m, 2*time.Second, false, discardLogger())
	d.Start(context.Background(), tk)
	d.Wait()

	req.Equal([]time.Duration{2 * time.Second}, tk.Intervals())
	c, _ := m.Clock("DP-1")
	req.Regexp(clockMarkup, c.Widget().(*uitest.Label).Markup)
	req.Equal(1, tk.RunPending())
	req.Equal(2, active(t, m, "DP-1"))
}

func TestTickDriver_DefaultInterval(t *testing.T) {
	d := NewTickDriver(nil, 0, false, discardLogger())
	require.Equal(t, time.Second, d.interval)
}

func TestTickDriver_StopsWhenContextDone(t *testing.T) {
	ctrl := gomock.NewController(t)
	comp := mocks.NewMockCompositor(ctrl)
	tk := uitest.New()
	m := NewManager(comp, tk, discardLogger())
	register(t, m, tk, "DP-1")
	m.Freeze()

	// The immediate tick and one timer tick; none after cancel.
	comp.EXPECT().ActiveWorkspace(gomock.Any()).Return(1, nil).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	d := NewTickDriver(m, time.Second, false, discardLogger())
	d.Start(ctx, tk)
	tk.Fire()
	d.Wait()

	cancel()
	tk.Fire()
	tk.Fire()
	d.Wait()
}

func TestTickDriver_Overlap(t *testing.T) {
	tests := []struct {
		name     string
		coalesce bool
		queries  int
	}{
		{name: "overlap allowed", coalesce: false, queries: 2},
		{name: "coalesced", coalesce: true, queries: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			comp := mocks.NewMockCompositor(ctrl)
			tk := uitest.New()
			m := NewManager(comp, tk, discardLogger())
			register(t, m, tk, "DP-1")
			m.Freeze()

			started := make(chan struct{}, 2)
			release := make(chan struct{})
			comp.EXPECT().ActiveWorkspace(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
				started <- struct{}{}
				<-release
				return 4, nil
			}).Times(tt.queries)

			d := NewTickDriver(m, time.Second, tt.coalesce, discardLogger())
			ctx := context.Background()

			d.Tick(ctx)
			<-started
			d.Tick(ctx)
			if tt.queries == 2 {
				<-started
			}
			close(release)
			d.Wait()

			require.Equal(t, tt.queries, tk.RunPending())
			require.Equal(t, 4, active(t, m, "DP-1"))
		})
	}
}

func TestTickDriver_CoalesceResumes(t *testing.T) {
	ctrl := gomock.NewController(t)
	comp := mocks.NewMockCompositor(ctrl)
	tk := uitest.New()
	m := NewManager(comp, tk, discardLogger())
	register(t, m, tk, "DP-1")
	m.Freeze()

	comp.EXPECT().ActiveWorkspace(gomock.Any()).Return(3, nil).Times(2)

	d := NewTickDriver(m, time.Second, true, discardLogger())
	d.Tick(context.Background())
	d.Wait()
	d.Tick(context.Background())
	d.Wait()

	require.Equal(t, 2, tk.RunPending())
}
