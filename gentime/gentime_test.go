package gentime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartStopAccumulates(t *testing.T) {
	var s Stats
	s.Start()
	time.Sleep(time.Millisecond)
	iv := s.Stop()
	require.Greater(t, iv, time.Duration(0))
	require.Equal(t, 1, s.N)
	require.Equal(t, iv, s.Total)
}

func TestStopWithoutStartIsZero(t *testing.T) {
	var s Stats
	require.Equal(t, time.Duration(0), s.Stop())
	require.Equal(t, 0, s.N)
}

func TestResetStart(t *testing.T) {
	var s Stats
	s.Start()
	s.Stop()
	s.ResetStart()
	require.Equal(t, 0, s.N)
	require.False(t, s.St.IsZero())
}

func TestAvgAcrossMultipleIntervals(t *testing.T) {
	var s Stats
	for i := 0; i < 3; i++ {
		s.Start()
		time.Sleep(time.Millisecond)
		s.Stop()
	}
	require.Equal(t, 3, s.N)
	require.Greater(t, s.Avg(), time.Duration(0))
	require.Greater(t, s.AvgSecs(), 0.0)
	require.Greater(t, s.TotalSecs(), 0.0)
}

func TestReportOrdersSlowestFirst(t *testing.T) {
	var p Passes
	p.Synapse.Total = 5 * time.Millisecond
	p.Neuron.Total = 20 * time.Millisecond
	p.Write.Total = time.Millisecond

	report := p.Report()
	require.Equal(t, "neuron pass 20ms, synapse pass 5ms, file write 1ms", report)
}
