package delay

import (
	"testing"

	"github.com/emer/netgen/ir"
	"github.com/stretchr/testify/require"
)

func TestReadWriteDelayOffsets(t *testing.T) {
	ng := &ir.NeuronGroup{Name: "pop", Size: 100, DelayDepth: 5}
	require.Equal(t, "(spkQuePtrpop + 4) % 5 * 100", ReadDelayOffset(ng))
	require.Equal(t, "spkQuePtrpop * 100", WriteDelayOffset(ng))
}

func TestReadWriteDelayOffsetsNoDelay(t *testing.T) {
	ng := &ir.NeuronGroup{Name: "pop", Size: 100, DelayDepth: 0}
	require.Equal(t, "(spkQuePtrpop + 0) % 1 * 100", ReadDelayOffset(ng))
}

func TestDendriticOffset(t *testing.T) {
	src := &ir.NeuronGroup{Name: "pre", Size: 20}
	trg := &ir.NeuronGroup{Name: "post", Size: 10}
	sg := &ir.SynapseGroup{Name: "syn", Src: src, Trg: trg}
	mis := &ir.MergedInSyn{DenDelaySlots: 4}
	require.Equal(t, "((dendFront_syn + (d)) % 4) * 10", DendriticOffset(sg, mis, "d"))
}

func TestPreReadDelayNoAxonalDelay(t *testing.T) {
	src := &ir.NeuronGroup{Name: "pre", Size: 20}
	trg := &ir.NeuronGroup{Name: "post", Size: 10}
	sg := &ir.SynapseGroup{Name: "syn", Src: src, Trg: trg}
	require.Equal(t, "spkQuePtrpre * 20", PreReadDelayOffset(sg))
}
