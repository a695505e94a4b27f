package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emer/netgen/ir"
	"github.com/stretchr/testify/require"
)

func writeTempNetwork(t *testing.T, toml string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "net.toml")
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))
	return path
}

func TestLoadNetworkRoundTripsFlagsAndModel(t *testing.T) {
	path := writeTempNetwork(t, `
name = "spiky"
dt = 0.1

[[neuron]]
name = "pop"
size = 10
delay_required = true
true_spike_required = true
auto_refractory = true

[neuron.model]
sim_code = "$(V) += (Isyn - $(V)) * $(t);"
threshold_condition_code = "$(V) >= 1.0"
reset_code = "$(V) = 0.0;"
var_names = ["V"]
`)

	n, err := loadNetwork(path, ir.Single)
	require.NoError(t, err)
	require.Equal(t, "spiky", n.Name)
	require.Equal(t, 0.1, n.DT)
	require.Len(t, n.Neurons, 1)

	pop := n.Neurons[0]
	require.Equal(t, "pop", pop.Name)
	require.Equal(t, 10, pop.Size)
	require.True(t, pop.Flags.DelayRequired.IsTrue())
	require.True(t, pop.Flags.TrueSpikeRequired.IsTrue())
	require.True(t, pop.Flags.AutoRefractory.IsTrue())
	require.False(t, pop.Flags.IsPoisson.IsTrue())
	require.Equal(t, "$(V) >= 1.0", pop.Model.ThresholdConditionCode)
	require.Equal(t, []string{"V"}, pop.Model.VarNames)
}

func TestLoadNetworkDefaultsPrecisionWhenUnset(t *testing.T) {
	path := writeTempNetwork(t, `
name = "noprec"

[[neuron]]
name = "pop"
size = 1
`)

	n, err := loadNetwork(path, ir.Double)
	require.NoError(t, err)
	require.Equal(t, ir.Double, n.Precision)
}

func TestLoadNetworkExplicitPrecisionOverridesDefault(t *testing.T) {
	path := writeTempNetwork(t, `
name = "withprec"
precision = "double"

[[neuron]]
name = "pop"
size = 1
`)

	n, err := loadNetwork(path, ir.Single)
	require.NoError(t, err)
	require.Equal(t, ir.Double, n.Precision)
}

func TestLoadNetworkWiresSynapseMatrixAndWeightKinds(t *testing.T) {
	path := writeTempNetwork(t, `
name = "net"

[[neuron]]
name = "pre"
size = 5

[[neuron]]
name = "post"
size = 10

[[synapse]]
name = "syn"
src = "pre"
trg = "post"
matrix = "SPARSE-YALE"
weight = "INDIVIDUAL"
psm_target = "post"
max_row_connections = 3

[synapse.wu_model]
sim_code = "$(addToInSyn, $(g));"
var_names = ["g"]
`)

	n, err := loadNetwork(path, ir.Single)
	require.NoError(t, err)
	require.Len(t, n.Synapses, 1)

	syn := n.Synapses[0]
	require.Equal(t, ir.SparseYale, syn.Matrix)
	require.Equal(t, ir.Individual, syn.Weight)
	require.Same(t, n.Neurons[0], syn.Src)
	require.Same(t, n.Neurons[1], syn.Trg)
	require.Equal(t, 3, syn.MaxRowConnections)
}

func TestLoadNetworkMissingFileReturnsWrappedError(t *testing.T) {
	_, err := loadNetwork(filepath.Join(t.TempDir(), "missing.toml"), ir.Single)
	require.Error(t, err)
}

func TestParseMatrixKindDefaultsToDense(t *testing.T) {
	require.Equal(t, ir.Dense, parseMatrixKind("nonsense"))
	require.Equal(t, ir.Bitmask, parseMatrixKind("BITMASK"))
	require.Equal(t, ir.SparseRagged, parseMatrixKind("SPARSE-RAGGED"))
}

func TestParseWeightKindDefaultsToGlobal(t *testing.T) {
	require.Equal(t, ir.Global, parseWeightKind("nonsense"))
	require.Equal(t, ir.Individual, parseWeightKind("INDIVIDUAL"))
}
