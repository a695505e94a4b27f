package codegen

import (
	"testing"

	"github.com/andreyvit/diff"
	"github.com/emer/netgen/ir"
	"github.com/stretchr/testify/require"
)

func denseNetwork() *ir.Network {
	pop := &ir.NeuronGroup{
		Name: "pop",
		Size: 10,
		Model: &ir.ModelFragments{
			SimCode:                "$(x) = $(t);",
			ThresholdConditionCode: "$(x) > 0.5",
			VarNames:               []string{"x"},
		},
	}
	pop.Flags.TrueSpikeRequired.SetBool(true)
	return &ir.Network{Name: "testnet", Precision: ir.Single, Neurons: []*ir.NeuronGroup{pop}}
}

func TestGenerateDenseSimpleSimEndToEnd(t *testing.T) {
	n := denseNetwork()
	res, err := Generate(n, nil)
	require.NoError(t, err)
	require.False(t, res.Diag.HasErrors())

	neuron := string(res.Files["testnet_neuron_fnct.cc"])
	require.Contains(t, neuron, "for (int n = 0; n < 10; n++)")
	require.Contains(t, neuron, "x = t;")
	require.Contains(t, neuron, "if (x > 0.5)")
	require.Contains(t, neuron, "glbSpkpop[writeDelayOffset + glbSpkCntpop[0]++] = n;")
}

func TestGenerateIsDeterministic(t *testing.T) {
	n := denseNetwork()
	r1, err := Generate(n, nil)
	require.NoError(t, err)
	r2, err := Generate(n, nil)
	require.NoError(t, err)

	a := string(r1.Files["testnet_neuron_fnct.cc"])
	b := string(r2.Files["testnet_neuron_fnct.cc"])
	require.Equal(t, a, b, "two successive runs must produce byte-identical output:\n%s", diff.LineDiff(a, b))
}

func TestGenerateMissingThresholdWarns(t *testing.T) {
	n := denseNetwork()
	n.Neurons[0].Model.ThresholdConditionCode = ""

	res, err := Generate(n, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Diag.Len())
	require.Contains(t, res.Diag.Entries()[0].Message, "pop")
	require.NotContains(t, string(res.Files["testnet_neuron_fnct.cc"]), "++] = n;")
}

func TestGenerateInvalidNetworkFailsBeforeWriting(t *testing.T) {
	n := &ir.Network{
		Name: "bad",
		Synapses: []*ir.SynapseGroup{
			{Name: "dangling", Src: &ir.NeuronGroup{Name: "ghost"}, Trg: &ir.NeuronGroup{Name: "ghost"}},
		},
	}
	res, err := Generate(n, nil)
	require.Error(t, err)
	require.Nil(t, res)
}

func TestGenerateWarningsAsErrorsPromotesWarning(t *testing.T) {
	n := denseNetwork()
	n.Neurons[0].Model.ThresholdConditionCode = ""

	res, err := Generate(n, &Config{WarningsAsErrors: true})
	require.Error(t, err)
	require.NotNil(t, res, "files are still returned for inspection even under warnings-as-errors")
}

func TestGenerateSparseYaleOmitsUnusedSynapseFunctions(t *testing.T) {
	pre := &ir.NeuronGroup{Name: "pre", Size: 5, Model: &ir.ModelFragments{SimCode: ";"}}
	post := &ir.NeuronGroup{Name: "post", Size: 10, Model: &ir.ModelFragments{SimCode: "$(x) = $(t);", VarNames: []string{"x"}}}
	pre.Flags.TrueSpikeRequired.SetBool(true)
	sg := &ir.SynapseGroup{
		Name: "syn", Src: pre, Trg: post,
		Matrix: ir.SparseYale, Weight: ir.Individual, PSMTarget: "post",
		MaxRowConnections: 3,
		WUModel: &ir.ModelFragments{
			SimCode:  "$(addToInSyn, $(g));",
			VarNames: []string{"g"},
		},
		PSModel: &ir.ModelFragments{},
	}
	n := &ir.Network{
		Name: "spiky", Precision: ir.Single,
		Neurons:  []*ir.NeuronGroup{pre, post},
		Synapses: []*ir.SynapseGroup{sg},
	}

	res, err := Generate(n, nil)
	require.NoError(t, err)
	synapse := string(res.Files["spiky_synapse_fnct.cc"])
	require.Contains(t, synapse, "void calcSynapsesCPU(float t)")
	require.Contains(t, synapse, "Csyn.indInG[ipre + 1] - Csyn.indInG[ipre]")
	require.NotContains(t, synapse, "calcSynapseDynamicsCPU")
	require.NotContains(t, synapse, "learnSynapsesPostHost")
}
