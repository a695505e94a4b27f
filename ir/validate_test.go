package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func simpleNeuron(name string, size int) *NeuronGroup {
	return &NeuronGroup{
		Name: name,
		Size: size,
		Model: &ModelFragments{
			SimCode:                "$(x) = $(t);",
			ThresholdConditionCode: "$(x) > 0.5",
		},
	}
}

func TestValidateDanglingReference(t *testing.T) {
	pop := simpleNeuron("pop", 10)
	other := simpleNeuron("other", 10)
	syn := &SynapseGroup{
		Name:    "syn",
		Src:     pop,
		Trg:     &NeuronGroup{Name: "ghost", Size: 5, Model: pop.Model},
		Matrix:  Dense,
		Weight:  Individual,
		WUModel: &ModelFragments{SimCode: "$(addToInSyn, $(w));"},
		PSModel: &ModelFragments{},
	}
	net := &Network{Name: "net", Neurons: []*NeuronGroup{pop, other}, Synapses: []*SynapseGroup{syn}}

	errs := Validate(net)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Group == "syn" && e.Field == "Trg" {
			found = true
		}
	}
	require.True(t, found, "expected a dangling Trg finding, got %v", errs)
}

func TestValidateRaggedRequiresMaxRow(t *testing.T) {
	pop := simpleNeuron("pop", 10)
	syn := &SynapseGroup{
		Name:    "syn",
		Src:     pop,
		Trg:     pop,
		Matrix:  SparseRagged,
		Weight:  Individual,
		WUModel: &ModelFragments{SimCode: "$(addToInSyn, $(w));"},
		PSModel: &ModelFragments{},
	}
	net := &Network{Name: "net", Neurons: []*NeuronGroup{pop}, Synapses: []*SynapseGroup{syn}}

	errs := Validate(net)
	require.NotEmpty(t, errs)
	require.Equal(t, "MaxRowConnections", errs[0].Field)
}

func TestValidateCleanNetworkHasNoErrors(t *testing.T) {
	pop := simpleNeuron("pop", 10)
	syn := &SynapseGroup{
		Name:                 "syn",
		Src:                  pop,
		Trg:                  pop,
		Matrix:               SparseRagged,
		Weight:               Individual,
		MaxRowConnections:    4,
		MaxSourceConnections: 4,
		WUModel:              &ModelFragments{SimCode: "$(addToInSyn, $(w));"},
		PSModel:              &ModelFragments{},
	}
	net := &Network{Name: "net", Neurons: []*NeuronGroup{pop}, Synapses: []*SynapseGroup{syn}}

	errs := Validate(net)
	require.Empty(t, errs)
}

func TestValidateEventRequiresThreshold(t *testing.T) {
	pop := simpleNeuron("pop", 10)
	pop.Flags.SpikeEventRequired.SetBool(true)
	net := &Network{Name: "net", Neurons: []*NeuronGroup{pop}}

	errs := Validate(net)
	require.NotEmpty(t, errs)
	require.Equal(t, "SpikeEventRequired", errs[0].Field)
}
