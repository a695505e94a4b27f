// Package ir defines the read-only network intermediate representation
// consumed by the generator: neuron groups, synapse groups, their
// model fragments, and the derived index sets the driver walks in
// deterministic order.
package ir

import "github.com/emer/netgen/flagbool"

// Precision is the network's floating-point time/state precision.
type Precision int

const (
	Single Precision = iota
	Double
)

// CType returns the host-language scalar type name advertised as T in
// the generated function signatures.
func (p Precision) CType() string {
	if p == Double {
		return "double"
	}
	return "float"
}

// MatrixKind is the synapse connectivity representation.
type MatrixKind int

const (
	Dense MatrixKind = iota
	Bitmask
	SparseYale
	SparseRagged
)

func (m MatrixKind) String() string {
	switch m {
	case Dense:
		return "DENSE"
	case Bitmask:
		return "BITMASK"
	case SparseYale:
		return "SPARSE-YALE"
	case SparseRagged:
		return "SPARSE-RAGGED"
	default:
		return "UNKNOWN"
	}
}

func (m MatrixKind) IsSparse() bool {
	return m == SparseYale || m == SparseRagged
}

// WeightKind distinguishes a single shared weight from a per-synapse
// individual weight.
type WeightKind int

const (
	Global WeightKind = iota
	Individual
)

// ModelFragments holds the opaque, user-authored code snippets and the
// parallel name lists a neuron or weight-update/post-synaptic model
// contributes. All strings are untouched by the generator until a
// substitution pass rewrites them.
type ModelFragments struct {
	SimCode                string
	ThresholdConditionCode string
	ResetCode              string
	EventCode              string
	EventThresholdCode     string
	SynapseDynamicsCode    string
	LearnPostCode          string
	DecayCode              string
	ApplyInputCode         string

	VarNames               []string
	VarInit                map[string]string
	DerivedParamNames      []string
	ExtraGlobalParamNames  []string
	SupportCodeNames       []string
}

// HasSynapseDynamics reports whether this weight-update model
// contributes a per-step, per-synapse dynamics pass.
func (m *ModelFragments) HasSynapseDynamics() bool {
	return m != nil && m.SynapseDynamicsCode != ""
}

// HasLearnPost reports whether this weight-update model contributes a
// post-learning pass.
func (m *ModelFragments) HasLearnPost() bool {
	return m != nil && m.LearnPostCode != ""
}

// NeuronGroupFlags are the per-group boolean switches of §3.
type NeuronGroupFlags struct {
	DelayRequired      flagbool.Bool
	SpikeEventRequired flagbool.Bool
	TrueSpikeRequired  flagbool.Bool
	SpikeTimeRequired  flagbool.Bool
	AutoRefractory     flagbool.Bool
	IsPoisson          flagbool.Bool
}

// MergedInSyn is the per-target aggregation point of all incoming
// synapse groups that share a post-synaptic model instance.
type MergedInSyn struct {
	PSMName                string
	Model                  *ModelFragments
	Sources                []*SynapseGroup
	DendriticDelayRequired flagbool.Bool
	DenDelaySlots          int
}

// NeuronGroup is one population of neurons sharing a model and size.
type NeuronGroup struct {
	Name        string
	Size        int
	Model       *ModelFragments
	Flags       NeuronGroupFlags
	DelayDepth  int
	MergedIn    []*MergedInSyn
	PoissonRateVar string // name of the rate array for IsPoisson groups, e.g. "rates"
}

// SynapseGroup connects a source to a target population through a
// weight-update model and a post-synaptic model.
type SynapseGroup struct {
	Name   string
	Src    *NeuronGroup
	Trg    *NeuronGroup
	Matrix MatrixKind
	Weight WeightKind

	PSMTarget               string
	DendriticDelayRequired  flagbool.Bool
	MaxRowConnections       int
	MaxSourceConnections    int
	AxonalDelaySlot         int
	BackPropDelaySlot       int

	WUModel *ModelFragments
	PSModel *ModelFragments
}

// MergedInFor returns the MergedInSyn on s's target that s contributes
// to, or nil if the target has no merged post-synaptic model
// registered for s's PSMTarget (or s isn't actually one of its
// sources).
func (s *SynapseGroup) MergedInFor() *MergedInSyn {
	if s.Trg == nil {
		return nil
	}
	for _, mis := range s.Trg.MergedIn {
		if mis.PSMName != s.PSMTarget {
			continue
		}
		for _, src := range mis.Sources {
			if src == s {
				return mis
			}
		}
	}
	return nil
}

func (s *SynapseGroup) NeedsEventPropagation() bool {
	return s.WUModel != nil && s.WUModel.EventCode != "" && s.WUModel.EventThresholdCode != ""
}

func (s *SynapseGroup) NeedsTrueSpikePropagation() bool {
	return s.WUModel != nil && s.WUModel.SimCode != ""
}

// Network is the top-level, immutable IR handed to the generator.
type Network struct {
	Name      string
	Precision Precision
	DT        float64

	Neurons  []*NeuronGroup
	Synapses []*SynapseGroup
}

// DynamicsGroups returns, in declaration order, the synapse groups
// whose weight-update model contributes a synapse-dynamics pass.
func (n *Network) DynamicsGroups() []*SynapseGroup {
	var out []*SynapseGroup
	for _, s := range n.Synapses {
		if s.WUModel.HasSynapseDynamics() {
			out = append(out, s)
		}
	}
	return out
}

// PostLearnGroups returns, in declaration order, the synapse groups
// whose weight-update model contributes a post-learning pass.
func (n *Network) PostLearnGroups() []*SynapseGroup {
	var out []*SynapseGroup
	for _, s := range n.Synapses {
		if s.WUModel.HasLearnPost() {
			out = append(out, s)
		}
	}
	return out
}

// AnyDynamics reports whether calcSynapseDynamicsCPU should be emitted
// at all for this network.
func (n *Network) AnyDynamics() bool {
	return len(n.DynamicsGroups()) > 0
}

// AnyLearnPost reports whether learnSynapsesPostHost should be emitted
// at all for this network.
func (n *Network) AnyLearnPost() bool {
	return len(n.PostLearnGroups()) > 0
}
