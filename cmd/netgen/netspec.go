package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/emer/netgen/ir"
)

// netSpec is the on-disk TOML mirror of an ir.Network. It exists
// because the IR's own types use flagbool.Bool for its boolean flags
// (a tri-state Unset/False/True switch, see flagbool's doc comment) which
// the TOML library cannot decode directly from a bare `true`/`false`
// literal; netSpec uses plain bool fields and is converted to an
// *ir.Network after decoding. Building the IR itself is otherwise out
// of this repository's scope — this is the thinnest possible loader,
// not a model builder.
type netSpec struct {
	Name      string  `toml:"name"`
	Precision string  `toml:"precision"`
	DT        float64 `toml:"dt"`

	Neurons  []neuronSpec  `toml:"neuron"`
	Synapses []synapseSpec `toml:"synapse"`
}

type modelSpec struct {
	SimCode                string   `toml:"sim_code"`
	ThresholdConditionCode string   `toml:"threshold_condition_code"`
	ResetCode              string   `toml:"reset_code"`
	EventCode              string   `toml:"event_code"`
	EventThresholdCode     string   `toml:"event_threshold_code"`
	SynapseDynamicsCode    string   `toml:"synapse_dynamics_code"`
	LearnPostCode          string   `toml:"learn_post_code"`
	DecayCode              string   `toml:"decay_code"`
	ApplyInputCode         string   `toml:"apply_input_code"`
	VarNames               []string `toml:"var_names"`
	SupportCodeNames       []string `toml:"support_code_names"`
}

func (m modelSpec) toIR() *ir.ModelFragments {
	return &ir.ModelFragments{
		SimCode:                m.SimCode,
		ThresholdConditionCode: m.ThresholdConditionCode,
		ResetCode:              m.ResetCode,
		EventCode:              m.EventCode,
		EventThresholdCode:     m.EventThresholdCode,
		SynapseDynamicsCode:    m.SynapseDynamicsCode,
		LearnPostCode:          m.LearnPostCode,
		DecayCode:              m.DecayCode,
		ApplyInputCode:         m.ApplyInputCode,
		VarNames:               m.VarNames,
		SupportCodeNames:       m.SupportCodeNames,
	}
}

type neuronSpec struct {
	Name       string    `toml:"name"`
	Size       int       `toml:"size"`
	Model      modelSpec `toml:"model"`
	DelayDepth int       `toml:"delay_depth"`

	DelayRequired      bool `toml:"delay_required"`
	SpikeEventRequired bool `toml:"spike_event_required"`
	TrueSpikeRequired  bool `toml:"true_spike_required"`
	SpikeTimeRequired  bool `toml:"spike_time_required"`
	IsPoisson          bool `toml:"is_poisson"`
	PoissonRateVar     string `toml:"poisson_rate_var"`

	// AutoRefractory is a pointer so a network file that omits it can
	// be told apart from one that sets it to false: Config.AutoRefractory
	// (see cmd/netgen/main.go) only fills in a default for groups that
	// left this unset.
	AutoRefractory *bool `toml:"auto_refractory"`
}

type synapseSpec struct {
	Name      string `toml:"name"`
	Src       string `toml:"src"`
	Trg       string `toml:"trg"`
	Matrix    string `toml:"matrix"`
	Weight    string `toml:"weight"`
	PSMTarget string `toml:"psm_target"`

	DendriticDelayRequired bool `toml:"dendritic_delay_required"`
	MaxRowConnections      int  `toml:"max_row_connections"`
	MaxSourceConnections   int  `toml:"max_source_connections"`
	AxonalDelaySlot        int  `toml:"axonal_delay_slot"`
	BackPropDelaySlot      int  `toml:"back_prop_delay_slot"`

	WUModel modelSpec `toml:"wu_model"`
	PSModel modelSpec `toml:"ps_model"`
}

func loadNetwork(path string, defaultPrecision ir.Precision) (*ir.Network, error) {
	var spec netSpec
	if _, err := toml.DecodeFile(path, &spec); err != nil {
		return nil, fmt.Errorf("netgen: decoding network file %s: %w", path, err)
	}
	return spec.toIR(defaultPrecision), nil
}

func (s netSpec) toIR(defaultPrecision ir.Precision) *ir.Network {
	n := &ir.Network{Name: s.Name, DT: s.DT, Precision: defaultPrecision}
	switch s.Precision {
	case "double":
		n.Precision = ir.Double
	case "single":
		n.Precision = ir.Single
	}

	byName := make(map[string]*ir.NeuronGroup, len(s.Neurons))
	for _, ns := range s.Neurons {
		ng := &ir.NeuronGroup{
			Name:           ns.Name,
			Size:           ns.Size,
			Model:          ns.Model.toIR(),
			DelayDepth:     ns.DelayDepth,
			PoissonRateVar: ns.PoissonRateVar,
		}
		ng.Flags.DelayRequired.SetBool(ns.DelayRequired)
		ng.Flags.SpikeEventRequired.SetBool(ns.SpikeEventRequired)
		ng.Flags.TrueSpikeRequired.SetBool(ns.TrueSpikeRequired)
		ng.Flags.SpikeTimeRequired.SetBool(ns.SpikeTimeRequired)
		if ns.AutoRefractory != nil {
			ng.Flags.AutoRefractory.SetBool(*ns.AutoRefractory)
		}
		ng.Flags.IsPoisson.SetBool(ns.IsPoisson)
		n.Neurons = append(n.Neurons, ng)
		byName[ng.Name] = ng
	}

	for _, ss := range s.Synapses {
		sg := &ir.SynapseGroup{
			Name:                 ss.Name,
			Src:                  byName[ss.Src],
			Trg:                  byName[ss.Trg],
			Matrix:               parseMatrixKind(ss.Matrix),
			Weight:               parseWeightKind(ss.Weight),
			PSMTarget:            ss.PSMTarget,
			MaxRowConnections:    ss.MaxRowConnections,
			MaxSourceConnections: ss.MaxSourceConnections,
			AxonalDelaySlot:      ss.AxonalDelaySlot,
			BackPropDelaySlot:    ss.BackPropDelaySlot,
			WUModel:              ss.WUModel.toIR(),
			PSModel:              ss.PSModel.toIR(),
		}
		sg.DendriticDelayRequired.SetBool(ss.DendriticDelayRequired)
		n.Synapses = append(n.Synapses, sg)
	}
	return n
}

func parseMatrixKind(s string) ir.MatrixKind {
	switch s {
	case "BITMASK":
		return ir.Bitmask
	case "SPARSE-YALE":
		return ir.SparseYale
	case "SPARSE-RAGGED":
		return ir.SparseRagged
	default:
		return ir.Dense
	}
}

func parseWeightKind(s string) ir.WeightKind {
	if s == "INDIVIDUAL" {
		return ir.Individual
	}
	return ir.Global
}
