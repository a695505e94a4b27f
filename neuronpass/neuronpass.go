// Package neuronpass emits the per-neuron-group loop body of
// calcNeuronsCPU: state load, merged post-synaptic input
// accumulation, current injection, threshold test, spike/event
// registration, reset, and state write-back (spec.md §4.6).
package neuronpass

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emer/netgen/delay"
	"github.com/emer/netgen/diag"
	"github.com/emer/netgen/emit"
	"github.com/emer/netgen/ir"
	"github.com/emer/netgen/stdsubst"
	"github.com/emer/netgen/subst"
)

// labelled bracket tags for guards whose open/close are emitted far apart.
const (
	tagEventGuard = 2041
	tagSpikeGuard = 29
)

// EmitGroup emits one neuron group's update body into sink.
func EmitGroup(sink *emit.Sink, dc *diag.Channel, ng *ir.NeuronGroup) {
	sink.Printf("// neuron group: %s\n", ng.Name)
	sink.OpenScope()
	defer sink.CloseScope()

	// 1. output-queue init
	if ng.Flags.TrueSpikeRequired.IsTrue() || ng.Flags.SpikeEventRequired.IsTrue() {
		sink.Line(fmt.Sprintf("glbSpkCnt%s[0] = 0;", ng.Name))
		if ng.Flags.SpikeEventRequired.IsTrue() {
			sink.Line(fmt.Sprintf("glbSpkCntEvnt%s[0] = 0;", ng.Name))
		}
	}
	if ng.Flags.DelayRequired.IsTrue() {
		sink.Line(fmt.Sprintf("%s = (%s + 1) %% %d;", delay.SlotPtr(ng), delay.SlotPtr(ng), maxInt(ng.DelayDepth, 1)))
	}

	// 2. delay offsets
	if ng.Flags.DelayRequired.IsTrue() {
		sink.Line(fmt.Sprintf("const unsigned int readDelayOffset = %s;", delay.ReadDelayOffset(ng)))
		sink.Line(fmt.Sprintf("const unsigned int writeDelayOffset = %s;", delay.WriteDelayOffset(ng)))
	}

	hasThreshold := ng.Model != nil && ng.Model.ThresholdConditionCode != ""
	if !hasThreshold {
		dc.Warnf(ng.Name, "neuron group %q has no thresholdConditionCode; spike-related emission skipped", ng.Name)
	}

	// 3. loop over neurons
	sink.Printf("for (int n = 0; n < %d; n++)\n", ng.Size)
	sink.OpenScope()

	env := buildEnv(ng)

	emitStateLoad(sink, ng)
	needsIsyn := len(ng.MergedIn) > 0 || strings.Contains(ng.Model.SimCode, "Isyn")
	if needsIsyn {
		sink.Line(env.Apply("float Isyn = 0;"))
	}
	emitAdditionalInputs(sink, ng)
	emitMergedInputApply(sink, ng, env)

	// 5. sim code
	simCode := ng.Model.SimCode
	if ng.Flags.IsPoisson.IsTrue() {
		simCode = subst.Names(simCode, map[string]subst.Formatter{
			"lrate": func(string) string {
				return fmt.Sprintf("%s%s[n + offset%s]", ng.PoissonRateVar, ng.Name, ng.Name)
			},
		})
	}
	if hasThreshold && ng.Flags.AutoRefractory.IsTrue() {
		sink.Line(fmt.Sprintf("bool oldSpike = (%s);", env.Apply(ng.Model.ThresholdConditionCode)))
	}
	sink.Line(env.Apply(simCode))

	if hasThreshold {
		emitThreshold(sink, ng, env)
	}
	if ng.Flags.SpikeEventRequired.IsTrue() {
		emitEvent(sink, ng, env)
	}

	emitStateWriteback(sink, ng)
	emitMergedInputDecay(sink, ng, env)

	sink.CloseScope() // end for
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func buildEnv(ng *ir.NeuronGroup) *stdsubst.Env {
	varAddr := make(map[string]string, len(ng.Model.VarNames))
	for _, v := range ng.Model.VarNames {
		varAddr[v] = v // local copy, same name, declared by emitStateLoad
	}
	return &stdsubst.Env{
		GroupName:        ng.Name,
		TimeVar:          "t",
		IDExpr:           "n",
		VarAddr:          varAddr,
		SupportNamespace: stdsubst.NamespaceFor(ng.Name, "neuron"),
		SupportNames:     ng.Model.SupportCodeNames,
	}
}

func emitStateLoad(sink *emit.Sink, ng *ir.NeuronGroup) {
	slot := "0"
	if ng.Flags.DelayRequired.IsTrue() {
		slot = "readDelayOffset + "
	} else {
		slot = ""
	}
	for _, v := range ng.Model.VarNames {
		sink.Line(fmt.Sprintf("float %s = %s%s[%sn];", v, v, ng.Name, slot))
	}
}

func emitStateWriteback(sink *emit.Sink, ng *ir.NeuronGroup) {
	slot := ""
	if ng.Flags.DelayRequired.IsTrue() {
		slot = "writeDelayOffset + "
	}
	for _, v := range ng.Model.VarNames {
		sink.Line(fmt.Sprintf("%s%s[%sn] = %s;", v, ng.Name, slot, v))
	}
}

func emitAdditionalInputs(sink *emit.Sink, ng *ir.NeuronGroup) {
	names := make([]string, 0, len(ng.Model.VarInit))
	for name := range ng.Model.VarInit {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sink.Line(fmt.Sprintf("float %s = %s;", name, ng.Model.VarInit[name]))
	}
}

func emitMergedInputApply(sink *emit.Sink, ng *ir.NeuronGroup, env *stdsubst.Env) {
	for _, mis := range ng.MergedIn {
		sink.Printf("// merged in-synapse: %s\n", mis.PSMName)
		if mis.DendriticDelayRequired.IsTrue() {
			for _, sg := range mis.Sources {
				off := delay.DendriticOffset(sg, mis, "0")
				sink.Line(fmt.Sprintf("Isyn += denDelay%s[%s + n];", sg.Name, off))
				sink.Line(fmt.Sprintf("denDelay%s[%s + n] = 0;", sg.Name, off))
			}
		}
		for _, v := range mis.Model.VarNames {
			sink.Line(fmt.Sprintf("float l%s%s = %s%s[n];", v, mis.PSMName, v, mis.PSMName))
		}
		psmEnv := &stdsubst.Env{
			GroupName:        ng.Name,
			IDExpr:           "n",
			InSynAccum:       fmt.Sprintf("inSyn%s[n]", mis.PSMName),
			VarAddr:          localVarAddr(mis.Model, mis.PSMName),
			SupportNamespace: stdsubst.NamespaceFor(ng.Name, "postsyn"),
			SupportNames:     mis.Model.SupportCodeNames,
		}
		sink.Line(psmEnv.Apply(mis.Model.ApplyInputCode))
	}
	_ = env
}

func emitMergedInputDecay(sink *emit.Sink, ng *ir.NeuronGroup, env *stdsubst.Env) {
	for _, mis := range ng.MergedIn {
		if mis.Model.DecayCode == "" {
			continue
		}
		psmEnv := &stdsubst.Env{
			GroupName: ng.Name,
			IDExpr:    "n",
			VarAddr:   localVarAddr(mis.Model, mis.PSMName),
		}
		sink.Line(psmEnv.Apply(mis.Model.DecayCode))
		for _, v := range mis.Model.VarNames {
			sink.Line(fmt.Sprintf("%s%s[n] = l%s%s;", v, mis.PSMName, v, mis.PSMName))
		}
	}
	_ = env
}

func localVarAddr(m *ir.ModelFragments, suffix string) map[string]string {
	out := make(map[string]string, len(m.VarNames))
	for _, v := range m.VarNames {
		out[v] = "l" + v + suffix
	}
	return out
}

func emitThreshold(sink *emit.Sink, ng *ir.NeuronGroup, env *stdsubst.Env) {
	thresh := env.Apply(ng.Model.ThresholdConditionCode)
	cond := thresh
	if ng.Flags.AutoRefractory.IsTrue() {
		// oldSpike was snapshotted by EmitGroup before the sim code ran.
		cond = fmt.Sprintf("(%s) && !oldSpike", thresh)
	}
	sink.OpenLabel(tagSpikeGuard, fmt.Sprintf("if (%s)\n{\n", cond))
	sink.Line(fmt.Sprintf("glbSpk%s[writeDelayOffset + glbSpkCnt%s[0]++] = n;", ng.Name, ng.Name))
	if ng.Flags.SpikeTimeRequired.IsTrue() {
		sink.Line(fmt.Sprintf("sT%s[n] = t;", ng.Name))
	}
	sink.Line(env.Apply(ng.Model.ResetCode))
	sink.CloseLabel(tagSpikeGuard, "}\n")
}

func emitEvent(sink *emit.Sink, ng *ir.NeuronGroup, env *stdsubst.Env) {
	evCond := env.Apply(ng.Model.EventThresholdCode)
	sink.OpenLabel(tagEventGuard, fmt.Sprintf("if (%s)\n{\n", evCond))
	sink.Line(fmt.Sprintf("glbSpkEvnt%s[writeDelayOffset + glbSpkCntEvnt%s[0]++] = n;", ng.Name, ng.Name))
	sink.CloseLabel(tagEventGuard, "}\n")
}
