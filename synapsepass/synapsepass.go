// Package synapsepass emits the three synapse-group passes of §4.7:
// per-synapse dynamics (calcSynapseDynamicsCPU), spike/event
// propagation (calcSynapsesCPU), and post-learning (learnSynapsesPostHost).
// Each pass walks the connectivity kind's own index shape, computed by
// package index, and drives user fragments through a stdsubst.Env.
package synapsepass

import (
	"fmt"

	"github.com/emer/netgen/delay"
	"github.com/emer/netgen/diag"
	"github.com/emer/netgen/emit"
	"github.com/emer/netgen/index"
	"github.com/emer/netgen/ir"
	"github.com/emer/netgen/stdsubst"
)

const tagPropGuard = 71

// EmitDynamics emits the per-synapse dynamics body for one group.
func EmitDynamics(sink *emit.Sink, sg *ir.SynapseGroup) {
	sink.Printf("// synapse dynamics: %s\n", sg.Name)
	sink.OpenScope()
	defer sink.CloseScope()

	env := wuEnv(sg, "ipre", "ipost")
	switch sg.Matrix {
	case ir.SparseYale, ir.SparseRagged:
		sink.Printf("for (int ipre = 0; ipre < %d; ipre++)\n", sg.Src.Size)
		sink.OpenScope()
		sink.Printf("const int npost = %s;\n", index.RowLengthExpr(sg, "ipre"))
		sink.Printf("for (int j = 0; j < npost; j++)\n")
		sink.OpenScope()
		sink.Printf("const int ipost = %s;\n", index.PostIndexExpr(sg, "ipre", "j"))
		sink.Line(env.Apply(sg.WUModel.SynapseDynamicsCode))
		sink.CloseScope()
		sink.CloseScope()
	case ir.Bitmask:
		sink.Printf("for (int ipre = 0; ipre < %d; ipre++)\n", sg.Src.Size)
		sink.OpenScope()
		sink.Printf("for (int ipost = 0; ipost < %s; ipost++)\n", index.TargetSize(sg))
		sink.OpenScope()
		sink.Printf("const uint64_t gid = %s;\n", index.GidExpr(sg, "ipre", "ipost"))
		sink.Printf("if (%s)\n", index.BitTest(sg, "gid"))
		sink.OpenScope()
		sink.Line(env.Apply(sg.WUModel.SynapseDynamicsCode))
		sink.CloseScope()
		sink.CloseScope()
		sink.CloseScope()
	default: // Dense
		sink.Printf("for (int ipre = 0; ipre < %d; ipre++)\n", sg.Src.Size)
		sink.OpenScope()
		sink.Printf("for (int ipost = 0; ipost < %s; ipost++)\n", index.TargetSize(sg))
		sink.OpenScope()
		sink.Line(env.Apply(sg.WUModel.SynapseDynamicsCode))
		sink.CloseScope()
		sink.CloseScope()
	}
}

// EmitPropagation emits the spike/event propagation body for one
// group: the true-spike pass always runs when WUModel.SimCode is
// present; the event pass additionally runs when the model defines an
// event threshold.
func EmitPropagation(sink *emit.Sink, dc *diag.Channel, sg *ir.SynapseGroup) {
	sink.Printf("// synapse propagation: %s\n", sg.Name)
	sink.OpenScope()
	defer sink.CloseScope()

	if sg.NeedsTrueSpikePropagation() {
		emitSpikeLoop(sink, sg, "glbSpkCnt"+sg.Src.Name+"[0]", "glbSpk"+sg.Src.Name, sg.WUModel.SimCode, "")
	}
	if sg.NeedsEventPropagation() {
		emitSpikeLoop(sink, sg, "glbSpkCntEvnt"+sg.Src.Name+"[0]", "glbSpkEvnt"+sg.Src.Name, sg.WUModel.EventCode, sg.WUModel.EventThresholdCode)
	} else if sg.WUModel != nil && sg.WUModel.EventCode != "" {
		dc.Warnf(sg.Name, "synapse group %q defines eventCode with no eventThresholdCode; event propagation skipped", sg.Name)
	}
}

// emitSpikeLoop emits one pass (true-spike or event) over the
// presynaptic spike list. eventCond, when non-empty, is an additional
// per-post-synapse guard (still in fragment form, substituted by the
// per-post env) that must hold alongside any connectivity-kind guard —
// combined into a single && condition for BITMASK, nested separately
// otherwise.
func emitSpikeLoop(sink *emit.Sink, sg *ir.SynapseGroup, countExpr, spkArray, code, eventCond string) {
	sink.Printf("for (unsigned int i = 0; i < %s; i++)\n", countExpr)
	sink.OpenScope()
	if sg.Src.Flags.DelayRequired.IsTrue() {
		sink.Printf("const unsigned int ipre = %s[%s + i];\n", spkArray, delay.PreReadDelayOffset(sg))
	} else {
		sink.Printf("const unsigned int ipre = %s[i];\n", spkArray)
	}

	switch sg.Matrix {
	case ir.SparseYale, ir.SparseRagged:
		sink.Printf("const unsigned int npost = %s;\n", index.RowLengthExpr(sg, "ipre"))
		sink.Printf("for (int j = 0; j < npost; j++)\n")
		sink.OpenScope()
		sink.Printf("const unsigned int ipost = %s;\n", index.PostIndexExpr(sg, "ipre", "j"))
		env := wuEnv(sg, "ipre", "ipost")
		if eventCond != "" {
			sink.Printf("if (%s)\n", env.Apply(eventCond))
			sink.OpenScope()
			sink.Line(env.Apply(code))
			sink.CloseScope()
		} else {
			sink.Line(env.Apply(code))
		}
		sink.CloseScope()
	case ir.Bitmask:
		sink.Printf("for (int ipost = 0; ipost < %s; ipost++)\n", index.TargetSize(sg))
		sink.OpenScope()
		sink.Printf("const uint64_t gid = %s;\n", index.GidExpr(sg, "ipre", "ipost"))
		env := wuEnv(sg, "ipre", "ipost")
		guard := fmt.Sprintf("(%s)", index.BitTest(sg, "gid"))
		if eventCond != "" {
			guard = fmt.Sprintf("%s && (%s)", guard, env.Apply(eventCond))
		}
		sink.OpenLabel(tagPropGuard, fmt.Sprintf("if (%s)\n{\n", guard))
		sink.Line(env.Apply(code))
		sink.CloseLabel(tagPropGuard, "}\n")
		sink.CloseScope()
	default: // Dense
		sink.Printf("for (int ipost = 0; ipost < %s; ipost++)\n", index.TargetSize(sg))
		sink.OpenScope()
		env := wuEnv(sg, "ipre", "ipost")
		if eventCond != "" {
			sink.Printf("if (%s)\n", env.Apply(eventCond))
			sink.OpenScope()
			sink.Line(env.Apply(code))
			sink.CloseScope()
		} else {
			sink.Line(env.Apply(code))
		}
		sink.CloseScope()
	}
	sink.CloseScope()
}

// EmitPostLearn emits the post-learning pass for one group: reverse
// traversal from each postsynaptic spike back to its presynaptic
// sources (spec.md §4.7, "reverse structures").
func EmitPostLearn(sink *emit.Sink, sg *ir.SynapseGroup) {
	sink.Printf("// post-learning: %s\n", sg.Name)
	sink.OpenScope()
	defer sink.CloseScope()

	postOffset := delay.PostReadDelayOffset(sg)
	sink.Printf("for (unsigned int i = 0; i < glbSpkCnt%s[0]; i++)\n", sg.Trg.Name)
	sink.OpenScope()
	sink.Printf("const int lSpk = glbSpk%s[%s + i];\n", sg.Trg.Name, postOffset)

	switch sg.Matrix {
	case ir.SparseYale:
		sink.Printf("const int nrev = %s;\n", index.RevRowLengthExpr(sg, "lSpk"))
		sink.Printf("for (int l = 0; l < nrev; l++)\n")
		sink.OpenScope()
		fwd := index.RevForwardIndexYale(sg, "lSpk", "l")
		sink.Printf("const int s = %s;\n", fwd)
		sink.Printf("const int ipre = %s;\n", index.RevPreIndexYale(sg, "s"))
		sink.Line(postLearnEnv(sg, "lSpk", "s").Apply(sg.WUModel.LearnPostCode))
		sink.CloseScope()
	case ir.SparseRagged:
		sink.Printf("for (int l = 0; l < %s; l++)\n", index.RevColLengthExpr(sg, "lSpk"))
		sink.OpenScope()
		fwd := index.RevForwardIndexRagged(sg, "lSpk", "l")
		sink.Printf("const int ipre = %s;\n", index.RevPreIndexRagged(sg, fwd))
		sink.Line(postLearnEnv(sg, "lSpk", fwd).Apply(sg.WUModel.LearnPostCode))
		sink.CloseScope()
	case ir.Bitmask:
		sink.Printf("for (int ipre = 0; ipre < %d; ipre++)\n", sg.Src.Size)
		sink.OpenScope()
		sink.Printf("const uint64_t gid = %s;\n", index.GidExpr(sg, "ipre", "lSpk"))
		sink.Printf("if (%s)\n", index.BitTest(sg, "gid"))
		sink.OpenScope()
		sink.Line(wuEnv(sg, "ipre", "lSpk").Apply(sg.WUModel.LearnPostCode))
		sink.CloseScope()
		sink.CloseScope()
	default: // Dense
		sink.Printf("for (int ipre = 0; ipre < %d; ipre++)\n", sg.Src.Size)
		sink.OpenScope()
		sink.Line(denseLearnEnv(sg, "lSpk", "ipre").Apply(sg.WUModel.LearnPostCode))
		sink.CloseScope()
	}
}

// postLearnEnv builds the substitution environment for a sparse
// group's post-learning pass, where weight variables are addressed
// through the remap array at remapIdx rather than the forward index
// path wuEnv uses for the propagation/dynamics passes.
func postLearnEnv(sg *ir.SynapseGroup, ipost, remapIdx string) *stdsubst.Env {
	varAddr := make(map[string]string, len(sg.WUModel.VarNames))
	for _, v := range sg.WUModel.VarNames {
		varAddr[v] = index.RemapWeightAddr(sg, v, remapIdx)
	}
	return &stdsubst.Env{
		GroupName:        sg.Name,
		IDExpr:           ipost,
		VarAddr:          varAddr,
		InSynAccum:       fmt.Sprintf("inSyn%s[%s]", sg.PSMTarget, ipost),
		SupportNamespace: stdsubst.NamespaceFor(sg.Name, "synapse"),
		SupportNames:     sg.WUModel.SupportCodeNames,
	}
}

// denseLearnEnv builds the substitution environment for a DENSE
// group's post-learning pass, addressing weights via
// index.DenseLearnWeightAddr.
func denseLearnEnv(sg *ir.SynapseGroup, lSpk, ipre string) *stdsubst.Env {
	varAddr := make(map[string]string, len(sg.WUModel.VarNames))
	for _, v := range sg.WUModel.VarNames {
		varAddr[v] = index.DenseLearnWeightAddr(sg, v, lSpk, ipre)
	}
	return &stdsubst.Env{
		GroupName:        sg.Name,
		IDExpr:           lSpk,
		VarAddr:          varAddr,
		InSynAccum:       fmt.Sprintf("inSyn%s[%s]", sg.PSMTarget, lSpk),
		SupportNamespace: stdsubst.NamespaceFor(sg.Name, "synapse"),
		SupportNames:     sg.WUModel.SupportCodeNames,
	}
}

func wuEnv(sg *ir.SynapseGroup, ipre, ipost string) *stdsubst.Env {
	varAddr := make(map[string]string, len(sg.WUModel.VarNames))
	for _, v := range sg.WUModel.VarNames {
		varAddr[v] = index.WeightAddr(sg, v, ipre, "j", ipost)
	}
	denDelay := ""
	if sg.DendriticDelayRequired.IsTrue() {
		if mis := sg.MergedInFor(); mis != nil {
			denDelay = fmt.Sprintf("denDelay%s[%s + %s]", sg.Name, delay.DendriticOffset(sg, mis, "$(1)"), ipost)
		}
	}
	return &stdsubst.Env{
		GroupName:        sg.Name,
		IDExpr:           ipost,
		VarAddr:          varAddr,
		InSynAccum:       fmt.Sprintf("inSyn%s[%s]", sg.PSMTarget, ipost),
		DenDelayAccum:    denDelay,
		DendriticDelay:   sg.DendriticDelayRequired.IsTrue(),
		SupportNamespace: stdsubst.NamespaceFor(sg.Name, "synapse"),
		SupportNames:     sg.WUModel.SupportCodeNames,
	}
}
