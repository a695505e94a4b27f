// Package delay resolves read/write offsets into circular per-group
// spike and state queues (spec.md §4.5).
package delay

import (
	"fmt"

	"github.com/emer/netgen/ir"
	"github.com/goki/ki/ints"
)

// SlotPtr returns the name of the neuron group's slot pointer variable.
func SlotPtr(ng *ir.NeuronGroup) string {
	return "spkQuePtr" + ng.Name
}

// PrevSlotExpr returns the read-from-previous slot expression
// `(p + D - 1) mod D`.
func PrevSlotExpr(ng *ir.NeuronGroup) string {
	d := ints.MaxInt(ng.DelayDepth, 1)
	p := SlotPtr(ng)
	return fmt.Sprintf("(%s + %d) %% %d", p, d-1, d)
}

// ReadDelayOffset returns `readDelayOffset = prevSlot(p) * N`.
func ReadDelayOffset(ng *ir.NeuronGroup) string {
	return fmt.Sprintf("%s * %d", PrevSlotExpr(ng), ng.Size)
}

// WriteDelayOffset returns `writeDelayOffset = p * N`.
func WriteDelayOffset(ng *ir.NeuronGroup) string {
	return fmt.Sprintf("%s * %d", SlotPtr(ng), ng.Size)
}

// PreReadDelaySlot returns the presynaptic read slot at the synapse
// group's axonal delay.
func PreReadDelaySlot(sg *ir.SynapseGroup) string {
	if sg.AxonalDelaySlot <= 0 {
		return SlotPtr(sg.Src)
	}
	d := ints.MaxInt(sg.Src.DelayDepth, 1)
	return fmt.Sprintf("(%s + %d) %% %d", SlotPtr(sg.Src), d-sg.AxonalDelaySlot, d)
}

// PreReadDelayOffset returns the presynaptic read offset at axonal delay.
func PreReadDelayOffset(sg *ir.SynapseGroup) string {
	return fmt.Sprintf("%s * %d", PreReadDelaySlot(sg), sg.Src.Size)
}

// PostReadDelaySlot returns the postsynaptic read slot at back-prop
// delay. Back-propagation never applies axonal delay (spec.md §4.7).
func PostReadDelaySlot(sg *ir.SynapseGroup) string {
	if sg.BackPropDelaySlot <= 0 {
		return SlotPtr(sg.Trg)
	}
	d := ints.MaxInt(sg.Trg.DelayDepth, 1)
	return fmt.Sprintf("(%s + %d) %% %d", SlotPtr(sg.Trg), d-sg.BackPropDelaySlot, d)
}

// PostReadDelayOffset returns the postsynaptic read offset at back-prop delay.
func PostReadDelayOffset(sg *ir.SynapseGroup) string {
	return fmt.Sprintf("%s * %d", PostReadDelaySlot(sg), sg.Trg.Size)
}

// DendriticOffset returns the dendritic-delay offset expression for a
// delay amount d (itself a substituted expression, typically a
// user-fragment argument) on the given merged in-synapse:
// `((dendFront_S + d) mod maxDenDelay_S) * |target|`.
func DendriticOffset(sg *ir.SynapseGroup, mis *ir.MergedInSyn, d string) string {
	slots := ints.MaxInt(mis.DenDelaySlots, 1)
	front := fmt.Sprintf("dendFront_%s", sg.Name)
	return fmt.Sprintf("((%s + (%s)) %% %d) * %d", front, d, slots, sg.Trg.Size)
}
