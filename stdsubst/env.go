// Package stdsubst applies the domain-specific composition of name and
// call substitutions shared by every neuron/synapse fragment
// (spec.md §4.3): $(t), $(id), variable addressing, parameter and
// derived-parameter literals, extra-global-parameter references,
// addToInSyn/addToInSynDelay, the deprecated inSyn aliases, and
// support-code namespace prefixing.
//
// An Env is the immutable substitution environment the design notes
// call for: built once per group/fragment-kind pairing and passed by
// reference into the fragment-specific finalizers in neuronpass and
// synapsepass, rather than threading loose string arguments through
// every call.
package stdsubst

import (
	"fmt"

	"github.com/emer/netgen/subst"
	"github.com/iancoleman/strcase"
)

// Env is the substitution context for one code fragment.
type Env struct {
	GroupName string
	TimeVar   string
	IDExpr    string

	// VarAddr resolves a declared variable name to its addressed
	// expression (local copy, global array slot, or weight address).
	VarAddr map[string]string
	// Params and DerivedParams map a declared name to its generated
	// literal constant text.
	Params        map[string]string
	DerivedParams map[string]string
	// ExtraGlobalParams maps a declared name to its top-level array reference.
	ExtraGlobalParams map[string]string
	// SupportNamespace prefixes bare support-code function names, e.g.
	// "pop_neuron::".
	SupportNamespace string
	SupportNames     []string

	// InSynAccum is the merged-in-synapse accumulator reference, e.g.
	// "inSynpsm[ipost]".
	InSynAccum string
	// DenDelayAccum, when non-empty, is the dendritic-delay buffer
	// reference template with a "$(1)" placeholder standing in for
	// addToInSynDelay's second argument (the delay amount), e.g.
	// "denDelaysyn[((dendFront_syn + ($(1))) % 4) * 10 + ipost]".
	DenDelayAccum string
	// DendriticDelay selects which accumulation path is active; the
	// deprecated aliases only exist in the non-dendritic path.
	DendriticDelay bool
}

// varNames returns a Formatter name-set built from e.VarAddr.
func (e *Env) varNames() map[string]subst.Formatter {
	m := make(map[string]subst.Formatter, len(e.VarAddr))
	for name, addr := range e.VarAddr {
		expr := addr
		m[name] = func(string) string { return expr }
	}
	return m
}

func (e *Env) literalNames(vals map[string]string) map[string]subst.Formatter {
	m := make(map[string]subst.Formatter, len(vals))
	for name, lit := range vals {
		expr := lit
		m[name] = func(string) string { return expr }
	}
	return m
}

func (e *Env) supportNames() map[string]subst.Formatter {
	m := make(map[string]subst.Formatter, len(e.SupportNames))
	for _, name := range e.SupportNames {
		ns := e.SupportNamespace
		m[name] = func(n string) string { return ns + n }
	}
	return m
}

// Apply runs the full standard substitution pipeline over a code
// fragment, in the fixed order spec.md §4.3 describes.
func (e *Env) Apply(code string) string {
	code = subst.Names(code, map[string]subst.Formatter{
		"t":  func(string) string { return e.TimeVar },
		"id": func(string) string { return e.IDExpr },
	})
	code = subst.Names(code, e.varNames())
	code = subst.Names(code, e.literalNames(e.Params))
	code = subst.Names(code, e.literalNames(e.DerivedParams))
	code = subst.Names(code, e.literalNames(e.ExtraGlobalParams))
	code = e.applyInSyn(code)
	code = e.applySupportNamespace(code)
	return code
}

func (e *Env) applyInSyn(code string) string {
	code = subst.Call(code, "addToInSyn", 1, fmt.Sprintf("%s += ($(0))", e.InSynAccum))
	if e.DenDelayAccum != "" {
		code = subst.Call(code, "addToInSynDelay", 2, fmt.Sprintf("%s += ($(0))", e.DenDelayAccum))
	}
	if e.DendriticDelay {
		return code
	}
	// deprecated aliases, non-dendritic-delay path only: kept verbatim
	// for backward compatibility with existing model fragments.
	code = subst.Names(code, map[string]subst.Formatter{
		"updatelinsyn": func(string) string { return "$(inSyn) += $(addtoinSyn)" },
	})
	code = subst.Names(code, map[string]subst.Formatter{
		"inSyn":      func(string) string { return e.InSynAccum },
		"addtoinSyn": func(string) string { return e.InSynAccum },
	})
	return code
}

func (e *Env) applySupportNamespace(code string) string {
	if len(e.SupportNames) == 0 {
		return code
	}
	return subst.Names(code, e.supportNames())
}

// NamespaceFor builds the "<group>_<kind>::" prefix used for
// support-code function names, e.g. NamespaceFor("pop", "neuron").
func NamespaceFor(group, kind string) string {
	return fmt.Sprintf("%s_%s::", group, kind)
}

// LiteralParamName formats a declared parameter/derived-parameter name
// into its generated constant identifier: lowerCamel(group) + "_" +
// name, so two groups sharing a parameter name never collide in the
// emitted C.
func LiteralParamName(group, name string) string {
	return strcase.ToLowerCamel(group) + "_" + name
}
