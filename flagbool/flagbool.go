// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flagbool defines Bool, a tri-state int32 switch for the IR's
// per-group flags: Unset, False, and True. The third state exists
// because a generation-time default (codegen.Config.AutoRefractory and
// its kin) must apply only to groups that haven't already picked their
// own value in the source network file — a plain bool can't tell "the
// network file said false" apart from "the network file said
// nothing," and both cases need different treatment when a config-wide
// default is layered on top. The int32 width mirrors the IR's other
// flags so the whole NeuronGroupFlags/SynapseGroup flag set stays
// uniform when dumped by a diagnostic or round-tripped through config.
package flagbool

type Bool int32

const (
	Unset Bool = iota
	False
	True
)

func (b Bool) IsTrue() bool {
	return b == True
}

func (b Bool) IsFalse() bool {
	return b == False
}

// IsSet reports whether b holds an explicit True or False, as opposed
// to having never been assigned.
func (b Bool) IsSet() bool {
	return b != Unset
}

func (b *Bool) SetBool(bb bool) {
	*b = FromBool(bb)
}

// OrDefault assigns bb to b only if b is still Unset, implementing the
// "config default applies unless the group already said otherwise"
// rule that codegen.Config's network-wide switches need.
func (b *Bool) OrDefault(bb bool) {
	if b.IsSet() {
		return
	}
	b.SetBool(bb)
}

func (b Bool) String() string {
	switch b {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

func (b *Bool) FromString(s string) {
	switch s {
	case "true", "True":
		b.SetBool(true)
	case "false", "False":
		b.SetBool(false)
	default:
		*b = Unset
	}
}

func IsTrue(b Bool) bool {
	return b == True
}

func IsFalse(b Bool) bool {
	return b == False
}

func FromBool(b bool) Bool {
	if b {
		return True
	}
	return False
}
