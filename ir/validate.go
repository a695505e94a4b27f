package ir

// Validate walks the network the way alignsl.CheckPackage walks a
// compiled package's type scope: depth-first, batch-reporting every
// violation it finds rather than stopping at the first one. The
// caller treats a non-empty ErrorList as fatal and aborts generation
// before any file is written.
func Validate(n *Network) ErrorList {
	var errs ErrorList

	neuronByName := make(map[string]*NeuronGroup, len(n.Neurons))
	for _, ng := range n.Neurons {
		if ng.Size < 0 {
			errs = append(errs, &ModelError{Group: ng.Name, Field: "Size", Message: "negative size"})
		}
		if ng.Model == nil {
			errs = append(errs, &ModelError{Group: ng.Name, Field: "Model", Message: "missing neuron model"})
		} else if ng.Size > 0 && ng.Model.SimCode == "" {
			errs = append(errs, &ModelError{Group: ng.Name, Field: "SimCode", Message: "non-empty population has no simCode"})
		}
		if ng.Flags.DelayRequired.IsTrue() && ng.DelayDepth < 1 {
			errs = append(errs, &ModelError{Group: ng.Name, Field: "DelayDepth", Message: "delay required but depth < 1"})
		}
		neuronByName[ng.Name] = ng
	}

	for _, sg := range n.Synapses {
		if sg.Src == nil || neuronByName[sg.Src.Name] != sg.Src {
			errs = append(errs, &ModelError{Group: sg.Name, Field: "Src", Message: "dangling source neuron group reference"})
		}
		if sg.Trg == nil || neuronByName[sg.Trg.Name] != sg.Trg {
			errs = append(errs, &ModelError{Group: sg.Name, Field: "Trg", Message: "dangling target neuron group reference"})
		}
		if sg.Matrix == SparseRagged && sg.MaxRowConnections <= 0 {
			errs = append(errs, &ModelError{Group: sg.Name, Field: "MaxRowConnections", Message: "SPARSE-RAGGED requires max-row-connections > 0"})
		}
		if sg.Matrix == Bitmask && sg.Weight == Individual {
			errs = append(errs, &ModelError{Group: sg.Name, Field: "Weight", Message: "BITMASK connectivity cannot carry individual weights"})
		}
		if sg.WUModel == nil {
			errs = append(errs, &ModelError{Group: sg.Name, Field: "WUModel", Message: "missing weight-update model"})
		}
		if sg.PSModel == nil {
			errs = append(errs, &ModelError{Group: sg.Name, Field: "PSModel", Message: "missing post-synaptic model"})
		}
		if sg.DendriticDelayRequired.IsTrue() && !mergedInHasDendriticDelay(sg) {
			errs = append(errs, &ModelError{Group: sg.Name, Field: "DendriticDelayRequired", Message: "dendritic delay set but target's post-synaptic model has no dendritic-delay buffer"})
		}
	}

	for _, ng := range n.Neurons {
		if ng.Flags.SpikeEventRequired.IsTrue() && !anyIncomingHasEventThreshold(n, ng) {
			errs = append(errs, &ModelError{Group: ng.Name, Field: "SpikeEventRequired", Message: "emits spike-like events but no incoming weight-update model has event-threshold code"})
		}
	}

	return errs
}

func mergedInHasDendriticDelay(sg *SynapseGroup) bool {
	mis := sg.MergedInFor()
	return mis != nil && mis.DendriticDelayRequired.IsTrue() && mis.DenDelaySlots >= 1
}

func anyIncomingHasEventThreshold(n *Network, ng *NeuronGroup) bool {
	for _, sg := range n.Synapses {
		if sg.Src != ng {
			continue
		}
		if sg.WUModel != nil && sg.WUModel.EventThresholdCode != "" {
			return true
		}
	}
	return false
}
