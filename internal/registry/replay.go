package registry

import "github.com/archipelago-host/archi/internal/archierr"

// VM replays a configuration step script against a Registry (spec §4.2.4):
// a deterministic, single-threaded engine with failure-safe undo of the
// already-executed prefix on error.
type VM struct {
	Registry   *Registry
	Interfaces map[string]*Interface // interface-key -> Interface, resolved from the blob's interfaces[] table
}

// NewVM builds a VM over registry, resolving INIT steps' interface-key
// against interfaces.
func NewVM(registry *Registry, interfaces map[string]*Interface) *VM {
	return &VM{Registry: registry, Interfaces: interfaces}
}

// StepResult records one executed step's outcome, for diagnostics (§B.3 of
// SPEC_FULL.md) and for the trace tests in spec §8.4.
type StepResult struct {
	Index  int
	Step   Step
	Status archierr.Status
}

// Replay executes steps in order (spec §4.2.4). On the first non-zero
// status it stops and undoes the already-executed prefix: every
// successful INIT step not since reversed by an explicit FINAL is FINALed
// in reverse declaration order. It returns the failing step's status, or
// OK if every step succeeded. trace, if non-nil, receives one StepResult
// per attempted step (including the failing one, excluding undo steps).
func (vm *VM) Replay(steps []Step, trace *[]StepResult) archierr.Status {
	var initKeys []string // keys successfully INIT'd so far, in declaration order

	for i, step := range steps {
		status := vm.execute(step)
		if trace != nil {
			*trace = append(*trace, StepResult{Index: i, Step: step, Status: status})
		}

		if step.Kind == StepInit && status == archierr.OK {
			initKeys = append(initKeys, step.Key)
		}
		if step.Kind == StepFinal && status == archierr.OK {
			initKeys = removeKey(initKeys, step.Key)
		}

		if status != archierr.OK {
			vm.undo(initKeys)
			return status
		}
	}

	return archierr.OK
}

// undo reverses every still-live INIT in reverse order (spec §4.2.4): SET,
// ASSIGN, ACT and FINAL are never undone, only INIT (whose inverse is
// FINAL).
func (vm *VM) undo(initKeys []string) {
	for i := len(initKeys) - 1; i >= 0; i-- {
		key := initKeys[i]
		if _, ok := vm.Registry.Lookup(key); ok {
			vm.Registry.Remove(key)
		}
	}
}

func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

func (vm *VM) execute(step Step) archierr.Status {
	switch step.Kind {
	case StepInit:
		return vm.executeInit(step)
	case StepFinal:
		return vm.Registry.Remove(step.Key)
	case StepSet:
		return vm.Registry.Set(step.Key, step.Set.Slot, step.Set.Value)
	case StepAssign:
		return vm.executeAssign(step)
	case StepAct:
		return vm.Registry.Act(step.Key, step.Act.Action, step.Act.Params)
	default:
		return archierr.Misuse
	}
}

func (vm *VM) executeInit(step Step) archierr.Status {
	iface, ok := vm.Interfaces[step.Init.InterfaceKey]
	if !ok {
		return archierr.Key
	}
	return vm.Registry.Add(step.Key, iface, step.Init.Params)
}

func (vm *VM) executeAssign(step Step) archierr.Status {
	payload := step.Assign
	source, ok := vm.Registry.Lookup(payload.SourceKey)
	if !ok {
		return archierr.Misuse
	}

	if payload.SourceSlot != nil {
		v, status := vm.Registry.Get(payload.SourceKey, *payload.SourceSlot)
		if status != archierr.OK {
			return status
		}
		return vm.Registry.Set(step.Key, payload.Slot, v)
	}

	// No source slot: hand the destination a pointer to source's own
	// handle, carrying source's context-level reference count so the
	// destination interface can pin it for as long as it keeps the
	// reference (spec §4.2.3, §4.2.5).
	pinned := source.Handle.WithRefs(source.Refs())
	return vm.Registry.Set(step.Key, payload.Slot, pinned)
}
