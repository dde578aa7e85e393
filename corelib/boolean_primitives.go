package corelib

import "github.com/fermian/wren/vm"

// registerBooleanPrimitives installs boolean negation and conjunction/
// disjunction on BoolClass. Grounded on
// chazu-maggie/vm/boolean_primitives.go's AddMethod0/AddMethod1 style,
// collapsed onto this engine's single PrimitiveFunc shape and reduced
// to the handful of operations scenario-level tests exercise.
func registerBooleanPrimitives(m *vm.VM) {
	methods := m.Methods()

	addPrimitive(m, m.BoolClass, methods, "not", func(_ *vm.VM, _ *vm.Fiber, args []vm.Value) vm.Value {
		return vm.BoolVal(!args[0].AsBool())
	})

	addPrimitive(m, m.BoolClass, methods, "&", func(_ *vm.VM, _ *vm.Fiber, args []vm.Value) vm.Value {
		return vm.BoolVal(args[0].AsBool() && args[1].AsBool())
	})

	addPrimitive(m, m.BoolClass, methods, "|", func(_ *vm.VM, _ *vm.Fiber, args []vm.Value) vm.Value {
		return vm.BoolVal(args[0].AsBool() || args[1].AsBool())
	})
}
