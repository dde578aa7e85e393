package corelib

import "github.com/fermian/wren/vm"

// registerStringPrimitives installs concatenation and equality on
// StringClass. Grounded on
// chazu-maggie/vm/string_primitives.go's one-file-per-class
// organization, reduced to the operations spec §8's scenarios actually
// need (the full core library's string protocol is out of scope — §1).
func registerStringPrimitives(m *vm.VM) {
	methods := m.Methods()
	c := m.StringClass

	addPrimitive(m, c, methods, "+", func(mv *vm.VM, _ *vm.Fiber, args []vm.Value) vm.Value {
		return mv.NewString(args[0].AsString().Value + args[1].AsString().Value)
	})

	addPrimitive(m, c, methods, "=", func(_ *vm.VM, _ *vm.Fiber, args []vm.Value) vm.Value {
		if !args[1].IsObj() {
			return vm.FalseVal
		}
		other, ok := args[1].AsObj().(*vm.ObjString)
		if !ok {
			return vm.FalseVal
		}
		return vm.BoolVal(args[0].AsString().Value == other.Value)
	})

	addPrimitive(m, c, methods, "size", func(_ *vm.VM, _ *vm.Fiber, args []vm.Value) vm.Value {
		return vm.NumVal(float64(len(args[0].AsString().Value)))
	})
}
