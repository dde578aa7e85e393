package corelib

import "github.com/fermian/wren/vm"

// registerNumberPrimitives installs arithmetic and comparison on
// NumClass. Since this engine's Value has only one numeric variant
// (number, a float64 — spec §3), there is no int/float split to branch
// on the way chazu-maggie/vm/integer_primitives.go and
// float_primitives.go do; this merges both into one file.
func registerNumberPrimitives(m *vm.VM) {
	methods := m.Methods()
	c := m.NumClass

	binaryNum(m, c, methods, "+", func(a, b float64) float64 { return a + b })
	binaryNum(m, c, methods, "-", func(a, b float64) float64 { return a - b })
	binaryNum(m, c, methods, "*", func(a, b float64) float64 { return a * b })
	binaryNum(m, c, methods, "/", func(a, b float64) float64 { return a / b })

	binaryCmp(m, c, methods, "<", func(a, b float64) bool { return a < b })
	binaryCmp(m, c, methods, ">", func(a, b float64) bool { return a > b })
	binaryCmp(m, c, methods, "<=", func(a, b float64) bool { return a <= b })
	binaryCmp(m, c, methods, ">=", func(a, b float64) bool { return a >= b })
	binaryCmp(m, c, methods, "=", func(a, b float64) bool { return a == b })

	addPrimitive(m, c, methods, "negate", func(_ *vm.VM, _ *vm.Fiber, args []vm.Value) vm.Value {
		return vm.NumVal(-args[0].AsNum())
	})
}

func binaryNum(m *vm.VM, c *vm.ObjClass, methods *vm.SymbolTable, name string, op func(a, b float64) float64) {
	addPrimitive(m, c, methods, name, func(_ *vm.VM, _ *vm.Fiber, args []vm.Value) vm.Value {
		return vm.NumVal(op(args[0].AsNum(), args[1].AsNum()))
	})
}

func binaryCmp(m *vm.VM, c *vm.ObjClass, methods *vm.SymbolTable, name string, op func(a, b float64) bool) {
	addPrimitive(m, c, methods, name, func(_ *vm.VM, _ *vm.Fiber, args []vm.Value) vm.Value {
		return vm.BoolVal(op(args[0].AsNum(), args[1].AsNum()))
	})
}
