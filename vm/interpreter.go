package vm

// Interpret pushes an initial call frame for fn (numArgs=0,
// stackStart=0) and runs the dispatch loop to completion, returning the
// value the outermost frame's END instruction produced. Grounded
// instruction-for-instruction on original_source/src/vm.c's interpret
// loop; the panic-for-fatal idiom is grounded on
// chazu-maggie/vm/interpreter.go's plain panic() calls for "unknown
// opcode"/"stack underflow" conditions.
func (vm *VM) Interpret(fn *ObjFn) Value {
	fiber := vm.fiber
	fiber.callFunction(fn, 0)

	for {
		frame := &fiber.frames[fiber.numFrames-1]

		instruction := Opcode(frame.fn.Bytecode[frame.ip])
		frame.ip++

		switch {
		case instruction == OpConstant:
			idx := readArg(frame)
			fiber.push(frame.fn.Constants[idx])

		case instruction == OpNull:
			fiber.push(NullVal)
		case instruction == OpFalse:
			fiber.push(FalseVal)
		case instruction == OpTrue:
			fiber.push(TrueVal)

		case instruction == OpClass || instruction == OpSubclass:
			vm.execClass(fiber, instruction == OpSubclass)

		case instruction == OpMetaclass:
			class := fiber.peek().AsClass()
			fiber.push(ObjVal(class.Metaclass))

		case instruction == OpMethod:
			sym := int(readArg(frame))
			constant := int(readArg(frame))
			class := fiber.peek().AsClass()
			body := frame.fn.Constants[constant].AsFn()
			class.Methods[sym] = Method{Type: MethodBlock, Fn: body}

		case instruction == OpLoadLocal:
			local := int(readArg(frame))
			fiber.push(fiber.stack[frame.stackStart+local])

		case instruction == OpStoreLocal:
			local := int(readArg(frame))
			fiber.stack[frame.stackStart+local] = fiber.peek()

		case instruction == OpLoadGlobal:
			global := int(readArg(frame))
			fiber.push(vm.globals[global])

		case instruction == OpStoreGlobal:
			global := int(readArg(frame))
			vm.globals[global] = fiber.peek()

		case instruction == OpDup:
			fiber.push(fiber.peek())
		case instruction == OpPop:
			fiber.pop()

		case isCallOpcode(instruction):
			numArgs, _ := instruction.IsCall()
			vm.execCall(fiber, numArgs)
			// execCall may have replaced frame (block dispatch pushed
			// a new frame); the loop re-derives frame from
			// fiber.frames next iteration, so no local update needed.
			continue

		case instruction == OpJump:
			offset := int(readArg(frame))
			frame.ip += offset

		case instruction == OpJumpIf:
			offset := int(readArg(frame))
			condition := fiber.pop()
			// False is the only falsey value (spec §3, §8 invariant 6).
			if !condition.AsBool() {
				frame.ip += offset
			}

		case instruction == OpIs:
			classVal := fiber.pop()
			obj := fiber.pop()
			actual := vm.getClass(obj)
			fiber.push(BoolVal(actual == classVal.AsClass()))

		case instruction == OpEnd:
			result := fiber.pop()
			fiber.numFrames--

			if fiber.numFrames == 0 {
				return result
			}

			fiber.stack[frame.stackStart] = result
			fiber.stackSize = frame.stackStart + 1

		default:
			fatalf("Interpret: unknown opcode 0x%02X", byte(instruction))
		}
	}
}

func readArg(frame *CallFrame) byte {
	b := frame.fn.Bytecode[frame.ip]
	frame.ip++
	return b
}

func isCallOpcode(op Opcode) bool {
	_, ok := op.IsCall()
	return ok
}

// execClass implements the CLASS/SUBCLASS opcode pair: create a class
// (with an implicit Object superclass, or the popped superclass for
// SUBCLASS), unconditionally install primitive_metaclass_new as the
// new method on the freshly minted metaclass, seed vm.ObjectClass via
// the "first class created is Object" heuristic, and push the class.
func (vm *VM) execClass(fiber *Fiber, isSubclass bool) {
	var superclass *ObjClass
	if isSubclass {
		superclass = fiber.pop().AsClass()
	} else {
		superclass = vm.ObjectClass
	}

	class := vm.NewClass(superclass)

	if vm.ObjectClass == nil {
		vm.ObjectClass = class
	}

	newSymbol := vm.methods.EnsureSymbol("new")
	class.Metaclass.Methods[newSymbol] = Method{
		Type:      MethodPrimitive,
		Primitive: DefaultNewPrimitive,
	}

	fiber.push(ObjVal(class))
}

// execCall implements CALL_n dispatch: resolve the receiver's class,
// look up the symbol in its method table, and act on the slot's type.
func (vm *VM) execCall(fiber *Fiber, numArgs int) {
	frame := &fiber.frames[fiber.numFrames-1]
	sym := int(readArg(frame))

	receiver := fiber.stack[fiber.stackSize-numArgs]
	class := vm.getClass(receiver)
	method := &class.Methods[sym]

	switch method.Type {
	case MethodNone:
		fatalf("Receiver %s does not implement method %q.",
			FormatValue(receiver), vm.methods.GetSymbolName(sym))

	case MethodPrimitive:
		args := fiber.stack[fiber.stackSize-numArgs : fiber.stackSize]
		result := method.Primitive(vm, fiber, args)

		// If the primitive pushed a call frame itself, it returns
		// no-value and has already left the stack in the
		// caller-expected shape.
		if !result.IsNoValue() {
			fiber.stack[fiber.stackSize-numArgs] = result
			fiber.stackSize -= numArgs - 1
		}

	case MethodBlock:
		fiber.callFunction(method.Fn, numArgs)
	}
}

// DefaultNewPrimitive is the default `new` primitive every class's
// metaclass gets: it allocates an instance of the receiver (the class
// whose metaclass dispatched us). No initializer is invoked — deferred,
// per spec §4.D and §9. Exported so a core-library loader can install
// the identical primitive on its bootstrap classes rather than
// reimplementing it.
func DefaultNewPrimitive(vm *VM, fiber *Fiber, args []Value) Value {
	return vm.NewInstance(args[0].AsClass())
}
