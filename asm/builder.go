// Package asm is a small programmatic bytecode builder for the core
// engine. It is a byte emitter, not a lexer/parser/compiler — it never
// parses source text, so it does not encroach on the lexer/parser/
// bytecode-compiler collaborator spec §1 puts out of scope. Grounded on
// funvibe-funxy/internal/vm/chunk.go's Write/WriteOp/AddConstant
// pattern and on db47h-ngaro/asm's role as the "write programs without
// hand-indexing bytes" helper for its VM.
package asm

import "github.com/fermian/wren/vm"

// Builder accumulates opcodes and operands into a vm.ObjFn.
type Builder struct {
	fn *vm.ObjFn
}

// New starts a builder over a fresh function allocated on m.
func New(m *vm.VM) *Builder {
	return &Builder{fn: m.NewFunction()}
}

// Fn returns the function built so far. Calling it before End does not
// finalize anything — End just emits the END opcode like any other.
func (b *Builder) Fn() *vm.ObjFn { return b.fn }

func (b *Builder) op(code vm.Opcode) *Builder {
	b.fn.WriteOp(code)
	return b
}

func (b *Builder) arg(n byte) *Builder {
	b.fn.WriteByte(n)
	return b
}

// Const emits CONSTANT against a value appended to the pool.
func (b *Builder) Const(v vm.Value) *Builder {
	idx := b.fn.AddConstant(v)
	return b.op(vm.OpConstant).arg(idx)
}

// ConstFn emits CONSTANT against a nested function value, for METHOD
// bodies and blocks.
func (b *Builder) ConstFn(fn *vm.ObjFn) *Builder {
	idx := b.fn.AddConstant(vm.ObjVal(fn))
	return b.op(vm.OpConstant).arg(idx)
}

func (b *Builder) Null() *Builder  { return b.op(vm.OpNull) }
func (b *Builder) False() *Builder { return b.op(vm.OpFalse) }
func (b *Builder) True() *Builder  { return b.op(vm.OpTrue) }

func (b *Builder) Class() *Builder    { return b.op(vm.OpClass) }
func (b *Builder) Subclass() *Builder { return b.op(vm.OpSubclass) }
func (b *Builder) Metaclass() *Builder { return b.op(vm.OpMetaclass) }

// Method emits METHOD sym,k where k indexes a function value already
// added to the pool (typically via ConstFnIndex).
func (b *Builder) Method(m *vm.VM, selector string, bodyConstIdx byte) *Builder {
	sym := byte(m.Methods().EnsureSymbol(selector))
	return b.op(vm.OpMethod).arg(sym).arg(bodyConstIdx)
}

// ConstFnIndex appends fn to the pool without emitting CONSTANT, for
// use as the body argument to Method.
func (b *Builder) ConstFnIndex(fn *vm.ObjFn) byte {
	return b.fn.AddConstant(vm.ObjVal(fn))
}

func (b *Builder) LoadLocal(n byte) *Builder  { return b.op(vm.OpLoadLocal).arg(n) }
func (b *Builder) StoreLocal(n byte) *Builder { return b.op(vm.OpStoreLocal).arg(n) }

// LoadGlobal emits LOAD_GLOBAL against a global symbol, ensuring the
// symbol exists first.
func (b *Builder) LoadGlobal(m *vm.VM, name string) *Builder {
	id := byte(m.GlobalSymbols().EnsureSymbol(name))
	return b.op(vm.OpLoadGlobal).arg(id)
}

// StoreGlobal emits STORE_GLOBAL against a global symbol, ensuring the
// symbol exists first.
func (b *Builder) StoreGlobal(m *vm.VM, name string) *Builder {
	id := byte(m.GlobalSymbols().EnsureSymbol(name))
	return b.op(vm.OpStoreGlobal).arg(id)
}

func (b *Builder) Dup() *Builder { return b.op(vm.OpDup) }
func (b *Builder) Pop() *Builder { return b.op(vm.OpPop) }

// Call emits CALL_n against a method selector, ensuring the symbol
// exists first. numArgs includes the receiver (spec §4.D).
func (b *Builder) Call(m *vm.VM, numArgs int, selector string) *Builder {
	if numArgs < 1 || numArgs > 11 {
		panic("asm: Call numArgs must be in [1, 11] (receiver inclusive)")
	}
	sym := byte(m.Methods().EnsureSymbol(selector))
	return b.op(vm.Opcode(int(vm.OpCall0) + numArgs - 1)).arg(sym)
}

func (b *Builder) Jump(offset byte) *Builder   { return b.op(vm.OpJump).arg(offset) }
func (b *Builder) JumpIf(offset byte) *Builder { return b.op(vm.OpJumpIf).arg(offset) }
func (b *Builder) Is() *Builder                { return b.op(vm.OpIs) }
func (b *Builder) End() *Builder                { return b.op(vm.OpEnd) }

// Len returns the current length of the bytecode stream, useful for
// computing jump offsets before a forward jump's target is known.
func (b *Builder) Len() int { return len(b.fn.Bytecode) }
