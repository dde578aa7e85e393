// Command lumen is a minimal embedding demo for the core engine: it
// assembles a tiny program with package asm, bootstraps the core
// library, interprets it, and prints the result. Grounded on
// db47h-ngaro/cmd/retro/main.go's flag-based CLI and
// jcorbin-gothird/main.go's top-level recover-and-report pattern — the
// one place in this repository that recovers a *vm.FatalError, reports
// it, and exits non-zero.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fermian/wren/asm"
	"github.com/fermian/wren/corelib"
	"github.com/fermian/wren/vm"
)

func main() {
	gcStress := flag.Bool("gc-stress", false, "collect garbage on every allocation")
	flag.Parse()

	opts := []vm.Option{}
	if *gcStress {
		opts = append(opts, vm.WithGCStress())
	}

	m := vm.NewVM(opts...)
	corelib.Load(m)

	result := run(m)
	fmt.Println(vm.FormatValue(result))
}

// run builds and interprets a program demonstrating class creation,
// instance construction, and method dispatch — the same shape as spec
// §8's end-to-end scenarios 4-5 — then recovers a fatal engine panic if
// one occurs, reports it, and exits the process (the one place in this
// repository that does so; the core itself never recovers).
func run(m *vm.VM) (result vm.Value) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*vm.FatalError)
			if !ok {
				panic(r)
			}
			fe.Report()
			os.Exit(1)
		}
	}()

	method := asm.New(m)
	method.Const(vm.NumVal(7)).End()

	program := asm.New(m)
	program.
		Class().
		Method(m, "m", program.ConstFnIndex(method.Fn())).
		StoreGlobal(m, "C")
	program.
		LoadGlobal(m, "C").
		Call(m, 1, "new").
		Call(m, 1, "m").
		End()

	return m.Interpret(program.Fn())
}
