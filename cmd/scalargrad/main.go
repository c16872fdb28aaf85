// Package main provides the ScalarGrad CLI.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"k8s.io/klog/v2"

	"github.com/born-ml/scalargrad/engine"
	"github.com/born-ml/scalargrad/graph"
)

const version = "v0.1.0-dev"

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Printf("ScalarGrad %s\n", version)
			return
		case "check":
			if err := runCheck(); err != nil {
				fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("ScalarGrad - Scalar Reverse-Mode Autodiff for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  check      Run a derivative self-check on a demo graph")
}

// runCheck builds y = silu(a*b + sin(a)), compares the engine's dy/da
// against a central difference, and prints the Hessian-vector product along
// (1, 0). The HVP is printed without a finite-difference reference.
func runCheck() error {
	build := func(av, bv float64) (*graph.Graph, *graph.Node, *graph.Node, *graph.Node) {
		g := graph.New()
		a := g.Variable(av)
		b := g.Variable(bv)
		ab, _ := g.Mul(a, b)
		sum, _ := g.Add(ab, g.Sin(a))
		return g, a, b, g.Silu(sum)
	}

	const av, bv = 0.7, -1.3

	g, a, b, y := build(av, bv)
	val, err := engine.Eval(g, y)
	if err != nil {
		return err
	}
	if err := engine.Backward(g, y, 1); err != nil {
		return err
	}
	fmt.Printf("y       = %.9f\n", val)
	fmt.Printf("dy/da   = %.9f\n", a.Gradient)
	fmt.Printf("dy/db   = %.9f\n", b.Gradient)

	// Central-difference reference for dy/da.
	const h = 1e-5
	eval := func(av, bv float64) float64 {
		g, _, _, y := build(av, bv)
		v, _ := engine.Eval(g, y)
		return v
	}
	fd := (eval(av+h, bv) - eval(av-h, bv)) / (2 * h)
	fmt.Printf("fd da   = %.9f (|err| = %.2e)\n", fd, math.Abs(fd-a.Gradient))

	// HVP against direction (1, 0): seed ȧ=1, ḃ=0.
	a.Dot, b.Dot = 1, 0
	if _, err := engine.EvalDot(g, y); err != nil {
		return err
	}
	if err := engine.HVP(g, y, 1, 0); err != nil {
		return err
	}
	fmt.Printf("(H·e₁)a = %.9f\n", a.GradDot)
	fmt.Printf("(H·e₁)b = %.9f\n", b.GradDot)
	return nil
}
