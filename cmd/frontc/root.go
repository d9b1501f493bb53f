// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/kylelemons/godebug/pretty"
	"github.com/spf13/cobra"

	"github.com/latticelang/frontc/check"
	"github.com/latticelang/frontc/errors"
	"github.com/latticelang/frontc/lower"
	"github.com/latticelang/frontc/parser"
	"github.com/latticelang/frontc/resolve"
	"github.com/latticelang/frontc/scan"
)

// Exit codes spec.md §6 pins down.
const (
	exitOK          = 0
	exitArgError    = 1
	exitCompileFail = 2
)

type options struct {
	output    string
	cratePath string
	emit      string
	stopAfter string
}

// Main builds and runs the root command, returning the process exit
// code (spec.md §6 "Exit codes"). It never calls os.Exit itself so
// tests can drive it in-process.
func Main(args []string) int {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "frontc [file]",
		Short:         "parse, lower, and validate a single crate root",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), input, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "output stem; defaults to <input>.o")
	flags.StringVar(&opts.cratePath, "crate-path", ".", "base directory for external crate resolution")
	flags.StringVar(&opts.emit, "emit", "c", "output selection: ast|c")
	flags.StringVar(&opts.stopAfter, "stop-after", "", "early termination after the named phase (parse)")

	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if ae, ok := err.(*argError); ok {
			fmt.Fprintln(cmd.ErrOrStderr(), ae.msg)
			return exitArgError
		}
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return exitCompileFail
	}
	return lastExitCode
}

// lastExitCode carries run's verdict out of cobra's RunE, which only
// has room for an error, not a code (a successful run distinguishing
// "stopped early" from "validated clean" both return nil from RunE).
var lastExitCode = exitOK

type argError struct{ msg string }

func (e *argError) Error() string { return e.msg }

func run(stdout, stderr io.Writer, input string, opts *options) error {
	lastExitCode = exitOK
	if opts.emit != "ast" && opts.emit != "c" {
		lastExitCode = exitArgError
		return &argError{fmt.Sprintf("invalid --emit value %q: want ast or c", opts.emit)}
	}
	if opts.stopAfter != "" && opts.stopAfter != "parse" {
		lastExitCode = exitArgError
		return &argError{fmt.Sprintf("invalid --stop-after value %q: want parse", opts.stopAfter)}
	}

	var src io.Reader
	filename := input
	if input == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(input)
		if err != nil {
			lastExitCode = exitArgError
			return &argError{err.Error()}
		}
		defer f.Close()
		src = f
	}

	sink := &errors.Sink{}
	lx, err := scan.New(filename, src, sink)
	if err != nil {
		lastExitCode = exitArgError
		return &argError{err.Error()}
	}

	loader := &fsLoader{base: opts.cratePath}
	crate, perr := parser.ParseFile(filename, lx, sink, loader)
	if perr != nil {
		fmt.Fprintln(stderr, errors.Print(perr))
		lastExitCode = exitCompileFail
		return nil
	}

	if opts.stopAfter == "parse" {
		if opts.emit == "ast" {
			fmt.Fprintln(stdout, pretty.Sprint(crate))
		}
		return writeOutput(opts, input)
	}

	hirCrate, lerr := lower.Lower(crate, sink)
	if lerr != nil {
		fmt.Fprintln(stderr, errors.Print(lerr))
		lastExitCode = exitCompileFail
		return nil
	}

	resolver := resolve.New(hirCrate, sink)
	if verr := check.Validate(hirCrate, resolver, sink); verr != nil {
		fmt.Fprintln(stderr, errors.Print(verr))
		lastExitCode = exitCompileFail
		return nil
	}

	switch opts.emit {
	case "ast":
		fmt.Fprintln(stdout, pretty.Sprint(crate))
	case "c":
		// Code generation from a validated HIR.Crate is an external
		// collaborator (spec.md §1 Non-goals: "C code generation, MIR").
		// The front-end's contribution ends at a clean Validate; emit the
		// lowered crate so a downstream codegen stage has something to
		// consume without this driver guessing at a C ABI.
		fmt.Fprintln(stdout, pretty.Sprint(hirCrate))
	}
	return writeOutput(opts, input)
}

// writeOutput touches the -o target (or its computed default stem).
// The driver has already streamed --emit output to stdout above; -o
// only names where a real codegen stage would place its object file,
// which this front-end does not produce itself (spec.md §1 Non-goals:
// C code generation is out of scope).
func writeOutput(opts *options, input string) error {
	stem := opts.output
	if stem == "" {
		stem = outputStem(input)
	}
	return ioutil.WriteFile(stem, nil, 0o644)
}

// outputStem defaults -o to "<input>.o" per spec.md §6, stripping a
// leading "-" (stdin) to the literal name "-.o" rather than guessing a
// real filename out of thin air.
func outputStem(input string) string {
	if input == "-" {
		return "-.o"
	}
	if i := strings.LastIndexByte(input, '.'); i > 0 {
		return input[:i] + ".o"
	}
	return input + ".o"
}
