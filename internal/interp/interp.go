// Package interp wires the kernel's stages end to end — lexer, structural
// normalizer, Pratt parser, and evaluator — behind a single entry point a
// host program drives (spec §6's host-collaborator boundary). It also
// owns prelude loading for languages that declare one (Lumen, per
// SPEC_FULL §0).
//
// Construction follows db47h-ngaro/vm.Option's functional-options idiom
// (`func(*Instance) error` applied in New's loop), here applied to an
// Interpreter instead of a VM instance.
package interp

import (
	"io"
	"os"
	"path/filepath"

	"lumen/internal/config"
	"lumen/internal/env"
	"lumen/internal/errors"
	"lumen/internal/eval"
	"lumen/internal/instr"
	"lumen/internal/lexer"
	"lumen/internal/normalizer"
	"lumen/internal/parser"
	"lumen/internal/registry"
	"lumen/internal/schema"
	"lumen/internal/value"
)

// Option configures an Interpreter at construction time.
type Option func(*Interpreter) error

// WithStdout sets the sink `emit` writes to. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) error { i.stdout = w; return nil }
}

// WithExternDispatch installs the host's capability shim table (spec
// §4.8).
func WithExternDispatch(externs map[string]eval.ExternFunc) Option {
	return func(i *Interpreter) error { i.externs = externs; return nil }
}

// WithConfig overrides the host configuration (max call depth, prelude
// files and search roots). The config's RealPrecision and Language are
// not read by the Interpreter.
func WithConfig(cfg *config.Config) Option {
	return func(i *Interpreter) error { i.cfg = cfg; return nil }
}

// WithArgs populates the reserved ARGS identifier (spec §6, SPEC_FULL
// §3) with the given program arguments.
func WithArgs(args []string) Option {
	return func(i *Interpreter) error { i.args = args; return nil }
}

// Interpreter bundles one language's schema and handler registry with the
// host-owned side channels (stdout, externs, config) that every run needs.
type Interpreter struct {
	schema *schema.Schema
	reg    *registry.Registry

	stdout  io.Writer
	externs map[string]eval.ExternFunc
	cfg     *config.Config
	args    []string
}

// New builds an Interpreter for one language schema and registry.
func New(s *schema.Schema, r *registry.Registry, opts ...Option) (*Interpreter, error) {
	i := &Interpreter{
		schema:  s,
		reg:     r,
		stdout:  os.Stdout,
		externs: map[string]eval.ExternFunc{},
		cfg:     config.Default(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	return i, nil
}

// compile runs a source string through lex -> normalize -> parse,
// returning the program's top-level Instruction.
func (i *Interpreter) compile(source string) (instr.Instruction, error) {
	lexemes := i.reg.Lexemes(i.schema)
	toks, err := lexer.Lex(source, i.schema, lexemes)
	if err != nil {
		return instr.Instruction{}, err
	}
	toks, err = normalizer.Normalize(toks, i.schema)
	if err != nil {
		return instr.Instruction{}, err
	}
	p := parser.New(toks, i.schema, i.reg)
	return p.ParseProgram()
}

// Run compiles and executes source in a fresh Environment, loading the
// configured prelude first (if any), and binding ARGS (spec §6).
func (i *Interpreter) Run(source string) (value.Value, error) {
	e := env.New()
	if err := i.loadPrelude(e); err != nil {
		return value.Value{}, err
	}
	argItems := make([]value.Value, len(i.args))
	for idx, a := range i.args {
		argItems[idx] = value.Str(a)
	}
	e.Define("ARGS", value.Array(argItems))

	prog, err := i.compile(source)
	if err != nil {
		return value.Value{}, err
	}
	ev := eval.New(i.stdout, i.externs, i.cfg.MaxCallDepth)
	v, _, err := ev.Execute(prog, e)
	return v, err
}

// loadPrelude parses and executes each configured prelude file, in
// order, against e, so later files and the main program see earlier
// files' function definitions (spec §6, SPEC_FULL §0's "stdlib/").
func (i *Interpreter) loadPrelude(e *env.Environment) error {
	if len(i.cfg.PreludeFiles) == 0 {
		return nil
	}
	ev := eval.New(i.stdout, i.externs, i.cfg.MaxCallDepth)
	for _, name := range i.cfg.PreludeFiles {
		path, ok := i.findPreludeFile(name)
		if !ok {
			continue
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return errors.New(errors.CapabilityError, "failed to read prelude file %s: %s", path, err)
		}
		prog, err := i.compile(string(src))
		if err != nil {
			return err
		}
		if _, _, err := ev.Execute(prog, e); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) findPreludeFile(name string) (string, bool) {
	for _, root := range i.cfg.PreludeRoots {
		candidate := filepath.Join(root, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
