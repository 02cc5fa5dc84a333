// Command lumen is the reference host for the kernel (spec §6): it
// reads a source file, picks a language schema by file extension (or an
// explicit --lang flag), wires the optional host config and extern
// capability table, and runs the program.
//
// Grounded on the teacher's cmd/kanso-cli/main.go: a single-file CLI
// driven by color.Green/color.Red banners, generalized here from one
// fixed grammar to spec §6's language-selectable host.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"lumen/internal/config"
	"lumen/internal/errors"
	"lumen/internal/eval"
	"lumen/internal/interp"
	"lumen/internal/langs/lumen"
	"lumen/internal/langs/pythoncore"
	"lumen/internal/langs/rustcore"
	"lumen/internal/numeric"
	"lumen/internal/registry"
	"lumen/internal/schema"
	"lumen/internal/value"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: lumen <file> [--lang lumen|python-core|rust-core] [--config path] [program args...]")
		return 1
	}

	path := args[0]
	rest := args[1:]

	langFlag := ""
	configPath := ""
	var progArgs []string
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--lang":
			i++
			if i < len(rest) {
				langFlag = rest[i]
			}
		case "--config":
			i++
			if i < len(rest) {
				configPath = rest[i]
			}
		default:
			progArgs = append(progArgs, rest[i])
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		return 1
	}

	lang := langFlag
	if lang == "" {
		lang = detectLanguage(path)
	}

	s, r, err := schemaFor(lang)
	if err != nil {
		color.Red("%s", err)
		return 1
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		color.Red("%s", err)
		return 1
	}
	cfg.Language = lang
	if lang != "lumen" {
		cfg.PreludeFiles = nil
	}

	opts := []interp.Option{
		interp.WithStdout(os.Stdout),
		interp.WithConfig(cfg),
		interp.WithArgs(progArgs),
		interp.WithExternDispatch(defaultExterns()),
	}
	in, err := interp.New(s, r, opts...)
	if err != nil {
		color.Red("%s", err)
		return 1
	}

	if _, err := in.Run(string(source)); err != nil {
		reportRunError(err, cfg.ColoredOutput)
		return 1
	}

	errors.Success(os.Stdout, cfg.ColoredOutput, fmt.Sprintf("✓ %s finished", filepath.Base(path)))
	return 0
}

// detectLanguage maps a file extension to a schema name (spec §6).
func detectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return "python-core"
	case ".rs":
		return "rust-core"
	default:
		return "lumen"
	}
}

func schemaFor(lang string) (*schema.Schema, *registry.Registry, error) {
	r := registry.New()
	switch lang {
	case "lumen":
		s := lumen.Schema()
		lumen.Register(r, s)
		return s, r, nil
	case "python-core":
		s := pythoncore.Schema()
		pythoncore.Register(r, s)
		return s, r, nil
	case "rust-core":
		s := rustcore.Schema()
		rustcore.Register(r, s)
		return s, r, nil
	default:
		return nil, nil, fmt.Errorf("unknown language %q", lang)
	}
}

// reportRunError prints one diagnostic line, unwrapping a KernelError
// when present so position information survives.
func reportRunError(err error, colored bool) {
	rep := errors.NewReporter(os.Stderr, colored)
	if ke, ok := err.(*errors.KernelError); ok {
		rep.Report(ke)
		return
	}
	rep.Report(errors.New(errors.CapabilityError, "%s", err))
}

// defaultExterns is the CLI host's built-in capability table (spec
// §4.8): an environment-variable reader and a process-args count, with
// no file, network, or other host-specific I/O wired in.
func defaultExterns() map[string]eval.ExternFunc {
	return map[string]eval.ExternFunc{
		"env:get": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 || args[0].Tag != value.KindString {
				return value.Value{}, fmt.Errorf("env:get expects one string argument")
			}
			return value.Str(os.Getenv(args[0].Str)), nil
		},
		"cli:argc": func(args []value.Value) (value.Value, error) {
			return value.Int(numeric.FromInt64(int64(len(os.Args) - 1))), nil
		},
	}
}
