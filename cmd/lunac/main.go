// lunac - source-to-source compiler driver
//
// Reads a directory of `*.srcjson` fixture files (the stand-in semantic
// tree format internal/fixture decodes), lowers each one through
// internal/transform, and writes a mirrored `*.lua` tree. It does no
// name resolution or type checking of its own; those are front-end
// concerns this repository only defines the contract for.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/kolkov/lunac"
	"github.com/kolkov/lunac/internal/fixture"
	"github.com/kolkov/lunac/internal/metadata"
	"github.com/kolkov/lunac/internal/render"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: lunac -s srcdir -d destdir [options]"
	longUsage  = `Required arguments:
  -s srcdir          directory of *.srcjson fixture files to compile
  -d destdir          directory to write the mirrored *.lua tree into

Optional arguments:
  -l libfile          file listing referenced library names, one per line
  -m metafile          XML file of per-method code-template overrides
  -csc args           extra compiler-style arguments (stored, not interpreted)
  -c                  target the classic dialect (no native // or bitwise ops)
  -i width            indent width in spaces (default 2)
  -sem                terminate simple statements with ';'
  -a n                compile up to n units concurrently (default 1)

Other:
  -h, --help          show this help message
  -version            show lunac version and exit
`
)

//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func main() {
	// Parse command line arguments manually rather than using the
	// "flag" package, so we can support flags with no space between
	// flag and argument, like '-ddest' (allowed by POSIX).
	var srcDir, destDir, libFile, metaFile, cscArgs string
	classic := false
	semicolons := false
	indentWidth := 0
	workers := 1

	var i int
	for i = 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-s":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -s")
			}
			i++
			srcDir = os.Args[i]
		case "-d":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -d")
			}
			i++
			destDir = os.Args[i]
		case "-l":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -l")
			}
			i++
			libFile = os.Args[i]
		case "-m":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -m")
			}
			i++
			metaFile = os.Args[i]
		case "-csc":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -csc")
			}
			i++
			cscArgs = os.Args[i]
		case "-i":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -i")
			}
			i++
			n, err := strconv.Atoi(os.Args[i])
			if err != nil || n < 1 {
				errorExitf("invalid indent width: %s", os.Args[i])
			}
			indentWidth = n
		case "-a":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -a")
			}
			i++
			n, err := strconv.Atoi(os.Args[i])
			if err != nil || n < 1 {
				errorExitf("invalid worker count: %s", os.Args[i])
			}
			workers = n
		case "-c":
			classic = true
		case "-sem":
			semicolons = true
		case "-h", "--help":
			fmt.Printf("lunac %s\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("lunac version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			os.Exit(0)
		default:
			// Handle flags with no space: -ssrc, -ddest, -i2, etc.
			switch {
			case strings.HasPrefix(arg, "-s"):
				srcDir = arg[2:]
			case strings.HasPrefix(arg, "-d"):
				destDir = arg[2:]
			case strings.HasPrefix(arg, "-l"):
				libFile = arg[2:]
			case strings.HasPrefix(arg, "-m"):
				metaFile = arg[2:]
			case strings.HasPrefix(arg, "-i"):
				n, err := strconv.Atoi(arg[2:])
				if err != nil || n < 1 {
					errorExitf("invalid indent width: %s", arg[2:])
				}
				indentWidth = n
			case strings.HasPrefix(arg, "-a"):
				n, err := strconv.Atoi(arg[2:])
				if err != nil || n < 1 {
					errorExitf("invalid worker count: %s", arg[2:])
				}
				workers = n
			default:
				errorExitf("flag provided but not defined: %s", arg)
			}
		}
	}

	if srcDir == "" || destDir == "" {
		errorExitf("both -s and -d are required\n%s", shortUsage)
	}

	config := &lunac.Config{
		Render: render.Config{
			IndentWidth: indentWidth,
			Semicolons:  semicolons,
		},
		Workers: workers,
	}
	if classic {
		config.Render.Dialect = render.DialectClassic
	}

	if libFile != "" {
		names, err := readLines(libFile)
		if err != nil {
			errorExitf("cannot read library list %s: %v", libFile, err)
		}
		config.LibraryNames = names
	}

	if metaFile != "" {
		templates, err := metadata.LoadFile(metaFile)
		if err != nil {
			errorExitf("cannot read metadata file %s: %v", metaFile, err)
		}
		config.Templates = templates
	}

	// cscArgs is accepted for compatibility with tooling that always
	// passes it; this repository does no type checking, so there is
	// nothing to forward it to.
	_ = cscArgs

	if err := compileDir(srcDir, destDir, config); err != nil {
		errorExit(err)
	}
}

// compileDir walks srcDir for every *.srcjson fixture, compiles and
// renders each one through a bounded pool of config.Workers goroutines,
// and writes the result to destDir under the same relative path with a
// ".lua" extension. Units are independent of each other, so the pool
// needs nothing beyond a semaphore and a WaitGroup to stay correct.
func compileDir(srcDir, destDir string, config *lunac.Config) error {
	var paths []string
	err := filepath.WalkDir(srcDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && filepath.Ext(path) == ".srcjson" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return &lunac.CLIError{Message: err.Error()}
	}

	sem := make(chan struct{}, config.Workers)
	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = compileOne(path, srcDir, destDir, config)
		}(i, path)
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func compileOne(path, srcDir, destDir string, config *lunac.Config) error {
	cu, oracle, err := fixture.Load(path)
	if err != nil {
		return &lunac.CLIError{Message: err.Error()}
	}

	unit, err := lunac.Compile(cu, oracle, config)
	if err != nil {
		return err
	}

	text, err := unit.Render(config.Render)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(srcDir, path)
	if err != nil {
		return &lunac.CLIError{Message: err.Error()}
	}
	outPath := filepath.Join(destDir, strings.TrimSuffix(rel, ".srcjson")+".lua")

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return &lunac.CLIError{Message: err.Error()}
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return &lunac.CLIError{Message: err.Error()}
	}
	return nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// errorExitf prints a formatted error message and exits with code -1,
// matching "exit 0 on success, -1 on any failure".
func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "lunac: "+format+"\n", args...)
	os.Exit(-1)
}

// errorExit prints err and exits with code -1.
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "lunac: %v\n", err)
	os.Exit(-1)
}
