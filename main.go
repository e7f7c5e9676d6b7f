// Command svggen renders a scene description to SVG.
//
//	svggen [flags] <scene.json | scene.lisp | ->
//
// JSON input holds {"width", "height", "profile", "elements"}; anything
// else is evaluated as a scene script. "-" reads a script from stdin.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochoaughini/SVG-Generator-Modular/internal/config"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger/console"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/markup"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/preview"
)

func main() {
	config.LoadEnv()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without process globals; it returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("svggen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "", "SVG output path (default: stdout)")
	pngOut := fs.String("png", "", "also write a PNG preview to this path")
	scale := fs.Float64("scale", 1, "PNG scale factor")
	treeOut := fs.String("tree", "", "also write the fragment tree as JSON to this path")
	profile := fs.String("profile", "", "style profile, overriding the input")
	profileDir := fs.String("profiles", "", "directory of extra YAML profiles")
	check := fs.Bool("check", false, "report output constraint violations and fail on any")
	sanitize := fs.Bool("sanitize", false, "strip content outside the output constraints")
	debug := fs.Bool("debug", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: svggen [flags] <scene.json | scene.lisp | ->\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  *debug || cfg.Debug,
		Output: stderr,
	}))
	if *profileDir != "" {
		cfg.ProfileDir = *profileDir
	}

	app, err := NewApp(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	app.profile = *profile

	res, err := evaluateInput(app, fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			if e.Line > 0 {
				fmt.Fprintf(stderr, "line %d: %s\n", e.Line, e.Message)
			} else {
				fmt.Fprintln(stderr, e.Message)
			}
		}
		return 1
	}

	doc := res.Document
	constraints := markup.DefaultConstraints()
	if *sanitize {
		if doc.Root = markup.Sanitize(doc.Root, constraints); doc.Root == nil {
			fmt.Fprintln(stderr, "sanitize removed the root element")
			return 1
		}
	}
	svg, err := markup.Bytes(doc.Root)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if err := writeOutput(*out, stdout, svg); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *treeOut != "" {
		tree, err := json.MarshalIndent(doc.Root, "", "  ")
		if err == nil {
			err = os.WriteFile(*treeOut, tree, 0o644)
		}
		if err != nil {
			fmt.Fprintf(stderr, "write tree: %v\n", err)
			return 1
		}
	}
	if *pngOut != "" {
		if err := writePNG(*pngOut, res, *scale); err != nil {
			fmt.Fprintf(stderr, "write png: %v\n", err)
			return 1
		}
	}

	if *check {
		err := markup.Check(doc.Root, constraints)
		var ce *markup.CheckError
		if errors.As(err, &ce) {
			for _, v := range ce.Violations {
				fmt.Fprintln(stderr, v.String())
			}
			return 1
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	return 0
}

func evaluateInput(app *App, path string, stdin io.Reader) (EvalResult, error) {
	if path == "-" {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return EvalResult{}, err
		}
		return app.Evaluate(string(src)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return EvalResult{}, err
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return app.ComposeJSON(f), nil
	}
	src, err := io.ReadAll(f)
	if err != nil {
		return EvalResult{}, err
	}
	return app.Evaluate(string(src)), nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writePNG(path string, res EvalResult, scale float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return preview.WritePNG(f, res.Document, scale)
}
