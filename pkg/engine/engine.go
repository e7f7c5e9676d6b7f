// Package engine evaluates scene scripts: a small Lisp dialect, run in a
// sandboxed zygomys interpreter, that declares a canvas, a style profile
// and the elements of a scene.
//
//	(canvas 400 300)
//	(profile :pastel)
//	(element "sun" :shape :sun :size :small)
//	(element "hill" :shape :triangle :color "green")
//	(relate "sun" :above "hill")
//	(chords "net" (link "a" "b" 3) (link "b" "c"))
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
)

// EvalError is a non-fatal error in user code, such as a parse error or a
// bad builtin argument.
type EvalError struct {
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"col,omitempty"`
	Message string `json:"message"`
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Script is what a scene script declares.
type Script struct {
	Canvas geom.Size
	// Profile is empty unless the script selected one.
	Profile  string
	Elements []scene.ParsedElement
}

// Engine evaluates scene scripts. Each Evaluate call runs in a fresh
// sandbox; a call started while another is in flight supersedes it.
type Engine struct {
	// Timeout bounds one evaluation; zero means EvalTimeout.
	Timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewEngine creates an Engine with the default timeout.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs source and returns the declared scene.
//
//   - On success: script + nil errors + nil error
//   - On parse/eval failure: nil script + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): nil + nil + error
func (e *Engine) Evaluate(source string) (*Script, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	timeout := e.Timeout
	e.mu.Unlock()
	if timeout <= 0 {
		timeout = EvalTimeout
	}

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		s, evalErrs, err := evaluate(source)
		ch <- evalResult{script: s, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, timeout, gen, &e.mu, &e.generation)
}

func evaluate(source string) (*Script, []EvalError, error) {
	st := newScriptState()
	if strings.TrimSpace(source) == "" {
		return st.script(), nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, st)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return st.script(), nil, nil
}

// zygomys reports "Error on line N: ..." for parse errors.
var linePattern = regexp.MustCompile(`(?is)(?:error )?on line (\d+):\s*(.*)`)

var linePatternShort = regexp.MustCompile(`(?is)^line (\d+):\s*(.*)`)

func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
