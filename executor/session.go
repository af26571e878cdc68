// Package executor runs template code at build time in an isolated
// JavaScript runtime, resolving imports against the build's module graph.
package executor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dop251/goja"
	"github.com/viant/entrysplit/ctxlog"
	"github.com/viant/entrysplit/inspector/graph"
)

// cached holds the exports of a module run, valid while its source keeps
// the same fingerprint.
type cached struct {
	exports     goja.Value
	fingerprint uint64
}

const (
	wrapperHead = "(function (exports, require, module, __filename, __dirname) {\n"
	wrapperTail = "\n})"
)

// Session executes modules for one build. Every module runs at most once per
// session and source version; its exports are memoized by resolved location. A Session owns a
// single runtime and is not safe for concurrent use.
type Session struct {
	graph   *graph.Graph
	options *Options
	vm      *goja.Runtime
	cache   map[string]*cached
	loading []string
	maps    map[string][]byte
	ctx     context.Context
}

// NewSession creates a session resolving against g.
func NewSession(g *graph.Graph, opts ...Option) *Session {
	if g == nil {
		g = graph.New()
	}
	ret := &Session{
		graph:   g,
		options: NewOptions(opts...),
		vm:      goja.New(),
		cache:   map[string]*cached{},
		maps:    map[string][]byte{},
		ctx:     context.Background(),
	}
	ret.initGlobals()
	return ret
}

// Runtime returns the session's runtime.
func (s *Session) Runtime() *goja.Runtime {
	return s.vm
}

func (s *Session) initGlobals() {
	env := s.vm.NewObject()
	_ = env.Set("NODE_ENV", s.options.NodeEnv)
	process := s.vm.NewObject()
	_ = process.Set("env", env)
	_ = s.vm.Set("process", process)

	console := s.vm.NewObject()
	for _, level := range []string{"log", "info", "debug", "warn", "error"} {
		level := level
		_ = console.Set(level, func(call goja.FunctionCall) goja.Value {
			args := make([]interface{}, 0, 2*len(call.Arguments))
			for i, arg := range call.Arguments {
				args = append(args, fmt.Sprintf("arg%d", i), arg.String())
			}
			logger := ctxlog.FromContext(s.ctx)
			switch level {
			case "warn":
				logger.Warn("template console", args...)
			case "error":
				logger.Error("template console", args...)
			default:
				logger.Debug("template console", args...)
			}
			return goja.Undefined()
		})
	}
	_ = s.vm.Set("console", console)
}

// Exec runs source as the module at filename and returns its exports. The
// source itself is not memoized; the modules it imports are.
func (s *Session) Exec(ctx context.Context, filename string, source []byte, sourceMap []byte) (*goja.Object, error) {
	s.ctx = ctx
	stop := context.AfterFunc(ctx, func() {
		s.vm.Interrupt(ctx.Err())
	})
	defer func() {
		stop()
		s.vm.ClearInterrupt()
	}()
	location := graph.Key(filename)
	m := &module{key: location, filename: location, source: source, sourceMap: sourceMap}
	s.loading = append(s.loading, m.key)
	defer s.pop()
	exports, err := s.run(ctx, m)
	if err != nil {
		return nil, err
	}
	if ret, ok := exports.(*goja.Object); ok {
		return ret, nil
	}
	return nil, fmt.Errorf("%s: module exports is not an object", filename)
}

// Require resolves request from dir and returns the module exports.
func (s *Session) Require(ctx context.Context, request string, dir string) (goja.Value, error) {
	s.ctx = ctx
	m, err := s.resolve(ctx, request, dir)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, m)
}

func (s *Session) load(ctx context.Context, m *module) (goja.Value, error) {
	if entry, ok := s.cache[m.key]; ok && entry.fingerprint == m.fingerprint {
		return entry.exports, nil
	}
	if index := slices.Index(s.loading, m.key); index != -1 {
		chain := append(slices.Clone(s.loading[index:]), m.key)
		return nil, &CyclicImportError{Chain: chain}
	}
	s.loading = append(s.loading, m.key)
	defer s.pop()
	exports, err := s.run(ctx, m)
	if err != nil {
		return nil, err
	}
	s.cache[m.key] = &cached{exports: exports, fingerprint: m.fingerprint}
	return exports, nil
}

func (s *Session) pop() {
	s.loading = s.loading[:len(s.loading)-1]
}

func (s *Session) run(ctx context.Context, m *module) (goja.Value, error) {
	if m.empty {
		return s.vm.NewObject(), nil
	}
	started := time.Now()
	code, codeMap, err := s.transform(m)
	if err != nil {
		return nil, err
	}
	s.maps[m.filename] = codeMap
	program, err := goja.Compile(m.filename, wrapperHead+string(code)+wrapperTail, false)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", m.filename, err)
	}
	wrapper, err := s.vm.RunProgram(program)
	if err != nil {
		return nil, s.failure(err)
	}
	call, ok := goja.AssertFunction(wrapper)
	if !ok {
		return nil, fmt.Errorf("failed to wrap %s", m.filename)
	}
	dir := graph.Dir(m.filename)
	exports := s.vm.NewObject()
	object := s.vm.NewObject()
	_ = object.Set("exports", exports)
	_, err = call(exports, exports, s.vm.ToValue(s.requireFunc(ctx, dir)), object, s.vm.ToValue(m.filename), s.vm.ToValue(dir))
	if err != nil {
		return nil, s.failure(err)
	}
	ctxlog.FromContext(ctx).Debug("executed module", "module", m.filename, "elapsed", time.Since(started))
	return object.Get("exports"), nil
}

// requireFunc is the require handed to a module in dir. Resolution and
// execution failures are thrown as Go errors so that the structured error,
// not its JavaScript rendition, reaches the caller when nothing catches it.
func (s *Session) requireFunc(ctx context.Context, dir string) func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		request := call.Argument(0).String()
		exports, err := s.Require(ctx, request, dir)
		if err != nil {
			panic(s.vm.NewGoError(err))
		}
		return exports
	}
}

func (s *Session) failure(err error) error {
	var exception *goja.Exception
	if errors.As(err, &exception) {
		if cause := exception.Unwrap(); cause != nil {
			return cause
		}
	}
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return fmt.Errorf("template execution interrupted: %w", err)
	}
	return s.ExecutionError(err)
}
