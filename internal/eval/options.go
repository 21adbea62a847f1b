package eval

import (
	"io"

	"github.com/jcorbin/vyne/internal/vmod"
)

// Option configures an Evaluator under construction.
type Option interface{ apply(ev *Evaluator) }

// WithInput sets the reader native input (vcore.input) consumes.
func WithInput(r io.Reader) Option { return inputOption{r} }

// WithOutput sets the writer program output (log, vglib frames) goes to.
func WithOutput(w io.Writer) Option { return outputOption{w} }

// WithLogf enables trace logging through the given printf-style
// function.
func WithLogf(logfn func(mess string, args ...interface{})) Option {
	return logfnOption(logfn)
}

// WithModules replaces the native module registry; a WithHost applied
// after it resets the registry to that host's own.
func WithModules(registry map[string]vmod.Setup) Option {
	return registryOption(registry)
}

// WithHost replaces the whole native host.
func WithHost(host *vmod.Host) Option { return hostOption{host} }

type inputOption struct{ io.Reader }

func (o inputOption) apply(ev *Evaluator) { ev.host.SetInput(o.Reader) }

type outputOption struct{ io.Writer }

func (o outputOption) apply(ev *Evaluator) { ev.host.SetOutput(o.Writer) }

type logfnOption func(mess string, args ...interface{})

func (o logfnOption) apply(ev *Evaluator) { ev.logfn = o }

type registryOption map[string]vmod.Setup

func (o registryOption) apply(ev *Evaluator) { ev.registry = o }

type hostOption struct{ host *vmod.Host }

func (o hostOption) apply(ev *Evaluator) {
	ev.host = o.host
	ev.registry = nil
}
