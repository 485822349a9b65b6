// Package dispatch maps typed command lines to the built-in operations and
// runs them against a session.
package dispatch

import (
	"sort"
	"strings"

	"f3os/internal/config"
	"f3os/internal/errors"
	"f3os/internal/log"
	"f3os/internal/navigator"
)

// Config is the part of the config store the dispatcher reads
type Config interface {
	Commands() map[string]string
	GetText(key string, def []string) []string
	Lines(key string) ([]string, bool)
}

// Result is the outcome of one dispatch. When Render is set the display
// buffer is replaced by Lines; it is never appended to.
type Result struct {
	Lines  []string
	Render bool
	Quit   bool
}

// Session is the state carried between dispatches
type Session struct {
	Nav *navigator.Navigator
	// OpenFile is the document last shown by read_file or hack_file
	OpenFile string
	LastLine string
	Quit     bool
}

type handlerFunc func(d *Dispatcher, args []string) Result

type handler struct {
	run handlerFunc
	// arity is the number of positional arguments passed to run
	arity int
}

var handlers = map[Operation]handler{
	ChangeDirectory: {run: (*Dispatcher).changeDirectory, arity: 1},
	ShowDirectory:   {run: (*Dispatcher).showDirectory},
	ReadFile:        {run: (*Dispatcher).readFile, arity: 1},
	HackFile:        {run: (*Dispatcher).hackFile, arity: 1},
	ExitFile:        {run: (*Dispatcher).exitFile},
	ExitApp:         {run: (*Dispatcher).exitApp},
	ShowHelp:        {run: (*Dispatcher).showHelp},
	UnknownCommand:  {run: (*Dispatcher).unknownCommand},
}

// Dispatcher owns the alias table and the session. It is driven from a
// single goroutine.
type Dispatcher struct {
	cfg     Config
	aliases map[string]Operation
	session *Session
}

// New builds the alias table from cfg and starts a session on nav
func New(cfg Config, nav *navigator.Navigator) *Dispatcher {
	d := &Dispatcher{
		cfg:     cfg,
		aliases: BuildAliases(cfg.Commands()),
		session: &Session{Nav: nav},
	}
	log.LogWithFields(log.F("verbs", len(d.aliases))).Debug("alias table built")
	return d
}

// Session exposes the session state
func (d *Dispatcher) Session() *Session {
	return d.session
}

// Aliases returns a copy of the verb table
func (d *Dispatcher) Aliases() map[string]Operation {
	out := make(map[string]Operation, len(d.aliases))
	for k, v := range d.aliases {
		out[k] = v
	}
	return out
}

// Verbs returns the sorted verbs that resolve to a built-in
func (d *Dispatcher) Verbs() []string {
	var out []string
	for verb, op := range d.aliases {
		if op != UnknownCommand {
			out = append(out, verb)
		}
	}
	sort.Strings(out)
	return out
}

// Resolve looks a verb up in the alias table
func (d *Dispatcher) Resolve(verb string) (Operation, error) {
	if op, ok := d.aliases[verb]; ok && op != UnknownCommand {
		return op, nil
	}
	return UnknownCommand, errors.NewCommandError("unknown command", verb, errors.UnknownCommand)
}

// Start renders the initial screen: the listing of the root directory
func (d *Dispatcher) Start() Result {
	return d.showDirectory(nil)
}

// Dispatch runs one command line. An empty line is a no-op.
func (d *Dispatcher) Dispatch(line string) Result {
	verb, _ := Tokenize(line, 0)
	if verb == "" {
		return Result{}
	}
	d.session.LastLine = line

	op, err := d.Resolve(verb)
	if err != nil {
		log.LogWithError(err).Debug("unresolved verb")
	}
	h := handlers[op]
	_, args := Tokenize(line, h.arity)

	log.LogWithFields(log.F("verb", verb), log.F("op", string(op)), log.F("args", len(args))).Debug("dispatch")
	res := h.run(d, args)
	if res.Quit {
		d.session.Quit = true
	}
	return res
}

// Tokenize splits a line on whitespace into the verb and at most arity
// arguments. Missing arguments are simply absent.
func Tokenize(line string, arity int) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	rest := fields[1:]
	if len(rest) > arity {
		rest = rest[:arity]
	}
	return fields[0], rest
}

func (d *Dispatcher) text(key string) Result {
	return Result{Lines: d.cfg.GetText(key, nil), Render: true}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

var _ Config = (*config.Store)(nil)
