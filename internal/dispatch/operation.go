package dispatch

// Operation names one of the built-in behaviors a verb can be bound to
type Operation string

const (
	ChangeDirectory Operation = "change_directory"
	ShowDirectory   Operation = "show_directory"
	ReadFile        Operation = "read_file"
	HackFile        Operation = "hack_file"
	ExitFile        Operation = "exit_file"
	ExitApp         Operation = "exit_app"
	ShowHelp        Operation = "show_help"

	// UnknownCommand answers verbs bound to a name that is not built in
	UnknownCommand Operation = "unknown_command"
)

var builtins = []Operation{
	ChangeDirectory,
	ShowDirectory,
	ReadFile,
	HackFile,
	ExitFile,
	ExitApp,
	ShowHelp,
}

// Builtins returns the operations a config may bind verbs to
func Builtins() []Operation {
	return append([]Operation(nil), builtins...)
}

// IsBuiltin reports whether o is one of Builtins
func (o Operation) IsBuiltin() bool {
	for _, b := range builtins {
		if b == o {
			return true
		}
	}
	return false
}

// BuildAliases turns the configured verb mapping into the runtime alias table.
//
// Configured verbs are installed first; a target that is not built in binds
// its verb to UnknownCommand. Every name in the symmetric difference between
// the built-in names and the configured targets is then installed under its
// own name, so a built-in that no verb points at stays reachable by name.
// The gap fill never replaces a configured verb.
func BuildAliases(commands map[string]string) map[string]Operation {
	out := make(map[string]Operation, len(commands)+len(builtins))
	targets := make(map[string]bool, len(commands))

	for verb, target := range commands {
		targets[target] = true
		out[verb] = resolve(target)
	}

	var gap []string
	for _, b := range builtins {
		if !targets[string(b)] {
			gap = append(gap, string(b))
		}
	}
	for target := range targets {
		if !Operation(target).IsBuiltin() {
			gap = append(gap, target)
		}
	}

	for _, name := range gap {
		if name == "" {
			continue
		}
		if _, ok := out[name]; ok {
			continue
		}
		out[name] = resolve(name)
	}
	return out
}

func resolve(name string) Operation {
	if op := Operation(name); op.IsBuiltin() {
		return op
	}
	return UnknownCommand
}
