package console

import "strings"

// Kind is the category of one line of operator input.
type Kind int

const (
	KindEmpty   Kind = iota // blank line: re-prompt
	KindControl             // help, show, exit/quit
	KindPreset              // !name
	KindRaw                 // anything else, treated as a hex frame
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindControl:
		return "control"
	case KindPreset:
		return "preset"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Control identifies a console command word.
type Control int

const (
	ControlNone Control = iota
	ControlExit
	ControlHelp
	ControlShowPresets
)

// Command is a classified input line.
type Command struct {
	Kind    Kind
	Control Control // set for KindControl
	Name    string  // preset name for KindPreset
	Text    string  // trimmed input for KindRaw
}

// presetPrefix introduces a preset reference.
const presetPrefix = "!"

// Classify sorts a line into a Command.  Command words match
// case-insensitively; preset names are passed through verbatim.
func Classify(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: KindEmpty}
	}

	switch strings.ToLower(line) {
	case "exit", "quit":
		return Command{Kind: KindControl, Control: ControlExit}
	case "help":
		return Command{Kind: KindControl, Control: ControlHelp}
	case "show":
		return Command{Kind: KindControl, Control: ControlShowPresets}
	}

	if name, ok := strings.CutPrefix(line, presetPrefix); ok {
		return Command{Kind: KindPreset, Name: name}
	}
	return Command{Kind: KindRaw, Text: line}
}
