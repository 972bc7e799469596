package console

import (
	"fmt"
	"io"
	"sort"

	"ptzcon/internal/preset"
)

const usageText = `
Camera Control Interactive Console
----------------------------------
Commands:
  help - Show this help message
  exit/quit - Exit the program
  show - Show available preset commands
  <hex_command> - Send a hex command to the camera
  !<preset_name> - Execute a preset command

Examples:
  8101044700000000FF  - Set zoom level to 0
  !zoom0             - Same as above using preset
  !icr_on            - Turn on ICR mode

`

func printHelp(w io.Writer) {
	fmt.Fprint(w, usageText)
}

func printPresets(w io.Writer, t *preset.Table) {
	fmt.Fprintln(w, "\nAvailable preset commands:")
	for _, p := range t.List() {
		fmt.Fprintf(w, "  !%-10s - %s\n", p.Name, p.Frame)
	}
	fmt.Fprintln(w)
}

// Completions returns the words offered for tab completion: the command
// words and every preset reference.
func Completions(t *preset.Table) []string {
	words := []string{"exit", "help", "quit", "show"}
	for _, name := range t.Names() {
		words = append(words, presetPrefix+name)
	}
	sort.Strings(words)
	return words
}
