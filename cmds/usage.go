package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	writeUsage(w, p.commands, 1)
}

func writeUsage(w io.Writer, commands map[string]*Command, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		command := commands[name]
		if command == nil {
			continue
		}
		if slices.Contains(command.Aliases, name) {
			// printed with its primary name
			continue
		}
		line := indent + name
		if len(command.Aliases) > 0 {
			line += " (" + strings.Join(command.Aliases, ", ") + ")"
		}
		if command.Func.IsValid() {
			for i := range command.Func.Type().NumIn() {
				line += " <" + command.Func.Type().In(i).String() + ">"
			}
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
		if len(command.Subs) > 0 {
			writeUsage(w, command.Subs, depth+1)
		}
	}
}
