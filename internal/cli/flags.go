package cli

import (
	"fmt"
	"strings"
)

// Flags holds parsed global flags.
type Flags struct {
	Verbose  int
	Version  bool
	Help     bool
	NoNotify bool
	URL      string
	// Inputs holds filter inputs given on the command line, keyed by input
	// name. Only flags that were present are set.
	Inputs map[string]string
}

// valueFlags maps a flag taking a value to the filter input it sets. An empty
// input name marks a flag stored on Flags directly.
var valueFlags = map[string]string{
	"--url":     "",
	"--search":  "search",
	"--replace": "replace",
	"--width":   "width",
}

// ParseFlags extracts global flags from args and returns remaining args.
// Value flags accept both "--flag value" and "--flag=value". Everything after
// "--" is passed through untouched.
func ParseFlags(args []string) (Flags, []string, error) {
	var flags Flags
	var remaining []string

	setInput := func(name, value string) {
		if flags.Inputs == nil {
			flags.Inputs = make(map[string]string)
		}
		flags.Inputs[name] = value
	}
	setValue := func(flag, value string) {
		if input := valueFlags[flag]; input != "" {
			setInput(input, value)
			return
		}
		flags.URL = value
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			remaining = append(remaining, args[i+1:]...)
			return flags, remaining, nil
		case arg == "-vv":
			flags.Verbose = 2
		case arg == "-v":
			if flags.Verbose < 1 {
				flags.Verbose = 1
			}
		case arg == "--version":
			flags.Version = true
		case arg == "--help" || arg == "-h":
			flags.Help = true
		case arg == "--no-notify":
			flags.NoNotify = true
		case arg == "--cut":
			setInput("cut", "true")
		case isValueFlag(arg):
			if i+1 >= len(args) {
				return flags, remaining, fmt.Errorf("flag %s requires a value", arg)
			}
			setValue(arg, args[i+1])
			i++
		case strings.HasPrefix(arg, "--") && strings.Contains(arg, "=") && isValueFlag(arg[:strings.Index(arg, "=")]):
			eq := strings.Index(arg, "=")
			setValue(arg[:eq], arg[eq+1:])
		case isStackedVerboseFlag(arg):
			flags.Verbose = strings.Count(arg, "v")
		default:
			remaining = append(remaining, arg)
		}
	}

	return flags, remaining, nil
}

func isValueFlag(arg string) bool {
	_, ok := valueFlags[arg]
	return ok
}

// isStackedVerboseFlag detects flags like -vvv, -vvvv (only 'v' chars after dash).
func isStackedVerboseFlag(arg string) bool {
	if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
		return false
	}
	trimmed := strings.TrimLeft(arg, "-")
	return len(trimmed) > 0 && strings.Trim(trimmed, "v") == ""
}
