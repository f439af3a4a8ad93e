package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
)

// Exit code for a failed write which didn't come with an OS error (short write)
const ExitIOError = int(syscall.EIO)

// Most output is a summary, so... yeah
func PrintJson(w io.Writer, obj interface{}) error {
	rawjson, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(rawjson))
	return err
}

// Pull the OS error number out of err for use as the exit status, or
// fallback when there isn't one
func ExitCode(err error, fallback int) int {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}
	return fallback
}

// Flags the generator knows, and whether each takes the next token as its value
var knownFlags = map[string]bool{
	"-o":               true,
	"--output":         true,
	"-c":               true,
	"--config":         true,
	"--part-size":      true,
	"--strict":         false,
	"--no-strict":      false,
	"--preallocate":    false,
	"--no-preallocate": false,
	"--verify":         false,
	"--json":           false,
	"-v":               false,
	"--verbose":        false,
	"--version":        false,
	"-h":               false,
	"--help":           false,
}

func isFlag(arg string) (known bool, takesValue bool) {
	if takesValue, ok := knownFlags[arg]; ok {
		return true, takesValue
	}
	// --output=x style carries its own value
	if name, _, found := strings.Cut(arg, "="); found {
		if takesValue, ok := knownFlags[name]; ok && takesValue && strings.HasPrefix(name, "--") {
			return true, false
		}
	}
	return false, false
}

// The size is the first token which isn't one of our flags, whatever it looks
// like ("", "-3" and "-abc" included), and any tokens after it are ignored.
// Kong would read dash tokens as flags and reject extras, so every non-flag
// token moves behind "--" at the end. Also reports whether there was a size
// token at all.
func positionalSize(args []string) ([]string, bool) {
	flags := make([]string, 0, len(args)+1)
	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		known, takesValue := isFlag(arg)
		if !known {
			positional = append(positional, arg)
			continue
		}
		flags = append(flags, arg)
		if takesValue && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	if len(positional) == 0 {
		return flags, false
	}
	flags = append(flags, "--")
	return append(flags, positional...), true
}

// Names of the flags actually given on the command line, so they can
// override config values even when set to false
func flagsGiven(ctx *kong.Context) map[string]bool {
	given := make(map[string]bool)
	for _, path := range ctx.Path {
		if path.Flag != nil {
			given[path.Flag.Name] = true
		}
	}
	return given
}
