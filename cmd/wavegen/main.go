package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/pkg/errors"
)

const usageLine = "wavegen [-o waveforms.toml] export1.xml [export2.xml ...]"

func main() {
	output, inputs, err := parseArgs(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(inputs, output); err != nil {
		fmt.Fprintf(os.Stderr, "wavegen: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs reads the -o flag with argparse and treats every remaining
// non-flag argument as an export file.
func parseArgs(args []string) (string, []string, error) {
	flags, inputs := splitInputs(args)

	parser := argparse.NewParser("wavegen", "Build the wfirexctl waveform table from remote export XML")
	output := parser.String("o", "output", &argparse.Options{
		Default: "waveforms.toml",
		Help:    "Waveform table to write",
	})
	if err := parser.Parse(flags); err != nil {
		return "", nil, errors.New(parser.Usage(err))
	}
	if len(inputs) == 0 {
		return "", nil, errors.Errorf("usage: %s\nno export XML files given", usageLine)
	}
	return *output, inputs, nil
}

// splitInputs separates positional export paths from flags. args[0] is the
// program name and stays with the flags.
func splitInputs(args []string) (flags []string, inputs []string) {
	if len(args) == 0 {
		return nil, nil
	}
	flags = append(flags, args[0])
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			inputs = append(inputs, args[i+1:]...)
			return flags, inputs
		case arg == "-o" || arg == "--output":
			flags = append(flags, arg)
			if i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		case strings.HasPrefix(arg, "-") && arg != "-":
			flags = append(flags, arg)
		default:
			inputs = append(inputs, arg)
		}
	}
	return flags, inputs
}

func run(inputs []string, output string) error {
	t := table{}
	for _, path := range inputs {
		if err := t.addFile(path); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	buf.WriteString("# generated by wavegen from remote export XML\n")
	if err := t.write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", output)
	}
	fmt.Printf("wavegen: wrote %d devices to %s\n", len(t), output)
	return nil
}
