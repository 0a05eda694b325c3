// Command mcdiag decodes and analyzes memcached binary protocol frames.
//
// Frames can be pasted as hex, read from a file of hex lines, or replayed
// from a capture file written by a client running with MCDIAG_CAPTURE_FILE
// set.
//
// Usage:
//
//	mcdiag <command> [flags] [file]
//
// Commands:
//
//	decode       Decode hex-encoded frames, one per line
//	interactive  Decode frames typed at a prompt
//	view         View a capture file in human-readable format
//	filter       Filter a capture file and write to a new file
//	stats        Show statistics about a capture file
//	export       Export a capture file to JSON or CSV format
//
// Examples:
//
//	# Decode a single frame
//	mcdiag decode -hex 800a00000000000000000000000000000000000000000000
//
//	# Decode a file of frames with segment dumps
//	mcdiag decode -packets frames.txt
//
//	# Decode a raw binary dump of a connection
//	mcdiag decode -raw conn.bin
//
//	# View only outgoing GET requests
//	mcdiag view -direction out -opcode get client.mcap
//
//	# Export to JSONL
//	mcdiag export -format jsonl client.mcap
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mcbin/mcdiag/cmd/mcdiag/commands"
	"github.com/mcbin/mcdiag/pkg/capture"
	"github.com/mcbin/mcdiag/pkg/config"
	"github.com/mcbin/mcdiag/pkg/debuglog"
)

const usage = `mcdiag - memcached binary protocol diagnostics

Usage:
  mcdiag <command> [flags] [file]

Commands:
  decode       Decode hex-encoded frames, one per line
  interactive  Decode frames typed at a prompt
  view         View a capture file in human-readable format
  filter       Filter a capture file and write to a new file
  stats        Show statistics about a capture file
  export       Export a capture file to JSON or CSV format

Use "mcdiag <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "decode":
		runDecode(args)
	case "interactive", "repl":
		runInteractive(args)
	case "view":
		runView(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "export":
		runExport(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// openRecorder returns the recorder for the -capture and -slog flags. Without
// -capture the file named by MCDIAG_CAPTURE_FILE is used, if any.
func openRecorder(path string, verbose bool) (capture.RecordCloser, int, error) {
	cfg, err := config.FromEnvironment()
	if err != nil {
		debuglog.Warn("configuration: %v", err)
	}
	if path != "" {
		cfg.Capture.File = path
	}

	file, err := capture.FromConfig(cfg.Capture)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open capture file: %w", err)
	}
	recorders := []capture.Recorder{file}
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		recorders = append(recorders, capture.NewSlogRecorder(logger))
	}
	return capture.NewMultiRecorder(recorders...), cfg.Capture.MaxFrameBytes, nil
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mcdiag decode - Decode hex-encoded frames, one per line

Usage:
  mcdiag decode [flags] [file|-]

Reads standard input when no file is given.

Flags:
`)
		fs.PrintDefaults()
	}

	packets := fs.Bool("packets", false, "Dump extras, key and body in hex")
	hexFrame := fs.String("hex", "", "Decode this frame instead of reading input")
	capturePath := fs.String("capture", "", "Append decoded frames to this capture file")
	verbose := fs.Bool("slog", false, "Log every decoded frame via slog on stderr")
	raw := fs.Bool("raw", false, "Input is binary frames back to back instead of hex lines")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	rec, maxFrame, err := openRecorder(*capturePath, *verbose)
	if err != nil {
		fatal(err)
	}
	defer rec.Close()

	var in io.Reader
	switch {
	case *hexFrame != "":
		in = strings.NewReader(*hexFrame)
	case fs.NArg() == 0 || fs.Arg(0) == "-":
		in = os.Stdin
	default:
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			rec.Close()
			fatal(fmt.Errorf("failed to open input: %w", err))
		}
		defer f.Close()
		in = f
	}

	opts := commands.DecodeOptions{Packets: *packets, Recorder: rec, MaxFrame: maxFrame}
	run := commands.RunDecode
	if *raw {
		run = commands.RunDecodeRaw
	}
	if err := run(in, opts, os.Stdout); err != nil {
		rec.Close()
		fatal(err)
	}
}

func runInteractive(args []string) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mcdiag interactive - Decode frames typed at a prompt

Usage:
  mcdiag interactive [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	capturePath := fs.String("capture", "", "Append decoded frames to this capture file")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	rec, maxFrame, err := openRecorder(*capturePath, false)
	if err != nil {
		fatal(err)
	}
	defer rec.Close()

	console, err := commands.NewConsole(rec, maxFrame)
	if err != nil {
		rec.Close()
		fatal(err)
	}
	debuglog.Info("interactive session started")
	console.Run()
}

func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.ConnID, "conn-id", "", "Filter by connection ID")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Opcode, "opcode", "", "Filter by opcode name or hex value")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	return opts
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mcdiag view - View a capture file in human-readable format

Usage:
  mcdiag view [flags] <file.mcap>

Flags:
`)
		fs.PrintDefaults()
	}

	filter := filterFlags(fs)
	packets := fs.Bool("packets", false, "Dump extras, key and body in hex")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.ViewOptions{Filter: *filter, Packets: *packets}
	if err := commands.RunView(fs.Arg(0), opts, os.Stdout); err != nil {
		fatal(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mcdiag filter - Filter a capture file and write to a new file

Usage:
  mcdiag filter [flags] <file.mcap>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	filter := filterFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunFilter(fs.Arg(0), *output, *filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mcdiag stats - Show statistics about a capture file

Usage:
  mcdiag stats <file.mcap>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mcdiag export - Export a capture file to JSON or CSV format

Usage:
  mcdiag export [flags] <file.mcap>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunExport(fs.Arg(0), *format, *output); err != nil {
		fatal(err)
	}
}
