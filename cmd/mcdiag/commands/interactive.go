package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mcbin/mcdiag/pkg/capture"
	"github.com/mcbin/mcdiag/pkg/protocol"
)

// Console is the interactive frame decoder.
type Console struct {
	rl    *readline.Instance
	shell *shell
}

// NewConsole creates a console reading from the terminal. A nil recorder
// disables capture of pasted frames; maxFrame limits the recorded bytes.
func NewConsole(recorder capture.Recorder, maxFrame int) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mcdiag> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Console{
		rl:    rl,
		shell: newShell(rl.Stdout(), DecodeOptions{Recorder: recorder, MaxFrame: maxFrame}),
	}, nil
}

// Run reads commands until quit or end of input.
func (c *Console) Run() {
	defer c.rl.Close()

	c.shell.printHelp()

	for {
		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			return
		}

		if !c.shell.execute(line) {
			return
		}
	}
}

// shell holds the console state independent of the terminal.
type shell struct {
	out     io.Writer
	opts    DecodeOptions
	decoder *frameDecoder
}

func newShell(w io.Writer, opts DecodeOptions) *shell {
	s := &shell{out: w, opts: opts}
	s.rebuild()
	return s
}

// rebuild starts a new decoder after an option change. Frames decoded from
// then on belong to a new capture connection.
func (s *shell) rebuild() {
	s.decoder = newFrameDecoder(s.out, s.opts)
}

// execute runs one input line and reports whether the console keeps going.
func (s *shell) execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "packets", "p":
		s.cmdPackets(args)

	case "opcode", "op":
		s.cmdOpcode(args)

	case "status", "st":
		s.cmdStatus(args)

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		frame, err := ParseHexFrame(input)
		if err != nil {
			fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
			return true
		}
		if len(frame) > 0 {
			s.decoder.decode(frame)
		}
	}
	return true
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, `
mcdiag Commands:
  <hex bytes>          - Decode a frame, e.g. 80 00 00 03 00 00 ...
  packets [on|off]     - Show or toggle segment dumps
  opcode <name|0xNN>   - Look up an opcode
  status <0xNNNN>      - Look up a response status
  help                 - Show this help
  quit                 - Exit`)
}

func (s *shell) cmdPackets(args []string) {
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on", "1", "true":
			s.opts.Packets = true
		case "off", "0", "false":
			s.opts.Packets = false
		default:
			fmt.Fprintln(s.out, "Usage: packets [on|off]")
			return
		}
		s.rebuild()
	}

	state := "off"
	if s.opts.Packets {
		state = "on"
	}
	fmt.Fprintf(s.out, "Packet dumps: %s\n", state)
}

func (s *shell) cmdOpcode(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: opcode <name|0xNN>")
		return
	}
	op, err := ParseOpcodeFlag(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	name, known := protocol.OpcodeName(uint8(op))
	if !known {
		fmt.Fprintf(s.out, "0x%02x: unknown opcode\n", uint8(op))
		return
	}
	fmt.Fprintf(s.out, "0x%02x: %s", uint8(op), name)
	if op.IsQuiet() {
		fmt.Fprint(s.out, " (quiet)")
	}
	fmt.Fprintln(s.out)
}

func (s *shell) cmdStatus(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: status <0xNNNN>")
		return
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(args[0]), "0x"), 16, 16)
	if err != nil {
		fmt.Fprintf(s.out, "Error: invalid status: %s\n", args[0])
		return
	}

	name, known := protocol.StatusName(uint16(n))
	if !known {
		name = "unknown status"
	}
	fmt.Fprintf(s.out, "0x%04x: %s\n", n, name)
}
