package protocol

import "fmt"

// Magic is the leading byte of a frame.
type Magic uint8

// Opcode identifies the operation a frame requests.
type Opcode uint8

// Status is the result code carried by a response frame.
type Status uint16

// MagicName returns the symbolic name for a magic byte.
// ok is false when the byte is neither a request nor a response magic.
func MagicName(code uint8) (name string, ok bool) {
	name, ok = magicNames[Magic(code)]
	return name, ok
}

// OpcodeName returns the symbolic name for an opcode.
// Quiet variants are reported with their Q suffix (GETQ, SETQ, ...).
func OpcodeName(code uint8) (name string, ok bool) {
	name, ok = opcodeNames[Opcode(code)]
	return name, ok
}

// StatusName returns the symbolic name for a response status.
func StatusName(code uint16) (name string, ok bool) {
	name, ok = statusNames[Status(code)]
	return name, ok
}

// String returns the magic name, or two lowercase hex digits when unknown.
func (m Magic) String() string {
	if name, ok := magicNames[m]; ok {
		return name
	}
	return fmt.Sprintf("%02x", uint8(m))
}

// String returns the opcode name, or two lowercase hex digits when unknown.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("%02x", uint8(o))
}

// IsQuiet reports whether the opcode is the quiet variant of a paired command.
func (o Opcode) IsQuiet() bool {
	name, ok := opcodeNames[o]
	if !ok || len(name) < 2 || name[len(name)-1] != 'Q' {
		return false
	}
	_, paired := opcodeByName[name[:len(name)-1]]
	return paired
}

// String returns the status name, or four lowercase hex digits when unknown.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("%04x", uint16(s))
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// opcodeByName is the reverse of opcodeNames, built once at init.
var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for code, name := range opcodeNames {
		m[name] = code
	}
	return m
}()

// ParseOpcode resolves a symbolic opcode name (case-sensitive, e.g. "GETKQ").
func ParseOpcode(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}
