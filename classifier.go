package shell

// Byte values the classifier reacts to.
const (
	keyETX       byte = 3   // Ctrl+C
	keyEOT       byte = 4   // Ctrl+D
	keyBackspace byte = 8   // Ctrl+H
	keyLF        byte = 10  // '\n'
	keyCR        byte = 13  // '\r'
	keyEsc       byte = 27  // ESC
	keyBracket   byte = '[' // CSI introducer after ESC
	keyDigit3    byte = '3' // first byte of the Delete parameter
	keyTilde     byte = '~' // terminates ESC [ 3 ~
	keyDEL       byte = 127 // Backspace on most terminals
)

// CommandKind identifies what a resolved byte (or byte sequence) does.
type CommandKind uint8

// Command kinds produced by the classifier.
const (
	CommandInsert    CommandKind = iota // insert Command.Char at the cursor
	CommandBackspace                    // remove the character before the cursor
	CommandDelete                       // remove the character under the cursor (ESC [ 3 ~)
	CommandEnter                        // submit the line
	CommandUp                           // ESC [ A
	CommandDown                         // ESC [ B
	CommandRight                        // ESC [ C
	CommandLeft                         // ESC [ D
	CommandInterrupt                    // Ctrl+C or Ctrl+D
)

// String returns a readable name, used in test failure output.
func (k CommandKind) String() string {
	switch k {
	case CommandInsert:
		return "Insert"
	case CommandBackspace:
		return "Backspace"
	case CommandDelete:
		return "Delete"
	case CommandEnter:
		return "Enter"
	case CommandUp:
		return "Up"
	case CommandDown:
		return "Down"
	case CommandRight:
		return "Right"
	case CommandLeft:
		return "Left"
	case CommandInterrupt:
		return "Interrupt"
	default:
		return "Unknown"
	}
}

// Command is a fully resolved editing command.
type Command struct {
	Kind CommandKind
	Char byte // only meaningful for CommandInsert
}

// escapeState tracks how much of an escape sequence has been seen.
type escapeState uint8

const (
	stateIdle             escapeState = iota // nothing pending
	stateEsc                                 // saw ESC
	stateEscBracket                          // saw ESC [
	stateEscBracketDigit3                    // saw ESC [ 3, waiting for ~
)

// arrowCommands maps the final byte of ESC [ <x> to its command.
var arrowCommands = map[byte]CommandKind{
	'A': CommandUp,
	'B': CommandDown,
	'C': CommandRight,
	'D': CommandLeft,
}

// classifier turns a stream of raw bytes into editing commands.
//
// Arrow and delete keys arrive as multi-byte sequences with no framing, so
// the classifier holds partial sequences across calls. When a partial
// sequence fails to complete, the held bytes are replayed as literal inserts
// in their original order, followed by the current byte. Every resolution
// returns the classifier to stateIdle.
type classifier struct {
	state escapeState
}

// feed classifies b, appends the resulting commands to dst and returns the
// extended slice. A byte that only extends a pending sequence appends nothing.
func (c *classifier) feed(dst []Command, b byte) []Command {
	switch {
	case b == keyETX || b == keyEOT:
		c.reset()
		return append(dst, Command{Kind: CommandInterrupt})
	case b == keyLF || b == keyCR:
		c.reset()
		return append(dst, Command{Kind: CommandEnter})
	case b == keyBackspace || b == keyDEL:
		c.reset()
		return append(dst, Command{Kind: CommandBackspace})
	}

	switch c.state {
	case stateEscBracketDigit3:
		if b == keyTilde {
			c.reset()
			return append(dst, Command{Kind: CommandDelete})
		}
		return c.replay(dst, b, keyEsc, keyBracket, keyDigit3)

	case stateEscBracket:
		if b == keyDigit3 {
			c.state = stateEscBracketDigit3
			return dst
		}
		if kind, ok := arrowCommands[b]; ok {
			c.reset()
			return append(dst, Command{Kind: kind})
		}
		return c.replay(dst, b, keyEsc, keyBracket)

	case stateEsc:
		if b == keyBracket {
			c.state = stateEscBracket
			return dst
		}
		return c.replay(dst, b, keyEsc)

	default:
		if b == keyEsc {
			c.state = stateEsc
			return dst
		}
		return append(dst, Command{Kind: CommandInsert, Char: b})
	}
}

// replay emits the held bytes and then b as literal inserts.
func (c *classifier) replay(dst []Command, b byte, held ...byte) []Command {
	c.reset()
	for _, h := range held {
		dst = append(dst, Command{Kind: CommandInsert, Char: h})
	}
	return append(dst, Command{Kind: CommandInsert, Char: b})
}

func (c *classifier) reset() {
	c.state = stateIdle
}
