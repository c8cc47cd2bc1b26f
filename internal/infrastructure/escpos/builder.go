package escpos

import (
	"bytes"
	"strings"
)

// Command bytes for ESC/POS-class thermal printers (Epson/Star compatible)
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A

	sizeNormal       = 0x00
	sizeDoubleHeight = 0x01
	sizeDoubleWidth  = 0x10
	sizeDoubleBoth   = 0x11
)

// DefaultCharWidth matches an 80mm printer in standard font
const DefaultCharWidth = 42

// Builder accumulates formatting instructions and renders them, in call
// order, to a single ESC/POS byte stream. All methods return the builder
// for chaining. The builder never validates printer capability; an
// unsupported command is a deployment concern, not a runtime error.
type Builder struct {
	width        int
	instructions []Instruction
}

// NewBuilder creates a builder for the given character width. Widths
// below 1 fall back to the default.
func NewBuilder(charWidth int) *Builder {
	if charWidth < 1 {
		charWidth = DefaultCharWidth
	}
	b := &Builder{width: charWidth}
	b.instructions = append(b.instructions, Instruction{Op: OpInit})
	return b
}

// Width returns the configured character width
func (b *Builder) Width() int {
	return b.width
}

// Instructions returns the accumulated instruction list
func (b *Builder) Instructions() []Instruction {
	return b.instructions
}

// Align sets text alignment for subsequent lines
func (b *Builder) Align(a Alignment) *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpAlign, Align: a})
	return b
}

// Bold toggles emphasis
func (b *Builder) Bold(on bool) *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpBold, On: on})
	return b
}

// DoubleHeight switches to double-height characters
func (b *Builder) DoubleHeight() *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpDoubleHeight})
	return b
}

// DoubleWidth switches to double-width characters
func (b *Builder) DoubleWidth() *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpDoubleWidth})
	return b
}

// DoubleSize switches to double height and width
func (b *Builder) DoubleSize() *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpDoubleSize})
	return b
}

// NormalSize returns to standard character size
func (b *Builder) NormalSize() *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpNormalSize})
	return b
}

// Underline toggles underlining
func (b *Builder) Underline(on bool) *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpUnderline, On: on})
	return b
}

// Text appends literal text without a trailing newline
func (b *Builder) Text(s string) *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpText, Text: s})
	return b
}

// Line appends literal text followed by a newline
func (b *Builder) Line(s string) *Builder {
	return b.Text(s).NewLine()
}

// NewLine appends a line feed
func (b *Builder) NewLine() *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpNewLine})
	return b
}

// Feed advances the paper n lines. The wire encoding carries one byte,
// so n is clamped to [0, 255].
func (b *Builder) Feed(n int) *Builder {
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	b.instructions = append(b.instructions, Instruction{Op: OpFeed, N: n})
	return b
}

// Separator prints a full-width line of the given character
func (b *Builder) Separator(char rune) *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpSeparator, Char: char})
	return b
}

// LeftRight prints left- and right-anchored text on one line padded to
// exactly the configured width, keeping at least one separating space
// and right-truncating the left side when the pair would overflow.
func (b *Builder) LeftRight(left, right string) *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpLeftRight, Text: left, Right: right})
	return b
}

// Cut cuts the paper; partial leaves a connecting tab
func (b *Builder) Cut(partial bool) *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpCut, Partial: partial})
	return b
}

// OpenCashDrawer pulses the drawer kick connector
func (b *Builder) OpenCashDrawer() *Builder {
	b.instructions = append(b.instructions, Instruction{Op: OpCashDrawer})
	return b
}

// Bytes renders the accumulated instructions to an ESC/POS byte stream
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	for _, ins := range b.instructions {
		switch ins.Op {
		case OpInit:
			buf.Write([]byte{esc, '@'})
		case OpAlign:
			buf.Write([]byte{esc, 'a', byte(ins.Align)})
		case OpBold:
			buf.Write([]byte{esc, 'E', boolByte(ins.On)})
		case OpDoubleHeight:
			buf.Write([]byte{gs, '!', sizeDoubleHeight})
		case OpDoubleWidth:
			buf.Write([]byte{gs, '!', sizeDoubleWidth})
		case OpDoubleSize:
			buf.Write([]byte{gs, '!', sizeDoubleBoth})
		case OpNormalSize:
			buf.Write([]byte{gs, '!', sizeNormal})
		case OpUnderline:
			buf.Write([]byte{esc, '-', boolByte(ins.On)})
		case OpText:
			buf.WriteString(ins.Text)
		case OpNewLine:
			buf.WriteByte(lf)
		case OpFeed:
			buf.Write([]byte{esc, 'd', byte(ins.N)})
		case OpSeparator:
			buf.WriteString(b.separatorLine(ins.Char))
			buf.WriteByte(lf)
		case OpLeftRight:
			buf.WriteString(b.leftRightLine(ins.Text, ins.Right))
			buf.WriteByte(lf)
		case OpCut:
			if ins.Partial {
				buf.Write([]byte{gs, 'V', 0x01})
			} else {
				buf.Write([]byte{gs, 'V', 0x00})
			}
		case OpCashDrawer:
			buf.Write([]byte{esc, 'p', 0x00, 0x19, 0xFA})
		}
	}
	return buf.Bytes()
}

// PlainText renders a command-stripped projection of the document for
// audit and debugging. Styling instructions contribute nothing.
func (b *Builder) PlainText() string {
	var sb strings.Builder
	for _, ins := range b.instructions {
		switch ins.Op {
		case OpText:
			sb.WriteString(ins.Text)
		case OpNewLine:
			sb.WriteByte('\n')
		case OpFeed:
			for i := 0; i < ins.N; i++ {
				sb.WriteByte('\n')
			}
		case OpSeparator:
			sb.WriteString(b.separatorLine(ins.Char))
			sb.WriteByte('\n')
		case OpLeftRight:
			sb.WriteString(b.leftRightLine(ins.Text, ins.Right))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (b *Builder) separatorLine(char rune) string {
	if char == 0 {
		char = '-'
	}
	return strings.Repeat(string(char), b.width)
}

func (b *Builder) leftRightLine(left, right string) string {
	w := b.width
	r := []rune(right)
	if len(r) > w-1 {
		r = r[:w-1]
	}
	l := []rune(left)
	maxLeft := w - len(r) - 1
	if len(l) > maxLeft {
		l = l[:maxLeft]
	}
	pad := w - len(l) - len(r)
	return string(l) + strings.Repeat(" ", pad) + string(r)
}

func boolByte(on bool) byte {
	if on {
		return 1
	}
	return 0
}
