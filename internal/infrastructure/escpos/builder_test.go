package escpos

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_ByteSequences(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) *Builder
		want  []byte
	}{
		{"align center", func(b *Builder) *Builder { return b.Align(AlignCenter) }, []byte{0x1B, 'a', 1}},
		{"align right", func(b *Builder) *Builder { return b.Align(AlignRight) }, []byte{0x1B, 'a', 2}},
		{"bold on", func(b *Builder) *Builder { return b.Bold(true) }, []byte{0x1B, 'E', 1}},
		{"bold off", func(b *Builder) *Builder { return b.Bold(false) }, []byte{0x1B, 'E', 0}},
		{"double height", func(b *Builder) *Builder { return b.DoubleHeight() }, []byte{0x1D, '!', 0x01}},
		{"double width", func(b *Builder) *Builder { return b.DoubleWidth() }, []byte{0x1D, '!', 0x10}},
		{"double size", func(b *Builder) *Builder { return b.DoubleSize() }, []byte{0x1D, '!', 0x11}},
		{"normal size", func(b *Builder) *Builder { return b.NormalSize() }, []byte{0x1D, '!', 0x00}},
		{"underline on", func(b *Builder) *Builder { return b.Underline(true) }, []byte{0x1B, '-', 1}},
		{"feed 3", func(b *Builder) *Builder { return b.Feed(3) }, []byte{0x1B, 'd', 3}},
		{"feed negative clamps to zero", func(b *Builder) *Builder { return b.Feed(-2) }, []byte{0x1B, 'd', 0}},
		{"feed clamps to one byte", func(b *Builder) *Builder { return b.Feed(300) }, []byte{0x1B, 'd', 255}},
		{"full cut", func(b *Builder) *Builder { return b.Cut(false) }, []byte{0x1D, 'V', 0x00}},
		{"partial cut", func(b *Builder) *Builder { return b.Cut(true) }, []byte{0x1D, 'V', 0x01}},
		{"cash drawer", func(b *Builder) *Builder { return b.OpenCashDrawer() }, []byte{0x1B, 'p', 0x00, 0x19, 0xFA}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build(NewBuilder(42))
			got := b.Bytes()
			// every stream opens with initialize
			require.GreaterOrEqual(t, len(got), 2)
			assert.Equal(t, []byte{0x1B, '@'}, got[:2])
			assert.Equal(t, tt.want, got[2:])
		})
	}
}

func TestBuilder_TextAndChaining(t *testing.T) {
	b := NewBuilder(42).
		Align(AlignCenter).
		Bold(true).
		Line("HELLO").
		Bold(false)

	got := b.Bytes()
	want := append([]byte{0x1B, '@', 0x1B, 'a', 1, 0x1B, 'E', 1}, []byte("HELLO")...)
	want = append(want, 0x0A, 0x1B, 'E', 0)
	assert.Equal(t, want, got)
}

func TestBuilder_LeftRight(t *testing.T) {
	tests := []struct {
		name  string
		width int
		left  string
		right string
	}{
		{"normal fit", 42, "Subtotal", "25.00"},
		{"exact fit", 20, "123456789012345", "6789"},
		{"left overflows", 20, strings.Repeat("x", 30), "9.99"},
		{"right overflows", 20, "a", strings.Repeat("y", 30)},
		{"both overflow", 16, strings.Repeat("x", 30), strings.Repeat("y", 30)},
		{"empty left", 42, "", "TOTAL"},
		{"empty right", 42, "TOTAL", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(tt.width).LeftRight(tt.left, tt.right)
			lines := strings.Split(strings.TrimSuffix(b.PlainText(), "\n"), "\n")
			require.Len(t, lines, 1)
			line := lines[0]
			assert.Len(t, []rune(line), tt.width, "line must be exactly the configured width")
			assert.Contains(t, line, " ", "at least one separating space")
		})
	}
}

func TestBuilder_LeftRight_Content(t *testing.T) {
	b := NewBuilder(20).LeftRight("Cash", "5.00")
	assert.Equal(t, "Cash"+strings.Repeat(" ", 12)+"5.00\n", b.PlainText())
}

func TestBuilder_Separator(t *testing.T) {
	for _, width := range []int{20, 42, 48} {
		t.Run(fmt.Sprintf("width_%d", width), func(t *testing.T) {
			b := NewBuilder(width).Separator('-')
			assert.Equal(t, strings.Repeat("-", width)+"\n", b.PlainText())
		})
	}

	t.Run("zero rune defaults to dash", func(t *testing.T) {
		b := NewBuilder(10).Separator(0)
		assert.Equal(t, strings.Repeat("-", 10)+"\n", b.PlainText())
	})
}

func TestBuilder_PlainTextStripsCommands(t *testing.T) {
	b := NewBuilder(42).
		Align(AlignCenter).
		DoubleSize().
		Line("The Grill").
		NormalSize().
		Separator('=').
		LeftRight("Total", "30.00").
		Feed(2).
		Cut(true).
		OpenCashDrawer()

	plain := b.PlainText()
	assert.NotContains(t, plain, string(rune(0x1B)))
	assert.NotContains(t, plain, string(rune(0x1D)))
	assert.Contains(t, plain, "The Grill\n")
	assert.Contains(t, plain, strings.Repeat("=", 42))
	assert.True(t, strings.HasSuffix(plain, "\n\n"), "feed contributes blank lines")
}

func TestBuilder_InstructionsInspectable(t *testing.T) {
	b := NewBuilder(42).Bold(true).Text("X").Cut(false)
	ins := b.Instructions()
	require.Len(t, ins, 4)
	assert.Equal(t, OpInit, ins[0].Op)
	assert.Equal(t, OpBold, ins[1].Op)
	assert.True(t, ins[1].On)
	assert.Equal(t, OpText, ins[2].Op)
	assert.Equal(t, OpCut, ins[3].Op)
}

func TestNewBuilder_WidthFallback(t *testing.T) {
	assert.Equal(t, DefaultCharWidth, NewBuilder(0).Width())
	assert.Equal(t, DefaultCharWidth, NewBuilder(-5).Width())
	assert.Equal(t, 48, NewBuilder(48).Width())
}
