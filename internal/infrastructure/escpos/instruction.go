package escpos

// Op identifies one formatting instruction
type Op string

const (
	OpInit         Op = "init"
	OpAlign        Op = "align"
	OpBold         Op = "bold"
	OpDoubleHeight Op = "double_height"
	OpDoubleWidth  Op = "double_width"
	OpDoubleSize   Op = "double_size"
	OpNormalSize   Op = "normal_size"
	OpUnderline    Op = "underline"
	OpText         Op = "text"
	OpNewLine      Op = "new_line"
	OpFeed         Op = "feed"
	OpSeparator    Op = "separator"
	OpLeftRight    Op = "left_right"
	OpCut          Op = "cut"
	OpCashDrawer   Op = "cash_drawer"
)

// Alignment values for OpAlign
type Alignment byte

const (
	AlignLeft   Alignment = 0
	AlignCenter Alignment = 1
	AlignRight  Alignment = 2
)

// Instruction is one accumulated formatting step. The builder appends
// instructions and renders them to bytes only at the end, so intermediate
// state is inspectable without decoding command bytes.
type Instruction struct {
	Op      Op
	Text    string    // OpText, OpLeftRight (left side)
	Right   string    // OpLeftRight
	Align   Alignment // OpAlign
	On      bool      // OpBold, OpUnderline
	N       int       // OpFeed
	Char    rune      // OpSeparator
	Partial bool      // OpCut
}
