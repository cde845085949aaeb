package isa

import "errors"

// Fatal error kinds shared by the control unit, data path and register file.
// HALT is a controlled loop exit, not an error, and isn't represented here.
// InstructionLimit is a non-fatal diagnostic.
var (
	ErrInvalidRegister  = errors.New("invalid register")
	OperandError        = errors.New("operand error: record has no op field")
	ErrMemory           = errors.New("memory error: address out of range")
	ErrUnknownOpcode    = errors.New("unknown opcode")
	ErrInvalidPort      = errors.New("invalid port")
	ErrTranslation      = errors.New("translation error")
	ErrInstructionLimit = errors.New("instruction limit reached")
)
