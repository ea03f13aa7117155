package htlctest

import "github.com/iov-one/htlc"

// Tx is a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg htlc.Msg
	// Instruction is returned by GetInstruction, for transactions that
	// go through a router.
	Instruction htlc.Instruction
	// Err if set is returned by any method call.
	Err error
}

var _ htlc.InstructionTx = (*Tx)(nil)

func (tx *Tx) GetMsg() (htlc.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) GetInstruction() htlc.Instruction {
	return tx.Instruction
}
