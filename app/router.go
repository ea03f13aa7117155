package app

import (
	"context"
	"fmt"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// Router dispatches instructions of one program to the handler registered
// for their tag. It holds no knowledge of what the instructions do.
type Router struct {
	programID htlc.Pubkey
	routes    map[htlc.InstructionTag]route
}

type route struct {
	decode  htlc.MsgDecoder
	handler htlc.Handler
}

var (
	_ htlc.Registry = (*Router)(nil)
	_ htlc.Handler  = (*Router)(nil)
)

// NewRouter returns a router accepting instructions for programID.
func NewRouter(programID htlc.Pubkey) *Router {
	return &Router{
		programID: programID,
		routes:    make(map[htlc.InstructionTag]route),
	}
}

// ProgramID returns the program this router serves.
func (r *Router) ProgramID() htlc.Pubkey {
	return r.programID
}

// Handle adds a handler for the tag. It panics if the tag is taken.
func (r *Router) Handle(tag htlc.InstructionTag, decode htlc.MsgDecoder, h htlc.Handler) {
	if _, ok := r.routes[tag]; ok {
		panic(fmt.Sprintf("re-registering route: %d", tag))
	}
	if decode == nil || h == nil {
		panic(fmt.Sprintf("incomplete route: %d", tag))
	}
	r.routes[tag] = route{decode: decode, handler: h}
}

// Check decodes the instruction and passes it to the registered handler.
func (r *Router) Check(ctx context.Context, store htlc.KVStore, tx htlc.Tx) (*htlc.CheckResult, error) {
	h, routed, err := r.dispatch(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, store, routed)
}

// Deliver decodes the instruction and passes it to the registered handler.
func (r *Router) Deliver(ctx context.Context, store htlc.KVStore, tx htlc.Tx) (*htlc.DeliverResult, error) {
	h, routed, err := r.dispatch(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, store, routed)
}

// dispatch finds the route of the instruction, decodes its payload and
// binds the account list. Any failure is ErrMalformedInstruction.
func (r *Router) dispatch(tx htlc.Tx) (htlc.Handler, htlc.Tx, error) {
	itx, ok := tx.(htlc.InstructionTx)
	if !ok {
		return nil, nil, errors.Wrapf(errors.ErrMalformedInstruction, "%T carries no instruction", tx)
	}
	ix := itx.GetInstruction()
	if ix.ProgramID != r.programID {
		return nil, nil, errors.Wrapf(errors.ErrMalformedInstruction, "program %s is not %s", ix.ProgramID, r.programID)
	}
	tag, ok := ix.Tag()
	if !ok {
		return nil, nil, errors.Wrap(errors.ErrMalformedInstruction, "empty instruction data")
	}
	rt, ok := r.routes[tag]
	if !ok {
		return nil, nil, errors.Wrapf(errors.ErrMalformedInstruction, "unknown instruction tag %d", tag)
	}
	msg, err := rt.decode(ix.Data[1:])
	if err != nil {
		return nil, nil, malformed(err, "decode")
	}
	if err := msg.Bind(ix.ProgramID, ix.Accounts); err != nil {
		return nil, nil, malformed(err, "accounts")
	}
	return rt.handler, routedTx{Tx: tx, msg: msg}, nil
}

// malformed keeps registered errors of the decoders and labels anything
// else as a malformed instruction.
func malformed(err error, desc string) error {
	if errors.ErrMalformedInstruction.Is(err) {
		return errors.Wrap(err, desc)
	}
	return errors.Wrapf(errors.ErrMalformedInstruction, "%s: %s", desc, err)
}

// routedTx is the transaction as handlers see it, with the decoded
// message.
type routedTx struct {
	htlc.Tx
	msg htlc.Msg
}

func (tx routedTx) GetMsg() (htlc.Msg, error) {
	return tx.msg, nil
}
