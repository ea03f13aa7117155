package htlc

import (
	"context"
	"encoding/json"

	"github.com/iov-one/htlc/errors"
)

// Handler is a core engine that can process one kind of instruction.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx context.Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx context.Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication to many Handlers
type Decorator interface {
	Check(ctx context.Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx context.Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(tag InstructionTag, decode MsgDecoder, h Handler)
}

// CheckResult captures any non-error result of a check run.
type CheckResult struct {
	// Log is human readable detail about the result.
	Log string
}

// DeliverResult captures any non-error result of a deliver run.
type DeliverResult struct {
	// Data is a machine readable result, ie. the address of a new escrow.
	Data []byte
	// Log is human readable detail about the result.
	Log string
	// Tags are published with the transaction so that observers can
	// react to it. A revealed secret travels this way.
	Tags []Tag
}

// Tag is a key value pair published with a delivered transaction.
type Tag struct {
	Key   string
	Value []byte
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "options %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}

// MultiInitializer runs all initializers in order.
type MultiInitializer []Initializer

var _ Initializer = MultiInitializer(nil)

// FromGenesis implements Initializer.
func (m MultiInitializer) FromGenesis(opts Options, db KVStore) error {
	for _, i := range m {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
