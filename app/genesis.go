package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// Genesis file format, designed to be overlayed with tendermint genesis
type Genesis struct {
	ChainID  string       `json:"chain_id"`
	AppState htlc.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(err, "loading genesis file")
	}

	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	if !htlc.IsValidChainID(gen.ChainID) {
		return gen, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return gen, nil
}

// ProgramID reads the program id the genesis assigns to the swap program.
func ProgramID(opts htlc.Options) (htlc.Pubkey, error) {
	var pk htlc.Pubkey
	if err := opts.ReadOptions("program_id", &pk); err != nil {
		return pk, err
	}
	if pk.IsZero() {
		return pk, errors.Wrap(errors.ErrEmpty, "program_id")
	}
	return pk, nil
}
