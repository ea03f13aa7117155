package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/htlc/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const appStateKey = "app_state"

// GenOptions can parse command-line arguments to generate default
// app_state for the genesis file. This is application-specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisPath returns where tendermint keeps the genesis file under home.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd writes the app_state generated by gen into the genesis file
// under home. An existing genesis file keeps all of its other fields. A
// missing one is created with a random chain id.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	options, err := gen(args)
	if err != nil {
		return err
	}

	genFile := GenesisPath(home)
	doc := genesisDoc{}
	switch raw, err := ioutil.ReadFile(genFile); {
	case err == nil:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return errors.Wrapf(errors.ErrInput, "genesis file %s: %s", genFile, err)
		}
		if _, ok := doc[appStateKey]; ok {
			return errors.Wrapf(errors.ErrState, "%s already has an app_state", genFile)
		}
		logger.Info("Found genesis file", "path", genFile)
	case os.IsNotExist(err):
		chainID, _ := json.Marshal("test-chain-" + cmn.RandStr(6))
		doc["chain_id"] = chainID
		if err := os.MkdirAll(filepath.Dir(genFile), 0755); err != nil {
			return errors.Wrap(err, "genesis dir")
		}
		logger.Info("Generating genesis file", "path", genFile)
	default:
		return errors.Wrap(err, "read genesis")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal genesis")
	}
	return ioutil.WriteFile(genFile, out, 0600)
}

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one field.
type genesisDoc map[string]json.RawMessage
