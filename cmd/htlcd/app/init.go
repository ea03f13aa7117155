package htlcd

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/app"
	"github.com/iov-one/htlc/commands/server"
	"github.com/iov-one/htlc/x/aswap"
	"github.com/iov-one/htlc/x/bank"
	abci "github.com/tendermint/tendermint/abci/types"
	"golang.org/x/crypto/ed25519"
)

// GenesisState is the app_state of a new chain.
type GenesisState struct {
	ProgramID htlc.Pubkey            `json:"program_id"`
	Bank      []bank.GenesisAccount  `json:"bank"`
	Conf      map[string]interface{} `json:"conf"`
}

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// Arguments are the base58 program id and the owner of the initial
// balance. A missing owner is generated and its key printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var state GenesisState
	if len(args) > 0 {
		pk, err := htlc.ParsePubkey(args[0])
		if err != nil {
			return nil, err
		}
		state.ProgramID = pk
	} else {
		if _, err := rand.Read(state.ProgramID[:]); err != nil {
			return nil, err
		}
	}

	var owner htlc.Pubkey
	if len(args) > 1 {
		pk, err := htlc.ParsePubkey(args[1])
		if err != nil {
			return nil, err
		}
		owner = pk
	} else {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, err
		}
		copy(owner[:], pub)
		fmt.Printf("generated owner %s, secret key %x\n", owner, []byte(priv))
	}

	state.Bank = []bank.GenesisAccount{
		{Owner: owner, Amount: 123456789},
	}
	state.Conf = map[string]interface{}{
		"aswap": aswap.DefaultConfiguration(),
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, http.Handler, error) {
	genesis := options.Genesis
	if genesis == "" {
		genesis = server.GenesisPath(options.Home)
	}
	gen, err := app.LoadGenesis(genesis)
	if err != nil {
		return nil, nil, err
	}
	programID, err := app.ProgramID(gen.AppState)
	if err != nil {
		return nil, nil, err
	}

	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "htlc.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, nil, err
	}

	metrics := app.NewMetrics(InstructionNames)
	application := Application("htlc", programID, kv, metrics, options.Logger, options.Debug)
	return application, metrics.Handler(), nil
}
