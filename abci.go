package htlc

import (
	"github.com/iov-one/htlc/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResponse renders the outcome of a delivered transaction. A
// failure carries only the code and log of err, never partial results.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := failure("deliver", err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: log}
	}
	if res == nil {
		return abci.ResponseDeliverTx{}
	}
	tags := make([]common.KVPair, 0, len(res.Tags))
	for _, t := range res.Tags {
		tags = append(tags, common.KVPair{Key: []byte(t.Key), Value: t.Value})
	}
	return abci.ResponseDeliverTx{Data: res.Data, Log: res.Log, Tags: tags}
}

// CheckResponse renders the outcome of a mempool check.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := failure("check", err, debug)
		return abci.ResponseCheckTx{Code: code, Log: log}
	}
	if res == nil {
		return abci.ResponseCheckTx{}
	}
	return abci.ResponseCheckTx{Log: res.Log}
}

func failure(phase string, err error, debug bool) (uint32, string) {
	code, log := errors.ResultInfo(err, debug)
	return code, "cannot " + phase + " tx: " + log
}
