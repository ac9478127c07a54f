package block

import (
	"iter"
	"time"

	"ledgerchain.dev/core/account"
)

// EvaluateOptions supplies the chain-state view a block's transactions
// read from and write against. A nil StateGetter/BalanceGetter behaves
// as if every address were untouched and every balance were zero, the
// shape a genesis block or an isolated unit test wants.
type EvaluateOptions struct {
	StateGetter        account.StateGetter
	BalanceGetter      account.BalanceGetter
	PreviousStatesTrie account.StateTrie
}

func defaultStateGetter(account.Address) (any, bool) { return nil, false }

func defaultBalanceGetter(_ account.Address, c account.Currency) account.Amount {
	return account.ZeroAmount(c)
}

// EvaluateActionsPerTx streams every action's evaluation across the
// block's transactions, in §4.4 order, threading each action's output
// state into the getters the next action sees. It performs no
// structural validation of its own; callers that need §4.6 checks
// first should call Validate, which is exactly what Evaluate does
// before calling this.
func (b *Block) EvaluateActionsPerTx(opts EvaluateOptions) iter.Seq2[TxActionEvaluation, error] {
	return func(yield func(TxActionEvaluation, error) bool) {
		stateGetter := opts.StateGetter
		if stateGetter == nil {
			stateGetter = defaultStateGetter
		}
		balanceGetter := opts.BalanceGetter
		if balanceGetter == nil {
			balanceGetter = defaultBalanceGetter
		}

		var miner account.Address
		if b.Header.Miner != nil {
			miner = *b.Header.Miner
		}

		for _, tx := range b.Transactions {
			delta := account.NewAccountStateDelta(stateGetter, balanceGetter, tx.Signer())
			seq := tx.EvaluateActionsGradually(b.Header.PreEvaluationHash, b.Header.Index, delta, miner, opts.PreviousStatesTrie)
			for ev, err := range seq {
				if err != nil {
					yield(TxActionEvaluation{}, err)
					return
				}
				if !yield(TxActionEvaluation{Transaction: tx, Evaluation: ev}, nil) {
					return
				}
				if ev.OutputStates != nil {
					stateGetter = ev.OutputStates.GetState
					balanceGetter = ev.OutputStates.GetBalance
				}
			}
		}
	}
}

// Evaluate validates the block, then replays every transaction's
// actions in order, rejecting the block if any transaction's actions
// touch an address outside the set it declared via UpdatedAddresses.
// The miner must be present on the header; evaluation is meaningless
// without a reward beneficiary, so this fails loudly up front rather
// than surfacing a nil-pointer panic deep inside action evaluation.
func (b *Block) Evaluate(currentTime time.Time, opts EvaluateOptions) ([]ActionEvaluation, error) {
	if err := b.Validate(currentTime); err != nil {
		return nil, err
	}
	if b.Header.Miner == nil {
		return nil, blockerr(ErrMinerRequired, "block has no reward beneficiary; cannot evaluate actions")
	}

	var evaluations []ActionEvaluation
	var currentTx Transaction
	var lastOutput account.OutputStates

	checkAndReset := func() error {
		if currentTx == nil || lastOutput == nil {
			return nil
		}
		touched := lastOutput.UpdatedAddresses()
		declared := currentTx.UpdatedAddresses()
		if !touched.IsSubsetOf(declared) {
			excess := touched.Subtract(declared)
			return blockerr(ErrInvalidTxUpdatedAddresses, "transaction %x touched undeclared addresses: %v", currentTx.ID(), excess)
		}
		return nil
	}

	for pair, err := range b.EvaluateActionsPerTx(opts) {
		if err != nil {
			return nil, err
		}
		if pair.Transaction != currentTx {
			if err := checkAndReset(); err != nil {
				return nil, err
			}
			currentTx = pair.Transaction
			lastOutput = nil
		}
		evaluations = append(evaluations, pair.Evaluation)
		lastOutput = pair.Evaluation.OutputStates
	}
	if err := checkAndReset(); err != nil {
		return nil, err
	}

	return evaluations, nil
}
