// Package effects derives the ordered list of semantic effects produced by
// one ledger operation from the record of what the operation changed: the
// before/after snapshots of the ledger entries it touched plus any
// contract-emitted events.
//
// The engine is a pure function of already-decoded inputs. Binary metadata
// decoding, contract value decoding, key encoding and contract-id
// derivation are external collaborators.
package effects

import (
	"errors"
	"fmt"

	"stellareffects/internal/addr"
	"stellareffects/internal/amount"
)

// SignerDiffer produces signer-list change effects from before/after
// account snapshots. The engine appends its output verbatim during account
// change classification.
type SignerDiffer interface {
	Diff(before, after *AccountSnapshot) []Effect
}

// Options configures an Engine.
type Options struct {
	// MapSac maintains an asset to contract address map so token events of
	// Stellar Asset Contracts resolve to their classic asset.
	MapSac bool

	// ProcessSystemEvents enables interpretation of diagnostic events.
	// A no-op when no diagnostic events were supplied.
	ProcessSystemEvents bool

	// Network is the network passphrase, forwarded to the contract-id
	// deriving collaborator when host functions pre-derive ids.
	Network string

	// Sac is the shared asset/contract resolution cache used when MapSac
	// is set. Optional; resolution degrades to contract ids without it.
	Sac *SacMap

	// SignerDiffer overrides the built-in signer-list differ.
	SignerDiffer SignerDiffer
}

// callFrame tracks one in-flight contract invocation. handle addresses the
// already-appended invocation effect, so patching the frame patches the
// effect.
type callFrame struct {
	handle int
	depth  int
}

// Engine derives effects for exactly one operation and is then discarded.
// It owns the effect list and the invocation call stack; collaborating
// passes read and append to the same list but never own it.
type Engine struct {
	op      Operation
	changes []Change
	result  *Result
	opts    Options

	list       *List
	stack      []callFrame
	events     []Event
	diagEvents []Event
	diags      []Diagnostic
	spent      bool
}

// NewEngine creates a single-use engine for one operation's changes.
func NewEngine(op Operation, changes []Change, result *Result, opts Options) *Engine {
	if opts.SignerDiffer == nil {
		opts.SignerDiffer = BasicSignerDiffer{}
	}
	return &Engine{
		op:      op,
		changes: changes,
		result:  result,
		opts:    opts,
		list:    NewList(),
	}
}

// Analyze runs the full derivation pass and returns the ordered effect
// list together with non-fatal diagnostics. Any error aborts the whole
// operation: no partial effect list is valid.
func (ng *Engine) Analyze(events, diagnosticEvents []Event) ([]Effect, []Diagnostic, error) {
	if ng.spent {
		return nil, nil, errors.New("effects engine is single-use")
	}
	ng.spent = true

	if ng.op.Source == "" {
		return nil, nil, ErrMissingSource
	}
	src, err := addr.Normalize(ng.op.Source)
	if err != nil {
		return nil, nil, err
	}
	ng.op.Source = src

	for i := range ng.changes {
		if err := ng.changes[i].Validate(); err != nil {
			return nil, nil, err
		}
	}

	ng.events = events
	ng.diagEvents = diagnosticEvents

	// Operation-specific effects first. Kinds without a handler rely on
	// change classification alone.
	if handler, ok := opHandlers[ng.op.Type]; ok {
		if err := handler(ng); err != nil {
			return nil, nil, err
		}
	}

	for i := range ng.changes {
		if err := ng.classifyChange(&ng.changes[i]); err != nil {
			return nil, nil, err
		}
	}

	for i := range ng.changes {
		if err := ng.applySponsorship(&ng.changes[i]); err != nil {
			return nil, nil, err
		}
	}

	if err := ng.processEvents(); err != nil {
		return nil, nil, err
	}
	if err := ng.processDiagnosticEvents(); err != nil {
		return nil, nil, err
	}
	if len(ng.stack) != 0 {
		return nil, nil, fmt.Errorf("%w: %d contract calls without a matching return", ErrUnexpectedEvent, len(ng.stack))
	}

	if err := ng.reconcileAssetSupply(); err != nil {
		return nil, nil, err
	}
	if err := ng.reconcileInstanceStorage(); err != nil {
		return nil, nil, err
	}

	return ng.list.Effects(), ng.diags, nil
}

// append adds an effect, defaulting its source to the operation source.
func (ng *Engine) append(e Effect) int {
	if e.Source == "" {
		e.Source = ng.op.Source
	}
	return ng.list.Append(e)
}

// credit appends an account-credited effect. A zero-value credit is not an
// observable fact and appends nothing.
func (ng *Engine) credit(amt, asset, source, balance string) {
	if amount.IsZero(amt) {
		return
	}
	ng.append(Effect{
		Type:    EffectAccountCredited,
		Source:  source,
		Asset:   asset,
		Amount:  amt,
		Balance: balance,
	})
}

// debit appends an account-debited effect, with the same zero suppression
// as credit.
func (ng *Engine) debit(amt, asset, source, balance string) {
	if amount.IsZero(amt) {
		return
	}
	ng.append(Effect{
		Type:    EffectAccountDebited,
		Source:  source,
		Asset:   asset,
		Amount:  amt,
		Balance: balance,
	})
}

// note records a non-fatal diagnostic.
func (ng *Engine) note(msg string, ev *Event) {
	ng.diags = append(ng.diags, Diagnostic{Msg: msg, Event: ev})
}
