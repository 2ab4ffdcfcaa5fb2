package effects

import (
	"encoding/base64"
	"fmt"

	"stellareffects/internal/addr"
)

// Topic vocabulary of the diagnostic and token event streams.
const (
	topicFnCall   = "fn_call"
	topicFnReturn = "fn_return"
	topicTransfer = "transfer"
	topicMint     = "mint"
	topicBurn     = "burn"
	topicClawback = "clawback"

	// Contract events carrying this leading topic pair record an internal
	// data-storage write and are not user-observable.
	storageWriteTopic  = "DATA"
	storageWriteAction = "set"
)

// topicShape declares the expected kind of one topic position, matched
// positionally against topics[1..].
type topicShape struct {
	kind     ValueKind
	optional bool
}

// validateTopics checks an event's topics against a declared shape.
// A missing required topic or a kind mismatch makes the event non-standard
// and aborts the analysis. Up to one topic beyond the declared shape is
// tolerated unchecked.
func validateTopics(ev *Event, shape ...topicShape) error {
	for i, s := range shape {
		pos := i + 1
		if pos >= len(ev.Topics) {
			if s.optional {
				continue
			}
			return fmt.Errorf("%w: %s event missing topic %d (%s)", ErrNonStandardEvent, ev.topicSym(0), pos, s.kind)
		}
		got := ev.Topics[pos].Kind
		if got != s.kind {
			// Token events name the asset with either a string or symbol.
			if s.kind == KindString && got == KindSymbol {
				continue
			}
			return fmt.Errorf("%w: %s event topic %d is %s, want %s", ErrNonStandardEvent, ev.topicSym(0), pos, got, s.kind)
		}
	}
	return nil
}

// processEvents turns contract-emitted events into contract-event effects.
func (ng *Engine) processEvents() error {
	for i := range ng.events {
		ev := &ng.events[i]
		if ev.Type == EventDiagnostic {
			continue
		}
		if ev.topicSym(0) == storageWriteTopic && ev.topicSym(1) == storageWriteAction {
			continue
		}
		data := ev.Data
		ng.append(Effect{
			Type:     EffectContractEvent,
			Contract: ev.Contract,
			Topics:   ev.Topics,
			Data:     &data,
		})
	}
	return nil
}

// processDiagnosticEvents interprets the diagnostic event stream,
// reconstructing the call stack of nested invocations and recognizing the
// standard token-contract vocabulary.
func (ng *Engine) processDiagnosticEvents() error {
	if !ng.opts.ProcessSystemEvents || len(ng.diagEvents) == 0 {
		return nil
	}
	for i := range ng.diagEvents {
		ev := &ng.diagEvents[i]
		if !ev.InSuccessfulCall {
			return fmt.Errorf("%w: diagnostic event outside a successful contract call", ErrUnexpectedEvent)
		}
		if err := ng.processDiagnosticEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

func (ng *Engine) processDiagnosticEvent(ev *Event) error {
	switch ev.topicSym(0) {
	case topicFnCall:
		return ng.handleFnCall(ev)
	case topicFnReturn:
		return ng.handleFnReturn(ev)
	case topicTransfer:
		return ng.handleTransfer(ev)
	case topicMint:
		return ng.handleMint(ev)
	case topicBurn:
		return ng.handleBurn(ev)
	case topicClawback:
		if err := validateTopics(ev, topicShape{kind: KindAddress}, topicShape{kind: KindAddress}, topicShape{kind: KindString, optional: true}); err != nil {
			return err
		}
		// Whether clawbacks debit the holder and credit the admin is still
		// unsettled upstream.
		return fmt.Errorf("clawback event: %w", ErrNotImplemented)
	}
	ng.note(fmt.Sprintf("unrecognized diagnostic event topic %q", ng.describeTopic(ev)), ev)
	return nil
}

func (ng *Engine) describeTopic(ev *Event) string {
	if len(ev.Topics) == 0 {
		return ""
	}
	if s := ev.topicSym(0); s != "" {
		return s
	}
	return string(ev.Topics[0].Kind)
}

func (ng *Engine) handleFnCall(ev *Event) error {
	if len(ev.Topics) < 3 {
		return fmt.Errorf("%w: fn_call event carries %d topics", ErrNonStandardEvent, len(ev.Topics))
	}
	contract := ev.Topics[1].Address
	if contract == "" && ev.Topics[1].Kind == KindBytes {
		contract = ev.Contract
	}
	if ev.Topics[2].Kind != KindSymbol {
		return fmt.Errorf("%w: fn_call function topic is %s", ErrNonStandardEvent, ev.Topics[2].Kind)
	}

	e := Effect{
		Type:     EffectContractInvoked,
		Contract: contract,
		Function: ev.Topics[2].Sym,
		Args:     callArgs(ev.Data),
	}
	// Only nested calls carry a depth; it equals the number of enclosing
	// calls at the moment the invocation starts.
	depth := len(ng.stack)
	if depth > 0 {
		d := depth
		e.Depth = &d
	}
	handle := ng.append(e)
	ng.stack = append(ng.stack, callFrame{handle: handle, depth: depth})
	return nil
}

// callArgs flattens a decoded fn_call payload into the argument list.
func callArgs(data Value) []Value {
	switch {
	case data.IsVoid():
		return nil
	case data.Kind == KindVec:
		return data.Vec
	default:
		return []Value{data}
	}
}

func (ng *Engine) handleFnReturn(ev *Event) error {
	if ev.Type != EventDiagnostic {
		return nil
	}
	if len(ng.stack) == 0 {
		return fmt.Errorf("%w: fn_return without a matching call", ErrUnexpectedEvent)
	}
	frame := ng.stack[len(ng.stack)-1]
	ng.stack = ng.stack[:len(ng.stack)-1]
	if ev.Data.IsVoid() {
		return nil
	}
	// The frame and the appended invocation effect are the same record:
	// patching by handle attaches the deferred result.
	ng.list.Get(frame.handle).Result = base64.StdEncoding.EncodeToString(ev.Data.Raw)
	return nil
}

func (ng *Engine) handleTransfer(ev *Event) error {
	if err := validateTopics(ev, topicShape{kind: KindAddress}, topicShape{kind: KindAddress}, topicShape{kind: KindString, optional: true}); err != nil {
		return err
	}
	amt, ok := ev.Data.BigAmount()
	if !ok {
		return fmt.Errorf("%w: transfer event payload is not an amount", ErrNonStandardEvent)
	}
	from := ev.Topics[1].Address
	to := ev.Topics[2].Address
	asset := ng.resolveEventAsset(ev, 3)

	if isContractAsset(asset) {
		// Contract-native balances never appear in ledger-entry diffs.
		ng.debit(amt.String(), asset, from, "")
		ng.credit(amt.String(), asset, to, "")
		return nil
	}
	// Ledger-native holdings of regular accounts are already captured by
	// the ledger-diff classification; only contract-held balances need
	// event-derived movement.
	if addr.IsContract(from) {
		ng.debit(amt.String(), asset, from, "")
	}
	if addr.IsContract(to) {
		ng.credit(amt.String(), asset, to, "")
	}
	return nil
}

func (ng *Engine) handleMint(ev *Event) error {
	if err := validateTopics(ev, topicShape{kind: KindAddress}, topicShape{kind: KindAddress}, topicShape{kind: KindString, optional: true}); err != nil {
		return err
	}
	amt, ok := ev.Data.BigAmount()
	if !ok {
		return fmt.Errorf("%w: mint event payload is not an amount", ErrNonStandardEvent)
	}
	asset := ng.resolveEventAsset(ev, 3)
	ng.append(Effect{
		Type:   EffectAssetMinted,
		Asset:  asset,
		Amount: amt.String(),
	})
	ng.credit(amt.String(), asset, ev.Topics[2].Address, "")
	return nil
}

func (ng *Engine) handleBurn(ev *Event) error {
	if err := validateTopics(ev, topicShape{kind: KindAddress}, topicShape{kind: KindString, optional: true}); err != nil {
		return err
	}
	amt, ok := ev.Data.BigAmount()
	if !ok {
		return fmt.Errorf("%w: burn event payload is not an amount", ErrNonStandardEvent)
	}
	asset := ng.resolveEventAsset(ev, 2)
	ng.debit(amt.String(), asset, ev.Topics[1].Address, "")
	ng.append(Effect{
		Type:   EffectAssetBurned,
		Asset:  asset,
		Amount: amt.String(),
	})
	return nil
}

// resolveEventAsset determines the asset a token event refers to: the
// asset-naming topic when present, otherwise the emitting contract mapped
// back to its classic asset when the SAC map knows it, otherwise the
// contract id itself.
func (ng *Engine) resolveEventAsset(ev *Event, topicIdx int) string {
	if topicIdx < len(ev.Topics) {
		t := ev.Topics[topicIdx]
		switch t.Kind {
		case KindString:
			if t.Str != "" {
				return t.Str
			}
		case KindSymbol:
			if t.Sym != "" {
				return t.Sym
			}
		}
	}
	if ng.opts.MapSac && ng.opts.Sac != nil {
		if asset, ok := ng.opts.Sac.AssetFor(ev.Contract); ok {
			return asset
		}
	}
	return ev.Contract
}

// correlateContractBalance patches the balance of a previously derived
// debit or credit with the authoritative post-write balance from a token
// contract's balance entry. Best effort: zero or multiple candidate
// effects mean the correlation is ambiguous and nothing happens.
func (ng *Engine) correlateContractBalance(c *Change) {
	s := c.state().ContractData
	if s == nil {
		return
	}
	key := s.Key
	if key.Kind != KindVec || len(key.Vec) != 2 {
		return
	}
	if key.Vec[0].Kind != KindSymbol || key.Vec[0].Sym != "Balance" || key.Vec[1].Kind != KindAddress {
		return
	}
	holder := key.Vec[1].Address

	asset := s.Owner
	if ng.opts.MapSac && ng.opts.Sac != nil {
		if a, ok := ng.opts.Sac.AssetFor(s.Owner); ok {
			asset = a
		}
	}

	balance := "0"
	if c.Action != ActionRemoved {
		v, ok := c.After.ContractData.Val.MapGet("amount")
		if !ok {
			return
		}
		amt, ok := v.BigAmount()
		if !ok {
			return
		}
		balance = amt.String()
	}

	matches := ng.list.FindAll(func(e *Effect) bool {
		return (e.Type == EffectAccountDebited || e.Type == EffectAccountCredited) &&
			e.Source == holder && e.Asset == asset
	})
	if len(matches) != 1 {
		return
	}
	ng.list.Get(matches[0]).Balance = balance
}
