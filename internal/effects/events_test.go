package effects

import (
	"encoding/base64"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeOp(source, contract string) Operation {
	return Operation{
		Type:   OpInvokeHostFunction,
		Source: source,
		HostFunction: &HostFunction{
			Kind:     HostFnInvokeContract,
			Contract: contract,
			Function: "run",
		},
	}
}

func diagEvent(contract string, topics []Value, data Value) Event {
	return Event{
		Contract:         contract,
		Type:             EventDiagnostic,
		InSuccessfulCall: true,
		Topics:           topics,
		Data:             data,
	}
}

func TestCallStackReconstruction(t *testing.T) {
	caller := gaddr(0xf0)
	c1 := caddr(0xf1)
	c2 := caddr(0xf2)

	returnRaw := []byte{0xde, 0xad}
	diag := []Event{
		diagEvent(c1, []Value{Sym("fn_call"), Addr(c1), Sym("swap")}, VecVal(I128FromInt64(5), I128FromInt64(7))),
		diagEvent(c2, []Value{Sym("fn_call"), Addr(c2), Sym("transfer")}, I128FromInt64(5)),
		diagEvent(c2, []Value{Sym("fn_return"), Sym("transfer")}, Value{Kind: KindI128, I128: big.NewInt(1), Raw: returnRaw}),
		diagEvent(c1, []Value{Sym("fn_return"), Sym("swap")}, Void()),
	}

	list := analyze(t, invokeOp(caller, c1), nil, nil, Options{ProcessSystemEvents: true}, nil, diag)

	require.Equal(t, []EffectType{EffectContractInvoked, EffectContractInvoked}, effectTypes(list))

	top := list[0]
	assert.Equal(t, c1, top.Contract)
	assert.Equal(t, "swap", top.Function)
	assert.Nil(t, top.Depth)
	assert.Empty(t, top.Result)
	require.Len(t, top.Args, 2)

	nested := list[1]
	assert.Equal(t, c2, nested.Contract)
	assert.Equal(t, "transfer", nested.Function)
	require.NotNil(t, nested.Depth)
	assert.Equal(t, 1, *nested.Depth)
	// Non-void return values are reported verbatim from their encoding.
	assert.Equal(t, base64.StdEncoding.EncodeToString(returnRaw), nested.Result)
	require.Len(t, nested.Args, 1)
}

func TestFnReturnWithoutCall(t *testing.T) {
	c1 := caddr(0xf3)
	diag := []Event{diagEvent(c1, []Value{Sym("fn_return"), Sym("run")}, Void())}
	_, _, err := NewEngine(invokeOp(gaddr(0xf4), c1), nil, nil, Options{ProcessSystemEvents: true}).Analyze(nil, diag)
	require.ErrorIs(t, err, ErrUnexpectedEvent)
}

func TestUnbalancedCallStack(t *testing.T) {
	c1 := caddr(0xf5)
	diag := []Event{diagEvent(c1, []Value{Sym("fn_call"), Addr(c1), Sym("run")}, Void())}
	_, _, err := NewEngine(invokeOp(gaddr(0xf6), c1), nil, nil, Options{ProcessSystemEvents: true}).Analyze(nil, diag)
	require.ErrorIs(t, err, ErrUnexpectedEvent)
}

func TestDiagnosticEventOutsideSuccessfulCall(t *testing.T) {
	c1 := caddr(0xf7)
	ev := diagEvent(c1, []Value{Sym("fn_call"), Addr(c1), Sym("run")}, Void())
	ev.InSuccessfulCall = false
	_, _, err := NewEngine(invokeOp(gaddr(0xf8), c1), nil, nil, Options{ProcessSystemEvents: true}).Analyze(nil, []Event{ev})
	require.ErrorIs(t, err, ErrUnexpectedEvent)
}

func TestTransferOfContractToken(t *testing.T) {
	token := caddr(0x01)
	from := gaddr(0x02)
	to := gaddr(0x03)
	c1 := caddr(0x04)

	diag := []Event{
		diagEvent(c1, []Value{Sym("fn_call"), Addr(c1), Sym("go")}, Void()),
		diagEvent(token, []Value{Sym("transfer"), Addr(from), Addr(to)}, I128FromInt64(250)),
		diagEvent(c1, []Value{Sym("fn_return"), Sym("go")}, Void()),
	}
	list := analyze(t, invokeOp(gaddr(0x05), c1), nil, nil, Options{ProcessSystemEvents: true}, nil, diag)

	require.Equal(t, []EffectType{EffectContractInvoked, EffectAccountDebited, EffectAccountCredited}, effectTypes(list))
	assert.Equal(t, from, list[1].Source)
	assert.Equal(t, token, list[1].Asset)
	assert.Equal(t, "250", list[1].Amount)
	assert.Equal(t, to, list[2].Source)
	assert.Equal(t, "250", list[2].Amount)
}

func TestTransferOfClassicAssetGatedOnContractParties(t *testing.T) {
	issuer := gaddr(0x06)
	asset := "USD:" + issuer
	sender := gaddr(0x07)
	vault := caddr(0x08)
	c1 := caddr(0x09)

	diag := []Event{
		diagEvent(c1, []Value{Sym("fn_call"), Addr(c1), Sym("deposit")}, Void()),
		diagEvent(c1, []Value{Sym("transfer"), Addr(sender), Addr(vault), Str(asset)}, I128FromInt64(100)),
		diagEvent(c1, []Value{Sym("fn_return"), Sym("deposit")}, Void()),
	}
	// The sender side is ledger-native and shows up as a trustline diff.
	changes := []Change{trustlineChange(sender, asset, "100", "0")}

	list := analyze(t, invokeOp(sender, c1), changes, nil, Options{ProcessSystemEvents: true}, nil, diag)

	// The event contributes only the contract-held side; the account side
	// came from the ledger diff.
	require.Equal(t, []EffectType{EffectAccountDebited, EffectContractInvoked, EffectAccountCredited}, effectTypes(list))
	assert.Equal(t, sender, list[0].Source)
	assert.Equal(t, vault, list[2].Source)
	assert.Equal(t, asset, list[2].Asset)
}

func TestTransferBetweenAccountsContributesNothing(t *testing.T) {
	issuer := gaddr(0x0a)
	asset := "USD:" + issuer
	from := gaddr(0x0b)
	to := gaddr(0x0c)
	c1 := caddr(0x0d)

	diag := []Event{
		diagEvent(c1, []Value{Sym("fn_call"), Addr(c1), Sym("pay")}, Void()),
		diagEvent(c1, []Value{Sym("transfer"), Addr(from), Addr(to), Str(asset)}, I128FromInt64(9)),
		diagEvent(c1, []Value{Sym("fn_return"), Sym("pay")}, Void()),
	}
	changes := []Change{
		trustlineChange(from, asset, "9", "0"),
		trustlineChange(to, asset, "0", "9"),
	}
	list := analyze(t, invokeOp(from, c1), changes, nil, Options{ProcessSystemEvents: true}, nil, diag)

	require.Equal(t, []EffectType{EffectAccountDebited, EffectAccountCredited, EffectContractInvoked}, effectTypes(list))
}

func TestMintEvent(t *testing.T) {
	issuer := gaddr(0x0e)
	asset := "USD:" + issuer
	admin := gaddr(0x0f)
	to := gaddr(0x10)
	token := caddr(0x11)

	diag := []Event{
		diagEvent(token, []Value{Sym("fn_call"), Addr(token), Sym("mint")}, Void()),
		diagEvent(token, []Value{Sym("mint"), Addr(admin), Addr(to), Str(asset)}, I128FromInt64(500)),
		diagEvent(token, []Value{Sym("fn_return"), Sym("mint")}, Void()),
	}
	list := analyze(t, invokeOp(admin, token), nil, nil, Options{ProcessSystemEvents: true}, nil, diag)

	require.Equal(t, []EffectType{EffectContractInvoked, EffectAssetMinted, EffectAccountCredited}, effectTypes(list))
	assert.Equal(t, asset, list[1].Asset)
	assert.Equal(t, "500", list[1].Amount)
	assert.Equal(t, to, list[2].Source)
	assert.Equal(t, "500", list[2].Amount)
}

func TestBurnEvent(t *testing.T) {
	from := gaddr(0x12)
	token := caddr(0x13)

	sac, err := NewSacMap(8)
	require.NoError(t, err)
	issuer := gaddr(0x14)
	asset := "EUR:" + issuer
	sac.Put(asset, token)

	diag := []Event{
		diagEvent(token, []Value{Sym("fn_call"), Addr(token), Sym("burn")}, Void()),
		diagEvent(token, []Value{Sym("burn"), Addr(from)}, I128FromInt64(77)),
		diagEvent(token, []Value{Sym("fn_return"), Sym("burn")}, Void()),
	}
	list := analyze(t, invokeOp(from, token), nil, nil, Options{ProcessSystemEvents: true, MapSac: true, Sac: sac}, nil, diag)

	// The emitting contract resolves to its classic asset via the map.
	require.Equal(t, []EffectType{EffectContractInvoked, EffectAccountDebited, EffectAssetBurned}, effectTypes(list))
	assert.Equal(t, asset, list[1].Asset)
	assert.Equal(t, from, list[1].Source)
	assert.Equal(t, asset, list[2].Asset)
	assert.Equal(t, "77", list[2].Amount)
}

func TestClawbackEventNotImplemented(t *testing.T) {
	token := caddr(0x15)
	admin := gaddr(0x16)
	from := gaddr(0x17)

	diag := []Event{
		diagEvent(token, []Value{Sym("fn_call"), Addr(token), Sym("clawback")}, Void()),
		diagEvent(token, []Value{Sym("clawback"), Addr(admin), Addr(from)}, I128FromInt64(5)),
	}
	_, _, err := NewEngine(invokeOp(admin, token), nil, nil, Options{ProcessSystemEvents: true}).Analyze(nil, diag)
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestNonStandardTokenEventRejected(t *testing.T) {
	token := caddr(0x18)
	diag := []Event{
		diagEvent(token, []Value{Sym("fn_call"), Addr(token), Sym("t")}, Void()),
		// transfer requires two address topics.
		diagEvent(token, []Value{Sym("transfer"), Addr(gaddr(0x19)), U32Val(4)}, I128FromInt64(5)),
	}
	_, _, err := NewEngine(invokeOp(gaddr(0x1a), token), nil, nil, Options{ProcessSystemEvents: true}).Analyze(nil, diag)
	require.ErrorIs(t, err, ErrNonStandardEvent)
}

func TestUnrecognizedDiagnosticEventNoted(t *testing.T) {
	token := caddr(0x1b)
	diag := []Event{
		diagEvent(token, []Value{Sym("fn_call"), Addr(token), Sym("t")}, Void()),
		diagEvent(token, []Value{Sym("approve"), Addr(gaddr(0x1c))}, I128FromInt64(5)),
		diagEvent(token, []Value{Sym("fn_return"), Sym("t")}, Void()),
	}
	list, diags, err := NewEngine(invokeOp(gaddr(0x1d), token), nil, nil, Options{ProcessSystemEvents: true}).Analyze(nil, diag)
	require.NoError(t, err)
	require.Equal(t, []EffectType{EffectContractInvoked}, effectTypes(list))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Msg, "approve")
}

func TestContractEventsEmitted(t *testing.T) {
	c1 := caddr(0x1e)
	events := []Event{
		{
			Contract: c1,
			Type:     EventContract,
			Topics:   []Value{Sym("price_update"), Sym("USD")},
			Data:     I128FromInt64(101),
		},
		// Internal storage writes are bookkeeping, not observable facts.
		{
			Contract: c1,
			Type:     EventContract,
			Topics:   []Value{Sym("DATA"), Sym("set")},
			Data:     I128FromInt64(1),
		},
	}
	list := analyze(t, invokeOp(gaddr(0x1f), c1), nil, nil, Options{}, events, nil)

	// Without diagnostic events the host-function handler reports the
	// top-level invocation itself.
	require.Equal(t, []EffectType{EffectContractInvoked, EffectContractEvent}, effectTypes(list))
	ev := list[1]
	assert.Equal(t, c1, ev.Contract)
	require.Len(t, ev.Topics, 2)
	require.NotNil(t, ev.Data)
}
