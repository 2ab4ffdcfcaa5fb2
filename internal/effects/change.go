package effects

import "fmt"

// Change is one ledger-entry change observed during operation execution,
// already decoded by the metadata-diffing collaborator.
//
// Invariant: created implies Before absent and After present; removed
// implies the reverse; updated implies both present.
type Change struct {
	Kind   EntryKind    `json:"kind"`
	Action ChangeAction `json:"action"`
	Before *Snapshot    `json:"before,omitempty"`
	After  *Snapshot    `json:"after,omitempty"`
}

// Validate checks the before/after presence invariant and that each
// present snapshot carries the entry state matching the change's kind.
func (c *Change) Validate() error {
	switch c.Action {
	case ActionCreated:
		if c.Before != nil || c.After == nil {
			return fmt.Errorf("%w: created %s change must carry only an after snapshot", ErrUnexpectedChange, c.Kind)
		}
	case ActionUpdated:
		if c.Before == nil || c.After == nil {
			return fmt.Errorf("%w: updated %s change must carry both snapshots", ErrUnexpectedChange, c.Kind)
		}
	case ActionRemoved:
		if c.Before == nil || c.After != nil {
			return fmt.Errorf("%w: removed %s change must carry only a before snapshot", ErrUnexpectedChange, c.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrUnexpectedChange, c.Action)
	}
	for _, s := range []*Snapshot{c.Before, c.After} {
		if s != nil && !s.holds(c.Kind) {
			return fmt.Errorf("%w: %s %s change without a %s snapshot", ErrUnexpectedChange, c.Action, c.Kind, c.Kind)
		}
	}
	return nil
}

// state returns the definitive snapshot of the change: the after snapshot
// when present, otherwise the before snapshot.
func (c *Change) state() *Snapshot {
	if c.After != nil {
		return c.After
	}
	return c.Before
}

// Snapshot is the decoded state of one ledger entry at one point in time.
// Exactly one kind-specific field is set, matching the owning change's Kind.
// Sponsor is the entry-level sponsoring account, when the entry's storage
// is subsidized.
type Snapshot struct {
	Sponsor          string                    `json:"sponsor,omitempty"`
	Account          *AccountSnapshot          `json:"account,omitempty"`
	Trustline        *TrustlineSnapshot        `json:"trustline,omitempty"`
	Offer            *OfferSnapshot            `json:"offer,omitempty"`
	LiquidityPool    *LiquidityPoolSnapshot    `json:"liquidityPool,omitempty"`
	ClaimableBalance *ClaimableBalanceSnapshot `json:"claimableBalance,omitempty"`
	Data             *DataSnapshot             `json:"data,omitempty"`
	Contract         *ContractSnapshot         `json:"contract,omitempty"`
	ContractData     *ContractDataSnapshot     `json:"contractData,omitempty"`
}

// holds reports whether the kind-specific state for kind is present.
func (s *Snapshot) holds(kind EntryKind) bool {
	switch kind {
	case EntryAccount:
		return s.Account != nil
	case EntryTrustline:
		return s.Trustline != nil
	case EntryOffer:
		return s.Offer != nil
	case EntryLiquidityPool:
		return s.LiquidityPool != nil
	case EntryClaimableBalance:
		return s.ClaimableBalance != nil
	case EntryData:
		return s.Data != nil
	case EntryContract:
		return s.Contract != nil
	case EntryContractData:
		return s.ContractData != nil
	}
	return false
}

// Signer is one entry of an account's signer list.
type Signer struct {
	Key    string `json:"key"`
	Weight uint32 `json:"weight"`
}

// AccountSnapshot is the decoded state of an account entry.
type AccountSnapshot struct {
	Address       string     `json:"address"`
	Balance       string     `json:"balance"`
	Sequence      string     `json:"sequence,omitempty"`
	Signers       []Signer   `json:"signers,omitempty"`
	Flags         uint32     `json:"flags,omitempty"`
	HomeDomain    string     `json:"homeDomain,omitempty"`
	Thresholds    Thresholds `json:"thresholds"`
	InflationDest string     `json:"inflationDestination,omitempty"`

	// SignerSponsors maps signer key to sponsoring account for signers
	// whose reserve is sponsored.
	SignerSponsors map[string]string `json:"signerSponsors,omitempty"`
}

// TrustlineSnapshot is the decoded state of a trustline entry.
type TrustlineSnapshot struct {
	Account string `json:"account"`
	Asset   string `json:"asset"`
	Balance string `json:"balance"`
	Limit   string `json:"limit"`
	Flags   uint32 `json:"flags"`
}

// OfferSnapshot is the decoded state of an offer entry.
type OfferSnapshot struct {
	Account string `json:"account"`
	ID      int64  `json:"id"`
	Selling string `json:"selling"`
	Buying  string `json:"buying"`
	Amount  string `json:"amount"`
	Price   string `json:"price"`
	Flags   uint32 `json:"flags"`
}

// LiquidityPoolSnapshot is the decoded state of a liquidity pool entry.
// Assets and Amounts are index-aligned.
type LiquidityPoolSnapshot struct {
	PoolID   string   `json:"poolId"`
	Assets   []string `json:"assets"`
	Amounts  []string `json:"amounts"`
	Shares   string   `json:"shares"`
	Accounts int64    `json:"accounts"`
}

// ClaimableBalanceSnapshot is the decoded state of a claimable balance entry.
type ClaimableBalanceSnapshot struct {
	BalanceID string     `json:"balanceId"`
	Asset     string     `json:"asset"`
	Amount    string     `json:"amount"`
	Claimants []Claimant `json:"claimants,omitempty"`
}

// DataSnapshot is the decoded state of a data entry.
type DataSnapshot struct {
	Account string `json:"account"`
	Name    string `json:"name"`
	Value   string `json:"value"`
}

// StorageEntry is one key/value pair of a contract's instance storage.
type StorageEntry struct {
	Key Value `json:"key"`
	Val Value `json:"value"`
}

// ContractSnapshot is the decoded state of a contract entry.
type ContractSnapshot struct {
	ContractID string         `json:"contractId"`
	Kind       string         `json:"contractKind,omitempty"`
	WasmHash   string         `json:"wasmHash,omitempty"`
	Storage    []StorageEntry `json:"storage,omitempty"`
}

// ContractDataSnapshot is the decoded state of a contract data entry.
type ContractDataSnapshot struct {
	Owner      string `json:"owner"`
	Key        Value  `json:"key"`
	Val        Value  `json:"value"`
	Durability string `json:"durability,omitempty"`
}
