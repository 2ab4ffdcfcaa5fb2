package effects

// AssetAmount pairs an asset with an amount, used by trade and
// liquidity-pool effects.
type AssetAmount struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

// Claimant is one claimant of a claimable balance. The predicate is kept in
// its decoded form; the engine never evaluates it.
type Claimant struct {
	Destination string `json:"destination"`
	Predicate   *Value `json:"predicate,omitempty"`
}

// Thresholds are the low/medium/high operation thresholds of an account.
type Thresholds struct {
	Low  uint32 `json:"low"`
	Med  uint32 `json:"med"`
	High uint32 `json:"high"`
}

// Effect is one derived fact. Type tags the kind; all other fields are
// optional and populated per kind. Order within a List is semantically
// significant: consumers read it as the order the facts became true.
type Effect struct {
	Type   EffectType `json:"type"`
	Source string     `json:"source"`

	// Balance movement.
	Asset   string `json:"asset,omitempty"`
	Amount  string `json:"amount,omitempty"`
	Balance string `json:"balance,omitempty"`

	// Account facts.
	Account        string      `json:"account,omitempty"`
	Sequence       string      `json:"sequence,omitempty"`
	HomeDomain     string      `json:"homeDomain,omitempty"`
	Thresholds     *Thresholds `json:"thresholds,omitempty"`
	Flags          *uint32     `json:"flags,omitempty"`
	PrevFlags      *uint32     `json:"prevFlags,omitempty"`
	InflationDest  string      `json:"inflationDestination,omitempty"`
	Signer         string      `json:"signer,omitempty"`
	Weight         *uint32     `json:"weight,omitempty"`

	// Sponsorship facts.
	Sponsor     string `json:"sponsor,omitempty"`
	PrevSponsor string `json:"prevSponsor,omitempty"`

	// Trustline facts.
	Trustor string `json:"trustor,omitempty"`
	Limit   string `json:"limit,omitempty"`

	// Offer and trade facts.
	OfferID int64         `json:"offer,omitempty"`
	Seller  string        `json:"seller,omitempty"`
	Price   string        `json:"price,omitempty"`
	Assets  []AssetAmount `json:"assets,omitempty"`

	// Liquidity pool facts.
	Pool     string `json:"pool,omitempty"`
	Shares   string `json:"shares,omitempty"`
	Accounts int64  `json:"accounts,omitempty"`

	// Claimable balance facts.
	BalanceID string     `json:"balanceId,omitempty"`
	Claimants []Claimant `json:"claimants,omitempty"`

	// Data entry facts.
	Name      string `json:"name,omitempty"`
	Value     string `json:"value,omitempty"`
	PrevValue string `json:"prevValue,omitempty"`

	// Contract facts.
	Contract     string  `json:"contract,omitempty"`
	ContractKind string  `json:"contractKind,omitempty"`
	WasmHash     string  `json:"wasmHash,omitempty"`
	PrevWasmHash string  `json:"prevWasmHash,omitempty"`
	Function     string  `json:"function,omitempty"`
	Args         []Value `json:"args,omitempty"`
	Depth        *int    `json:"depth,omitempty"`
	Result       string  `json:"result,omitempty"`
	Topics       []Value `json:"topics,omitempty"`
	Data         *Value  `json:"data,omitempty"`

	// Contract data facts.
	Owner      string `json:"owner,omitempty"`
	Key        *Value `json:"key,omitempty"`
	EntryValue *Value `json:"entryValue,omitempty"`
	PrevEntry  *Value `json:"prevEntryValue,omitempty"`
	Durability string `json:"durability,omitempty"`

	// Fee facts.
	Bid     string `json:"bid,omitempty"`
	Charged string `json:"charged,omitempty"`
	FeeBump bool   `json:"feeBump,omitempty"`
}
