package effects

// Operation is the immutable descriptor of the operation being analyzed.
// Type selects the handler; Source is required. The remaining fields are
// operation-kind-specific parameters, optional where the operation may omit
// them. The engine never mutates an Operation.
type Operation struct {
	Type   OpType `json:"type"`
	Source string `json:"source"`

	// Payment-like parameters.
	Destination string `json:"destination,omitempty"`
	Asset       string `json:"asset,omitempty"`
	Amount      string `json:"amount,omitempty"`

	// Trust parameters.
	Trustor    string  `json:"trustor,omitempty"`
	SetFlags   *uint32 `json:"setFlags,omitempty"`
	ClearFlags *uint32 `json:"clearFlags,omitempty"`

	// Offer parameters.
	OfferID int64  `json:"offerId,omitempty"`
	Selling string `json:"selling,omitempty"`
	Buying  string `json:"buying,omitempty"`
	Price   string `json:"price,omitempty"`

	// Liquidity pool parameters.
	PoolID string `json:"poolId,omitempty"`

	// Claimable balance parameters.
	BalanceID string `json:"balanceId,omitempty"`

	// Data entry parameters.
	Name string `json:"name,omitempty"`

	// bumpSequence parameter.
	BumpTo string `json:"bumpTo,omitempty"`

	// revokeSponsorship signer parameter.
	SignerKey string `json:"signerKey,omitempty"`

	// Soroban parameter.
	HostFunction *HostFunction `json:"hostFunction,omitempty"`
}

// Host function kinds recognized by the invokeHostFunction handler.
const (
	HostFnInvokeContract     = "invokeContract"
	HostFnCreateContract     = "createContract"
	HostFnCreateStellarAsset = "createStellarAsset"
	HostFnUploadWasm         = "uploadWasm"
)

// HostFunction is the decoded host-function payload of an
// invokeHostFunction operation. Contract ids are pre-derived by the
// deterministic contract-id collaborator.
type HostFunction struct {
	Kind     string  `json:"kind"`
	Contract string  `json:"contract,omitempty"`
	Function string  `json:"function,omitempty"`
	Args     []Value `json:"args,omitempty"`
	Asset    string  `json:"asset,omitempty"`
	WasmHash string  `json:"wasmHash,omitempty"`
}

// ClaimedOffer is one order-book or pool fill recorded in the operation
// result, seen from the resting offer's side: the seller gave Sold and
// received Bought.
type ClaimedOffer struct {
	Seller       string `json:"seller"`
	OfferID      int64  `json:"offerId,omitempty"`
	Pool         string `json:"pool,omitempty"`
	SoldAsset    string `json:"soldAsset"`
	SoldAmount   string `json:"soldAmount"`
	BoughtAsset  string `json:"boughtAsset"`
	BoughtAmount string `json:"boughtAmount"`
}

// Result is the operation-level execution result the engine consumes.
// Only fields the effect derivation needs are modeled.
type Result struct {
	ClaimedOffers []ClaimedOffer `json:"claimedOffers,omitempty"`
}
