package effects

// EffectType identifies the kind of fact an effect records.
type EffectType string

// Effect type vocabulary. Every derived fact carries exactly one of these.
const (
	EffectFeeCharged EffectType = "feeCharged"

	EffectAccountCreated  EffectType = "accountCreated"
	EffectAccountRemoved  EffectType = "accountRemoved"
	EffectAccountCredited EffectType = "accountCredited"
	EffectAccountDebited  EffectType = "accountDebited"
	EffectSequenceBumped  EffectType = "sequenceBumped"

	EffectAccountHomeDomainUpdated     EffectType = "accountHomeDomainUpdated"
	EffectAccountThresholdsUpdated     EffectType = "accountThresholdsUpdated"
	EffectAccountFlagsUpdated          EffectType = "accountFlagsUpdated"
	EffectAccountInflationDestUpdated  EffectType = "accountInflationDestinationUpdated"
	EffectAccountSignerCreated         EffectType = "accountSignerCreated"
	EffectAccountSignerUpdated         EffectType = "accountSignerUpdated"
	EffectAccountSignerRemoved         EffectType = "accountSignerRemoved"
	EffectAccountSponsorshipCreated    EffectType = "accountSponsorshipCreated"
	EffectAccountSponsorshipUpdated    EffectType = "accountSponsorshipUpdated"
	EffectAccountSponsorshipRemoved    EffectType = "accountSponsorshipRemoved"
	EffectSignerSponsorshipCreated     EffectType = "accountSignerSponsorshipCreated"
	EffectSignerSponsorshipUpdated     EffectType = "accountSignerSponsorshipUpdated"
	EffectSignerSponsorshipRemoved     EffectType = "accountSignerSponsorshipRemoved"

	EffectTrustlineCreated              EffectType = "trustlineCreated"
	EffectTrustlineUpdated              EffectType = "trustlineUpdated"
	EffectTrustlineRemoved              EffectType = "trustlineRemoved"
	EffectTrustlineAuthorizationUpdated EffectType = "trustlineAuthorizationUpdated"
	EffectTrustlineSponsorshipCreated   EffectType = "trustlineSponsorshipCreated"
	EffectTrustlineSponsorshipUpdated   EffectType = "trustlineSponsorshipUpdated"
	EffectTrustlineSponsorshipRemoved   EffectType = "trustlineSponsorshipRemoved"

	EffectOfferCreated            EffectType = "offerCreated"
	EffectOfferUpdated            EffectType = "offerUpdated"
	EffectOfferRemoved            EffectType = "offerRemoved"
	EffectOfferSponsorshipCreated EffectType = "offerSponsorshipCreated"
	EffectOfferSponsorshipUpdated EffectType = "offerSponsorshipUpdated"
	EffectOfferSponsorshipRemoved EffectType = "offerSponsorshipRemoved"
	EffectTrade                   EffectType = "trade"

	EffectLiquidityPoolCreated   EffectType = "liquidityPoolCreated"
	EffectLiquidityPoolUpdated   EffectType = "liquidityPoolUpdated"
	EffectLiquidityPoolRemoved   EffectType = "liquidityPoolRemoved"
	EffectLiquidityPoolDeposited EffectType = "liquidityPoolDeposited"
	EffectLiquidityPoolWithdrew  EffectType = "liquidityPoolWithdrew"

	EffectClaimableBalanceCreated            EffectType = "claimableBalanceCreated"
	EffectClaimableBalanceRemoved            EffectType = "claimableBalanceRemoved"
	EffectClaimableBalanceSponsorshipCreated EffectType = "claimableBalanceSponsorshipCreated"
	EffectClaimableBalanceSponsorshipUpdated EffectType = "claimableBalanceSponsorshipUpdated"
	EffectClaimableBalanceSponsorshipRemoved EffectType = "claimableBalanceSponsorshipRemoved"

	EffectDataEntryCreated            EffectType = "dataEntryCreated"
	EffectDataEntryUpdated            EffectType = "dataEntryUpdated"
	EffectDataEntryRemoved            EffectType = "dataEntryRemoved"
	EffectDataEntrySponsorshipCreated EffectType = "dataEntrySponsorshipCreated"
	EffectDataEntrySponsorshipUpdated EffectType = "dataEntrySponsorshipUpdated"
	EffectDataEntrySponsorshipRemoved EffectType = "dataEntrySponsorshipRemoved"

	EffectAssetMinted EffectType = "assetMinted"
	EffectAssetBurned EffectType = "assetBurned"

	EffectContractCreated     EffectType = "contractCreated"
	EffectContractUpdated     EffectType = "contractUpdated"
	EffectContractInvoked     EffectType = "contractInvoked"
	EffectContractEvent       EffectType = "contractEvent"
	EffectContractDataCreated EffectType = "contractDataCreated"
	EffectContractDataUpdated EffectType = "contractDataUpdated"
	EffectContractDataRemoved EffectType = "contractDataRemoved"
)

// EntryKind identifies the kind of ledger entry a change refers to.
type EntryKind string

const (
	EntryAccount          EntryKind = "account"
	EntryTrustline        EntryKind = "trustline"
	EntryOffer            EntryKind = "offer"
	EntryLiquidityPool    EntryKind = "liquidityPool"
	EntryClaimableBalance EntryKind = "claimableBalance"
	EntryData             EntryKind = "data"
	EntryContract         EntryKind = "contract"
	EntryContractData     EntryKind = "contractData"
)

// ChangeAction is what happened to a ledger entry.
type ChangeAction string

const (
	ActionCreated ChangeAction = "created"
	ActionUpdated ChangeAction = "updated"
	ActionRemoved ChangeAction = "removed"
)

// OpType identifies the operation kind being analyzed.
type OpType string

const (
	OpCreateAccount                 OpType = "createAccount"
	OpPayment                       OpType = "payment"
	OpPathPaymentStrictReceive      OpType = "pathPaymentStrictReceive"
	OpPathPaymentStrictSend         OpType = "pathPaymentStrictSend"
	OpManageSellOffer               OpType = "manageSellOffer"
	OpManageBuyOffer                OpType = "manageBuyOffer"
	OpCreatePassiveSellOffer        OpType = "createPassiveSellOffer"
	OpSetOptions                    OpType = "setOptions"
	OpChangeTrust                   OpType = "changeTrust"
	OpAllowTrust                    OpType = "allowTrust"
	OpAccountMerge                  OpType = "accountMerge"
	OpInflation                     OpType = "inflation"
	OpManageData                    OpType = "manageData"
	OpBumpSequence                  OpType = "bumpSequence"
	OpCreateClaimableBalance        OpType = "createClaimableBalance"
	OpClaimClaimableBalance         OpType = "claimClaimableBalance"
	OpBeginSponsoringFutureReserves OpType = "beginSponsoringFutureReserves"
	OpEndSponsoringFutureReserves   OpType = "endSponsoringFutureReserves"
	OpRevokeSponsorship             OpType = "revokeSponsorship"
	OpClawback                      OpType = "clawback"
	OpClawbackClaimableBalance      OpType = "clawbackClaimableBalance"
	OpSetTrustLineFlags             OpType = "setTrustLineFlags"
	OpLiquidityPoolDeposit          OpType = "liquidityPoolDeposit"
	OpLiquidityPoolWithdraw         OpType = "liquidityPoolWithdraw"
	OpInvokeHostFunction            OpType = "invokeHostFunction"
	OpExtendFootprintTTL            OpType = "extendFootprintTtl"
	OpRestoreFootprint              OpType = "restoreFootprint"
)

// EventType distinguishes the event streams the interpreter consumes.
type EventType string

const (
	// EventContract is an event emitted by contract code.
	EventContract EventType = "contract"

	// EventSystem is an event emitted by the host on behalf of a contract.
	EventSystem EventType = "system"

	// EventDiagnostic is an observability event captured alongside a
	// successful call; only available when diagnostics were recorded.
	EventDiagnostic EventType = "diagnostic"
)
