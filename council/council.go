package council

import (
	dspCom "github.com/saveio/chain-go-sdk/common"
	"github.com/saveio/chain-go-sdk/config"
	sdkErr "github.com/saveio/chain-go-sdk/error"
	"github.com/saveio/chain-go-sdk/event"
	"github.com/saveio/chain-go-sdk/ledger"
	"github.com/saveio/chain-go-sdk/store"
	chaincom "github.com/saveio/themis/common"
	"github.com/saveio/themis/common/log"
)

// Council governs the privileged membership set. The elder and the big
// brother members gate every other privileged surface of the chain.
type Council struct {
	cfg      *config.ChainConfig
	ledger   ledger.Ledger
	identity IdentityRegistry
	blockNum func() uint64
}

func NewCouncil(cfg *config.ChainConfig, ldg ledger.Ledger, identity IdentityRegistry, blockNum func() uint64) *Council {
	if identity == nil {
		identity = &NopIdentityRegistry{}
	}
	return &Council{
		cfg:      cfg,
		ledger:   ldg,
		identity: identity,
		blockNum: blockNum,
	}
}

// BuildGenesis seeds the elder, the initial membership and the initial fee
// parameters. Refuses to run over a non-empty membership set.
func (this *Council) BuildGenesis(tx *store.StateTx, elder *chaincom.Address, bigBrothers []chaincom.Address) *sdkErr.Error {
	existing, err := tx.GetMembers()
	if err != nil {
		return sdkErr.New(sdkErr.STATE_DB_ERROR, "read members: %s", err)
	}
	if len(existing) > 0 {
		return sdkErr.New(sdkErr.INVALID_PARAMS, "genesis over a populated council")
	}
	// member uniqueness holds from the first block on
	members := make([]chaincom.Address, 0, len(bigBrothers))
	for _, bb := range bigBrothers {
		if !store.HasAddress(members, bb) {
			members = append(members, bb)
		}
	}
	if uint32(len(members)) > this.cfg.MaxMembers {
		return sdkErr.New(sdkErr.COUNCIL_MEMBERSHIP_FULL, "genesis members %d exceed capacity %d",
			len(members), this.cfg.MaxMembers)
	}
	if elder != nil {
		if e := tx.SetElder(*elder); e != nil {
			return sdkErr.New(sdkErr.STATE_DB_ERROR, "set elder: %s", e)
		}
	}
	if e := tx.SetMembers(members); e != nil {
		return sdkErr.New(sdkErr.STATE_DB_ERROR, "set members: %s", e)
	}
	feeInfo := &store.TransactionFeeInfo{
		WeightToFeeMultiplier: this.cfg.InitialWeightToFeeMultiplier,
		WeightToFeeDivider:    this.cfg.InitialWeightToFeeDivider,
		MinimumTransactionFee: this.cfg.InitialMinimumTransactionFee,
	}
	if e := tx.SetFeeInfo(feeInfo); e != nil {
		return sdkErr.New(sdkErr.STATE_DB_ERROR, "set fee info: %s", e)
	}
	log.Infof("council genesis: elder=%v members=%d", elder != nil, len(members))
	return nil
}

// EnsureAndGetElderOrRoot authorizes a call restricted to the elder or the
// root authority. Returns nil for the root caller.
func (this *Council) EnsureAndGetElderOrRoot(tx *store.StateTx, origin dspCom.Origin) (*chaincom.Address, *sdkErr.Error) {
	if origin.IsRoot() {
		return nil, nil
	}
	signer, _ := origin.Signer()
	elder, err := tx.GetElder()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read elder: %s", err)
	}
	if elder == nil {
		return nil, sdkErr.New(sdkErr.UNDEFINED_ELDER, "no elder defined")
	}
	if *elder != signer {
		return nil, sdkErr.New(sdkErr.SUDO_OR_ELDER_ONLY, "caller %s is not the elder", signer.ToBase58())
	}
	return elder, nil
}

// EnsureAndGetCouncilMember authorizes a call restricted to a signed council
// member. The elder counts as a member here.
func (this *Council) EnsureAndGetCouncilMember(tx *store.StateTx, origin dspCom.Origin) (chaincom.Address, *sdkErr.Error) {
	signer, ok := origin.Signer()
	if !ok {
		return chaincom.ADDRESS_EMPTY, sdkErr.New(sdkErr.SIGNED_CALLER_ONLY, "root cannot act as a council member")
	}
	elder, err := tx.GetElder()
	if err != nil {
		return chaincom.ADDRESS_EMPTY, sdkErr.New(sdkErr.STATE_DB_ERROR, "read elder: %s", err)
	}
	if elder != nil && *elder == signer {
		return signer, nil
	}
	members, err := tx.GetMembers()
	if err != nil {
		return chaincom.ADDRESS_EMPTY, sdkErr.New(sdkErr.STATE_DB_ERROR, "read members: %s", err)
	}
	if !store.HasAddress(members, signer) {
		return chaincom.ADDRESS_EMPTY, sdkErr.New(sdkErr.COUNCIL_MEMBER_ONLY, "caller %s is not a council member", signer.ToBase58())
	}
	return signer, nil
}

// EnsureVerifiedLegality checks the identity registry verdicts for who.
func (this *Council) EnsureVerifiedLegality(who chaincom.Address) *sdkErr.Error {
	if !this.identity.HasLegalName(who) {
		return sdkErr.New(sdkErr.ACCOUNT_HAS_NO_LEGAL_NAME, "account %s has no legal name", who.ToBase58())
	}
	judgements := this.identity.JudgementsOf(who)
	if len(judgements) == 0 {
		return sdkErr.New(sdkErr.ACCOUNT_IS_NOT_VERIFIED_LEGALLY, "account %s has no judgements", who.ToBase58())
	}
	for _, judgement := range judgements {
		if !judgement.IsFavorable() {
			return sdkErr.New(sdkErr.ACCOUNT_IS_NOT_VERIFIED_LEGALLY, "account %s carries verdict %s",
				who.ToBase58(), judgement)
		}
	}
	return nil
}

// ReplaceElder installs a new elder. Root only. The previous elder, if any,
// steps down in the same call.
func (this *Council) ReplaceElder(tx *store.StateTx, origin dspCom.Origin, newElder chaincom.Address) ([]event.Event, *sdkErr.Error) {
	if !origin.IsRoot() {
		return nil, sdkErr.New(sdkErr.RESTRICTED_CALL, "replace elder is a root-only call")
	}
	prev, err := tx.GetElder()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read elder: %s", err)
	}
	if prev != nil && *prev == newElder {
		return nil, sdkErr.New(sdkErr.ACCOUNT_ALREADY_AN_ELDER, "account %s is already the elder", newElder.ToBase58())
	}
	if e := tx.SetElder(newElder); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set elder: %s", e)
	}
	events := make([]event.Event, 0, 2)
	if prev != nil {
		events = append(events, event.ElderDescended{Who: *prev})
	}
	events = append(events, event.ElderAscended{Who: newElder})
	return events, nil
}

// AddMember admits a legally verified candidate onto the council and holds
// the registration deposit on their account.
func (this *Council) AddMember(tx *store.StateTx, origin dspCom.Origin, candidate chaincom.Address) ([]event.Event, *sdkErr.Error) {
	by, serr := this.EnsureAndGetElderOrRoot(tx, origin)
	if serr != nil {
		return nil, serr
	}
	if serr := this.EnsureVerifiedLegality(candidate); serr != nil {
		return nil, serr
	}
	elder, err := tx.GetElder()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read elder: %s", err)
	}
	if elder != nil && *elder == candidate {
		return nil, sdkErr.New(sdkErr.ACCOUNT_ALREADY_A_MEMBER, "the elder already sits on the council")
	}
	members, err := tx.GetMembers()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read members: %s", err)
	}
	if store.HasAddress(members, candidate) {
		return nil, sdkErr.New(sdkErr.ACCOUNT_ALREADY_A_MEMBER, "account %s is already a member", candidate.ToBase58())
	}
	if uint32(len(members)) >= this.cfg.MaxMembers {
		return nil, sdkErr.New(sdkErr.COUNCIL_MEMBERSHIP_FULL, "membership is at capacity %d", this.cfg.MaxMembers)
	}
	hold := this.cfg.RegistrationDepositAmount
	if err := this.ledger.Hold(ledger.HoldCouncilMembership, candidate, hold); err != nil {
		return nil, sdkErr.Wrap(err, sdkErr.LEDGER_HOLD_ERROR)
	}
	if e := tx.SetMembers(append(members, candidate)); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set members: %s", e)
	}
	return []event.Event{event.BigBrotherAdded{Who: candidate, By: by, Hold: hold}}, nil
}

// RemoveMember expels a member and releases whatever deposit is actually
// still held for them.
func (this *Council) RemoveMember(tx *store.StateTx, origin dspCom.Origin, member chaincom.Address) ([]event.Event, *sdkErr.Error) {
	by, serr := this.EnsureAndGetElderOrRoot(tx, origin)
	if serr != nil {
		return nil, serr
	}
	members, err := tx.GetMembers()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read members: %s", err)
	}
	if !store.HasAddress(members, member) {
		return nil, sdkErr.New(sdkErr.ACCOUNT_IS_NOT_A_MEMBER, "account %s is not a member", member.ToBase58())
	}
	held := this.ledger.HeldBalance(ledger.HoldCouncilMembership, member)
	released, err := this.ledger.Release(ledger.HoldCouncilMembership, member, held, true)
	if err != nil {
		return nil, sdkErr.Wrap(err, sdkErr.LEDGER_RELEASE_ERROR)
	}
	if e := tx.SetMembers(store.RemoveAddress(members, member)); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set members: %s", e)
	}
	return []event.Event{event.BigBrotherRemoved{Who: member, By: by, Release: released}}, nil
}

// Mint increases the circulating supply into dest. Elder or root only.
func (this *Council) Mint(tx *store.StateTx, origin dspCom.Origin, dest chaincom.Address, amount uint64) ([]event.Event, *sdkErr.Error) {
	by, serr := this.EnsureAndGetElderOrRoot(tx, origin)
	if serr != nil {
		return nil, serr
	}
	actual, err := this.ledger.Mint(dest, amount)
	if err != nil {
		return nil, sdkErr.Wrap(err, sdkErr.LEDGER_MINT_ERROR)
	}
	return []event.Event{event.CirculationIncreased{Increase: actual, By: by}}, nil
}

// Burn destroys up to amount from the configured burn address. Elder or
// root only. Held funds do not block the burn.
func (this *Council) Burn(tx *store.StateTx, origin dspCom.Origin, amount uint64) ([]event.Event, *sdkErr.Error) {
	by, serr := this.EnsureAndGetElderOrRoot(tx, origin)
	if serr != nil {
		return nil, serr
	}
	actual, err := this.ledger.Burn(this.cfg.BurnAddress, amount, true, true)
	if err != nil {
		return nil, sdkErr.Wrap(err, sdkErr.LEDGER_BURN_ERROR)
	}
	return []event.Event{event.CirculationDecreased{Decrease: actual, By: by}}, nil
}

// BurnAll empties the burn address entirely.
func (this *Council) BurnAll(tx *store.StateTx, origin dspCom.Origin) ([]event.Event, *sdkErr.Error) {
	amount := this.ledger.Balance(this.cfg.BurnAddress)
	return this.Burn(tx, origin, amount)
}

// ProposeFeeChange opens a fee change proposal. Any outstanding proposal is
// rejected and replaced. Parameters left nil keep their current value.
func (this *Council) ProposeFeeChange(tx *store.StateTx, origin dspCom.Origin,
	newMultiplier, newDivider, newMinimumFee *uint64) ([]event.Event, *sdkErr.Error) {
	proposer, serr := this.EnsureAndGetCouncilMember(tx, origin)
	if serr != nil {
		return nil, serr
	}
	if newMultiplier == nil && newDivider == nil && newMinimumFee == nil {
		return nil, sdkErr.New(sdkErr.INCORRECT_PROPOSAL, "proposal changes nothing")
	}
	current, err := tx.GetFeeInfo()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read fee info: %s", err)
	}
	if current == nil {
		return nil, sdkErr.New(sdkErr.FATAL_ERROR, "fee parameters missing from state")
	}
	params := *current
	if newMultiplier != nil {
		params.WeightToFeeMultiplier = *newMultiplier
	}
	if newDivider != nil {
		if *newDivider == 0 {
			return nil, sdkErr.New(sdkErr.INCORRECT_PROPOSAL, "fee divider must not be zero")
		}
		params.WeightToFeeDivider = *newDivider
	}
	if newMinimumFee != nil {
		params.MinimumTransactionFee = *newMinimumFee
	}
	events := make([]event.Event, 0, 2)
	if old, err := tx.GetProposal(); err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read proposal: %s", err)
	} else if old != nil {
		events = append(events, event.TxFeeParametersRejected{Rejected: old.NewParameters, By: proposer})
	}
	members, err := tx.GetMembers()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read members: %s", err)
	}
	// every member plus the elder must approve
	proposal := &store.TransactionFeeChangeProposal{
		Initiator:         proposer,
		InitiatedAt:       this.blockNum(),
		NewParameters:     params,
		RequiredVoteCount: uint32(len(members)) + 1,
	}
	if e := tx.SetProposal(proposal); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set proposal: %s", e)
	}
	events = append(events, event.TxFeeParametersChangeProposed{Proposal: params, By: proposer})
	return events, nil
}

// Vote casts a vote on the outstanding fee proposal. A single disapproval
// kills it. Unanimous approval applies the new parameters.
func (this *Council) Vote(tx *store.StateTx, origin dspCom.Origin, approve bool) ([]event.Event, *sdkErr.Error) {
	votee, serr := this.EnsureAndGetCouncilMember(tx, origin)
	if serr != nil {
		return nil, serr
	}
	proposal, err := tx.GetProposal()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read proposal: %s", err)
	}
	if proposal == nil {
		return nil, sdkErr.New(sdkErr.NO_PROPOSAL_EXISTS, "no fee proposal outstanding")
	}
	if !approve {
		tx.DeleteProposal()
		return []event.Event{event.TxFeeParametersRejected{Rejected: proposal.NewParameters, By: votee}}, nil
	}
	if proposal.HasApproved(votee) {
		return nil, sdkErr.New(sdkErr.VOTE_ALREADY_COUNTED, "account %s already voted", votee.ToBase58())
	}
	proposal.AddApprover(votee)
	remaining := uint32(0)
	if uint32(len(proposal.Approvers)) < proposal.RequiredVoteCount {
		remaining = proposal.RequiredVoteCount - uint32(len(proposal.Approvers))
	}
	events := []event.Event{event.TxFeeParametersChangeVoted{By: votee, RemainingCount: remaining}}
	if remaining > 0 {
		if e := tx.SetProposal(proposal); e != nil {
			return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set proposal: %s", e)
		}
		return events, nil
	}
	old, err := tx.GetFeeInfo()
	if err != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "read fee info: %s", err)
	}
	if old == nil {
		return nil, sdkErr.New(sdkErr.FATAL_ERROR, "fee parameters missing from state")
	}
	if e := tx.SetFeeInfo(&proposal.NewParameters); e != nil {
		return nil, sdkErr.New(sdkErr.STATE_DB_ERROR, "set fee info: %s", e)
	}
	tx.DeleteProposal()
	events = append(events, event.TxFeeParametersChange{Old: *old, New: proposal.NewParameters})
	return events, nil
}
