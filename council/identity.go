package council

import (
	chaincom "github.com/saveio/themis/common"
)

// Judgement is an identity attestation verdict issued by an off-chain
// registrar for an on-chain account.
type Judgement int

const (
	JudgementUnknown Judgement = iota
	JudgementFeePaid
	JudgementReasonable
	JudgementKnownGood
	JudgementOutOfDate
	JudgementLowQuality
	JudgementErroneous
)

func (this Judgement) String() string {
	switch this {
	case JudgementFeePaid:
		return "FeePaid"
	case JudgementReasonable:
		return "Reasonable"
	case JudgementKnownGood:
		return "KnownGood"
	case JudgementOutOfDate:
		return "OutOfDate"
	case JudgementLowQuality:
		return "LowQuality"
	case JudgementErroneous:
		return "Erroneous"
	default:
		return "Unknown"
	}
}

// IsFavorable reports whether the verdict counts toward legal verification.
func (this Judgement) IsFavorable() bool {
	return this == JudgementReasonable || this == JudgementKnownGood
}

// IdentityRegistry exposes the identity attestations the council consults
// before granting privileged roles.
type IdentityRegistry interface {
	HasLegalName(who chaincom.Address) bool
	JudgementsOf(who chaincom.Address) []Judgement
}

// NopIdentityRegistry treats every account as fully verified. Useful for
// private deployments and tests.
type NopIdentityRegistry struct{}

func (this *NopIdentityRegistry) HasLegalName(who chaincom.Address) bool {
	return true
}

func (this *NopIdentityRegistry) JudgementsOf(who chaincom.Address) []Judgement {
	return []Judgement{JudgementKnownGood}
}
