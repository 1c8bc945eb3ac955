// Package v1 defines the rollover rule collaborator: which concrete contract
// backs a continuous code on any given date, and the closes recorded at each
// switch.
package v1

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// RuleStd is the rule tag of the primary ("hot") continuous contract.
const RuleStd = "HOT"

// RuleSecond is the rule tag of the secondary continuous contract.
const RuleSecond = "2ND"

// Switch records one rollover event: To becomes the active leg on Date,
// replacing From. OldClose/NewClose are the closes of the two legs on the
// session before the switch; they drive adjustment factor accumulation.
// From is empty on the earliest known event of a commodity.
type Switch struct {
	Date     uint32 // yyyymmdd, first trading date of the new leg
	From     string // raw code of the outgoing leg
	To       string // raw code of the incoming leg
	OldClose float64
	NewClose float64
}

// Provider serves rollover rule data keyed by rule tag and commodity id
// ("SHFE.rb"). Implementations live outside this module.
type Provider interface {
	// Switches returns the rollover events for a rule/commodity pair in
	// ascending date order. An empty result means the commodity has no
	// continuous contract under that rule.
	Switches(ruleTag string, commodity string) []Switch
}
