package models

// AddressRecord is the network-scoped ledger of deployed identifiers.
// Field order is the on-disk key order.
type AddressRecord struct {
	FakeRewardToken  string `json:"fakeRewardToken"`
	FakeStakingToken string `json:"fakeStakingToken"`
	Farming          string `json:"farming"`
	FakeStrategy     string `json:"fakeStrategy"`
}
