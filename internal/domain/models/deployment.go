package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// LogicalName identifies a resource within the farming topology
type LogicalName string

const (
	RewardToken  LogicalName = "rewardToken"
	StakingToken LogicalName = "stakingToken"
	Farming      LogicalName = "farming"
	Strategy     LogicalName = "strategy"
)

// ResourceTemplate is the compiled blueprint a resource is created from
type ResourceTemplate struct {
	// Name is the contract name, used to locate the compiled artifact
	Name string
}

// DeployedResource is a resource confirmed on chain
type DeployedResource struct {
	Name            LogicalName      `json:"name"`
	Template        ResourceTemplate `json:"template"`
	Address         common.Address   `json:"address"`
	ConstructorArgs []any            `json:"constructorArgs"`
}

// DeploymentSet is the complete topology produced by one run
type DeploymentSet struct {
	RewardToken  *DeployedResource
	StakingToken *DeployedResource
	Farming      *DeployedResource
	Strategy     *DeployedResource

	// StartTime is the aligned farming start, unix seconds
	StartTime uint64
}

// Resources returns the resources in creation order.
func (s *DeploymentSet) Resources() []*DeployedResource {
	return []*DeployedResource{s.RewardToken, s.StakingToken, s.Farming, s.Strategy}
}

// AddressRecord returns the persisted form of the set.
func (s *DeploymentSet) AddressRecord() AddressRecord {
	return AddressRecord{
		FakeRewardToken:  s.RewardToken.Address.Hex(),
		FakeStakingToken: s.StakingToken.Address.Hex(),
		Farming:          s.Farming.Address.Hex(),
		FakeStrategy:     s.Strategy.Address.Hex(),
	}
}
