package domain

import "github.com/trebuchet-org/farm-deploy/internal/domain/models"

// Templates of the farming topology. Both tokens share FakeERC20 and differ
// only by display name.
var (
	TokenTemplate    = models.ResourceTemplate{Name: "FakeERC20"}
	FarmingTemplate  = models.ResourceTemplate{Name: "NewFarming"}
	StrategyTemplate = models.ResourceTemplate{Name: "StrategyMock"}
)

const (
	RewardTokenDisplayName  = "FakeRewardToken"
	StakingTokenDisplayName = "FakeStakingToken"

	// SetStrategySignature binds a strategy to the farming contract
	SetStrategySignature = "setStrategy(address)"
)
