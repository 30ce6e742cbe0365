package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/farm-deploy/internal/adapters/artifacts"
	"github.com/trebuchet-org/farm-deploy/internal/adapters/chain"
	"github.com/trebuchet-org/farm-deploy/internal/adapters/repository/addresses"
	"github.com/trebuchet-org/farm-deploy/internal/adapters/timing"
	"github.com/trebuchet-org/farm-deploy/internal/adapters/verification"
	"github.com/trebuchet-org/farm-deploy/internal/usecase"
)

// ArtifactSet provides compiled artifact lookup
var ArtifactSet = wire.NewSet(
	artifacts.NewStore,
)

// ChainSet provides the on-chain resource factory
var ChainSet = wire.NewSet(
	chain.NewFactory,
	wire.Bind(new(usecase.ResourceFactory), new(*chain.Factory)),
)

// VerificationSet provides forge-based source verification
var VerificationSet = wire.NewSet(
	verification.NewForgeVerifier,
	wire.Bind(new(usecase.SourceVerifier), new(*verification.ForgeVerifier)),
)

// RepositorySet provides the address ledger
var RepositorySet = wire.NewSet(
	addresses.NewFileLedger,
	wire.Bind(new(usecase.AddressLedger), new(*addresses.FileLedger)),
)

// TimingSet provides the clock and verification cooldown
var TimingSet = wire.NewSet(
	timing.NewSystemClock,
	wire.Bind(new(usecase.Clock), new(timing.SystemClock)),

	timing.NewConstantCooldown,
	wire.Bind(new(usecase.Cooldown), new(*timing.ConstantCooldown)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ArtifactSet,
	ChainSet,
	VerificationSet,
	RepositorySet,
	TimingSet,
)
