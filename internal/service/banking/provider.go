package banking

import (
	"FinBridge/internal/domain/models"
	"FinBridge/pkg/config"
)

// Feature flags advertised in ProviderStatus.
const (
	FeatureAccounts      = "accounts"
	FeatureTransactions  = "transactions"
	FeatureBeneficiaries = "beneficiaries"
	FeatureTransfers     = "transfers"
	FeatureAANI          = "aani_instant"
	FeatureOpenBanking   = "open_banking"
	FeatureVirtualCards  = "virtual_cards"
)

type bankInfo struct {
	id      models.ProviderID
	display string
	feats   []string
}

var catalog = map[models.ProviderID]bankInfo{
	models.ProviderRakbank: {
		id:      models.ProviderRakbank,
		display: "RAKBANK",
		feats:   []string{FeatureAccounts, FeatureTransactions, FeatureBeneficiaries, FeatureTransfers},
	},
	models.ProviderMashreq: {
		id:      models.ProviderMashreq,
		display: "Mashreq Bank",
		feats:   []string{FeatureAccounts, FeatureTransactions, FeatureBeneficiaries, FeatureTransfers, FeatureAANI},
	},
	models.ProviderWio: {
		id:      models.ProviderWio,
		display: "Wio Bank",
		feats:   []string{FeatureAccounts, FeatureTransactions, FeatureTransfers, FeatureVirtualCards},
	},
	models.ProviderEmiratesNBD: {
		id:      models.ProviderEmiratesNBD,
		display: "Emirates NBD",
		feats:   []string{FeatureAccounts, FeatureTransactions, FeatureBeneficiaries, FeatureTransfers, FeatureAANI, FeatureOpenBanking},
	},
}

// base carries the static descriptor shared by live and demo adapters.
type base struct {
	info bankInfo
	cfg  config.BankConfig
}

func newBase(id models.ProviderID, cfg config.BankConfig) base {
	return base{info: catalog[id], cfg: cfg}
}

func (b base) ID() models.ProviderID { return b.info.id }
func (b base) DisplayName() string   { return b.info.display }
func (b base) Configured() bool      { return b.cfg.Configured() }

func (b base) Features() []string {
	out := make([]string, len(b.info.feats))
	copy(out, b.info.feats)
	return out
}

func (b base) ConfigStatus() models.ConfigStatus {
	env := b.cfg.Environment
	if env == "" {
		env = models.EnvSandbox
	}
	return models.ConfigStatus{
		Configured:  b.cfg.Configured(),
		Environment: env,
		HasAPIKey:   b.cfg.APIKey != "",
		HasClientID: b.cfg.ClientID != "",
		BaseURL:     b.cfg.BaseURL,
	}
}
