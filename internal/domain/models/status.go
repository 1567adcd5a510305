package models

// Health levels derived from the configured-provider ratio.
const (
	HealthExcellent = "excellent"
	HealthGood      = "good"
	HealthLimited   = "limited"
	HealthDemo      = "demo"
)

// SystemStatus is the consolidated view served to dashboards.
// Note: no transport (json/http) behaviour beyond tags here.
type SystemStatus struct {
	Health          Health        `json:"health"`
	Banking         BankingStatus `json:"banking"`
	Crypto          CryptoStatus  `json:"crypto"`
	Recommendations []string      `json:"recommendations"`
}

type Health struct {
	Score   int    `json:"score"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type BankingStatus struct {
	Providers  []ProviderStatus `json:"providers"`
	Configured int              `json:"configured"`
	Total      int              `json:"total"`
}

type CryptoStatus struct {
	Sources []PriceSourceStatus `json:"sources"`
	Online  int                 `json:"online"`
	Total   int                 `json:"total"`
}
