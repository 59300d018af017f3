package intelligence

import (
	"github.com/alexanderramin/compass/internal/llm"
	"go.uber.org/zap"
)

// Advisors groups one advisor per domain, all sharing a client and observer.
type Advisors struct {
	Health     HealthAdvisor
	BurnRate   BurnRateAdvisor
	Capacity   CapacityAdvisor
	Validation ValidationAdvisor
	Canvas     CanvasAdvisor
	Scorecard  ScorecardAdvisor
	Porter     PorterAdvisor
	ADKAR      ADKARAdvisor
}

func NewAdvisors(client llm.LLMClient, observer llm.Observer, log *zap.Logger) *Advisors {
	return &Advisors{
		Health:     NewHealthAdvisor(client, observer, log),
		BurnRate:   NewBurnRateAdvisor(client, observer, log),
		Capacity:   NewCapacityAdvisor(client, observer, log),
		Validation: NewValidationAdvisor(client, observer, log),
		Canvas:     NewCanvasAdvisor(client, observer, log),
		Scorecard:  NewScorecardAdvisor(client, observer, log),
		Porter:     NewPorterAdvisor(client, observer, log),
		ADKAR:      NewADKARAdvisor(client, observer, log),
	}
}
