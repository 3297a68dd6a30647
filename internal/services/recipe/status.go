package recipe

import (
	"strings"
	"sync"
	"time"
)

const notInitialized = "Not initialized"

// ProviderStatus is the last observed outcome for one provider.
type ProviderStatus struct {
	Available      bool
	Error          string
	QuotaRemaining bool
	LastChecked    time.Time
}

// StatusReport is a provider status merged with its static metadata.
type StatusReport struct {
	Available      bool       `json:"available"`
	QuotaRemaining bool       `json:"quota_remaining"`
	Error          *string    `json:"error"`
	LastChecked    *time.Time `json:"last_checked"`
	CostPerRequest float64    `json:"cost_per_request"`
	PremiumOnly    bool       `json:"premium_only"`
	DisplayName    string     `json:"display_name"`
}

// StatusTracker holds provider liveness for the lifetime of the process.
// It is safe for concurrent use; the last write for a provider wins.
type StatusTracker struct {
	mu       sync.RWMutex
	statuses map[ProviderType]ProviderStatus
	now      func() time.Time
}

func NewStatusTracker() *StatusTracker {
	return &StatusTracker{
		statuses: make(map[ProviderType]ProviderStatus),
		now:      time.Now,
	}
}

// Record overwrites the status of p with the result of an attempt or probe.
func (t *StatusTracker) Record(p ProviderType, err error) {
	st := ProviderStatus{
		Available:      err == nil,
		QuotaRemaining: true,
		LastChecked:    t.now().UTC(),
	}
	if err != nil {
		st.Error = err.Error()
		st.QuotaRemaining = !strings.Contains(strings.ToLower(st.Error), "quota")
	}

	t.mu.Lock()
	t.statuses[p] = st
	t.mu.Unlock()
}

// Get returns the recorded status of p, if any.
func (t *StatusTracker) Get(p ProviderType) (ProviderStatus, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.statuses[p]
	return st, ok
}

// Statuses reports every known provider. Providers never attempted are
// reported unavailable with a "Not initialized" error.
func (t *StatusTracker) Statuses() map[ProviderType]StatusReport {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[ProviderType]StatusReport, len(DefaultOrder))
	for _, p := range DefaultOrder {
		info := Info(p)
		report := StatusReport{
			CostPerRequest: info.CostPerRequest,
			PremiumOnly:    info.PremiumOnly,
			DisplayName:    info.DisplayName,
		}

		st, ok := t.statuses[p]
		if !ok {
			msg := notInitialized
			report.Error = &msg
			out[p] = report
			continue
		}

		checked := st.LastChecked
		report.Available = st.Available
		report.QuotaRemaining = st.QuotaRemaining
		report.LastChecked = &checked
		if st.Error != "" {
			msg := st.Error
			report.Error = &msg
		}
		out[p] = report
	}
	return out
}
