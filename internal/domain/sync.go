package domain

// SyncOptions ajusta uma execução de sincronização de conta
type SyncOptions struct {
	RunType   SyncRunType
	DateRange *DateRange
}

// SyncResult contabiliza as linhas gravadas por tabela em uma sincronização
type SyncResult struct {
	RunID        string `json:"run_id"`
	CampaignRows int    `json:"campaign_rows"`
	AdSetRows    int    `json:"ad_set_rows"`
	AdRows       int    `json:"ad_rows"`
	LeadRows     int    `json:"lead_rows"`
	SessionRows  int    `json:"session_rows"`
	LeadsFound   int    `json:"leads_found,omitempty"`
	LeadsCreated int    `json:"leads_created,omitempty"`
	LeadForms    int    `json:"lead_forms,omitempty"`
	Skipped      bool   `json:"skipped,omitempty"`
}

// Total soma todas as linhas gravadas
func (r SyncResult) Total() int {
	return r.CampaignRows + r.AdSetRows + r.AdRows + r.LeadRows + r.SessionRows
}

// Add acumula os contadores de outra execução parcial
func (r *SyncResult) Add(o SyncResult) {
	r.CampaignRows += o.CampaignRows
	r.AdSetRows += o.AdSetRows
	r.AdRows += o.AdRows
	r.LeadRows += o.LeadRows
	r.SessionRows += o.SessionRows
	r.LeadsFound += o.LeadsFound
	r.LeadsCreated += o.LeadsCreated
	r.LeadForms += o.LeadForms
}

// AccountOutcome é o resultado isolado de uma conta dentro de uma passada de sincronização
type AccountOutcome struct {
	AccountID string     `json:"account_id"`
	OK        bool       `json:"ok"`
	Result    SyncResult `json:"result"`
	Error     string     `json:"error,omitempty"`
}
