package syncing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

type memoryDailyStore[T dailyRecord] struct {
	mu         sync.Mutex
	rows       map[string]T
	prefetches map[string]int
	seq        int
	failInsert error
}

func newMemoryDailyStore[T dailyRecord]() *memoryDailyStore[T] {
	return &memoryDailyStore[T]{
		rows:       make(map[string]T),
		prefetches: make(map[string]int),
	}
}

func (m *memoryDailyStore[T]) ExistingByDate(_ context.Context, _ string, date string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prefetches[date]++
	out := make(map[string]string)
	for id, row := range m.rows {
		if row.RecordDate() == date {
			out[row.NaturalKey()] = id
		}
	}
	return out, nil
}

func (m *memoryDailyStore[T]) Insert(_ context.Context, record T) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInsert != nil {
		return "", m.failInsert
	}
	m.seq++
	id := fmt.Sprintf("row-%d", m.seq)
	m.rows[id] = record
	return id, nil
}

func (m *memoryDailyStore[T]) Patch(_ context.Context, id string, record T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return errors.New("row not found")
	}
	m.rows[id] = record
	return nil
}

func (m *memoryDailyStore[T]) all() []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]T, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row)
	}
	return out
}

// memoryLeadStore imita o banco: Patch não altera lead_status
type memoryLeadStore struct {
	mu      sync.Mutex
	rows    map[string]domain.Lead
	seq     int
	patched []domain.Lead
}

func newMemoryLeadStore() *memoryLeadStore {
	return &memoryLeadStore{rows: make(map[string]domain.Lead)}
}

func (m *memoryLeadStore) ExistingByExternalIDs(_ context.Context, platform domain.Platform, externalIDs []string) (map[string]domain.ExistingLead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[string]bool, len(externalIDs))
	for _, id := range externalIDs {
		wanted[id] = true
	}

	out := make(map[string]domain.ExistingLead)
	for id, lead := range m.rows {
		key, ok := lead.NaturalKey()
		if ok && lead.SourcePlatform == platform && wanted[*lead.LeadExternalID] {
			out[key] = domain.ExistingLead{ID: id, LeadStatus: lead.LeadStatus}
		}
	}
	return out, nil
}

func (m *memoryLeadStore) Insert(_ context.Context, lead domain.Lead) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	id := fmt.Sprintf("lead-%d", m.seq)
	m.rows[id] = lead
	return id, nil
}

func (m *memoryLeadStore) Patch(_ context.Context, id string, lead domain.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.rows[id]
	if !ok {
		return errors.New("lead not found")
	}
	m.patched = append(m.patched, lead)
	lead.LeadStatus = stored.LeadStatus
	m.rows[id] = lead
	return nil
}

func (m *memoryLeadStore) setStatus(externalID string, status domain.LeadStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, lead := range m.rows {
		if lead.LeadExternalID != nil && *lead.LeadExternalID == externalID {
			lead.LeadStatus = status
			m.rows[id] = lead
		}
	}
}

type memoryLeadFormStore struct {
	mu   sync.Mutex
	rows map[string]domain.LeadForm
	fail error
}

func (m *memoryLeadFormStore) UpsertMany(_ context.Context, forms []domain.LeadForm) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return 0, m.fail
	}
	for _, form := range forms {
		m.rows[form.FormID] = form
	}
	return len(forms), nil
}

// memoryLeadSyncLogStore guarda cada execução pelo id, na ordem de criação
type memoryLeadSyncLogStore struct {
	mu   sync.Mutex
	logs []domain.LeadSyncLog
}

func (m *memoryLeadSyncLogStore) Create(_ context.Context, log domain.LeadSyncLog) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log.ID = fmt.Sprintf("log-%d", len(m.logs)+1)
	log.Status = domain.LeadSyncRunning
	m.logs = append(m.logs, log)
	return log.ID, nil
}

func (m *memoryLeadSyncLogStore) Complete(_ context.Context, log domain.LeadSyncLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.logs {
		if m.logs[i].ID == log.ID {
			m.logs[i].Status = log.Status
			m.logs[i].LeadsFound = log.LeadsFound
			m.logs[i].LeadsCreated = log.LeadsCreated
			m.logs[i].Error = log.Error
			m.logs[i].CompletedAt = log.CompletedAt
			return nil
		}
	}
	return errors.New("log not found")
}

func (m *memoryLeadSyncLogStore) all() []domain.LeadSyncLog {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]domain.LeadSyncLog(nil), m.logs...)
}

type memoryStores struct {
	campaigns *memoryDailyStore[domain.CampaignDaily]
	adSets    *memoryDailyStore[domain.AdSetDaily]
	ads       *memoryDailyStore[domain.AdDaily]
	sessions  *memoryDailyStore[domain.Ga4Session]
	leads     *memoryLeadStore
	forms     *memoryLeadFormStore
}

func newMemoryStores() *memoryStores {
	return &memoryStores{
		campaigns: newMemoryDailyStore[domain.CampaignDaily](),
		adSets:    newMemoryDailyStore[domain.AdSetDaily](),
		ads:       newMemoryDailyStore[domain.AdDaily](),
		sessions:  newMemoryDailyStore[domain.Ga4Session](),
		leads:     newMemoryLeadStore(),
		forms:     &memoryLeadFormStore{rows: make(map[string]domain.LeadForm)},
	}
}

func (s *memoryStores) upserter() *Upserter {
	return NewUpserter(s.campaigns, s.adSets, s.ads, s.leads, s.sessions, s.forms)
}

func strPtr(s string) *string {
	return &s
}
