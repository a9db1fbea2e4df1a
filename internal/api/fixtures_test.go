package api

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/boostify/outreach/internal/config"
	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/repository/redisquota"
	"github.com/boostify/outreach/internal/service/artist"
	"github.com/boostify/outreach/internal/service/campaign"
	"github.com/boostify/outreach/internal/service/contact"
	"github.com/boostify/outreach/internal/service/delivery"
	"github.com/boostify/outreach/internal/service/quota"
	"github.com/boostify/outreach/internal/service/template"
)

type memContacts struct {
	mu   sync.Mutex
	byID map[string]*domain.Contact
	seq  int
}

func (m *memContacts) Get(_ context.Context, id string) (*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, contact.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memContacts) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memContacts) Create(_ context.Context, c *domain.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == c.Email {
			return contact.ErrDuplicateEmail
		}
	}
	if c.ID == "" {
		m.seq++
		c.ID = fmt.Sprintf("c%d", m.seq)
	}
	c.CreatedAt = time.Now()
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memContacts) List(_ context.Context, f contact.ListFilter) ([]domain.Contact, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Contact{}
	for _, c := range m.byID {
		if f.Category != "" && string(c.Category) != f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(c.FullName+" "+c.Email), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	if f.Offset >= len(out) {
		return []domain.Contact{}, total, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (m *memContacts) Stats(_ context.Context) (*contact.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &contact.Stats{Total: len(m.byID)}, nil
}

func (m *memContacts) Filters(_ context.Context) (*contact.FilterOptions, error) {
	return &contact.FilterOptions{Categories: []string{}, Industries: []string{}, SeniorityLevels: []string{}, Countries: []string{}}, nil
}

func (m *memContacts) UpdateStatus(_ context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, contact.ErrNotFound
	}
	c.Status = status
	cp := *c
	return &cp, nil
}

func (m *memContacts) MarkContacted(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return contact.ErrNotFound
	}
	c.Status = domain.ContactContacted
	c.EmailsSent++
	return nil
}

type memTemplates struct {
	mu   sync.Mutex
	byID map[string]*domain.Template
	seq  int
}

func (m *memTemplates) Create(_ context.Context, t *domain.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t.ID = fmt.Sprintf("t%d", m.seq)
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTemplates) Get(_ context.Context, id string) (*domain.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return nil, template.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTemplates) Update(_ context.Context, t *domain.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[t.ID]; !ok {
		return template.ErrNotFound
	}
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTemplates) Deactivate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok || !t.IsActive {
		return template.ErrNotFound
	}
	t.IsActive = false
	return nil
}

func (m *memTemplates) List(_ context.Context, f template.ListFilter) ([]domain.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Template{}
	for _, t := range m.byID {
		if t.IsActive && (f.UserID == "" || t.UserID == "" || t.UserID == f.UserID) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memArtists map[string]*domain.Artist

func (m memArtists) Get(_ context.Context, id string) (*domain.Artist, error) {
	a, ok := m[id]
	if !ok {
		return nil, artist.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m memArtists) ListByUser(_ context.Context, userID string) ([]domain.Artist, error) {
	out := []domain.Artist{}
	for _, a := range m {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type memCampaigns struct {
	mu   sync.Mutex
	byID map[string]*domain.Campaign
}

func (m *memCampaigns) Get(_ context.Context, id string) (*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, campaign.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCampaigns) List(_ context.Context, userID string, f campaign.ListFilter) ([]domain.Campaign, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Campaign{}
	for _, c := range m.byID {
		if c.UserID == userID && (f.Status == "" || string(c.Status) == f.Status) {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (m *memCampaigns) Create(_ context.Context, c *domain.Campaign) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.byID[c.ID] = &cp
	return c.ID, nil
}

func (m *memCampaigns) Update(_ context.Context, id string, u campaign.UpdateFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return campaign.ErrNotFound
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.DailyLimit != nil {
		c.DailyLimit = *u.DailyLimit
	}
	return nil
}

func (m *memCampaigns) UpdateStatus(_ context.Context, id string, status domain.CampaignStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return campaign.ErrNotFound
	}
	c.Status = status
	return nil
}

func (m *memCampaigns) IncrementSent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return campaign.ErrNotFound
	}
	c.SentCount++
	return nil
}

type memLogs struct {
	mu   sync.Mutex
	rows []domain.EmailLog
}

func (m *memLogs) Insert(_ context.Context, l *domain.EmailLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.CreatedAt = time.Now()
	m.rows = append(m.rows, *l)
	return nil
}

func (m *memLogs) List(_ context.Context, userID string, limit, offset int) ([]domain.EmailLog, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.EmailLog{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if userID == "" || m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	total := len(out)
	if offset >= len(out) {
		return []domain.EmailLog{}, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

type fakeSender struct {
	mu   sync.Mutex
	fail string
	sent []*domain.OutboundEmail
}

func (f *fakeSender) Send(_ context.Context, msg *domain.OutboundEmail) (*domain.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != "" {
		return &domain.SendResult{Success: false, Provider: "fake", Error: f.fail}, nil
	}
	f.sent = append(f.sent, msg)
	return &domain.SendResult{Success: true, Provider: "fake", MessageID: "msg-" + msg.ToEmail, SentAt: time.Now()}, nil
}

type testEnv struct {
	srv       *Server
	contacts  *memContacts
	templates *memTemplates
	campaigns *memCampaigns
	logs      *memLogs
	sender    *fakeSender
	redis     *miniredis.Miniredis
	quota     *quota.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	env := &testEnv{
		contacts: &memContacts{byID: map[string]*domain.Contact{
			"c1": {ID: "c1", Email: "ana@label.com", FullName: "Ana Ruiz", FirstName: "Ana", Category: domain.CategoryRecordLabel, Status: domain.ContactNew},
			"c2": {ID: "c2", Email: "bo@sync.tv", FullName: "Bo Lind", Category: domain.CategorySync, Status: domain.ContactNew},
			"c3": {ID: "c3", Email: "", FullName: "No Mail", Category: domain.CategoryOther, Status: domain.ContactNew},
		}, seq: 3},
		templates: &memTemplates{byID: map[string]*domain.Template{}},
		campaigns: &memCampaigns{byID: map[string]*domain.Campaign{}},
		logs:      &memLogs{},
		sender:    &fakeSender{},
		redis:     mr,
	}
	artists := memArtists{
		"a1": {ID: "a1", UserID: "u1", Name: "Luna Vega", Slug: "luna-vega", Biography: "Singer from Madrid", Genres: []string{"Latin Pop"}},
	}

	const baseURL = "https://boostifymusic.com"
	contacts := contact.NewService(env.contacts)
	templates := template.NewService(env.templates, template.Options{BaseURL: baseURL, SenderName: "Boostify Music Team"})
	artistSvc := artist.NewService(artists)
	campaigns := campaign.NewService(env.campaigns)
	env.quota = quota.NewService(redisquota.NewStore(client), 20)

	deliverySvc := delivery.NewService(delivery.Deps{
		Contacts:  contacts,
		Templates: templates,
		Artists:   artistSvc,
		Quota:     env.quota,
		Campaigns: campaigns,
		Logs:      env.logs,
		Sender:    env.sender,
	}, delivery.Config{
		Provider:     "fake",
		FromEmail:    "info@boostifymusic.com",
		FromName:     "Boostify Music",
		SenderName:   "Boostify Music Team",
		BaseURL:      baseURL,
		SendInterval: time.Millisecond,
	})

	env.srv = NewServer(config.ServerConfig{Port: 0, Host: "localhost"}, Services{
		Contacts:  contacts,
		Templates: templates,
		Artists:   artistSvc,
		Quota:     env.quota,
		Delivery:  deliverySvc,
		Campaigns: campaigns,
	}, NewHealthChecker(nil, client))
	return env
}

// spend marks n sends as already made today for userID.
func (e *testEnv) spend(t *testing.T, userID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, ok, err := e.quota.Reserve(context.Background(), userID); err != nil || !ok {
			t.Fatalf("reserve %d: ok=%v err=%v", i, ok, err)
		}
	}
}
