package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"mindwell/internal/model"
)

type stubAssessmentRepo struct {
	mu      sync.Mutex
	items   map[string]*model.Assessment
	creates int
	err     error

	countCalls int
	countErr   error
}

func newStubAssessmentRepo() *stubAssessmentRepo {
	return &stubAssessmentRepo{items: map[string]*model.Assessment{}}
}

func (r *stubAssessmentRepo) Create(_ context.Context, a *model.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.creates++
	r.items[a.ID] = a
	return nil
}

func (r *stubAssessmentRepo) GetByID(_ context.Context, id string) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *stubAssessmentRepo) ListByStudent(_ context.Context, studentID string, limit int64) ([]*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Assessment
	for _, a := range r.items {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubAssessmentRepo) CountByRiskLevel(_ context.Context, from, to time.Time) ([]model.RiskCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countCalls++
	if r.countErr != nil {
		return nil, r.countErr
	}
	counts := map[model.RiskLevel]int{}
	for _, a := range r.items {
		if (!from.IsZero() && a.CreatedAt.Before(from)) || (!to.IsZero() && !a.CreatedAt.Before(to)) {
			continue
		}
		counts[a.RiskLevel]++
	}
	var out []model.RiskCount
	for l, n := range counts {
		out = append(out, model.RiskCount{Level: l, Count: n})
	}
	return out, nil
}

func (r *stubAssessmentRepo) ListByRiskLevels(_ context.Context, levels []model.RiskLevel, limit int64) ([]*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[model.RiskLevel]bool{}
	for _, l := range levels {
		want[l] = true
	}
	var out []*model.Assessment
	for _, a := range r.items {
		if want[a.RiskLevel] {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubDraftCache struct {
	mu     sync.Mutex
	drafts map[string]model.AnswerSet
}

func newStubDraftCache() *stubDraftCache {
	return &stubDraftCache{drafts: map[string]model.AnswerSet{}}
}

func (c *stubDraftCache) SetAnswer(_ context.Context, studentID, questionID string, v model.AnswerValue) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drafts[studentID] == nil {
		c.drafts[studentID] = model.AnswerSet{}
	}
	c.drafts[studentID][questionID] = v
	return nil
}

func (c *stubDraftCache) Get(_ context.Context, studentID string) (model.AnswerSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := model.AnswerSet{}
	for k, v := range c.drafts[studentID] {
		out[k] = v
	}
	return out, nil
}

func (c *stubDraftCache) Delete(_ context.Context, studentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, studentID)
	return nil
}

type stubReportCache struct {
	dist        *model.RiskDistribution
	sets        int
	invalidated int
}

func (c *stubReportCache) GetDistribution(context.Context) (*model.RiskDistribution, error) {
	return c.dist, nil
}

func (c *stubReportCache) SetDistribution(_ context.Context, d *model.RiskDistribution) error {
	c.sets++
	c.dist = d
	return nil
}

func (c *stubReportCache) Invalidate(context.Context) error {
	c.invalidated++
	c.dist = nil
	return nil
}

type stubSessionCache struct {
	revoked map[string]time.Duration
}

func (c *stubSessionCache) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if c.revoked == nil {
		c.revoked = map[string]time.Duration{}
	}
	c.revoked[jti] = ttl
	return nil
}

func (c *stubSessionCache) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := c.revoked[jti]
	return ok, nil
}

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	r := &stubUserRepo{users: map[string]*model.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return errors.New("duplicate email")
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	return r.users[id], nil
}

func (r *stubUserRepo) FindByRegistrationNumber(_ context.Context, reg string) (*model.User, error) {
	for _, u := range r.users {
		if u.RegistrationNumber == reg {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByIDs(_ context.Context, ids []string) (map[string]*model.User, error) {
	out := map[string]*model.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type stubGenerator struct {
	text  string
	err   error
	calls int
	last  GenerationRequest
	block bool
}

func (g *stubGenerator) Name() string { return "stub" }

func (g *stubGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	g.calls++
	g.last = req
	if g.block {
		<-ctx.Done()
		return "", generationErr(g.Name(), ctx.Err())
	}
	return g.text, g.err
}

type stubBroadcaster struct {
	messages []string
	payloads []interface{}
}

func (b *stubBroadcaster) BroadcastToStaff(msgType string, payload interface{}) {
	b.messages = append(b.messages, msgType)
	b.payloads = append(b.payloads, payload)
}
