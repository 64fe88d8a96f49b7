package usecase

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"resume-match/internal/domain/analysis"
	"resume-match/internal/domain/document"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/match"
	"resume-match/internal/repository"

	"github.com/google/uuid"
)

type mockDocRepo struct {
	mu   sync.Mutex
	docs map[uuid.UUID]document.Document
	err  error
}

func newMockDocRepo(docs ...document.Document) *mockDocRepo {
	m := &mockDocRepo{docs: map[uuid.UUID]document.Document{}}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

func (m *mockDocRepo) Create(_ context.Context, d document.Document) (document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return document.Document{}, m.err
	}
	d.Status = document.StatusPending
	m.docs[d.ID] = d
	return d, nil
}

func (m *mockDocRepo) GetByID(_ context.Context, id uuid.UUID) (document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return document.Document{}, repository.ErrDocumentNotFound
	}
	return d, nil
}

func (m *mockDocRepo) ListByOwner(_ context.Context, owner uuid.UUID, _, _ int) ([]document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []document.Document
	for _, d := range m.docs {
		if d.OwnerID == owner {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDocRepo) TryStartProcessing(context.Context, uuid.UUID) (bool, error) { return false, nil }
func (m *mockDocRepo) MarkFailed(context.Context, uuid.UUID, string) error          { return nil }

func (m *mockDocRepo) FailStaleRuns(context.Context, time.Time, string) ([]uuid.UUID, error) {
	return nil, nil
}

func (m *mockDocRepo) ResetForReprocess(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return false, repository.ErrDocumentNotFound
	}
	if !d.Status.Terminal() {
		return false, nil
	}
	d.Status = document.StatusPending
	m.docs[id] = d
	return true, nil
}

type mockFileStore struct {
	saved   []string
	removed []string
	err     error
}

func (m *mockFileStore) Save(_ context.Context, _, id uuid.UUID, filename string, r io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	p := "/uploads/" + id.String() + "-" + filename
	m.saved = append(m.saved, p)
	return p, nil
}

func (m *mockFileStore) Remove(path string) error {
	m.removed = append(m.removed, path)
	return nil
}

type mockDispatcher struct {
	mu         sync.Mutex
	dispatched []uuid.UUID
	err        error
}

func (m *mockDispatcher) Dispatch(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.dispatched = append(m.dispatched, id)
	return nil
}

type mockAnalysisRepo struct {
	profiles   map[uuid.UUID]analysis.Profile // by document id
	advisories map[uuid.UUID][]analysis.Advisory
	calls      int
}

func newMockAnalysisRepo() *mockAnalysisRepo {
	return &mockAnalysisRepo{profiles: map[uuid.UUID]analysis.Profile{}, advisories: map[uuid.UUID][]analysis.Advisory{}}
}

func (m *mockAnalysisRepo) CompleteRun(_ context.Context, p analysis.Profile, adv []analysis.Advisory) (analysis.Profile, error) {
	m.profiles[p.DocumentID] = p
	m.advisories[p.DocumentID] = adv
	return p, nil
}

func (m *mockAnalysisRepo) GetProfileByDocument(_ context.Context, id uuid.UUID) (analysis.Profile, error) {
	m.calls++
	p, ok := m.profiles[id]
	if !ok {
		return analysis.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (m *mockAnalysisRepo) GetProfileByID(_ context.Context, id uuid.UUID) (analysis.Profile, error) {
	for _, p := range m.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return analysis.Profile{}, repository.ErrProfileNotFound
}

func (m *mockAnalysisRepo) ListAdvisories(_ context.Context, id uuid.UUID) ([]analysis.Advisory, error) {
	m.calls++
	return m.advisories[id], nil
}

type mockJobRepo struct {
	jobs        map[uuid.UUID]job.Posting
	created     []job.Posting
	lastFilter  repository.JobFilter
	deactivated []uuid.UUID
}

func newMockJobRepo(jobs ...job.Posting) *mockJobRepo {
	m := &mockJobRepo{jobs: map[uuid.UUID]job.Posting{}}
	for _, j := range jobs {
		m.jobs[j.ID] = j
	}
	return m
}

func (m *mockJobRepo) Create(_ context.Context, p job.Posting) (job.Posting, error) {
	p.ID = uuid.New()
	p.IsActive = true
	m.jobs[p.ID] = p
	m.created = append(m.created, p)
	return p, nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	j, ok := m.jobs[id]
	if !ok {
		return job.Posting{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m *mockJobRepo) ListJobs(_ context.Context, f repository.JobFilter) ([]job.Posting, error) {
	m.lastFilter = f
	if f.Offset > 0 {
		return nil, nil
	}
	out := make([]job.Posting, 0, len(m.jobs))
	for _, j := range m.jobs {
		if !f.IncludeInactive && !j.IsActive {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *mockJobRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	j, ok := m.jobs[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	j.IsActive = false
	m.jobs[id] = j
	m.deactivated = append(m.deactivated, id)
	return nil
}

type mockApplicationRepo struct {
	apps []job.Application
	jobs *mockJobRepo
}

func (m *mockApplicationRepo) Create(_ context.Context, a job.Application) (job.Application, error) {
	for _, existing := range m.apps {
		if existing.JobID == a.JobID && existing.DocumentID == a.DocumentID {
			return existing, nil
		}
	}
	a.ID = uuid.New()
	a.Status = job.ApplicationPending
	m.apps = append(m.apps, a)
	return a, nil
}

func (m *mockApplicationRepo) ListByDocument(_ context.Context, id uuid.UUID) ([]job.Application, error) {
	var out []job.Application
	for _, a := range m.apps {
		if a.DocumentID == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (job.Application, error) {
	for _, a := range m.apps {
		if a.ID == id {
			return a, nil
		}
	}
	return job.Application{}, repository.ErrApplicationNotFound
}

func (m *mockApplicationRepo) ListByApplicant(_ context.Context, id uuid.UUID, _, _ int) ([]job.Application, error) {
	out := make([]job.Application, 0)
	for _, a := range m.apps {
		if a.ApplicantID == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ListByRecruiter(_ context.Context, id uuid.UUID, _, _ int) ([]job.Application, error) {
	out := make([]job.Application, 0)
	for _, a := range m.apps {
		if j, ok := m.jobs.jobs[a.JobID]; ok && j.RecruiterID == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, st job.ApplicationStatus) (job.Application, error) {
	for i, a := range m.apps {
		if a.ID == id {
			m.apps[i].Status = st
			return m.apps[i], nil
		}
	}
	return job.Application{}, repository.ErrApplicationNotFound
}

type mockMatchRepo struct {
	records  map[[2]uuid.UUID]match.Record
	listedBy string
}

func newMockMatchRepo() *mockMatchRepo {
	return &mockMatchRepo{records: map[[2]uuid.UUID]match.Record{}}
}

func (m *mockMatchRepo) Upsert(_ context.Context, r match.Record) (match.Record, error) {
	k := [2]uuid.UUID{r.ProfileID, r.JobID}
	if prev, ok := m.records[k]; ok {
		r.ID = prev.ID
	} else {
		r.ID = uuid.New()
	}
	m.records[k] = r
	return r, nil
}

func (m *mockMatchRepo) Get(_ context.Context, profileID, jobID uuid.UUID) (match.Record, error) {
	r, ok := m.records[[2]uuid.UUID{profileID, jobID}]
	if !ok {
		return match.Record{}, repository.ErrMatchNotFound
	}
	return r, nil
}

func (m *mockMatchRepo) ListByProfile(_ context.Context, profileID uuid.UUID) ([]match.Record, error) {
	var out []match.Record
	for k, r := range m.records {
		if k[0] == profileID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockMatchRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, _, _ int) ([]match.Record, error) {
	m.listedBy = "owner:" + ownerID.String()
	return []match.Record{}, nil
}

func (m *mockMatchRepo) ListByRecruiter(_ context.Context, recruiterID uuid.UUID, _, _ int) ([]match.Record, error) {
	m.listedBy = "recruiter:" + recruiterID.String()
	return []match.Record{}, nil
}

type mockSavedJobRepo struct {
	saved map[uuid.UUID]job.SavedJob
}

func newMockSavedJobRepo() *mockSavedJobRepo {
	return &mockSavedJobRepo{saved: map[uuid.UUID]job.SavedJob{}}
}

func (m *mockSavedJobRepo) Save(_ context.Context, s job.SavedJob) (job.SavedJob, error) {
	for _, existing := range m.saved {
		if existing.UserID == s.UserID && existing.JobID == s.JobID {
			return existing, nil
		}
	}
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	m.saved[s.ID] = s
	return s, nil
}

func (m *mockSavedJobRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]job.SavedJob, error) {
	out := make([]job.SavedJob, 0)
	for _, s := range m.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSavedJobRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	s, ok := m.saved[id]
	if !ok || s.UserID != userID {
		return repository.ErrSavedJobNotFound
	}
	delete(m.saved, id)
	return nil
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]any
}

func newMapCache() *mapCache { return &mapCache{data: map[string]any{}} }

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	switch dst := out.(type) {
	case *analysis.Profile:
		*dst = v.(analysis.Profile)
	case *[]analysis.Advisory:
		*dst = v.([]analysis.Advisory)
	case *[]job.Posting:
		*dst = v.([]job.Posting)
	default:
		return false, nil
	}
	return true, nil
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}
