package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/careershub/careers_api/internal/job"
	"github.com/careershub/careers_api/internal/logging"
	"github.com/careershub/careers_api/internal/mail"
	"github.com/careershub/careers_api/internal/user"
)

type fakeApplicants struct {
	users map[string]user.User
}

func (f *fakeApplicants) FindByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, errors.New("no such user")
	}
	return u, nil
}

type captureMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	fail error
}

func (m *captureMailer) Send(_ context.Context, message mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, message)
	return nil
}

type fixture struct {
	svc    *Service
	jobs   job.Repository
	mailer *captureMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	jobs := job.NewMemoryRepository()
	applicants := &fakeApplicants{users: map[string]user.User{
		"u1": {ID: "u1", FirstName: "Ada", Email: "ada@example.com"},
	}}
	mailer := &captureMailer{}
	svc := NewService(NewMemoryRepository(), jobs, applicants, mailer, logging.Discard())
	return &fixture{svc: svc, jobs: jobs, mailer: mailer}
}

func (f *fixture) seedJob(t *testing.T, id string, hasForm bool) {
	t.Helper()
	err := f.jobs.Create(context.Background(), job.Job{ID: id, CompanyID: "c1", Title: "Backend Engineer", HasAdditionalForm: hasForm})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
}

func TestApply(t *testing.T) {
	f := newFixture(t)
	f.seedJob(t, "j1", false)

	a, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "j1", UserID: "u1"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", a.Status)
	}
	if a.FormSubmitted {
		t.Fatal("expected no form submission for a plain job")
	}

	j, err := f.jobs.FindByID(context.Background(), "j1")
	if err != nil {
		t.Fatalf("find job: %v", err)
	}
	if j.SeekersCount != 1 {
		t.Fatalf("expected seeker count 1, got %d", j.SeekersCount)
	}
}

func TestApplyUnknownJob(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "missing", UserID: "u1"}); !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected job.ErrNotFound, got %v", err)
	}
}

func TestApplyTwiceRejected(t *testing.T) {
	f := newFixture(t)
	f.seedJob(t, "j1", false)

	if _, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "j1", UserID: "u1"}); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if _, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "j1", UserID: "u1"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestApplyRequiresFormAnswers(t *testing.T) {
	f := newFixture(t)
	f.seedJob(t, "j1", true)

	_, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "j1", UserID: "u1", FirstAnswer: "yes"})
	if !errors.Is(err, ErrMissingAnswers) {
		t.Fatalf("expected ErrMissingAnswers, got %v", err)
	}

	a, err := f.svc.Apply(context.Background(), ApplyInput{
		JobID: "j1", UserID: "u1",
		FirstAnswer: "a", SecondAnswer: "b", ThirdAnswer: "c", FourthAnswer: "d",
	})
	if err != nil {
		t.Fatalf("apply with answers: %v", err)
	}
	if !a.FormSubmitted {
		t.Fatal("expected form marked as submitted")
	}
}

func TestDecideNotifiesApplicant(t *testing.T) {
	f := newFixture(t)
	f.seedJob(t, "j1", false)

	a, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "j1", UserID: "u1"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	decided, err := f.svc.Decide(context.Background(), a.ID, StatusAccepted)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %q", decided.Status)
	}

	stored, err := f.svc.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != StatusAccepted {
		t.Fatalf("expected persisted status accepted, got %q", stored.Status)
	}

	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.mailer.sent))
	}
	if f.mailer.sent[0].To != "ada@example.com" {
		t.Fatalf("notification sent to %q", f.mailer.sent[0].To)
	}
}

func TestDecidePersistsDespiteMailFailure(t *testing.T) {
	f := newFixture(t)
	f.seedJob(t, "j1", false)
	f.mailer.fail = errors.New("relay down")

	a, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "j1", UserID: "u1"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := f.svc.Decide(context.Background(), a.ID, StatusRejected); !errors.Is(err, ErrNotifyFailure) {
		t.Fatalf("expected ErrNotifyFailure, got %v", err)
	}

	stored, err := f.svc.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != StatusRejected {
		t.Fatalf("expected persisted rejection, got %q", stored.Status)
	}
}

func TestDecideRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	f.seedJob(t, "j1", false)

	a, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "j1", UserID: "u1"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := f.svc.Decide(context.Background(), a.ID, "maybe"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	stored, err := f.svc.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != StatusPending {
		t.Fatalf("expected pending after bad decision, got %q", stored.Status)
	}
}

func TestListByJobPaginates(t *testing.T) {
	f := newFixture(t)
	f.seedJob(t, "j1", false)

	for i := 0; i < 12; i++ {
		_, err := f.svc.Apply(context.Background(), ApplyInput{JobID: "j1", UserID: fmt.Sprintf("applicant-%d", i)})
		if err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}

	page, err := f.svc.ListByJob(context.Background(), "j1", 2, 5)
	if err != nil {
		t.Fatalf("list by job: %v", err)
	}
	if page.TotalItems != 12 {
		t.Fatalf("expected 12 items, got %d", page.TotalItems)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if page.CurrentPage != 2 {
		t.Fatalf("expected current page 2, got %d", page.CurrentPage)
	}
	if len(page.Data) != 5 {
		t.Fatalf("expected 5 applications on page, got %d", len(page.Data))
	}
}

func TestListByUser(t *testing.T) {
	f := newFixture(t)
	f.seedJob(t, "j1", false)
	f.seedJob(t, "j2", false)

	for _, jobID := range []string{"j1", "j2"} {
		if _, err := f.svc.Apply(context.Background(), ApplyInput{JobID: jobID, UserID: "u1"}); err != nil {
			t.Fatalf("apply to %s: %v", jobID, err)
		}
	}

	page, err := f.svc.ListByUser(context.Background(), "u1", 0, 0)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if page.TotalItems != 2 || page.CurrentPage != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if len(page.Data) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(page.Data))
	}
}

func TestDeleteUnknownApplication(t *testing.T) {
	f := newFixture(t)

	if err := f.svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
