package api

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"beacon-api/domain"
)

type recordingQueueStore struct {
	noopStore
	err error

	mu        sync.Mutex
	companies []string
	cmds      []domain.Command
}

func (r *recordingQueueStore) EnqueueCommands(ctx context.Context, companyID string, cmds []domain.Command) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies = append(r.companies, companyID)
	r.cmds = append(r.cmds, cmds...)
	return nil
}

func (r *recordingQueueStore) snapshot() ([]string, []domain.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	companies := append([]string(nil), r.companies...)
	cmds := append([]domain.Command(nil), r.cmds...)
	return companies, cmds
}

func commandJob(companyID string, types ...string) enqueueJob {
	job := enqueueJob{companyID: companyID}
	for _, typ := range types {
		key := companyID + "-" + typ
		job.cmds = append(job.cmds, domain.Command{ID: key, IdempotencyKey: key, BoardID: "b1", EntityType: "task", Type: typ})
		job.added = append(job.added, key)
	}
	return job
}

func startWorkerForTests(t *testing.T, store Storage, deduper Deduper) {
	t.Helper()
	resetCommandSenderForTests()
	t.Cleanup(resetCommandSenderForTests)

	globalStore = store
	globalDeduper = deduper
	globalLog = log.New()
	enqueueTimeout = time.Second
	jobs = make(chan enqueueJob, 4)
	workerWG.Add(1)
	go worker(0, jobs)
}

func TestWorkerForwardsCompanyScopedCommands(t *testing.T) {
	store := &recordingQueueStore{}
	startWorkerForTests(t, store, &fakeDeduper{})

	if !tryEnqueueJob(commandJob("company-a", "create", "update")) {
		t.Fatal("expected enqueue to succeed with free capacity")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		companies, cmds := store.snapshot()
		if len(cmds) == 2 {
			if companies[0] != "company-a" {
				t.Fatalf("unexpected company: %q", companies[0])
			}
			if cmds[0].Type != "create" || cmds[1].Type != "update" {
				t.Fatalf("unexpected commands: %#v", cmds)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected 2 forwarded commands, got %d", len(cmds))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWorkerRollsBackDedupeKeysOnFailure(t *testing.T) {
	store := &recordingQueueStore{err: errors.New("queue down")}
	deduper := &fakeDeduper{}
	startWorkerForTests(t, store, deduper)

	job := commandJob("company-a", "create", "update")
	if !tryEnqueueJob(job) {
		t.Fatal("expected enqueue to succeed with free capacity")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		deduper.mu.Lock()
		removed := append([]string(nil), deduper.removed...)
		deduper.mu.Unlock()
		if len(removed) == len(job.added) {
			for i, key := range job.added {
				if removed[i] != key {
					t.Fatalf("unexpected rollback keys: %#v", removed)
				}
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected %d rolled back keys, got %d", len(job.added), len(removed))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestTryEnqueueJobWaitsForCapacity(t *testing.T) {
	resetCommandSenderForTests()
	t.Cleanup(resetCommandSenderForTests)

	jobs = make(chan enqueueJob, 1)
	handoffTimeout = 50 * time.Millisecond

	jobs <- commandJob("company-a", "create")

	done := make(chan bool, 1)
	go func() {
		done <- tryEnqueueJob(commandJob("company-b", "update"))
	}()

	select {
	case <-done:
		t.Fatal("tryEnqueueJob returned before capacity was freed")
	case <-time.After(20 * time.Millisecond):
	}

	first := <-jobs
	if first.companyID != "company-a" {
		t.Fatalf("drained wrong job: %q", first.companyID)
	}

	select {
	case ok := <-done:
		if !ok {
			t.Fatal("expected successful enqueue after capacity freed")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for enqueue completion")
	}

	second := <-jobs
	if second.companyID != "company-b" || len(second.cmds) != 1 {
		t.Fatalf("handed-off job lost its payload: %#v", second)
	}
}

func TestTryEnqueueJobTimesOut(t *testing.T) {
	resetCommandSenderForTests()
	t.Cleanup(resetCommandSenderForTests)

	jobs = make(chan enqueueJob, 1)
	handoffTimeout = 30 * time.Millisecond

	jobs <- commandJob("company-a", "create")

	if tryEnqueueJob(commandJob("company-b", "update")) {
		t.Fatal("expected enqueue to fail when timeout elapsed")
	}

	select {
	case job := <-jobs:
		if job.companyID != "company-a" {
			t.Fatalf("buffered job replaced: %q", job.companyID)
		}
	default:
		t.Fatal("expected channel to remain full after timeout")
	}
}

func TestTryEnqueueJobReturnsFalseWhenClosed(t *testing.T) {
	resetCommandSenderForTests()
	t.Cleanup(resetCommandSenderForTests)
	t.Cleanup(func() { jobs = nil })

	jobs = make(chan enqueueJob)
	close(jobs)

	if tryEnqueueJob(commandJob("company-a", "create")) {
		t.Fatal("expected enqueue to fail when channel is closed")
	}
}

func TestTryEnqueueJobNoWaitWhenZeroTimeout(t *testing.T) {
	resetCommandSenderForTests()
	t.Cleanup(resetCommandSenderForTests)

	jobs = make(chan enqueueJob, 1)
	handoffTimeout = 0

	jobs <- commandJob("company-a", "create")

	if tryEnqueueJob(commandJob("company-b", "update")) {
		t.Fatal("expected enqueue to fail when buffer full and no timeout")
	}

	<-jobs

	if !tryEnqueueJob(commandJob("company-b", "update")) {
		t.Fatal("expected enqueue to succeed when buffer has capacity")
	}
}
