package hycuapi

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// FakeClient is an in-memory implementation for unit tests. VMs and targets
// are served through FetchAll with PageSize, so pagination is exercised too.
type FakeClient struct {
	PageSize int

	VMs     []Object
	Targets []Object
	// Backups maps a VM uuid to its backup history page.
	Backups map[string]Page

	// Errors injected per call.
	ListVMsErr     error
	ListTargetsErr error
	BackupErrs     map[string]error
	// BackupDelays holds VMBackups back per VM uuid, to shuffle completion order.
	BackupDelays   map[string]time.Duration

	mu          sync.Mutex
	backupCalls map[string]int
	completed   []string
	pageCalls   int
}

func NewFake() *FakeClient {
	return &FakeClient{
		PageSize:     100,
		Backups:      map[string]Page{},
		BackupErrs:   map[string]error{},
		BackupDelays: map[string]time.Duration{},
		backupCalls:  map[string]int{},
	}
}

func (f *FakeClient) ListVMs(ctx context.Context) ([]Object, error) {
	if f.ListVMsErr != nil {
		return nil, f.ListVMsErr
	}
	return FetchAll(ctx, f.PageSize, f.pager(f.VMs))
}

func (f *FakeClient) ListTargets(ctx context.Context) ([]Object, error) {
	if f.ListTargetsErr != nil {
		return nil, f.ListTargetsErr
	}
	return FetchAll(ctx, f.PageSize, f.pager(f.Targets))
}

func (f *FakeClient) VMBackups(ctx context.Context, vmUUID string) (Page, error) {
	f.mu.Lock()
	f.backupCalls[vmUUID]++
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.completed = append(f.completed, vmUUID)
		f.mu.Unlock()
	}()
	if d := f.BackupDelays[vmUUID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
		}
	}
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if err, ok := f.BackupErrs[vmUUID]; ok {
		return Page{}, err
	}
	p, ok := f.Backups[vmUUID]
	if !ok {
		// mimic HYCU for an unknown VM
		return Page{}, &HTTPStatusError{URL: fmt.Sprintf("/vms/%s/backups", vmUUID), StatusCode: 404}
	}
	return p, nil
}

// BackupCalls reports how many times VMBackups was called for vmUUID.
func (f *FakeClient) BackupCalls(vmUUID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.backupCalls[vmUUID]
}

// Completed returns the uuids in the order their VMBackups calls returned.
func (f *FakeClient) Completed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.completed))
	copy(out, f.completed)
	return out
}

// PageCalls reports how many inventory pages were served.
func (f *FakeClient) PageCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pageCalls
}

func (f *FakeClient) pager(all []Object) PageFunc {
	return func(_ context.Context, page int) (Page, error) {
		f.mu.Lock()
		f.pageCalls++
		f.mu.Unlock()
		start := (page - 1) * f.PageSize
		if start >= len(all) {
			return Page{Metadata: Metadata{GrandTotalEntityCount: len(all), PageNumber: page}}, nil
		}
		end := start + f.PageSize
		if end > len(all) {
			end = len(all)
		}
		return Page{
			Entities: all[start:end],
			Metadata: Metadata{GrandTotalEntityCount: len(all), PageSize: f.PageSize, PageNumber: page},
		}, nil
	}
}

// BackupPage builds a history page whose grand total matches its entities.
func BackupPage(entities ...Object) Page {
	return Page{Entities: entities, Metadata: Metadata{GrandTotalEntityCount: len(entities)}}
}
