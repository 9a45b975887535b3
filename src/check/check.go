package check

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"hycu-check/src/classify"
	"hycu-check/src/config"
	"hycu-check/src/hycuapi"
	"hycu-check/src/inventory"
	"hycu-check/src/report"
)

// Kind selects a pipeline.
type Kind string

const (
	KindVMs     Kind = "vms"
	KindTargets Kind = "targets"
)

// Runner executes the VM and target pipelines against one controller.
type Runner struct {
	Client hycuapi.Client
	Config config.Config
	Log    logr.Logger
	// Now is the clock used for backup age; time.Now when nil.
	Now func() time.Time
}

// Run executes the given pipelines in order and merges their lines.
func (r *Runner) Run(ctx context.Context, kinds ...Kind) (*report.Report, error) {
	out := report.New()
	for _, k := range kinds {
		switch k {
		case KindVMs:
			out.Merge(r.RunVMs(ctx))
		case KindTargets:
			out.Merge(r.RunTargets(ctx))
		default:
			return nil, fmt.Errorf("unknown check %q", k)
		}
	}
	return out, nil
}

// aggregateService names the single line a pipeline emits when it cannot
// report per entity.
func (r *Runner) aggregateService(k Kind) string {
	if k == KindTargets {
		return report.ServiceName("", r.Config.ServicePrefix, "Targets")
	}
	return report.ServiceName("", r.Config.ServicePrefix)
}

// RunVMs reports the most recent backup of every VM that is not excluded.
// An inventory failure or an empty inventory yields one aggregate UNKNOWN
// line; a backup history failure only affects that VM's line.
func (r *Runner) RunVMs(ctx context.Context) *report.Report {
	log := r.Log.WithName("vms")
	out := report.New()

	raw, err := r.Client.ListVMs(ctx)
	if err != nil {
		log.Error(err, "unable to list VMs")
		out.Add(classify.Unknown, r.aggregateService(KindVMs), "API error listing VMs: "+err.Error())
		return out
	}
	if len(raw) == 0 {
		out.Add(classify.Unknown, r.aggregateService(KindVMs), "no VMs found")
		return out
	}

	vms := make([]inventory.VM, 0, len(raw))
	for _, o := range raw {
		vm := inventory.NormalizeVM(o, r.Config.ExcludeReason)
		if vm.Excluded {
			log.V(1).Info("skipping excluded VM", "vm", vm.Name, "uuid", vm.UUID)
			continue
		}
		if vm.IDIssue != nil {
			log.V(1).Info("unexpected VM identifier", "vm", vm.Name, "uuid", vm.UUID, "reason", vm.IDIssue.Reason)
		}
		vms = append(vms, vm)
	}

	opts := classify.Options{CriticalDays: r.Config.CriticalDays, Now: r.now()}
	results := r.fetchBackups(ctx, log, vms)
	for i, vm := range vms {
		res := classify.Backup(results[i], opts)
		out.Add(res.Severity, report.ServiceName(vm.UUID, r.Config.ServicePrefix, vm.Name), res.Message)
	}
	log.Info("VM check complete", "listed", len(raw), "reported", len(vms), "exit", out.Exit())
	return out
}

// fetchBackups loads the backup history of every VM with at most
// Config.Workers requests in flight. Results are indexed like vms.
func (r *Runner) fetchBackups(ctx context.Context, log logr.Logger, vms []inventory.VM) []classify.BackupInput {
	results := make([]classify.BackupInput, len(vms))
	workers := r.Config.Workers
	if workers <= 0 {
		workers = 1
	}

	// Entity-local failures are stored in results; the group never fails.
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, vm := range vms {
		i, vm := i, vm
		g.Go(func() error {
			results[i] = r.fetchBackup(ctx, log, vm)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (r *Runner) fetchBackup(ctx context.Context, log logr.Logger, vm inventory.VM) classify.BackupInput {
	if vm.UUID == "" {
		err := &inventory.MissingDataError{Field: "uuid", Reason: "VM has no identifier"}
		return classify.BackupInput{Err: err}
	}
	page, err := r.Client.VMBackups(ctx, vm.UUID)
	if err != nil {
		log.Error(err, "unable to fetch backups", "vm", vm.Name, "uuid", vm.UUID)
		return classify.BackupInput{Err: err}
	}
	in := classify.BackupInput{Total: page.Metadata.GrandTotalEntityCount}
	if in.Total > 0 && len(page.Entities) > 0 {
		b := inventory.NormalizeBackup(page.Entities[0])
		for _, m := range b.Missing {
			log.V(1).Info("backup field degraded", "vm", vm.Name, "field", m.Field, "reason", m.Reason)
		}
		in.Latest = &b
	}
	return in
}

// RunTargets reports the health of every backup target that is not excluded.
func (r *Runner) RunTargets(ctx context.Context) *report.Report {
	log := r.Log.WithName("targets")
	out := report.New()

	raw, err := r.Client.ListTargets(ctx)
	if err != nil {
		log.Error(err, "unable to list targets")
		out.Add(classify.Unknown, r.aggregateService(KindTargets), "API error listing targets: "+err.Error())
		return out
	}
	if len(raw) == 0 {
		out.Add(classify.Unknown, r.aggregateService(KindTargets), "no targets found")
		return out
	}

	for _, o := range raw {
		t := inventory.NormalizeTarget(o, r.Config.ExcludeReason)
		if t.Excluded {
			log.V(1).Info("skipping excluded target", "target", t.Name, "uuid", t.UUID)
			continue
		}
		if t.IDIssue != nil {
			log.V(1).Info("unexpected target identifier", "target", t.Name, "uuid", t.UUID, "reason", t.IDIssue.Reason)
		}
		res := classify.Target(t)
		out.Add(res.Severity, report.ServiceName(t.UUID, r.Config.ServicePrefix, "Target", t.Name), res.Message)
	}
	log.Info("target check complete", "listed", len(raw), "reported", out.Len(), "exit", out.Exit())
	return out
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}
