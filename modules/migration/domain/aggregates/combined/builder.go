package combined

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
)

// Snapshot is the full set of currently persisted source records the rebuild
// consumes. It always spans every previous import, not just the latest one.
type Snapshot struct {
	Groups    []records.Group
	Personnel []records.Person
	Packages  []records.PackageStatus
	Tests     []records.TestStatus
	Migration []records.Migration
	Clusters  []records.Cluster
}

// BuildReport surfaces the data-quality signals of one rebuild. Ambiguity
// counters record join keys with more than one candidate; resolution stays
// deterministic (first encountered wins) but is never hidden.
type BuildReport struct {
	Total            int
	MissingPersonnel int

	AmbiguousGroups    int
	AmbiguousPersonnel int
	AmbiguousPackages  int
	AmbiguousTests     int
	AmbiguousMigration int
	AmbiguousClusters  int

	// WillBeCycles lists redirect loops ("A -> B -> A"); WillBeChains lists
	// multi-hop redirects ("A -> B -> C"). Both are data-quality findings:
	// resolution itself always takes exactly one hop.
	WillBeCycles []string
	WillBeChains []string
}

// Build reconciles the snapshot into one record per unique (group, account)
// pair. Output is sorted by that key, so rebuilding an unchanged snapshot in
// any storage order yields identical records apart from timestamp and batch.
func Build(snap Snapshot, importedAt time.Time, batchID uuid.UUID) ([]Record, *BuildReport) {
	report := &BuildReport{}

	personnel := make(map[string]records.Person, len(snap.Personnel))
	for _, p := range snap.Personnel {
		if _, seen := personnel[p.AccountID()]; seen {
			report.AmbiguousPersonnel++
			continue
		}
		personnel[p.AccountID()] = p
	}

	packages := make(map[string]records.PackageStatus, len(snap.Packages))
	for _, p := range snap.Packages {
		if _, seen := packages[p.Application()]; seen {
			report.AmbiguousPackages++
			continue
		}
		packages[p.Application()] = p
	}

	tests := make(map[string]records.TestStatus, len(snap.Tests))
	for _, t := range snap.Tests {
		if _, seen := tests[t.Application()]; seen {
			report.AmbiguousTests++
			continue
		}
		tests[t.Application()] = t
	}

	migration := make(map[records.MigrationKey]records.Migration, len(snap.Migration))
	for _, m := range snap.Migration {
		if _, seen := migration[m.Key()]; seen {
			report.AmbiguousMigration++
			continue
		}
		migration[m.Key()] = m
	}

	clusters := make(map[string]records.Cluster, len(snap.Clusters))
	for _, c := range snap.Clusters {
		if _, seen := clusters[c.Department()]; seen {
			report.AmbiguousClusters++
			continue
		}
		clusters[c.Department()] = c
	}

	report.WillBeCycles, report.WillBeChains = auditWillBe(snap.Migration)

	seenKeys := make(map[records.GroupKey]bool, len(snap.Groups))
	out := make([]Record, 0, len(snap.Groups))
	for _, g := range snap.Groups {
		if seenKeys[g.Key()] {
			// Appending imports can reintroduce a key a previous batch
			// already carries; the combined set keeps one row per key.
			report.AmbiguousGroups++
			continue
		}
		seenKeys[g.Key()] = true

		rec := Record{
			IdentityGroup:   g.IdentityGroup(),
			AccountID:       g.AccountID(),
			Application:     g.Application(),
			Suite:           g.Suite(),
			EnvironmentCode: g.EnvironmentCode(),
			Critical:        g.Critical(),
			ImportedAt:      importedAt,
			BatchID:         batchID,
		}

		if p, ok := personnel[g.AccountID()]; ok {
			rec.Department = p.Department()
			rec.JobRole = p.JobRole()
			rec.Division = p.Division()
			rec.LeaveDate = p.LeaveDate()
			rec.EmployeeNumber = p.EmployeeNumber()
		} else {
			report.MissingPersonnel++
		}

		if p, ok := packages[g.Application()]; ok {
			rec.PackageStatus = p.Status()
			rec.PackageReadyDate = p.ReadyDate()
		}

		if t, ok := tests[g.Application()]; ok {
			rec.TestStatus = t.Status()
			rec.TestDate = t.TestDate()
			rec.TestResult = t.Result()
			rec.TestComments = t.Comments()
		}

		if m, ok := migration[records.MigrationKey{
			IdentityGroup: g.IdentityGroup(),
			Application:   g.Application(),
		}]; ok {
			rec.NewApplication = m.NewApplication()
			rec.NewSuite = m.NewSuite()
			rec.Scope = m.Scope()
			rec.WillBe = m.WillBe()
			rec.Platform = m.Platform()
			rec.MigrationReadiness = m.Readiness()
		}

		if c, ok := clusters[rec.Department]; ok && rec.Department != "" {
			rec.DepartmentSimple = c.DepartmentSimple()
			rec.Domain = c.Domain()
			rec.MigrationCluster = c.MigrationCluster()
			rec.ClusterReadiness = c.ClusterReadiness()
		}

		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].IdentityGroup != out[j].IdentityGroup {
			return out[i].IdentityGroup < out[j].IdentityGroup
		}
		return out[i].AccountID < out[j].AccountID
	})

	report.Total = len(out)
	return out, report
}

// auditWillBe walks the application redirect graph. One redirect map entry per
// application, first encountered wins, matching the join resolution above.
func auditWillBe(migrations []records.Migration) (cycles, chains []string) {
	redirect := make(map[string]string)
	apps := make([]string, 0, len(migrations))
	for _, m := range migrations {
		if !m.HasWillBe() {
			continue
		}
		if _, seen := redirect[m.Application()]; seen {
			continue
		}
		redirect[m.Application()] = m.WillBe()
		apps = append(apps, m.Application())
	}
	sort.Strings(apps)

	reportedCycle := make(map[string]bool)
	for _, app := range apps {
		path := []string{app}
		visited := map[string]bool{app: true}
		current := app
		cyclic := false
		for {
			next, ok := redirect[current]
			if !ok {
				break
			}
			path = append(path, next)
			if visited[next] {
				cyclic = true
				break
			}
			visited[next] = true
			current = next
		}

		rendered := strings.Join(path, " -> ")
		if cyclic {
			if !reportedCycle[canonicalCycle(path)] {
				reportedCycle[canonicalCycle(path)] = true
				cycles = append(cycles, rendered)
			}
			continue
		}
		// path = app -> target is the expected single hop; anything longer
		// means the target is itself redirected.
		if len(path) > 2 {
			chains = append(chains, rendered)
		}
	}
	return cycles, chains
}

// canonicalCycle identifies a cycle independently of the walk's entry point,
// so A -> B -> A and B -> A -> B report once.
func canonicalCycle(path []string) string {
	if len(path) < 2 {
		return strings.Join(path, "|")
	}
	// The walk stops on the first revisited node; the cycle proper starts at
	// its earlier occurrence. Anything before is a lead-in, not cycle.
	closing := path[len(path)-1]
	start := 0
	for i, node := range path[:len(path)-1] {
		if node == closing {
			start = i
			break
		}
	}
	members := path[start : len(path)-1]
	minIdx := 0
	for i, m := range members {
		if m < members[minIdx] {
			minIdx = i
		}
	}
	rotated := make([]string, 0, len(members))
	rotated = append(rotated, members[minIdx:]...)
	rotated = append(rotated, members[:minIdx]...)
	return strings.Join(rotated, "|")
}
