package scoring

import (
	"sort"
	"time"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
)

// Options narrows which combined records participate in scoring.
type Options struct {
	// ExcludeRedirected drops applications with a successor redirect from the
	// progress aggregates; their users are folded into the successor's user
	// set instead.
	ExcludeRedirected bool
	// ExcludeLeft drops accounts whose leave date precedes Now.
	ExcludeLeft bool
	Now         time.Time
}

// AppStats is the scored progress of one application.
type AppStats struct {
	Application string  `json:"application"`
	Users       int     `json:"users"`
	PackagePct  float64 `json:"packagePct"`
	TestPct     float64 `json:"testPct"`
	Progress    float64 `json:"progress"`
}

// GroupStats is the application-count-weighted progress of one organizational
// group: a department, a division, or a migration cluster. ReadinessStage is
// empty when fewer than half of the weighted group carries a readiness value.
type GroupStats struct {
	Name           string  `json:"name"`
	Applications   int     `json:"applications"`
	Users          int     `json:"users"`
	PackagePct     float64 `json:"packagePct"`
	TestPct        float64 `json:"testPct"`
	Progress       float64 `json:"progress"`
	ReadinessPct   float64 `json:"readinessPct"`
	ReadinessStage string  `json:"readinessStage,omitempty"`
}

// Report carries one full scoring pass over the combined records.
type Report struct {
	Applications []AppStats   `json:"applications"`
	Departments  []GroupStats `json:"departments"`
	Divisions    []GroupStats `json:"divisions"`
	Clusters     []GroupStats `json:"clusters"`
}

// readiness coverage below this share of the weighted group reports no
// aggregate readiness at all rather than a misleadingly low stage.
const readinessCoverageFloor = 0.5

type appAccumulator struct {
	packagePct float64
	testPct    float64
	users      map[string]bool
	scored     bool
}

type deptAccumulator struct {
	division string
	cluster  string
	apps     map[string]bool
	users    map[string]bool

	readinessPct float64
	hasReadiness bool

	// filled after app resolution
	sumPackage float64
	sumTest    float64
}

// Score computes per-application and per-group progress over the combined
// records. Aggregation is order-independent: two permutations of the same
// records produce identical reports.
func Score(records []combined.Record, opts Options) *Report {
	apps := make(map[string]*appAccumulator)
	depts := make(map[string]*deptAccumulator)

	appFor := func(name string) *appAccumulator {
		a, ok := apps[name]
		if !ok {
			a = &appAccumulator{users: make(map[string]bool)}
			apps[name] = a
		}
		return a
	}

	for _, r := range records {
		if r.OutOfScope() {
			continue
		}
		if opts.ExcludeLeft && r.HasLeft(opts.Now) {
			continue
		}
		if opts.ExcludeRedirected && r.HasWillBe() {
			// Redirected usage counts toward the successor's audience, never
			// toward the superseded application's progress.
			appFor(r.WillBe).users[r.AccountID] = true
			continue
		}
		if r.Application == "" {
			continue
		}

		app := appFor(r.Application)
		app.users[r.AccountID] = true
		if !app.scored {
			app.packagePct = PackagePercent(r.PackageStatus)
			app.testPct = TestPercent(r.TestStatus)
			app.scored = true
		}

		dept, ok := depts[r.Department]
		if !ok {
			dept = &deptAccumulator{
				apps:  make(map[string]bool),
				users: make(map[string]bool),
			}
			depts[r.Department] = dept
		}
		if dept.division == "" {
			dept.division = r.Division
		}
		if dept.cluster == "" {
			dept.cluster = r.MigrationCluster
		}
		dept.apps[r.Application] = true
		dept.users[r.AccountID] = true
		if !dept.hasReadiness {
			if stage, ok := ParseStage(r.ClusterReadiness); ok {
				dept.readinessPct = stage.Percent()
				dept.hasReadiness = true
			}
		}
	}

	report := &Report{}
	for name, a := range apps {
		if !a.scored {
			// Fold-in target that never appears as an application itself;
			// audience only, no status to score.
			continue
		}
		report.Applications = append(report.Applications, AppStats{
			Application: name,
			Users:       len(a.users),
			PackagePct:  a.packagePct,
			TestPct:     a.testPct,
			Progress:    (a.packagePct + a.testPct) / 2,
		})
	}
	sort.Slice(report.Applications, func(i, j int) bool {
		return report.Applications[i].Application < report.Applications[j].Application
	})

	for _, d := range depts {
		for app := range d.apps {
			a := apps[app]
			d.sumPackage += a.packagePct
			d.sumTest += a.testPct
		}
	}

	report.Departments = departmentStats(depts)
	report.Divisions = rollUp(depts, func(d *deptAccumulator) string { return d.division })
	report.Clusters = rollUp(depts, func(d *deptAccumulator) string { return d.cluster })
	return report
}

func departmentStats(depts map[string]*deptAccumulator) []GroupStats {
	out := make([]GroupStats, 0, len(depts))
	for name, d := range depts {
		n := len(d.apps)
		if n == 0 {
			continue
		}
		pkg := d.sumPackage / float64(n)
		tst := d.sumTest / float64(n)
		g := GroupStats{
			Name:         name,
			Applications: n,
			Users:        len(d.users),
			PackagePct:   pkg,
			TestPct:      tst,
			Progress:     (pkg + tst) / 2,
		}
		if d.hasReadiness {
			g.ReadinessPct = d.readinessPct
			if stage, ok := StageForPercent(d.readinessPct); ok {
				g.ReadinessStage = stage.String()
			}
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// rollUp aggregates departments into a coarser grouping, weighting every
// department by its application count.
func rollUp(depts map[string]*deptAccumulator, keyOf func(*deptAccumulator) string) []GroupStats {
	type bucket struct {
		apps int
		// union, not a sum of per-department counts: an account spanning two
		// departments is still one user of the division or cluster.
		users           map[string]bool
		sumPackage      float64
		sumTest         float64
		readinessWeight float64
		sumReadiness    float64
	}
	buckets := make(map[string]*bucket)
	for _, d := range depts {
		n := len(d.apps)
		if n == 0 {
			continue
		}
		key := keyOf(d)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{users: make(map[string]bool)}
			buckets[key] = b
		}
		b.apps += n
		for u := range d.users {
			b.users[u] = true
		}
		b.sumPackage += d.sumPackage
		b.sumTest += d.sumTest
		if d.hasReadiness {
			b.readinessWeight += float64(n)
			b.sumReadiness += d.readinessPct * float64(n)
		}
	}

	out := make([]GroupStats, 0, len(buckets))
	for name, b := range buckets {
		pkg := b.sumPackage / float64(b.apps)
		tst := b.sumTest / float64(b.apps)
		g := GroupStats{
			Name:         name,
			Applications: b.apps,
			Users:        len(b.users),
			PackagePct:   pkg,
			TestPct:      tst,
			Progress:     (pkg + tst) / 2,
		}
		if b.readinessWeight/float64(b.apps) >= readinessCoverageFloor {
			g.ReadinessPct = b.sumReadiness / b.readinessWeight
			if stage, ok := StageForPercent(g.ReadinessPct); ok {
				g.ReadinessStage = stage.String()
			}
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
