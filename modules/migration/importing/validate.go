package importing

import (
	"fmt"
	"time"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/pkg/excel"
)

// Accepted spellings for optional date cells. Exports disagree on locale, so
// the ISO form and the two common day-first forms are all recognized.
var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

func parseDate(v string) (*time.Time, error) {
	if v == excel.Sentinel {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%q is not a recognized date", v)
}

func required(m *excel.ColumnMap, row []string, field string, reasons []string) []string {
	if m.Value(row, field) == excel.Sentinel {
		label := fieldLabels[field]
		if label == "" {
			label = field
		}
		return append(reasons, label+" is required")
	}
	return reasons
}

// dedupKey is the comparable natural key the duplicate check uses. Keeping
// the parts separate avoids collisions a rendered string could produce when
// a name itself contains the separator. Zero value means the kind has no
// dedup key.
type dedupKey struct {
	a, b string
}

// parsed is the outcome of validating one data row. Exactly one of the typed
// record fields is set when Reasons is empty. Key is the kind's natural key
// rendered for the duplicate report, empty for kinds without one.
type parsed struct {
	Reasons  []string
	Key      string
	DedupKey dedupKey

	Group     *records.Group
	Person    *records.Person
	Package   *records.PackageStatus
	Test      *records.TestStatus
	Migration *records.Migration
	Cluster   *records.Cluster
}

func parseRow(kind records.Kind, m *excel.ColumnMap, row []string) parsed {
	switch kind {
	case records.KindGroups:
		return parseGroupRow(m, row)
	case records.KindPersonnel:
		return parsePersonRow(m, row)
	case records.KindPackages:
		return parsePackageRow(m, row)
	case records.KindTests:
		return parseTestRow(m, row)
	case records.KindMigration:
		return parseMigrationRow(m, row)
	case records.KindClusters:
		return parseClusterRow(m, row)
	}
	return parsed{Reasons: []string{fmt.Sprintf("unknown data kind %q", kind)}}
}

func parseGroupRow(m *excel.ColumnMap, row []string) parsed {
	var reasons []string
	reasons = required(m, row, fieldIdentityGroup, reasons)
	reasons = required(m, row, fieldAccountID, reasons)
	if len(reasons) > 0 {
		return parsed{Reasons: reasons}
	}

	g := records.NewGroup(
		m.Value(row, fieldIdentityGroup),
		m.Value(row, fieldAccountID),
		m.Value(row, fieldApplication),
		m.Value(row, fieldSuite),
		m.Value(row, fieldEnvironment),
		m.Value(row, fieldCritical),
	)
	return parsed{
		Group:    &g,
		Key:      g.IdentityGroup() + " / " + g.AccountID(),
		DedupKey: dedupKey{a: g.IdentityGroup(), b: g.AccountID()},
	}
}

func parsePersonRow(m *excel.ColumnMap, row []string) parsed {
	var reasons []string
	reasons = required(m, row, fieldAccountID, reasons)

	leaveDate, err := parseDate(m.Value(row, fieldLeaveDate))
	if err != nil {
		reasons = append(reasons, fieldLabels[fieldLeaveDate]+" "+err.Error())
	}
	if len(reasons) > 0 {
		return parsed{Reasons: reasons}
	}

	p := records.NewPerson(
		m.Value(row, fieldAccountID),
		m.Value(row, fieldDepartment),
		m.Value(row, fieldJobRole),
		m.Value(row, fieldDivision),
		leaveDate,
		m.Value(row, fieldEmployeeNumber),
	)
	return parsed{Person: &p, Key: p.AccountID(), DedupKey: dedupKey{a: p.AccountID()}}
}

func parsePackageRow(m *excel.ColumnMap, row []string) parsed {
	var reasons []string
	reasons = required(m, row, fieldApplication, reasons)
	if len(reasons) > 0 {
		return parsed{Reasons: reasons}
	}

	p := records.NewPackageStatus(
		m.Value(row, fieldApplication),
		m.Value(row, fieldStatus),
		m.Value(row, fieldReadyDate),
	)
	// Several status rows per application are legal input; reconciliation
	// resolves and counts them. No dedup key here.
	return parsed{Package: &p}
}

func parseTestRow(m *excel.ColumnMap, row []string) parsed {
	var reasons []string
	reasons = required(m, row, fieldApplication, reasons)
	if len(reasons) > 0 {
		return parsed{Reasons: reasons}
	}

	t := records.NewTestStatus(
		m.Value(row, fieldApplication),
		m.Value(row, fieldStatus),
		m.Value(row, fieldTestDate),
		m.Value(row, fieldResult),
		m.Value(row, fieldComments),
	)
	return parsed{Test: &t}
}

func parseMigrationRow(m *excel.ColumnMap, row []string) parsed {
	var reasons []string
	reasons = required(m, row, fieldIdentityGroup, reasons)
	reasons = required(m, row, fieldApplication, reasons)
	if len(reasons) > 0 {
		return parsed{Reasons: reasons}
	}

	mg := records.NewMigration(
		m.Value(row, fieldIdentityGroup),
		m.Value(row, fieldApplication),
		m.Value(row, fieldNewApplication),
		m.Value(row, fieldSuite),
		m.Value(row, fieldNewSuite),
		m.Value(row, fieldScope),
		m.Value(row, fieldWillBe),
		m.Value(row, fieldPlatform),
		m.Value(row, fieldReadiness),
	)
	return parsed{
		Migration: &mg,
		Key:       mg.IdentityGroup() + " / " + mg.Application(),
		DedupKey:  dedupKey{a: mg.IdentityGroup(), b: mg.Application()},
	}
}

func parseClusterRow(m *excel.ColumnMap, row []string) parsed {
	var reasons []string
	reasons = required(m, row, fieldDepartment, reasons)
	if len(reasons) > 0 {
		return parsed{Reasons: reasons}
	}

	c := records.NewCluster(
		m.Value(row, fieldDepartment),
		m.Value(row, fieldDeptSimple),
		m.Value(row, fieldDomain),
		m.Value(row, fieldCluster),
		m.Value(row, fieldClusterReady),
	)
	return parsed{Cluster: &c, Key: c.Department(), DedupKey: dedupKey{a: c.Department()}}
}
