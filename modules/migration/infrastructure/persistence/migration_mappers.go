package persistence

import (
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
	"github.com/iota-uz/migscope/modules/migration/domain/records"
)

func groupToRow(g records.Group) []any {
	return []any{
		g.IdentityGroup(), g.AccountID(), g.Application(),
		g.Suite(), g.EnvironmentCode(), g.Critical(),
	}
}

func scanGroup(rows pgx.Rows) (records.Group, error) {
	var identityGroup, accountID, application, suite, environmentCode, critical string
	err := rows.Scan(&identityGroup, &accountID, &application, &suite, &environmentCode, &critical)
	if err != nil {
		return records.Group{}, err
	}
	return records.NewGroup(identityGroup, accountID, application, suite, environmentCode, critical), nil
}

func personToRow(p records.Person) []any {
	return []any{
		p.AccountID(), p.Department(), p.JobRole(),
		p.Division(), p.LeaveDate(), p.EmployeeNumber(),
	}
}

func scanPerson(rows pgx.Rows) (records.Person, error) {
	var accountID, department, jobRole, division, employeeNumber string
	var leaveDate *time.Time
	err := rows.Scan(&accountID, &department, &jobRole, &division, &leaveDate, &employeeNumber)
	if err != nil {
		return records.Person{}, err
	}
	return records.NewPerson(accountID, department, jobRole, division, leaveDate, employeeNumber), nil
}

func packageToRow(p records.PackageStatus) []any {
	return []any{p.Application(), p.Status(), p.ReadyDate()}
}

func scanPackage(rows pgx.Rows) (records.PackageStatus, error) {
	var application, status, readyDate string
	if err := rows.Scan(&application, &status, &readyDate); err != nil {
		return records.PackageStatus{}, err
	}
	return records.NewPackageStatus(application, status, readyDate), nil
}

func testToRow(t records.TestStatus) []any {
	return []any{t.Application(), t.Status(), t.TestDate(), t.Result(), t.Comments()}
}

func scanTest(rows pgx.Rows) (records.TestStatus, error) {
	var application, status, testDate, result, comments string
	if err := rows.Scan(&application, &status, &testDate, &result, &comments); err != nil {
		return records.TestStatus{}, err
	}
	return records.NewTestStatus(application, status, testDate, result, comments), nil
}

func migrationToRow(m records.Migration) []any {
	return []any{
		m.IdentityGroup(), m.Application(), m.NewApplication(), m.Suite(),
		m.NewSuite(), m.Scope(), m.WillBe(), m.Platform(), m.Readiness(),
	}
}

func scanMigration(rows pgx.Rows) (records.Migration, error) {
	var identityGroup, application, newApplication, suite string
	var newSuite, scope, willBe, platform, readiness string
	err := rows.Scan(
		&identityGroup, &application, &newApplication, &suite,
		&newSuite, &scope, &willBe, &platform, &readiness,
	)
	if err != nil {
		return records.Migration{}, err
	}
	return records.NewMigration(
		identityGroup, application, newApplication, suite,
		newSuite, scope, willBe, platform, readiness,
	), nil
}

func clusterToRow(c records.Cluster) []any {
	return []any{
		c.Department(), c.DepartmentSimple(), c.Domain(),
		c.MigrationCluster(), c.ClusterReadiness(),
	}
}

func scanCluster(rows pgx.Rows) (records.Cluster, error) {
	var department, departmentSimple, domain, migrationCluster, clusterReadiness string
	err := rows.Scan(&department, &departmentSimple, &domain, &migrationCluster, &clusterReadiness)
	if err != nil {
		return records.Cluster{}, err
	}
	return records.NewCluster(department, departmentSimple, domain, migrationCluster, clusterReadiness), nil
}

func combinedToRow(r combined.Record) []any {
	return []any{
		r.IdentityGroup, r.AccountID, r.Application, r.Suite,
		r.EnvironmentCode, r.Critical,
		r.Department, r.JobRole, r.Division, r.LeaveDate, r.EmployeeNumber,
		r.PackageStatus, r.PackageReadyDate,
		r.TestStatus, r.TestDate, r.TestResult, r.TestComments,
		r.NewApplication, r.NewSuite, r.Scope, r.WillBe, r.Platform, r.MigrationReadiness,
		r.DepartmentSimple, r.Domain, r.MigrationCluster, r.ClusterReadiness,
		r.ImportedAt, r.BatchID,
	}
}

func scanCombined(row pgx.Row) (combined.Record, error) {
	var r combined.Record
	err := row.Scan(
		&r.IdentityGroup, &r.AccountID, &r.Application, &r.Suite,
		&r.EnvironmentCode, &r.Critical,
		&r.Department, &r.JobRole, &r.Division, &r.LeaveDate, &r.EmployeeNumber,
		&r.PackageStatus, &r.PackageReadyDate,
		&r.TestStatus, &r.TestDate, &r.TestResult, &r.TestComments,
		&r.NewApplication, &r.NewSuite, &r.Scope, &r.WillBe, &r.Platform, &r.MigrationReadiness,
		&r.DepartmentSimple, &r.Domain, &r.MigrationCluster, &r.ClusterReadiness,
		&r.ImportedAt, &r.BatchID,
	)
	return r, err
}
