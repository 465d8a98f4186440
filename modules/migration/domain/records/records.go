package records

import (
	"strings"
	"time"
)

// The importer normalizes missing cells to this sentinel; constructors map it
// to the empty string so domain code only ever checks for "".
const absentSentinel = "N/A"

func normalize(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, absentSentinel) {
		return ""
	}
	return v
}

// GroupKey is the natural key of an identity-group membership row.
type GroupKey struct {
	IdentityGroup string
	AccountID     string
}

// Group is one identity-group membership: an account that uses an application
// through a directory group.
type Group struct {
	identityGroup   string
	accountID       string
	application     string
	suite           string
	environmentCode string
	critical        string
}

func NewGroup(identityGroup, accountID, application, suite, environmentCode, critical string) Group {
	return Group{
		identityGroup:   normalize(identityGroup),
		accountID:       normalize(accountID),
		application:     normalize(application),
		suite:           normalize(suite),
		environmentCode: normalize(environmentCode),
		critical:        normalize(critical),
	}
}

func (g Group) IdentityGroup() string   { return g.identityGroup }
func (g Group) AccountID() string       { return g.accountID }
func (g Group) Application() string     { return g.application }
func (g Group) Suite() string           { return g.suite }
func (g Group) EnvironmentCode() string { return g.environmentCode }
func (g Group) Critical() string        { return g.critical }

func (g Group) Key() GroupKey {
	return GroupKey{IdentityGroup: g.identityGroup, AccountID: g.accountID}
}

// Person is one HR personnel record keyed by account.
type Person struct {
	accountID      string
	department     string
	jobRole        string
	division       string
	leaveDate      *time.Time
	employeeNumber string
}

func NewPerson(accountID, department, jobRole, division string, leaveDate *time.Time, employeeNumber string) Person {
	return Person{
		accountID:      normalize(accountID),
		department:     normalize(department),
		jobRole:        normalize(jobRole),
		division:       normalize(division),
		leaveDate:      leaveDate,
		employeeNumber: normalize(employeeNumber),
	}
}

func (p Person) AccountID() string      { return p.accountID }
func (p Person) Department() string     { return p.department }
func (p Person) JobRole() string        { return p.jobRole }
func (p Person) Division() string       { return p.division }
func (p Person) LeaveDate() *time.Time  { return p.leaveDate }
func (p Person) EmployeeNumber() string { return p.employeeNumber }

// HasLeft reports whether the account departed before now. A query-time
// predicate, never a stored flag.
func (p Person) HasLeft(now time.Time) bool {
	return p.leaveDate != nil && p.leaveDate.Before(now)
}

// PackageStatus is the packaging state of one application.
type PackageStatus struct {
	application string
	status      string
	readyDate   string
}

func NewPackageStatus(application, status, readyDate string) PackageStatus {
	return PackageStatus{
		application: normalize(application),
		status:      normalize(status),
		readyDate:   normalize(readyDate),
	}
}

func (p PackageStatus) Application() string { return p.application }
func (p PackageStatus) Status() string      { return p.status }
func (p PackageStatus) ReadyDate() string   { return p.readyDate }

// TestStatus is the test state of one application.
type TestStatus struct {
	application string
	status      string
	testDate    string
	result      string
	comments    string
}

func NewTestStatus(application, status, testDate, result, comments string) TestStatus {
	return TestStatus{
		application: normalize(application),
		status:      normalize(status),
		testDate:    normalize(testDate),
		result:      normalize(result),
		comments:    normalize(comments),
	}
}

func (t TestStatus) Application() string { return t.application }
func (t TestStatus) Status() string      { return t.status }
func (t TestStatus) TestDate() string    { return t.testDate }
func (t TestStatus) Result() string      { return t.result }
func (t TestStatus) Comments() string    { return t.comments }

// MigrationKey joins migration metadata to identity groups.
type MigrationKey struct {
	IdentityGroup string
	Application   string
}

// Migration is the migration metadata of one (group, application) pair.
type Migration struct {
	identityGroup  string
	application    string
	newApplication string
	suite          string
	newSuite       string
	scope          string
	willBe         string
	platform       string
	readiness      string
}

func NewMigration(identityGroup, application, newApplication, suite, newSuite, scope, willBe, platform, readiness string) Migration {
	return Migration{
		identityGroup:  normalize(identityGroup),
		application:    normalize(application),
		newApplication: normalize(newApplication),
		suite:          normalize(suite),
		newSuite:       normalize(newSuite),
		scope:          normalize(scope),
		willBe:         normalize(willBe),
		platform:       normalize(platform),
		readiness:      normalize(readiness),
	}
}

func (m Migration) IdentityGroup() string  { return m.identityGroup }
func (m Migration) Application() string    { return m.application }
func (m Migration) NewApplication() string { return m.newApplication }
func (m Migration) Suite() string          { return m.suite }
func (m Migration) NewSuite() string       { return m.newSuite }
func (m Migration) Scope() string          { return m.scope }
func (m Migration) WillBe() string         { return m.willBe }
func (m Migration) Platform() string       { return m.platform }
func (m Migration) Readiness() string      { return m.readiness }

func (m Migration) Key() MigrationKey {
	return MigrationKey{IdentityGroup: m.identityGroup, Application: m.application}
}

// OutOfScope reports the "out" classification; anything else counts as in
// scope for progress statistics.
func (m Migration) OutOfScope() bool {
	return strings.EqualFold(m.scope, "out")
}

// HasWillBe reports a redirect to a successor application. The stored target
// is a lookup-only pointer, never ownership.
func (m Migration) HasWillBe() bool {
	return m.willBe != ""
}

// Cluster maps a department to its migration cluster.
type Cluster struct {
	department       string
	departmentSimple string
	domain           string
	migrationCluster string
	clusterReadiness string
}

func NewCluster(department, departmentSimple, domain, migrationCluster, clusterReadiness string) Cluster {
	return Cluster{
		department:       normalize(department),
		departmentSimple: normalize(departmentSimple),
		domain:           normalize(domain),
		migrationCluster: normalize(migrationCluster),
		clusterReadiness: normalize(clusterReadiness),
	}
}

func (c Cluster) Department() string       { return c.department }
func (c Cluster) DepartmentSimple() string { return c.departmentSimple }
func (c Cluster) Domain() string           { return c.domain }
func (c Cluster) MigrationCluster() string { return c.migrationCluster }
func (c Cluster) ClusterReadiness() string { return c.clusterReadiness }
