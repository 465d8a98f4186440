package importing

import (
	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/pkg/excel"
)

// Canonical field names used by the per-kind column maps. Validation reasons
// reference the labels, not these identifiers.
const (
	fieldIdentityGroup  = "identity_group"
	fieldAccountID      = "account_id"
	fieldApplication    = "application"
	fieldSuite          = "suite"
	fieldEnvironment    = "environment"
	fieldCritical       = "critical"
	fieldDepartment     = "department"
	fieldJobRole        = "job_role"
	fieldDivision       = "division"
	fieldLeaveDate      = "leave_date"
	fieldEmployeeNumber = "employee_number"
	fieldStatus         = "status"
	fieldReadyDate      = "ready_date"
	fieldTestDate       = "test_date"
	fieldResult         = "result"
	fieldComments       = "comments"
	fieldNewApplication = "new_application"
	fieldNewSuite       = "new_suite"
	fieldScope          = "scope"
	fieldWillBe         = "will_be"
	fieldPlatform       = "platform"
	fieldReadiness      = "readiness"
	fieldDeptSimple     = "department_simple"
	fieldDomain         = "domain"
	fieldCluster        = "migration_cluster"
	fieldClusterReady   = "cluster_readiness"
)

var fieldLabels = map[string]string{
	fieldIdentityGroup: "AD Group",
	fieldAccountID:     "Account",
	fieldApplication:   "Application",
	fieldDepartment:    "Department",
	fieldStatus:        "Status",
	fieldLeaveDate:     "Leave Date",
}

var (
	groupKeySynonyms       = []string{"AD Group", "ADGroup", "AD-Group", "Group"}
	accountSynonyms        = []string{"Account", "Account ID", "AccountID", "User ID", "UserID", "NT Account"}
	applicationSynonyms    = []string{"Application", "Application Name", "App", "App Name"}
	suiteSynonyms          = []string{"Suite", "Application Suite", "App Suite"}
	departmentKeySynonyms  = []string{"Department", "Dept", "Department Name"}
	newApplicationSynonyms = []string{"New Application", "New App", "Target Application"}
)

// schemas maps every data kind to its header synonym table. All tables are
// validated once at package load.
var schemas = map[records.Kind]excel.HeaderSchema{
	records.KindGroups: {
		KeySynonyms: groupKeySynonyms,
		Fields: []excel.FieldSpec{
			{Name: fieldIdentityGroup, Synonyms: groupKeySynonyms},
			{Name: fieldAccountID, Synonyms: accountSynonyms},
			{Name: fieldApplication, Synonyms: applicationSynonyms},
			{Name: fieldSuite, Synonyms: suiteSynonyms},
			{Name: fieldEnvironment, Synonyms: []string{"Environment", "Env", "OTAP"}},
			{Name: fieldCritical, Synonyms: []string{"Critical", "Critical Flag", "Business Critical"}},
		},
	},
	records.KindPersonnel: {
		KeySynonyms: accountSynonyms,
		Fields: []excel.FieldSpec{
			{Name: fieldAccountID, Synonyms: accountSynonyms},
			{Name: fieldDepartment, Synonyms: departmentKeySynonyms},
			{Name: fieldJobRole, Synonyms: []string{"Job Role", "Role", "Function"}},
			{Name: fieldDivision, Synonyms: []string{"Division", "Div"}},
			{Name: fieldLeaveDate, Synonyms: []string{"Leave Date", "Date Left", "Leaving Date"}},
			{Name: fieldEmployeeNumber, Synonyms: []string{"Employee Number", "Employee No", "Personnel Number", "Pernr"}},
		},
	},
	records.KindPackages: {
		KeySynonyms: applicationSynonyms,
		Fields: []excel.FieldSpec{
			{Name: fieldApplication, Synonyms: applicationSynonyms},
			{Name: fieldStatus, Synonyms: []string{"Package Status", "Packaging Status", "Status"}},
			{Name: fieldReadyDate, Synonyms: []string{"Ready Date", "Package Ready Date", "Readiness Date"}},
		},
	},
	records.KindTests: {
		KeySynonyms: applicationSynonyms,
		Fields: []excel.FieldSpec{
			{Name: fieldApplication, Synonyms: applicationSynonyms},
			{Name: fieldStatus, Synonyms: []string{"Test Status", "Testing Status", "Status"}},
			{Name: fieldTestDate, Synonyms: []string{"Test Date", "Date Tested"}},
			{Name: fieldResult, Synonyms: []string{"Result", "Test Result", "Outcome"}},
			{Name: fieldComments, Synonyms: []string{"Comments", "Test Comments", "Remarks"}},
		},
	},
	records.KindMigration: {
		KeySynonyms: groupKeySynonyms,
		Fields: []excel.FieldSpec{
			{Name: fieldIdentityGroup, Synonyms: groupKeySynonyms},
			{Name: fieldApplication, Synonyms: applicationSynonyms},
			{Name: fieldNewApplication, Synonyms: newApplicationSynonyms},
			{Name: fieldSuite, Synonyms: suiteSynonyms},
			{Name: fieldNewSuite, Synonyms: []string{"New Suite", "Target Suite"}},
			{Name: fieldScope, Synonyms: []string{"Scope", "In Scope", "Scope Division"}},
			{Name: fieldWillBe, Synonyms: []string{"Will Be", "WillBe", "Will-Be", "Successor"}},
			{Name: fieldPlatform, Synonyms: []string{"Platform", "Migration Platform", "Target Platform"}},
			{Name: fieldReadiness, Synonyms: []string{"Application Readiness", "Migration Readiness", "App Readiness"}},
		},
	},
	records.KindClusters: {
		KeySynonyms: departmentKeySynonyms,
		Fields: []excel.FieldSpec{
			{Name: fieldDepartment, Synonyms: departmentKeySynonyms},
			{Name: fieldDeptSimple, Synonyms: []string{"Department Simple", "Dept Simple", "Short Department"}},
			{Name: fieldDomain, Synonyms: []string{"Domain", "Business Domain"}},
			{Name: fieldCluster, Synonyms: []string{"Migration Cluster", "Cluster"}},
			{Name: fieldClusterReady, Synonyms: []string{"Cluster Readiness", "Migration Cluster Readiness", "Readiness"}},
		},
	},
}

func init() {
	for kind, schema := range schemas {
		if err := schema.Validate(); err != nil {
			panic("importing: schema for " + kind.String() + ": " + err.Error())
		}
	}
}

// Schema exposes the synonym table of a data kind, mainly for tests and
// documentation tooling.
func Schema(kind records.Kind) excel.HeaderSchema {
	return schemas[kind]
}
