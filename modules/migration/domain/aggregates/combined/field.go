package combined

import (
	"fmt"

	"github.com/iota-uz/migscope/pkg/repo"
)

// Field enumerates the queryable columns of a combined record. The query
// surface accepts these names, not raw SQL columns.
type Field string

const (
	FieldIdentityGroup      Field = "identity_group"
	FieldAccountID          Field = "account_id"
	FieldApplication        Field = "application"
	FieldSuite              Field = "suite"
	FieldEnvironmentCode    Field = "environment_code"
	FieldCritical           Field = "critical"
	FieldDepartment         Field = "department"
	FieldJobRole            Field = "job_role"
	FieldDivision           Field = "division"
	FieldLeaveDate          Field = "leave_date"
	FieldEmployeeNumber     Field = "employee_number"
	FieldPackageStatus      Field = "package_status"
	FieldPackageReadyDate   Field = "package_ready_date"
	FieldTestStatus         Field = "test_status"
	FieldTestDate           Field = "test_date"
	FieldTestResult         Field = "test_result"
	FieldTestComments       Field = "test_comments"
	FieldNewApplication     Field = "new_application"
	FieldNewSuite           Field = "new_suite"
	FieldScope              Field = "scope"
	FieldWillBe             Field = "will_be"
	FieldPlatform           Field = "platform"
	FieldMigrationReadiness Field = "migration_readiness"
	FieldDepartmentSimple   Field = "department_simple"
	FieldDomain             Field = "domain"
	FieldMigrationCluster   Field = "migration_cluster"
	FieldClusterReadiness   Field = "cluster_readiness"
)

// Fields lists the queryable fields in column order.
func Fields() []Field {
	return []Field{
		FieldIdentityGroup, FieldAccountID, FieldApplication, FieldSuite,
		FieldEnvironmentCode, FieldCritical,
		FieldDepartment, FieldJobRole, FieldDivision, FieldLeaveDate, FieldEmployeeNumber,
		FieldPackageStatus, FieldPackageReadyDate,
		FieldTestStatus, FieldTestDate, FieldTestResult, FieldTestComments,
		FieldNewApplication, FieldNewSuite, FieldScope, FieldWillBe, FieldPlatform,
		FieldMigrationReadiness,
		FieldDepartmentSimple, FieldDomain, FieldMigrationCluster, FieldClusterReadiness,
	}
}

var fieldTypes = map[Field]repo.FieldType{
	FieldIdentityGroup:      repo.TextField,
	FieldAccountID:          repo.TextField,
	FieldApplication:        repo.TextField,
	FieldSuite:              repo.TextField,
	FieldEnvironmentCode:    repo.TextField,
	FieldCritical:           repo.BooleanField,
	FieldDepartment:         repo.TextField,
	FieldJobRole:            repo.TextField,
	FieldDivision:           repo.TextField,
	FieldLeaveDate:          repo.DateField,
	FieldEmployeeNumber:     repo.TextField,
	FieldPackageStatus:      repo.TextField,
	FieldPackageReadyDate:   repo.TextField,
	FieldTestStatus:         repo.TextField,
	FieldTestDate:           repo.TextField,
	FieldTestResult:         repo.TextField,
	FieldTestComments:       repo.TextField,
	FieldNewApplication:     repo.TextField,
	FieldNewSuite:           repo.TextField,
	FieldScope:              repo.TextField,
	FieldWillBe:             repo.TextField,
	FieldPlatform:           repo.TextField,
	FieldMigrationReadiness: repo.TextField,
	FieldDepartmentSimple:   repo.TextField,
	FieldDomain:             repo.TextField,
	FieldMigrationCluster:   repo.TextField,
	FieldClusterReadiness:   repo.TextField,
}

// ParseField resolves and type-checks a queryable field name.
func ParseField(name string) (Field, repo.FieldType, error) {
	f := Field(name)
	t, ok := fieldTypes[f]
	if !ok {
		return "", "", fmt.Errorf("unknown combined-record field %q", name)
	}
	return f, t, nil
}

// Type returns the declared type gating which operators the field accepts.
func (f Field) Type() repo.FieldType {
	return fieldTypes[f]
}
