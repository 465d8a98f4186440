package records

import (
	"fmt"
	"strings"
)

// Kind identifies one of the independently imported source datasets.
type Kind string

const (
	KindGroups    Kind = "groups"    // directory identity-group memberships
	KindPersonnel Kind = "personnel" // HR personnel records
	KindPackages  Kind = "packages"  // application packaging status
	KindTests     Kind = "tests"     // application test status
	KindMigration Kind = "migration" // migration metadata per (group, application)
	KindClusters  Kind = "clusters"  // organizational clustering
)

// Kinds lists every source dataset in import order.
func Kinds() []Kind {
	return []Kind{KindGroups, KindPersonnel, KindPackages, KindTests, KindMigration, KindClusters}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown data kind %q", s)
}

func (k Kind) String() string {
	return string(k)
}
