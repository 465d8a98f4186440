package configuration

import (
	"testing"
)

func TestEnvironmentNames(t *testing.T) {
	c := &Configuration{Environments: "main, dryrun ,archive"}
	names := c.EnvironmentNames()
	if len(names) != 3 {
		t.Fatalf("expected 3 environments, got %d (%v)", len(names), names)
	}
	for i, want := range []string{"main", "dryrun", "archive"} {
		if names[i] != want {
			t.Errorf("environment %d: expected %q, got %q", i, want, names[i])
		}
	}
}

func TestEnvironmentNames_Empty(t *testing.T) {
	c := &Configuration{Environments: " , "}
	if names := c.EnvironmentNames(); len(names) != 0 {
		t.Fatalf("expected no environments, got %v", names)
	}
}

func TestConnectionStringFor(t *testing.T) {
	d := &DatabaseOptions{
		Name:     "migscope",
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "postgres",
	}

	got := d.ConnectionStringFor("dryrun")
	want := "host=localhost port=5432 user=postgres dbname=migscope_dryrun password=postgres sslmode=disable"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if d.ConnectionStringFor("") != d.ConnectionString() {
		t.Error("blank environment should fall back to the default database")
	}
}
