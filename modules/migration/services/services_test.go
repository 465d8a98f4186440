package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/pkg/composables"
)

// mockTx satisfies pgx.Tx for the shared-transaction wrapper; the mock
// repositories never touch the database, so no method is actually invoked.
type mockTx struct {
	pgx.Tx
}

func txContext() context.Context {
	return composables.WithTx(context.Background(), &mockTx{})
}

type capturePublisher struct {
	events []interface{}
}

func (p *capturePublisher) Publish(args ...interface{}) {
	p.events = append(p.events, args...)
}
func (p *capturePublisher) Subscribe(handler interface{})   {}
func (p *capturePublisher) Unsubscribe(handler interface{}) {}
func (p *capturePublisher) Clear()                          {}
func (p *capturePublisher) SubscribersCount() int           { return 0 }

type mockSourceRepo[T any] struct {
	items   []T
	cleared bool
	err     error
}

func (m *mockSourceRepo[T]) AppendAll(ctx context.Context, items []T) error {
	if m.err != nil {
		return m.err
	}
	m.items = append(m.items, items...)
	return nil
}

func (m *mockSourceRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	return m.items, m.err
}

func (m *mockSourceRepo[T]) Count(ctx context.Context) (int64, error) {
	return int64(len(m.items)), m.err
}

func (m *mockSourceRepo[T]) Clear(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.cleared = true
	m.items = nil
	return nil
}

type mockStore struct {
	groups    mockSourceRepo[records.Group]
	personnel mockSourceRepo[records.Person]
	packages  mockSourceRepo[records.PackageStatus]
	tests     mockSourceRepo[records.TestStatus]
	migration mockSourceRepo[records.Migration]
	clusters  mockSourceRepo[records.Cluster]
}

func (m *mockStore) sourceStore() *records.SourceStore {
	return &records.SourceStore{
		Groups:    &m.groups,
		Personnel: &m.personnel,
		Packages:  &m.packages,
		Tests:     &m.tests,
		Migration: &m.migration,
		Clusters:  &m.clusters,
	}
}

type mockCombinedRepo struct {
	replaced []combined.Record
	found    []combined.Record
	params   *combined.FindParams
	updates  map[combined.Field]string
	cleared  bool
	err      error
}

func newMockCombinedRepo() *mockCombinedRepo {
	return &mockCombinedRepo{updates: make(map[combined.Field]string)}
}

func (m *mockCombinedRepo) ReplaceAll(ctx context.Context, items []combined.Record) error {
	if m.err != nil {
		return m.err
	}
	m.replaced = items
	return nil
}

func (m *mockCombinedRepo) GetAll(ctx context.Context) ([]combined.Record, error) {
	return m.found, m.err
}

func (m *mockCombinedRepo) Find(ctx context.Context, params *combined.FindParams) ([]combined.Record, error) {
	m.params = params
	return m.found, m.err
}

func (m *mockCombinedRepo) GetByKey(ctx context.Context, identityGroup, accountID string) (combined.Record, error) {
	for _, r := range m.found {
		if r.IdentityGroup == identityGroup && r.AccountID == accountID {
			return r, nil
		}
	}
	return combined.Record{}, combined.ErrNotFound
}

func (m *mockCombinedRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.found)), m.err
}

func (m *mockCombinedRepo) Clear(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.cleared = true
	return nil
}

func (m *mockCombinedRepo) UpdatePackageStatus(ctx context.Context, identityGroup, accountID, value string) error {
	return m.update(combined.FieldPackageStatus, identityGroup, accountID, value)
}

func (m *mockCombinedRepo) UpdatePackageReadyDate(ctx context.Context, identityGroup, accountID, value string) error {
	return m.update(combined.FieldPackageReadyDate, identityGroup, accountID, value)
}

func (m *mockCombinedRepo) UpdateTestStatus(ctx context.Context, identityGroup, accountID, value string) error {
	return m.update(combined.FieldTestStatus, identityGroup, accountID, value)
}

func (m *mockCombinedRepo) UpdateMigrationCluster(ctx context.Context, identityGroup, accountID, value string) error {
	return m.update(combined.FieldMigrationCluster, identityGroup, accountID, value)
}

func (m *mockCombinedRepo) update(field combined.Field, identityGroup, accountID, value string) error {
	if m.err != nil {
		return m.err
	}
	if identityGroup == "" || accountID == "" {
		return combined.ErrNotFound
	}
	m.updates[field] = value
	return nil
}
