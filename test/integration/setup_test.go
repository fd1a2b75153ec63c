package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/leitos/leitos/internal/domain/audit"
	"github.com/leitos/leitos/internal/domain/bed"
	"github.com/leitos/leitos/internal/domain/patient"
	"github.com/leitos/leitos/internal/platform/db"
	"github.com/leitos/leitos/internal/platform/telemetry"
)

// testDB holds the shared database infrastructure for integration tests.
type testDB struct {
	Pool          *pgxpool.Pool
	ConnStr       string
	MigrationsDir string
}

// globalDB is the package-level test database, initialized once in TestMain.
var globalDB *testDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	tdb, cleanup, err := setupPostgres(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup postgres container: %v\n", err)
		os.Exit(1)
	}

	globalDB = tdb
	code := m.Run()
	cleanup()
	os.Exit(code)
}

// setupPostgres starts a Postgres 16 container, connects a pool and applies
// all migrations once for the whole package.
func setupPostgres(ctx context.Context) (*testDB, func(), error) {
	migrationsDir := findMigrationsDir()

	connStr, cleanup, err := startPostgresContainer(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("start postgres container: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		cleanup()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	migrator := db.NewMigrator(pool, migrationsDir)
	if _, err := migrator.Up(ctx); err != nil {
		pool.Close()
		cleanup()
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &testDB{
			Pool:          pool,
			ConnStr:       connStr,
			MigrationsDir: migrationsDir,
		}, func() {
			pool.Close()
			cleanup()
		}, nil
}

// findMigrationsDir locates the migrations directory relative to this test file.
func findMigrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	// test/integration -> repo root
	root := filepath.Join(dir, "..", "..")
	return filepath.Join(root, "migrations")
}

// resetTables wipes all domain tables so each test starts from a clean slate.
func resetTables(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := globalDB.Pool.Exec(ctx, "TRUNCATE audit_entries, beds, patients CASCADE")
	if err != nil {
		t.Fatalf("reset tables: %v", err)
	}
}

// testFixture wires real repositories and services against the shared pool.
type testFixture struct {
	Beds     *bed.Service
	Patients *patient.Service
	Audits   *audit.Service
}

func newFixture(t *testing.T, ctx context.Context) *testFixture {
	t.Helper()
	resetTables(t, ctx)

	logger := zerolog.Nop()
	metrics := telemetry.New()
	runner := db.NewRunner(globalDB.Pool)

	bedRepo := bed.NewBedRepoPG(globalDB.Pool)
	patientRepo := patient.NewPatientRepoPG(globalDB.Pool)
	auditRepo := audit.NewEntryRepoPG(globalDB.Pool)

	return &testFixture{
		Beds:     bed.NewService(bedRepo, patientRepo, auditRepo, runner, metrics, logger),
		Patients: patient.NewService(patientRepo, logger),
		Audits:   audit.NewService(auditRepo),
	}
}

// createBed registers a bed through the service and fails the test on error.
func createBed(t *testing.T, ctx context.Context, f *testFixture, code string, kind bed.Kind) *bed.Bed {
	t.Helper()
	b := &bed.Bed{Code: code, Kind: kind}
	if err := f.Beds.RegisterBed(ctx, b); err != nil {
		t.Fatalf("register bed %s: %v", code, err)
	}
	return b
}

// createPatient registers a patient through the service and fails the test on error.
func createPatient(t *testing.T, ctx context.Context, f *testFixture, name, cpf string) *patient.Patient {
	t.Helper()
	p := &patient.Patient{Name: name, CPF: cpf}
	if err := f.Patients.Register(ctx, p); err != nil {
		t.Fatalf("register patient %s: %v", name, err)
	}
	return p
}
