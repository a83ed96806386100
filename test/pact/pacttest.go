//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "dentallab-api"
	ConsumerName = "lab-dashboard"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order ord-101 exists"
	StateOrderMissing   = "no order ord-404"
	StateSampleLoaded   = "sample orders loaded"
)

const (
	ExistingOrderID = "ord-101"
	MissingOrderID  = "ord-404"
)

const (
	exampleClinic   = "Zahnklinik Berlin"
	exampleContact  = "dr.bauer@zahnklinik.de"
	exampleType     = "Crown (Zr)"
	exampleReceived = "2025-10-10"
	exampleDue      = "2025-10-20"
	exampleNotes    = "Shade A2"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the lab dashboard consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable order data for pact interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"id":           ExistingOrderID,
		"clinic":       exampleClinic,
		"contact":      exampleContact,
		"type":         exampleType,
		"receivedDate": exampleReceived,
		"dueDate":      exampleDue,
		"status":       "In Progress",
		"notes":        exampleNotes,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
