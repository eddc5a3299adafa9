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
	ProviderName = "foodieexpress-api"
	ConsumerName = "foodie-web"

	StateDemoCatalog  = "demo catalog is loaded"
	StateUserHasOrder = "pact user has placed an order"
	StateOrderMissing = "no order with the missing id"
)

// Demo catalog identifiers shared by consumer and provider.
const (
	OpenRestaurantID   = "7d3b2c4e-1f0a-4c6b-9e2d-3a5f8b1c0d01"
	ClosedRestaurantID = "7d3b2c4e-1f0a-4c6b-9e2d-3a5f8b1c0d03"
	PaneerTikkaID      = "5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a01"
	GarlicNaanID       = "5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a02"
	SmashBurgerID      = "5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a06"
	MissingOrderID     = "00000000-0000-4000-8000-000000000404"
)

const (
	// BearerToken is accepted by the provider's contract identity provider.
	BearerToken = "pact-user-token"
	PactUserID  = "9b2f3c1d-4e5a-4b6c-8d7e-0f1a2b3c4d5e"
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

// PactFile returns the canonical pact file path for the web consumer.
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

// ExampleOrderRequest is the order the web client places in contract tests.
func ExampleOrderRequest() map[string]any {
	return map[string]any{
		"restaurantId":    OpenRestaurantID,
		"deliveryAddress": "221B Baker Street",
		"items": []map[string]any{
			{"menuItemId": PaneerTikkaID, "quantity": 1},
			{"menuItemId": GarlicNaanID, "quantity": 2, "specialInstructions": "extra butter"},
		},
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
