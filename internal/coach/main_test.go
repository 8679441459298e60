package coach

import (
	"testing"

	"go.uber.org/goleak"
)

// Listeners and concurrent actions must not leave goroutines behind once
// every store is closed.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}
