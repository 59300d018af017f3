package service

import (
	"testing"

	"go.uber.org/goleak"
)

// The portfolio use case fans out goroutines; none may outlive a call.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}
