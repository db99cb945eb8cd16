package patch

import (
	"os"
	"testing"

	"github.com/arthur-debert/overlay/pkg/testutil"
)

func TestMain(m *testing.M) {
	testutil.SilenceLogs()
	os.Exit(m.Run())
}
