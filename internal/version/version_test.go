package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	if got := String(); !strings.HasPrefix(got, "extlink v1.2.3 (commit=") {
		t.Errorf("String() = %q", got)
	}
}
