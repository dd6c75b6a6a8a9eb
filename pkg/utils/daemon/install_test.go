package daemon

import (
	"strings"
	"testing"
)

func TestRenderUnit(t *testing.T) {
	unit := RenderUnit("/usr/local/bin/uconv", "/etc/uconv.json", "/var/run/uconv.sock")

	want := "ExecStart=/usr/local/bin/uconv daemon --config /etc/uconv.json --daemon-socket /var/run/uconv.sock\n"
	if !strings.Contains(unit, want) {
		t.Errorf("unit does not contain %q:\n%s", want, unit)
	}
	if strings.Contains(unit, "/path/to/") {
		t.Errorf("unit has unreplaced placeholders:\n%s", unit)
	}
	if !strings.Contains(unit, "WantedBy=multi-user.target") {
		t.Errorf("unit is missing its install section:\n%s", unit)
	}
}
