package zones

import "testing"

func TestTablesComplete(t *testing.T) {
	tables := Default()

	for z := 1; z <= PowerZoneCount; z++ {
		if _, ok := tables.PowerFTPPercent[z]; !ok {
			t.Errorf("missing FTP percent for power zone %d", z)
		}
		if _, ok := tables.PowerBoundary[z]; !ok {
			t.Errorf("missing boundary for power zone %d", z)
		}
		if _, ok := tables.PowerDisplay[z]; !ok {
			t.Errorf("missing display for power zone %d", z)
		}
	}
	if !tables.PowerBoundary[PowerZoneCount].Open {
		t.Error("top power zone must be open-ended")
	}

	for _, name := range PaceZoneOrder {
		if _, ok := tables.PaceIF[name]; !ok {
			t.Errorf("missing IF for pace zone %s", name)
		}
		if _, ok := tables.PaceOffset[name]; !ok {
			t.Errorf("missing offset for pace zone %s", name)
		}
		if _, ok := tables.PaceDisplay[name]; !ok {
			t.Errorf("missing display for pace zone %s", name)
		}
	}

	for level := 1; level <= 10; level++ {
		if _, ok := tables.PaceBaseByLevel[level]; !ok {
			t.Errorf("missing base pace for level %d", level)
		}
	}
}

func TestPaceZoneByIndex(t *testing.T) {
	if name, ok := PaceZoneByIndex(0); !ok || name != PaceRecovery {
		t.Errorf("index 0 = %q, want %q", name, PaceRecovery)
	}
	if name, ok := PaceZoneByIndex(6); !ok || name != PaceMax {
		t.Errorf("index 6 = %q, want %q", name, PaceMax)
	}
	if _, ok := PaceZoneByIndex(-1); ok {
		t.Error("negative index should not resolve")
	}
	if _, ok := PaceZoneByIndex(7); ok {
		t.Error("index 7 should not resolve")
	}
}
