package pool

import "testing"

func TestGetMapReturnsCleared(t *testing.T) {
	m := GetMap()
	m["stale"] = 1
	PutMap(m)

	got := GetMap()
	if len(got) != 0 {
		t.Errorf("expected cleared map, got %d entries", len(got))
	}
	PutMap(got)
}

func TestGetOffsetsReturnsEmpty(t *testing.T) {
	buf := GetOffsets()
	buf = append(buf, 10, 20, 30)
	PutOffsets(buf)

	got := GetOffsets()
	if len(got) != 0 {
		t.Errorf("expected empty buffer, got len %d", len(got))
	}
	PutOffsets(got)
}
