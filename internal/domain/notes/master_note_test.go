package notes

import "testing"

func TestMasterNoteTopic(t *testing.T) {
	if got := MasterNoteTopic("Biology", 4); got != "Biology - Chapter 4" {
		t.Fatalf("unexpected topic: %q", got)
	}
	if got := MasterNoteTopic("", 1); got != "Unknown - Chapter 1" {
		t.Fatalf("unexpected fallback topic: %q", got)
	}
}
