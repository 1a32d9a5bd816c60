package system

import "testing"

func TestCriticalPathsAreGuarded(t *testing.T) {
	for _, path := range []string{"/", "/etc", "/usr", "/home", "/var/.."} {
		if !IsCriticalSystemPath(path) {
			t.Fatalf("path %s not recognized as critical", path)
		}
	}
}

func TestChildPathsAreAllowed(t *testing.T) {
	for _, path := range []string{"/home/user/scratch", "/tmp/forge-out", "/opt/data/testset"} {
		if IsCriticalSystemPath(path) {
			t.Fatalf("path %s wrongly flagged as critical", path)
		}
	}
}

func TestCheckRootSafety(t *testing.T) {
	if err := CheckRootSafety("/etc", false); err == nil {
		t.Fatal("expected refusal for /etc")
	}
	if err := CheckRootSafety("/etc", true); err != nil {
		t.Fatalf("unsafe mode should bypass the guard: %v", err)
	}
	if err := CheckRootSafety("/home/user/scratch", false); err != nil {
		t.Fatalf("unexpected refusal: %v", err)
	}
}
