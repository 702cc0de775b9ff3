package scrape

import "testing"

func TestLookupStrategy_KnownNames(t *testing.T) {
	names := []string{
		"Debian", "Python", "Vim", "GnuPG", "cmus", "aShell", "picoopenpgp",
		"BBC", "DW", "CNN", "Irish Times",
	}

	for _, name := range names {
		strategy, ok := LookupStrategy(name)
		if !ok {
			t.Errorf("Expected a strategy registered for %q", name)
		}
		if strategy == nil {
			t.Errorf("Expected non-nil strategy for %q", name)
		}
	}

	if len(strategies) != len(names) {
		t.Errorf("Expected %d registered strategies, got %d", len(names), len(strategies))
	}
}

func TestLookupStrategy_UnknownName(t *testing.T) {
	_, ok := LookupStrategy("Unknown Source")
	if ok {
		t.Error("Expected no strategy for an unregistered name")
	}
}

func TestLookupStrategy_CaseSensitive(t *testing.T) {
	_, ok := LookupStrategy("debian")
	if ok {
		t.Error("Expected strategy lookup to be case sensitive")
	}
}
