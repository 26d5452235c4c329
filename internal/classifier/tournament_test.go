package classifier

import "testing"

func TestIsGrandSlamName(t *testing.T) {
	testCases := []struct {
		name     string
		expected bool
	}{
		{"Wimbledon", true},
		{"2023 Wimbledon Championships", true},
		{"WIMBLEDON", true},
		{"us open", true},
		{"Roland Garros", true},
		{"Australian Open 2024", true},
		{"Roland-Garros", false},
		{"AO", false},
		{"Uſ Open", false},
		{"Queen's Club", false},
		{"Miami Open", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsGrandSlamName(tc.name); got != tc.expected {
				t.Errorf("IsGrandSlamName(%q) = %v, want %v", tc.name, got, tc.expected)
			}
		})
	}
}

func TestClassifyText_LowerCasedTournamentOnly(t *testing.T) {
	if got := ClassifyText("6-4 6-3", "Uſ Open"); got != Straight {
		t.Errorf("Expected long s not to match US Open, got %d", got)
	}
	if got := ClassifyText("6-4 6-3", "us open"); got != Unclassified {
		t.Errorf("Expected two sets at a Grand Slam to be unclassified, got %d", got)
	}
}

func TestIsGrandSlam_Nil(t *testing.T) {
	if IsGrandSlam(nil) {
		t.Error("Expected nil tournament not to be a Grand Slam")
	}
}

func TestGrandSlams_ReturnsCopy(t *testing.T) {
	names := GrandSlams()
	if len(names) != 4 {
		t.Fatalf("Expected 4 Grand Slams, got %d", len(names))
	}
	names[0] = "Changed"
	if GrandSlams()[0] != "Australian Open" {
		t.Error("Expected registry to be immutable")
	}
}
