package classifier

// Scenario is a score/tournament pair used for spot checks.
type Scenario struct {
	Tournament *string `json:"tournament" yaml:"tournament"`
	Score      string  `json:"score" yaml:"score"`
}

// ScenarioResult is a Scenario with its detected label.
type ScenarioResult struct {
	Scenario `yaml:",inline"`
	Detected Label `json:"detected" yaml:"detected"`
}

// SampleScenarios returns the quick-check scores: Grand Slam matches of 3, 3
// and 5 sets, the same tie-break score outside a Grand Slam, and a plain
// two-setter with no tournament.
func SampleScenarios() []Scenario {
	named := func(name string) *string { return &name }
	return []Scenario{
		{Tournament: named("Wimbledon"), Score: "7-6(5) 6-7(6) 6-4"},
		{Tournament: named("Wimbledon"), Score: "6-4 6-3 6-2"},
		{Tournament: named("US Open"), Score: "6-3 4-6 7-5 3-6 6-4"},
		{Tournament: named("Roland Garros"), Score: "7-6(9) 6-7(7) 6-3"},
		{Tournament: named("Unknown"), Score: "7-6(5) 6-7(6) 6-4"},
		{Tournament: nil, Score: "6-4 6-3"},
	}
}

// RunScenarios classifies each scenario.
func RunScenarios(scenarios []Scenario) []ScenarioResult {
	results := make([]ScenarioResult, len(scenarios))
	for i, s := range scenarios {
		score := s.Score
		results[i] = ScenarioResult{
			Scenario: s,
			Detected: Classify(&score, s.Tournament),
		}
	}
	return results
}
