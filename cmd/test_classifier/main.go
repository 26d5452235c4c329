package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ajharbinger/tennis-decider/internal/classifier"
)

// expected labels of classifier.SampleScenarios, in order
var expected = []classifier.Label{
	classifier.Straight,
	classifier.Straight,
	classifier.Decider,
	classifier.Straight,
	classifier.Decider,
	classifier.Straight,
}

func main() {
	fmt.Println("🎾 Straight / Decider Classifier Test")
	fmt.Println("=====================================")
	fmt.Printf("Grand Slams (best-of-5): %s\n", strings.Join(classifier.GrandSlams(), ", "))

	failures := 0
	for i, scenario := range classifier.SampleScenarios() {
		score := scenario.Score
		result := classifier.Explain(&score, scenario.Tournament)

		tournament := "None"
		if scenario.Tournament != nil {
			tournament = *scenario.Tournament
		}

		status := "✅"
		if i < len(expected) && result.Label != expected[i] {
			status = "❌"
			failures++
		}

		printResult(status, tournament, score, result)
	}

	fmt.Println("\n🎯 Classifier Test Complete!")
	fmt.Println("============================")
	if failures > 0 {
		fmt.Printf("❌ %d scenario(s) did not match\n", failures)
		os.Exit(1)
	}
	fmt.Println("✅ All scenarios match")
}

func printResult(status, tournament, score string, result classifier.Result) {
	fmt.Printf("\n%s %s | %q\n", status, tournament, score)
	fmt.Printf("Normalized: %q\n", result.Normalized)
	fmt.Printf("Sets: %s\n", strings.Join(result.UniqueSets, " "))
	for _, set := range result.Sets {
		if set.HasTieBreak() {
			fmt.Printf("  tie-break %s (%d)\n", set.BaseKey(), *set.TieBreak)
		}
	}
	fmt.Printf("Best of: %d\n", result.BestOf)
	fmt.Printf("Label: %d (%s, %s)\n", int(result.Label), result.Label, result.Reason)
}
