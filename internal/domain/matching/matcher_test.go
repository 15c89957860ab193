package matching

import "testing"

func TestMatch_DirectOrientation(t *testing.T) {
	t.Parallel()

	candidates := []ExternalFixture{
		{ExternalID: 10, HomeTeam: "Olympique Lyonnais", AwayTeam: "Marseille"},
		{ExternalID: 11, HomeTeam: "Real Madrid CF", AwayTeam: "FC Barcelona"},
	}

	result, ok := Match("Real Madrid", "Barcelona", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Candidate.ExternalID != 11 {
		t.Fatalf("unexpected candidate: got=%d want=11", result.Candidate.ExternalID)
	}
	if result.Swapped {
		t.Fatal("direct match should not be flagged swapped")
	}
	if result.Ambiguous {
		t.Fatal("single match should not be ambiguous")
	}
}

func TestMatch_ToleratesHomeAwaySwap(t *testing.T) {
	t.Parallel()

	candidates := []ExternalFixture{
		{ExternalID: 7, HomeTeam: "Barcelona", AwayTeam: "Real Madrid"},
	}

	result, ok := Match("Real Madrid", "Barcelona", candidates)
	if !ok {
		t.Fatal("expected a swapped match")
	}
	if result.Candidate.ExternalID != 7 {
		t.Fatalf("unexpected candidate: got=%d want=7", result.Candidate.ExternalID)
	}
	if !result.Swapped {
		t.Fatal("swapped orientation should be flagged")
	}
}

func TestMatch_NoMatchIsNormal(t *testing.T) {
	t.Parallel()

	candidates := []ExternalFixture{
		{ExternalID: 1, HomeTeam: "Toulouse", AwayTeam: "Nantes"},
		{ExternalID: 2, HomeTeam: "Rennes", AwayTeam: "Lille"},
	}

	if _, ok := Match("Lyon", "Pau", candidates); ok {
		t.Fatal("unrelated candidates must not match")
	}
}

func TestMatch_FirstInInputOrderWinsAndFlagsAmbiguity(t *testing.T) {
	t.Parallel()

	candidates := []ExternalFixture{
		{ExternalID: 1, HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
		{ExternalID: 2, HomeTeam: "Arsenal FC", AwayTeam: "Chelsea FC"},
	}

	result, ok := Match("Arsenal", "Chelsea", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Candidate.ExternalID != 1 || result.Index != 0 {
		t.Fatalf("first candidate in input order should win: got id=%d index=%d", result.Candidate.ExternalID, result.Index)
	}
	if !result.Ambiguous {
		t.Fatal("duplicate candidates should be flagged ambiguous")
	}
}

func TestMatch_EmptyNormalizedPairNeverMatches(t *testing.T) {
	t.Parallel()

	candidates := []ExternalFixture{
		{ExternalID: 1, HomeTeam: "Athletic", AwayTeam: "Sporting"},
	}

	// Both sides normalize to "", which must not be treated as equality.
	if _, ok := Match("Athletic", "Sporting", candidates); ok {
		t.Fatal("generic-only names must not correlate")
	}
}
