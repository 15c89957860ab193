package matching

// ExternalFixture is one provider-reported fixture, consumed transiently
// while correlating provider data with stored fixtures. Raw status and
// scores pass through untouched; only the team names are interpreted here.
type ExternalFixture struct {
	ExternalID int64
	HomeTeam   string
	AwayTeam   string
	Status     string
	HomeScore  *int
	AwayScore  *int
}

// MatchResult carries the winning candidate plus enough context for the
// caller to flag suspicious correlations.
type MatchResult struct {
	Candidate ExternalFixture
	Index     int
	// Swapped is set when the candidate matched with home and away
	// reversed, as providers occasionally list a fixture's orientation
	// differently.
	Swapped bool
	// Ambiguous is set when more than one candidate matched; the first in
	// input order wins, but callers should route these to manual review.
	Ambiguous bool
}

// Match finds the external fixture whose normalized team pair equals the
// internal pair, directly or swapped. No match is a normal result: the
// caller treats it as "not yet correlated" and retries on a later pass.
func Match(home, away string, candidates []ExternalFixture) (MatchResult, bool) {
	homeKey := Normalize(home)
	awayKey := Normalize(away)
	if homeKey == "" || awayKey == "" {
		return MatchResult{}, false
	}

	found := false
	result := MatchResult{}
	for i, candidate := range candidates {
		candidateHome := Normalize(candidate.HomeTeam)
		candidateAway := Normalize(candidate.AwayTeam)
		if candidateHome == "" || candidateAway == "" {
			continue
		}

		direct := candidateHome == homeKey && candidateAway == awayKey
		swapped := candidateHome == awayKey && candidateAway == homeKey
		if !direct && !swapped {
			continue
		}

		if found {
			result.Ambiguous = true
			continue
		}

		found = true
		result.Candidate = candidate
		result.Index = i
		result.Swapped = !direct && swapped
	}

	return result, found
}
