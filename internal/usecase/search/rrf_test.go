package search

import (
	"testing"

	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
)

func vecHit(t *testing.T, id string) result.Result {
	return makeResult(t, id, "content of "+id, 0.9, result.MethodVector, nil)
}

func kwHit(t *testing.T, id string) result.Result {
	return makeResult(t, id, "content of "+id, 0.9, result.MethodKeyword, nil)
}

func TestFuseRRF_BothListsBeatSingleList(t *testing.T) {
	// "both" sits at rank 0 in both lists; "solo" at rank 0 of a list of its own.
	vec := []result.Result{vecHit(t, "both"), vecHit(t, "filler")}
	kw := []result.Result{kwHit(t, "both"), kwHit(t, "solo")}

	results := fuseRRF(vec, kw, 10)
	if results[0].ID() != "both" {
		t.Fatalf("top result = %s, want both", results[0].ID())
	}

	var soloScore float64
	for _, r := range results {
		if r.ID() == "solo" {
			soloScore = r.Score()
		}
	}
	// rank 0 twice: 2/61 > rank 0 once + anything a single list can give at rank 1.
	if results[0].Score() <= soloScore {
		t.Errorf("both-lists score %f not above single-list score %f", results[0].Score(), soloScore)
	}
}

func TestFuseRRF_ContributionFormula(t *testing.T) {
	vec := []result.Result{vecHit(t, "a"), vecHit(t, "b")}

	results := fuseRRF(vec, nil, 10)
	if got, want := results[0].Score(), 1.0/61; got != want {
		t.Errorf("rank-0 contribution = %f, want %f", got, want)
	}
	if got, want := results[1].Score(), 1.0/62; got != want {
		t.Errorf("rank-1 contribution = %f, want %f", got, want)
	}
}

func TestFuseRRF_MethodTagFromFirstSeenList(t *testing.T) {
	vec := []result.Result{vecHit(t, "both")}
	kw := []result.Result{kwHit(t, "both"), kwHit(t, "kwonly")}

	results := fuseRRF(vec, kw, 10)
	for _, r := range results {
		switch r.ID() {
		case "both":
			if r.Method() != result.MethodVector {
				t.Errorf("both tagged %s, want vector", r.Method())
			}
		case "kwonly":
			if r.Method() != result.MethodKeyword {
				t.Errorf("kwonly tagged %s, want keyword", r.Method())
			}
		}
	}
}

func TestFuseRRF_TopK(t *testing.T) {
	vec := []result.Result{vecHit(t, "a"), vecHit(t, "b"), vecHit(t, "c")}
	kw := []result.Result{kwHit(t, "d"), kwHit(t, "e")}

	if got := len(fuseRRF(vec, kw, 2)); got != 2 {
		t.Errorf("top-2 fusion returned %d results", got)
	}
}

func TestFuseRRF_Empty(t *testing.T) {
	if got := fuseRRF(nil, nil, 5); len(got) != 0 {
		t.Errorf("empty fusion returned %d results", len(got))
	}
}
