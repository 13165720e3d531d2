package sim

import "fmt"

// Rank is a title awarded for surviving a number of ticks.
type Rank struct {
	Name      string
	Threshold int // Ticks needed to reach the rank
}

// Ranks are ordered by threshold.
var Ranks = []Rank{
	{Name: "POINT", Threshold: 0},
	{Name: "LINE", Threshold: 10 * 60},
	{Name: "TRIANGLE", Threshold: 20 * 60},
	{Name: "SQUARE", Threshold: 30 * 60},
	{Name: "PENTAGON", Threshold: 45 * 60},
	{Name: "HEXAGON", Threshold: 60 * 60},
}

// RankIndex returns the index into Ranks for a score in ticks.
func RankIndex(score int) int {
	idx := 0
	for i, r := range Ranks {
		if score >= r.Threshold {
			idx = i
		}
	}
	return idx
}

// RankFor returns the rank earned by a score in ticks.
func RankFor(score int) Rank {
	return Ranks[RankIndex(score)]
}

// FormatTime renders a score in ticks as SSS:CC, seconds and hundredths.
func FormatTime(score int) string {
	if score < 0 {
		score = 0
	}
	return fmt.Sprintf("%03d:%02d", score/60, score%60*100/60)
}
