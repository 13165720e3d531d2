package sim

import "testing"

func TestFormatTime(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "000:00"},
		{59, "000:98"},
		{60, "001:00"},
		{3661, "061:01"},
		{-5, "000:00"},
		{60000, "1000:00"},
	}
	for _, tc := range tests {
		if got := FormatTime(tc.score); got != tc.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestRankFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "POINT"},
		{599, "POINT"},
		{600, "LINE"},
		{1800, "SQUARE"},
		{2699, "SQUARE"},
		{2700, "PENTAGON"},
		{100000, "HEXAGON"},
	}
	for _, tc := range tests {
		if got := RankFor(tc.score).Name; got != tc.want {
			t.Errorf("RankFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
