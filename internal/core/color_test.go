package core

import "testing"

func TestColorLerpBoundaries(t *testing.T) {
	c1 := Color{R: 10, G: 200, B: 33, A: 255}
	c2 := Color{R: 250, G: 0, B: 99, A: 128}

	if got := ColorLerp(c1, c2, 0); got != c1 {
		t.Errorf("ColorLerp(t=0) = %v, want %v", got, c1)
	}
	if got := ColorLerp(c1, c2, 1); got != c2 {
		t.Errorf("ColorLerp(t=1) = %v, want %v", got, c2)
	}
	if got := ColorLerp(c1, c2, -3); got != c1 {
		t.Errorf("ColorLerp(t=-3) should clamp to c1, got %v", got)
	}
	if got := ColorLerp(c1, c2, 7); got != c2 {
		t.Errorf("ColorLerp(t=7) should clamp to c2, got %v", got)
	}
	if got, want := ColorLerp(RGB(0, 0, 0), RGB(100, 200, 50), 0.5), RGB(50, 100, 25); got != want {
		t.Errorf("ColorLerp(t=0.5) = %v, want %v", got, want)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF8000", RGB(0xFF, 0x80, 0x00), false},
		{"ff8000", RGB(0xFF, 0x80, 0x00), false},
		{"#f80", RGB(0xFF, 0x88, 0x00), false},
		{"#000000C0", ColorShadow, false},
		{"#12345", Color{}, true},
		{"#GGGGGG", Color{}, true},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseColor(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestColorString(t *testing.T) {
	if got := RGB(1, 2, 255).String(); got != "#0102FF" {
		t.Errorf("String() = %s", got)
	}
	if got := ColorShadow.String(); got != "#000000C0" {
		t.Errorf("String() = %s", got)
	}
}

func TestInputEdges(t *testing.T) {
	var prev Buttons
	held := prev.With(ButtonLeft).With(ButtonSelect)
	in := NextInput(prev, held)
	if !in.Pressed.Has(ButtonLeft) || !in.Pressed.Has(ButtonSelect) {
		t.Fatalf("first frame should report presses, got %v", in.Pressed)
	}

	in = NextInput(held, held)
	if in.Pressed.Any() {
		t.Errorf("held buttons should not be pressed again, got %v", in.Pressed)
	}
	if !in.Held.Has(ButtonLeft) {
		t.Error("Left should still be held")
	}
	if got := held.String(); got != "Select|Left" {
		t.Errorf("String() = %q", got)
	}
}
