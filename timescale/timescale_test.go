package timescale

import "testing"

func TestPixelMsRoundTrip(t *testing.T) {
	// Any ms divisible by the 10ms scale must survive the round trip exactly.
	for _, ms := range []int{0, 10, 500, 1000, 59990, 3600000, 86399990} {
		if got := PixelsToMs(MsToPixels(ms)); got != ms {
			t.Errorf("round trip %d ms: got %d", ms, got)
		}
	}
}

func TestMsToPixels(t *testing.T) {
	cases := []struct {
		ms, px int
	}{
		{0, 0},
		{10, 1},
		{500, 50},
		{60000, 6000},
	}
	for _, c := range cases {
		if got := MsToPixels(c.ms); got != c.px {
			t.Errorf("MsToPixels(%d) = %d, want %d", c.ms, got, c.px)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		ms   int
		want string
	}{
		{0, "00:00:00.000"},
		{1000, "00:00:01.000"},
		{61001, "00:01:01.001"},
		{3600000, "01:00:00.000"},
		{3661234, "01:01:01.234"},
		{86399999, "23:59:59.999"},
	}
	for _, c := range cases {
		if got := FormatTimestamp(c.ms); got != c.want {
			t.Errorf("FormatTimestamp(%d) = %q, want %q", c.ms, got, c.want)
		}
	}
}

func TestSecondsConversion(t *testing.T) {
	if got := MsToSeconds(2500); got != 2.5 {
		t.Errorf("MsToSeconds(2500) = %v, want 2.5", got)
	}
	if got := SecondsToMs(2.5); got != 2500 {
		t.Errorf("SecondsToMs(2.5) = %d, want 2500", got)
	}
}
