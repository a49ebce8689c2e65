package workout

import "testing"

func TestPaceMinPerKm(t *testing.T) {
	if pace := PaceMinPerKm(5, 25); pace != 5.0 {
		t.Fatalf("unexpected pace: %v", pace)
	}
	if pace := PaceMinPerKm(3, 10); pace != 3.3 {
		t.Fatalf("unexpected pace: %v", pace)
	}
}

func TestSpeedKmPerH(t *testing.T) {
	if speed := SpeedKmPerH(20, 60); speed != 20.0 {
		t.Fatalf("unexpected speed: %v", speed)
	}
	if speed := SpeedKmPerH(10, 45); speed != 13.3 {
		t.Fatalf("unexpected speed: %v", speed)
	}
}

func TestRoundingHalfAwayFromZero(t *testing.T) {
	// 7.25 min/km rounds up, not to even
	if pace := PaceMinPerKm(4, 29); pace != 7.3 {
		t.Fatalf("unexpected rounding: %v", pace)
	}
}

func TestMetricsDeterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		if PaceMinPerKm(7.5, 41) != PaceMinPerKm(7.5, 41) {
			t.Fatalf("pace not deterministic")
		}
		if SpeedKmPerH(7.5, 41) != SpeedKmPerH(7.5, 41) {
			t.Fatalf("speed not deterministic")
		}
	}
}
