package geo

import (
	"math"
	"testing"
)

func TestDistanceM(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolM                   float64
	}{
		{name: "same point", lat1: 31.23, lon1: 121.47, lat2: 31.23, lon2: 121.47, want: 0, tolM: 0.001},
		{
			// 赤道上经度 1 度 ≈ R × π/180
			name: "one degree on equator",
			lat1: 0, lon1: 0, lat2: 0, lon2: 1,
			want: 6371000.0 * math.Pi / 180.0, tolM: 1,
		},
		{
			name: "one degree of latitude",
			lat1: 31, lon1: 121, lat2: 32, lon2: 121,
			want: 6371000.0 * math.Pi / 180.0, tolM: 1,
		},
		{
			// 上海人民广场 -> 上海站，约 3.2km
			name: "shanghai short hop",
			lat1: 31.2304, lon1: 121.4737, lat2: 31.2495, lon2: 121.4553,
			want: 2760, tolM: 300,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceM(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolM {
				t.Errorf("DistanceM = %f, want %f (±%f)", got, tt.want, tt.tolM)
			}
		})
	}
}

func TestDistanceMSymmetric(t *testing.T) {
	a := DistanceM(31.2304, 121.4737, 39.9042, 116.4074)
	b := DistanceM(39.9042, 116.4074, 31.2304, 121.4737)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}
