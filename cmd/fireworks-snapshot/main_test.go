package main

import "testing"

func TestParseLaunches(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []float64
		wantErr bool
	}{
		{"空", "", nil, false},
		{"单个", "400", []float64{400}, false},
		{"多个带空格", "100, 250.5 ,700", []float64{100, 250.5, 700}, false},
		{"非法", "100,abc", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLaunches(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLaunches(%q) error = %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseLaunches(%q) = %v, 期望 %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("第 %d 项 = %v, 期望 %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
