package objective

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/eseries/internal/domain"
)

func TestIsValid(t *testing.T) {
	for _, k := range []Kind{TimeConstant, Ratio} {
		if !k.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", k)
		}
	}
	for _, k := range []Kind{"", "RC", "tau", "divider"} {
		if k.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", k)
		}
	}
}

func TestFunc(t *testing.T) {
	if got := TimeConstant.Func()(1000, 1e-6); math.Abs(got-1e-3) > 1e-18 {
		t.Errorf("rc func = %v, want 1e-3", got)
	}
	if got := Ratio.Func()(20, 10); got != 2 {
		t.Errorf("ratio func = %v, want 2", got)
	}
	if Kind("other").Func() != nil {
		t.Error("unknown kind should have no func")
	}
}

func TestLabels(t *testing.T) {
	if l := TimeConstant.Labels(); l.A != "R" || l.B != "C" || l.Value != "Tau" || l.UnitB != "F" {
		t.Errorf("rc labels = %+v", l)
	}
	if l := Ratio.Labels(); l.A != "R1" || l.B != "R2" || l.Value != "Ratio" || l.UnitValue != "" {
		t.Errorf("ratio labels = %+v", l)
	}
	if TimeConstant.Unit() != "s" {
		t.Errorf("rc unit = %q", TimeConstant.Unit())
	}
}

func TestCheckTarget(t *testing.T) {
	tests := []struct {
		target float64
		want   error
	}{
		{1e-3, nil},
		{2.5, nil},
		{0, domain.ErrUndefinedPercent},
		{-1, domain.ErrInvalidTarget},
		{math.NaN(), domain.ErrInvalidTarget},
		{math.Inf(1), domain.ErrInvalidTarget},
		{math.Inf(-1), domain.ErrInvalidTarget},
	}
	for _, tc := range tests {
		err := CheckTarget(tc.target)
		if tc.want == nil {
			if err != nil {
				t.Errorf("CheckTarget(%v) = %v, want nil", tc.target, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("CheckTarget(%v) = %v, want %v", tc.target, err, tc.want)
		}
	}
}
