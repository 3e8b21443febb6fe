package domain

import (
	"errors"
	"testing"
)

func TestNewCatalog_LengthMismatch(t *testing.T) {
	_, err := NewCatalog("x", []float64{1, 2}, []float64{70}, []float64{5, 5})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestNewCatalog_NegativeUncertainty(t *testing.T) {
	_, err := NewCatalog("x", []float64{1}, []float64{70}, []float64{-1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewCatalog_Empty(t *testing.T) {
	c, err := NewCatalog("x", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d rows", c.Len())
	}
}

func TestSelectBelow_StrictBound(t *testing.T) {
	c, err := NewCatalog("x",
		[]float64{10, 50, 100, 150},
		[]float64{700, 3500, 7000, 10500},
		[]float64{10, 10, 10, 10},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sub := c.SelectBelow(100)
	if sub.Len() != 2 {
		t.Fatalf("expected 2 rows below 100, got %d", sub.Len())
	}
	// The bound is exclusive: the row at exactly 100 Mpc must be dropped.
	for _, d := range sub.DistancesMpc {
		if d >= 100 {
			t.Fatalf("row at distance %g should have been excluded", d)
		}
	}
	if sub.VelocitiesKms[1] != 3500 {
		t.Fatalf("columns not kept parallel: got velocity %g", sub.VelocitiesKms[1])
	}
}

func TestSelectBelow_Empty(t *testing.T) {
	c, _ := NewCatalog("x", []float64{10, 20}, []float64{700, 1400}, []float64{10, 10})

	sub := c.SelectBelow(10) // threshold equals the minimum distance
	if sub.Len() != 0 {
		t.Fatalf("expected empty selection, got %d rows", sub.Len())
	}
}

func TestSelectBelow_DoesNotMutate(t *testing.T) {
	c, _ := NewCatalog("x", []float64{10, 200}, []float64{700, 14000}, []float64{10, 10})

	_ = c.SelectBelow(100)
	if c.Len() != 2 {
		t.Fatalf("receiver was mutated: %d rows", c.Len())
	}
}

func TestHubbleVelocity(t *testing.T) {
	cases := []struct {
		d, h0, want float64
	}{
		{0, 70, 0},
		{10, 70, 700},
		{42.5, 0, 0},
		{1, -5, -5},
	}
	for _, tc := range cases {
		if got := HubbleVelocity(tc.d, tc.h0); got != tc.want {
			t.Fatalf("HubbleVelocity(%g, %g) = %g, want %g", tc.d, tc.h0, got, tc.want)
		}
	}
}

func TestMinMaxDistance(t *testing.T) {
	c, _ := NewCatalog("x", []float64{30, 10, 20}, []float64{0, 0, 0}, []float64{0, 0, 0})
	if c.MinDistance() != 10 {
		t.Fatalf("min = %g", c.MinDistance())
	}
	if c.MaxDistance() != 30 {
		t.Fatalf("max = %g", c.MaxDistance())
	}
}
