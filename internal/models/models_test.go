package models

import (
	"errors"
	"testing"

	"github.com/desertthunder/hrfx/internal/shared"
)

func TestSpecies(t *testing.T) {
	t.Run("canonical order", func(t *testing.T) {
		want := []string{"hbo", "hbr", "hbt"}
		for i, sp := range SpeciesOrder {
			if sp.Code() != want[i] {
				t.Errorf("SpeciesOrder[%d].Code() = %s, want %s", i, sp.Code(), want[i])
			}
		}
	})

	t.Run("markers", func(t *testing.T) {
		tc := []struct {
			species Species
			marker  string
		}{
			{HbO, "HRF HbO"},
			{HbR, "HRF HbR"},
			{HbT, "HRF HbT"},
		}
		for _, tt := range tc {
			if got := tt.species.Marker(); got != tt.marker {
				t.Errorf("Marker() = %s, want %s", got, tt.marker)
			}
		}
	})

	t.Run("ParseSpecies round trip", func(t *testing.T) {
		for _, sp := range SpeciesOrder {
			parsed, err := ParseSpecies(sp.Code())
			if err != nil {
				t.Fatalf("ParseSpecies(%s) failed: %v", sp.Code(), err)
			}
			if parsed != sp {
				t.Errorf("ParseSpecies(%s) = %v, want %v", sp.Code(), parsed, sp)
			}
		}

		if _, err := ParseSpecies("hbx"); err == nil {
			t.Error("expected error for unknown species code")
		}
	})
}

func TestMatrix(t *testing.T) {
	m := Matrix{{1, 2, 3}, {4, 5, 6}}

	if m.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", m.Rows())
	}
	if m.Cols() != 3 {
		t.Errorf("Cols() = %d, want 3", m.Cols())
	}
	if !m.Rectangular() {
		t.Error("expected rectangular matrix")
	}

	ragged := Matrix{{1, 2}, {3}}
	if ragged.Rectangular() {
		t.Error("expected ragged matrix to fail Rectangular")
	}

	var empty Matrix
	if empty.Rows() != 0 || empty.Cols() != 0 {
		t.Error("empty matrix should have zero dims")
	}
}

func TestSessionValidate(t *testing.T) {
	valid := func() *Session {
		return &Session{
			Channels: []Channel{
				{Label: "HRF HbO", Condition: 1},
				{Label: "HRF HbR", Condition: 1},
			},
			Signal:      Matrix{{1, 2}, {3, 4}},
			Variability: Matrix{{0.1, 0.2}, {0.3, 0.4}},
		}
	}

	t.Run("valid session", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("expected valid session, got %v", err)
		}
	})

	t.Run("signal column mismatch", func(t *testing.T) {
		s := valid()
		s.Signal = Matrix{{1}, {3}}

		err := s.Validate()
		if err == nil {
			t.Fatal("expected shape error")
		}
		if !errors.Is(err, shared.ErrShapeMismatch) {
			t.Errorf("expected ErrShapeMismatch, got %v", err)
		}

		var shapeErr *ShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("expected *ShapeError, got %T", err)
		}
		if shapeErr.Got != 1 || shapeErr.Want != 2 {
			t.Errorf("ShapeError = got %d want %d, expected got 1 want 2", shapeErr.Got, shapeErr.Want)
		}
	})

	t.Run("variability column mismatch", func(t *testing.T) {
		s := valid()
		s.Variability = Matrix{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}}

		if err := s.Validate(); !errors.Is(err, shared.ErrShapeMismatch) {
			t.Errorf("expected ErrShapeMismatch, got %v", err)
		}
	})

	t.Run("row count mismatch", func(t *testing.T) {
		s := valid()
		s.Variability = Matrix{{0.1, 0.2}}

		if err := s.Validate(); !errors.Is(err, shared.ErrShapeMismatch) {
			t.Errorf("expected ErrShapeMismatch, got %v", err)
		}
	})

	t.Run("ragged matrix", func(t *testing.T) {
		s := valid()
		s.Signal = Matrix{{1, 2}, {3}}

		if err := s.Validate(); !errors.Is(err, shared.ErrShapeMismatch) {
			t.Errorf("expected ErrShapeMismatch, got %v", err)
		}
	})
}

func TestExportRun(t *testing.T) {
	t.Run("valid run", func(t *testing.T) {
		run := NewExportRun("before", ModeGrouped, "session.json", "./exports", 3, 3)
		if err := run.Validate(); err != nil {
			t.Errorf("expected valid run, got %v", err)
		}
		if run.CreatedAt().IsZero() {
			t.Error("expected created timestamp")
		}
	})

	t.Run("missing prefix", func(t *testing.T) {
		run := NewExportRun("", ModeGrouped, "session.json", ".", 0, 0)
		if err := run.Validate(); err == nil {
			t.Error("expected validation error for empty prefix")
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		run := NewExportRun("before", "bulk", "session.json", ".", 0, 0)
		if err := run.Validate(); err == nil {
			t.Error("expected validation error for unknown mode")
		}
	})
}
