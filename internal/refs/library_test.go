package refs

import (
	"errors"
	"testing"

	"github.com/ayusman/signtutor/internal/landmark"
	"github.com/ayusman/signtutor/internal/pose"
)

func TestLibrary_LookupBuiltin(t *testing.T) {
	lib := WithBuiltins()

	set, err := lib.Lookup("A")
	if err != nil {
		t.Fatalf("Lookup(A) error = %v", err)
	}
	if len(set) != landmark.NumLandmarks {
		t.Errorf("len(set) = %d, want %d", len(set), landmark.NumLandmarks)
	}
}

func TestLibrary_LookupUnknownLetter(t *testing.T) {
	lib := WithBuiltins()

	_, err := lib.Lookup("Q")
	if !errors.Is(err, ErrNoReferenceData) {
		t.Errorf("Lookup(Q) error = %v, want ErrNoReferenceData", err)
	}
}

func TestLibrary_LookupMalformedLetter(t *testing.T) {
	lib := WithBuiltins()

	for _, letter := range []string{"", "a", "AB", "1", "é"} {
		if _, err := lib.Lookup(letter); !errors.Is(err, ErrNoReferenceData) {
			t.Errorf("Lookup(%q) error = %v, want ErrNoReferenceData", letter, err)
		}
	}
}

func TestLibrary_LookupReturnsCopy(t *testing.T) {
	lib := WithBuiltins()

	first, err := lib.Lookup("A")
	if err != nil {
		t.Fatalf("Lookup(A) error = %v", err)
	}
	first[0].X = 99

	second, err := lib.Lookup("A")
	if err != nil {
		t.Fatalf("Lookup(A) error = %v", err)
	}
	if second[0].X == 99 {
		t.Error("library data mutated through a Lookup result")
	}
}

func TestLibrary_PutAndRemove(t *testing.T) {
	lib := New()

	if err := lib.Put("Z", LetterA()); err != nil {
		t.Fatalf("Put(Z) error = %v", err)
	}
	if _, err := lib.Lookup("Z"); err != nil {
		t.Errorf("Lookup(Z) after Put error = %v", err)
	}

	lib.Remove("Z")
	if _, err := lib.Lookup("Z"); !errors.Is(err, ErrNoReferenceData) {
		t.Errorf("Lookup(Z) after Remove error = %v, want ErrNoReferenceData", err)
	}
}

func TestLibrary_PutRejectsBadInput(t *testing.T) {
	lib := New()

	if err := lib.Put("q", LetterA()); err == nil {
		t.Error("Put with lowercase letter should fail")
	}
	if err := lib.Put("Q", make(landmark.Set, 5)); err == nil {
		t.Error("Put with wrong cardinality should fail")
	}
}

func TestLibrary_Letters(t *testing.T) {
	lib := WithBuiltins()

	letters := lib.Letters()
	want := []string{"A", "B", "C", "L", "V", "Y"}
	if len(letters) != len(want) {
		t.Fatalf("Letters() = %v, want %v", letters, want)
	}
	for i := range want {
		if letters[i] != want[i] {
			t.Errorf("Letters()[%d] = %q, want %q", i, letters[i], want[i])
		}
	}
}

func TestBuiltins_AreNormalizable(t *testing.T) {
	// Every seeded pose must survive the scoring pipeline's normalization
	for letter, set := range builtinLetters() {
		if _, err := pose.Normalize(set); err != nil {
			t.Errorf("builtin %q does not normalize: %v", letter, err)
		}
	}
}

func TestBuiltins_AreDistinct(t *testing.T) {
	// Letters must be distinguishable after normalization and alignment,
	// otherwise practicing one letter would score well against another.
	normalized := make(map[string]landmark.Set)
	for letter, set := range builtinLetters() {
		n, err := pose.Normalize(set)
		if err != nil {
			t.Fatalf("Normalize(%q) error = %v", letter, err)
		}
		normalized[letter] = n
	}

	for a, setA := range normalized {
		for b, setB := range normalized {
			if a >= b {
				continue
			}
			result, err := pose.Align(setA, setB)
			if err != nil {
				t.Fatalf("Align(%q, %q) error = %v", a, b, err)
			}
			if result.RMS < 0.05 {
				t.Errorf("letters %q and %q are nearly identical (RMS %g)", a, b, result.RMS)
			}
		}
	}
}

func TestTrainer_AveragesSamples(t *testing.T) {
	trainer := NewTrainer()

	base := LetterA()
	jittered := base.Clone()
	for i := range jittered {
		jittered[i].X += 0.02
	}

	averaged, err := trainer.Train([]landmark.Set{base, jittered})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	wantX := base[0].X + 0.01
	if diff := averaged[0].X - wantX; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("averaged[0].X = %g, want %g", averaged[0].X, wantX)
	}
}

func TestTrainer_RejectsEmptyAndMismatched(t *testing.T) {
	trainer := NewTrainer()

	if _, err := trainer.Train(nil); err == nil {
		t.Error("Train(nil) should fail")
	}
	if _, err := trainer.Train([]landmark.Set{LetterA(), make(landmark.Set, 7)}); err == nil {
		t.Error("Train with mismatched sample should fail")
	}
}

func TestTrainer_RejectsCollapsedAverage(t *testing.T) {
	trainer := NewTrainer()

	collapsed := make(landmark.Set, landmark.NumLandmarks)
	for i := range collapsed {
		collapsed[i] = landmark.Point2D{X: 0.5, Y: 0.5}
	}

	if _, err := trainer.Train([]landmark.Set{collapsed}); err == nil {
		t.Error("Train with collapsed sample should fail")
	}
}
