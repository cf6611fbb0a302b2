package network

import (
	"math"
	"testing"

	"github.com/openpitch/kickoff-mp/shared/messages"
)

func TestPredictionBufferStoreAndGet(t *testing.T) {
	var pb PredictionBuffer

	pb.Store(messages.PlayerInput{Sequence: 5, Right: true}, 100, 200, 50, 0)

	rec, ok := pb.Get(5)
	if !ok {
		t.Fatal("stored record not found")
	}
	if rec.PredictedX != 100 || rec.PredictedY != 200 {
		t.Fatalf("got predicted (%v, %v), want (100, 200)", rec.PredictedX, rec.PredictedY)
	}
	if !rec.Input.Right {
		t.Fatal("input state not preserved")
	}
	if pb.NextSeq() != 6 {
		t.Fatalf("NextSeq = %d, want 6", pb.NextSeq())
	}
}

func TestPredictionBufferOverwrittenSlot(t *testing.T) {
	var pb PredictionBuffer

	pb.Store(messages.PlayerInput{Sequence: 3}, 1, 1, 0, 0)
	pb.Store(messages.PlayerInput{Sequence: 3 + predictionBufferSize}, 2, 2, 0, 0)

	if _, ok := pb.Get(3); ok {
		t.Fatal("overwritten slot should not resolve to the old sequence")
	}
	if _, ok := pb.Get(3 + predictionBufferSize); !ok {
		t.Fatal("new record should be retrievable")
	}
}

func TestPredictionBufferUnacknowledged(t *testing.T) {
	var pb PredictionBuffer

	for seq := uint32(1); seq <= 10; seq++ {
		pb.Store(messages.PlayerInput{Sequence: seq}, float64(seq), 0, 0, 0)
	}

	pending := pb.GetUnacknowledged(7)
	if len(pending) != 3 {
		t.Fatalf("got %d unacknowledged records, want 3", len(pending))
	}
	for i, rec := range pending {
		if want := uint32(8 + i); rec.Input.Sequence != want {
			t.Fatalf("record %d has sequence %d, want %d", i, rec.Input.Sequence, want)
		}
	}
}

func TestPredictionError(t *testing.T) {
	var pb PredictionBuffer

	pb.Store(messages.PlayerInput{Sequence: 1}, 100, 100, 0, 0)

	if got := pb.PredictionError(1, 103, 104); math.Abs(got-5) > 1e-9 {
		t.Fatalf("prediction error = %v, want 5", got)
	}
	if got := pb.PredictionError(99, 0, 0); got != 0 {
		t.Fatalf("unknown sequence should report zero error, got %v", got)
	}
}
