package random_test

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/govindlahoti/avalon-engine/internal/random"
	"github.com/govindlahoti/avalon-engine/internal/random/mocks"
)

func TestNewIsDeterministicForAFixedSeed(t *testing.T) {
	a := random.New(42)
	b := random.New(42)
	for i := 0; i < 20; i++ {
		if got, want := a.Intn(1000), b.Intn(1000); got != want {
			t.Fatalf("draw %d diverged: %d != %d", i, got, want)
		}
	}
}

func TestMockSourceSatisfiesSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockSource(ctrl)
	m.EXPECT().Intn(4).Return(2)

	var src random.Source = m
	if got := src.Intn(4); got != 2 {
		t.Fatalf("Intn(4) = %d, want 2", got)
	}
}
