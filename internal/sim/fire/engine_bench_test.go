package fire

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/WildfireReinforcementLearning/internal/sim/core"
)

func BenchmarkAdvance(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"50x50", 50},
		{"100x100", 100},
		{"200x200", 200},
	}
	for _, s := range sizes {
		b.Run(s.name, func(b *testing.B) {
			e := NewEngine(DefaultParams(), zerolog.Nop())
			rng := rand.New(rand.NewSource(1))
			grid := core.NewGrid(s.size, core.Tree)
			for r := s.size/2 - 2; r <= s.size/2+2; r++ {
				for c := s.size/2 - 2; c <= s.size/2+2; c++ {
					grid.Set(r, c, core.Fire)
				}
			}
			supp := core.NewSuppression(s.size, 1.0)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.Advance(grid, supp, rng, i+1); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
