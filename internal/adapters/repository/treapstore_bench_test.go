package repository

import (
	"context"
	"math/rand"
	"testing"
)

func benchPopulation(n int) []float64 {
	r := rand.New(rand.NewSource(42))
	totals := make([]float64, n)
	for i := range totals {
		totals[i] = float64(r.Intn(1001)) / 10
	}
	return totals
}

func BenchmarkTreapStore_Replace(b *testing.B) {
	ctx := context.Background()
	data := evals(benchPopulation(500)...)
	store := NewTreapStore()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := store.Replace(ctx, data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTreapStore_Rank(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore()
	if err := store.Replace(ctx, evals(benchPopulation(500)...)); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.Rank(ctx, i%500+1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTreapStore_TopN(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(WithTopCacheSize(10))
	if err := store.Replace(ctx, evals(benchPopulation(500)...)); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// 50 is past the cache and walks the tree.
		if _, err := store.TopN(ctx, 50); err != nil {
			b.Fatal(err)
		}
	}
}
