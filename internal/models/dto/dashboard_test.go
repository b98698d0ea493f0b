package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"glpidashboard/internal/models/dto"
)

func TestLevelDetail_TotalNeverDrifts(t *testing.T) {
	updates := []struct {
		bucket dto.Bucket
		n      int
	}{
		{dto.BucketNovos, 2},
		{dto.BucketEmProgresso, 1},
		{dto.BucketEmProgresso, 1},
		{dto.BucketPendentes, 0},
		{dto.BucketResolvidos, 3},
		{dto.BucketResolvidos, 1},
		{dto.Bucket("desconhecido"), 7},
	}

	stats := dto.LevelStats{}
	for _, u := range updates {
		stats.Add("N1", u.bucket, u.n)
		d := stats["N1"]
		assert.Equal(t, d.Novos+d.EmProgresso+d.Pendentes+d.Resolvidos, d.Total)
	}

	assert.Equal(t, dto.LevelDetail{Novos: 2, EmProgresso: 2, Pendentes: 0, Resolvidos: 4, Total: 8}, stats["N1"])
}

func TestGeneralStats_Add(t *testing.T) {
	var g dto.GeneralStats
	g.Add(dto.BucketNovos, 3)
	g.Add(dto.BucketResolvidos, 5)
	g.Add(dto.BucketResolvidos, 1)

	assert.Equal(t, dto.GeneralStats{Novos: 3, Resolvidos: 6}, g)
}
