package dto

// Bucket é uma das quatro categorias de status exibidas no dashboard
type Bucket string

const (
	BucketNovos       Bucket = "novos"
	BucketEmProgresso Bucket = "em_progresso"
	BucketPendentes   Bucket = "pendentes"
	BucketResolvidos  Bucket = "resolvidos"
)

// TechnicianRankingItem representa uma linha do ranking de técnicos
type TechnicianRankingItem struct {
	ID      int    `json:"id" example:"102"`
	Tecnico string `json:"tecnico" example:"Maria Silva"`
	Tickets int    `json:"tickets" example:"9"`
	Nivel   string `json:"nivel" example:"N/A"`
}

// LevelDetail são os contadores de um nível. Total é sempre a soma dos
// quatro buckets, recalculada a cada Add.
type LevelDetail struct {
	Novos       int `json:"novos" example:"2"`
	EmProgresso int `json:"em_progresso" example:"2"`
	Pendentes   int `json:"pendentes" example:"0"`
	Resolvidos  int `json:"resolvidos" example:"4"`
	Total       int `json:"total" example:"8"`
}

// Add soma n ao bucket b
func (d *LevelDetail) Add(b Bucket, n int) {
	switch b {
	case BucketNovos:
		d.Novos += n
	case BucketEmProgresso:
		d.EmProgresso += n
	case BucketPendentes:
		d.Pendentes += n
	case BucketResolvidos:
		d.Resolvidos += n
	}
	d.Total = d.Novos + d.EmProgresso + d.Pendentes + d.Resolvidos
}

// LevelStats mapeia o nome do nível (N1..N4) para seus contadores
type LevelStats map[string]LevelDetail

// Add soma n ao bucket b do nível
func (s LevelStats) Add(level string, b Bucket, n int) {
	d := s[level]
	d.Add(b, n)
	s[level] = d
}

// GeneralStats são os totais por bucket, sem dimensão de nível
type GeneralStats struct {
	Novos       int `json:"novos" example:"12"`
	EmProgresso int `json:"em_progresso" example:"30"`
	Pendentes   int `json:"pendentes" example:"4"`
	Resolvidos  int `json:"resolvidos" example:"120"`
}

// Add soma n ao bucket b
func (g *GeneralStats) Add(b Bucket, n int) {
	switch b {
	case BucketNovos:
		g.Novos += n
	case BucketEmProgresso:
		g.EmProgresso += n
	case BucketPendentes:
		g.Pendentes += n
	case BucketResolvidos:
		g.Resolvidos += n
	}
}

// NewTicketItem representa um ticket novo na lista do dashboard
type NewTicketItem struct {
	ID          int    `json:"id" example:"1532"`
	Titulo      string `json:"titulo" example:"Impressora sem toner"`
	Solicitante string `json:"solicitante" example:"João Souza"`
	Data        string `json:"data" example:"01/03/2024 08:15"`
}

// DashboardResponse agrupa todos os blocos do dashboard numa única resposta
type DashboardResponse struct {
	Ranking      []TechnicianRankingItem `json:"ranking"`
	Niveis       LevelStats              `json:"niveis"`
	Geral        GeneralStats            `json:"geral"`
	TicketsNovos []NewTicketItem         `json:"tickets_novos"`
}
