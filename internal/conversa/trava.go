package conversa

import "sync"

// TravaSessoes serializa o processamento por sessão. Cada turno é um ciclo de
// leitura-modificação-gravação sobre a sessão inteira; sem a trava, duas
// entregas simultâneas da mesma conversa (duplo clique no site, reentrega de
// webhook pela Meta) poderiam observar OrcamentoID zerado ao mesmo tempo e
// criar dois orçamentos.
type TravaSessoes struct {
	mu     sync.Mutex
	travas map[string]*travaSessao
}

type travaSessao struct {
	mu  sync.Mutex
	uso int
}

func NewTravaSessoes() *TravaSessoes {
	return &TravaSessoes{travas: make(map[string]*travaSessao)}
}

// Trancar bloqueia a sessão e devolve a função que a libera. A entrada some
// do mapa quando o último interessado solta a trava.
func (t *TravaSessoes) Trancar(id string) func() {
	t.mu.Lock()
	tr, ok := t.travas[id]
	if !ok {
		tr = &travaSessao{}
		t.travas[id] = tr
	}
	tr.uso++
	t.mu.Unlock()

	tr.mu.Lock()
	return func() {
		tr.mu.Unlock()
		t.mu.Lock()
		tr.uso--
		if tr.uso == 0 {
			delete(t.travas, id)
		}
		t.mu.Unlock()
	}
}
