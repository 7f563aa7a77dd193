package extracao

import (
	"reflect"
	"testing"
	"time"
)

func turnoUsuario(conteudo string) Turno {
	return Turno{Papel: PapelUsuario, Conteudo: conteudo, CriadoEm: time.Now()}
}

func turnoAssistente(conteudo string) Turno {
	return Turno{Papel: PapelAssistente, Conteudo: conteudo, CriadoEm: time.Now()}
}

func TestExtrair_ConversaVazia(t *testing.T) {
	r := Extrair(nil)
	if len(r.Produtos) != 0 {
		t.Fatalf("conversa vazia não deveria render produtos, veio %+v", r.Produtos)
	}
	if r.LocalEntrega != "" || r.Prazo != "" || r.FormaPagamento != "" {
		t.Fatalf("conversa vazia deveria render rascunho vazio, veio %+v", r)
	}
}

func TestExtrair_TuboComClasse(t *testing.T) {
	r := Extrair([]Turno{turnoUsuario("Preciso de 50 tubos de concreto 0.30x1.00 pa1")})

	if len(r.Produtos) != 1 {
		t.Fatalf("esperava 1 produto, veio %d", len(r.Produtos))
	}
	quer := ProdutoRascunho{
		Nome:       "Tubo de Concreto",
		Dimensoes:  "0.30x1.00",
		Quantidade: 50,
		Subtipo:    "PA1",
	}
	if r.Produtos[0] != quer {
		t.Fatalf("produto errado:\n  quer %+v\n  veio %+v", quer, r.Produtos[0])
	}
}

func TestExtrair_TuboFallbackComQuantidadeSolta(t *testing.T) {
	turnos := []Turno{
		turnoUsuario("Vocês têm tubo de 0.40x1.50?"),
		turnoUsuario("Vou querer 30 unidades"),
	}
	r := Extrair(turnos)
	if len(r.Produtos) != 1 {
		t.Fatalf("esperava 1 produto, veio %d", len(r.Produtos))
	}
	p := r.Produtos[0]
	if p.Dimensoes != "0.40x1.50" || p.Quantidade != 30 {
		t.Fatalf("fallback errado: %+v", p)
	}
}

func TestExtrair_TuboFallbackSemQuantidadeAssumeUm(t *testing.T) {
	r := Extrair([]Turno{turnoUsuario("Quanto custa o tubo de 0.40x1.50?")})
	if len(r.Produtos) != 1 || r.Produtos[0].Quantidade != 1 {
		t.Fatalf("sem quantidade deveria assumir 1, veio %+v", r.Produtos)
	}
}

func TestExtrair_PosteComPadrao(t *testing.T) {
	r := Extrair([]Turno{turnoUsuario("quero 10 postes 9/300 cpfl")})
	if len(r.Produtos) != 1 {
		t.Fatalf("esperava 1 produto, veio %d", len(r.Produtos))
	}
	p := r.Produtos[0]
	if p.Nome != "Poste de Concreto" || p.Dimensoes != "9/300" || p.Quantidade != 10 || p.Subtipo != "CPFL" {
		t.Fatalf("poste errado: %+v", p)
	}
}

func TestExtrair_PosteDuploT(t *testing.T) {
	r := Extrair([]Turno{turnoUsuario("preciso de 5 postes duplo t 11/600")})
	if len(r.Produtos) != 1 {
		t.Fatalf("esperava 1 produto, veio %d", len(r.Produtos))
	}
	p := r.Produtos[0]
	if p.Dimensoes != "11/600" || p.Subtipo != "duplo t" {
		t.Fatalf("poste errado: %+v", p)
	}
}

func TestExtrair_Bloco(t *testing.T) {
	r := Extrair([]Turno{turnoUsuario("me vê 200 blocos de concreto 14x19x39")})
	if len(r.Produtos) != 1 {
		t.Fatalf("esperava 1 produto, veio %d", len(r.Produtos))
	}
	p := r.Produtos[0]
	if p.Nome != "Bloco de Concreto" || p.Dimensoes != "14x19x39" || p.Quantidade != 200 {
		t.Fatalf("bloco errado: %+v", p)
	}
}

func TestExtrair_FamiliasIndependentes(t *testing.T) {
	turnos := []Turno{
		turnoUsuario("Preciso de 50 tubos de concreto 0.30x1.00 e 10 postes 9/300"),
		turnoUsuario("ah, e 200 blocos 14x19x39 também"),
	}
	r := Extrair(turnos)
	if len(r.Produtos) != 3 {
		t.Fatalf("esperava tubo+poste+bloco, veio %d: %+v", len(r.Produtos), r.Produtos)
	}
	if r.Produtos[0].Nome != "Tubo de Concreto" ||
		r.Produtos[1].Nome != "Poste de Concreto" ||
		r.Produtos[2].Nome != "Bloco de Concreto" {
		t.Fatalf("ordem ou famílias erradas: %+v", r.Produtos)
	}
}

func TestExtrair_QuantidadeZeroDescartada(t *testing.T) {
	r := Extrair([]Turno{turnoUsuario("0 tubos de 0.30x1.00")})
	if len(r.Produtos) != 0 {
		t.Fatalf("quantidade zero não deveria virar produto, veio %+v", r.Produtos)
	}
}

func TestExtrair_MencoesRepetidasNaoDeduplicam(t *testing.T) {
	turnos := []Turno{
		turnoUsuario("quero 50 tubos de 0.30x1.00"),
		turnoUsuario("isso, 50 tubos de 0.30x1.00 mesmo"),
	}
	r := Extrair(turnos)
	if len(r.Produtos) != 2 {
		t.Fatalf("menções repetidas viram linhas repetidas, veio %d", len(r.Produtos))
	}
}

func TestExtrair_LocalEntregaExplicito(t *testing.T) {
	r := Extrair([]Turno{turnoUsuario("pode entregar para São Paulo, capital")})
	if r.LocalEntrega != "São paulo, capital" {
		t.Fatalf("local errado: %q", r.LocalEntrega)
	}
}

func TestExtrair_LocalEntregaGazetteer(t *testing.T) {
	r := Extrair([]Turno{turnoUsuario("sou de potirendaba, preciso de 10 tubos de 0.30x1.00")})
	if r.LocalEntrega != "Potirendaba" {
		t.Fatalf("gazetteer deveria achar Potirendaba, veio %q", r.LocalEntrega)
	}
}

func TestExtrair_Prazo(t *testing.T) {
	casos := []struct {
		texto string
		quer  string
	}{
		{"prazo de entrega de 10 dias", "10 dias"},
		{"preciso em até 5 dias", "5 dias"},
		{"prazo: 1 dia", "1 dia"},
	}
	for _, c := range casos {
		r := Extrair([]Turno{turnoUsuario(c.texto)})
		if r.Prazo != c.quer {
			t.Fatalf("texto %q: prazo %q, queria %q", c.texto, r.Prazo, c.quer)
		}
	}
}

func TestExtrair_PagamentoPrioridade(t *testing.T) {
	// boleto vem antes de pix na ordem fixa de prioridade
	r := Extrair([]Turno{turnoUsuario("posso pagar no pix ou boleto, tanto faz")})
	if r.FormaPagamento != "Boleto" {
		t.Fatalf("prioridade errada: %q", r.FormaPagamento)
	}

	r = Extrair([]Turno{turnoUsuario("pago à vista no pix")})
	if r.FormaPagamento != "À vista" {
		t.Fatalf("à vista deveria vencer pix, veio %q", r.FormaPagamento)
	}

	r = Extrair([]Turno{turnoUsuario("vou pagar no pix")})
	if r.FormaPagamento != "PIX" {
		t.Fatalf("pix sozinho deveria casar, veio %q", r.FormaPagamento)
	}
}

func TestExtrair_Idempotente(t *testing.T) {
	turnos := []Turno{
		turnoUsuario("50 tubos de 0.30x1.00 pa1 para campinas"),
		turnoUsuario("prazo de 10 dias, pagamento no boleto"),
	}
	a := Extrair(turnos)
	b := Extrair(turnos)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("extração não é idempotente:\n  a=%+v\n  b=%+v", a, b)
	}
}

func TestExtrair_CampoNaoRegrideComMaisTurnos(t *testing.T) {
	turnos := []Turno{turnoUsuario("entrega em campinas, 50 tubos de 0.30x1.00")}
	antes := Extrair(turnos)
	if antes.LocalEntrega == "" {
		t.Fatalf("esperava local extraído no prefixo")
	}

	turnos = append(turnos, turnoUsuario("pode ser no boleto"))
	depois := Extrair(turnos)
	if depois.LocalEntrega != antes.LocalEntrega {
		t.Fatalf("local regrediu de %q para %q", antes.LocalEntrega, depois.LocalEntrega)
	}
}
