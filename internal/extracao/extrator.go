// Package extracao contém a heurística de extração de orçamentos a partir
// do histórico de conversa com o vendedor virtual. Tudo aqui é função pura
// sobre a lista de turnos: nenhum campo ausente vira erro, apenas valor vazio.
package extracao

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ProdutoRascunho é uma linha de produto reconhecida na conversa.
type ProdutoRascunho struct {
	Nome       string  `json:"nome"`
	Dimensoes  string  `json:"dimensoes"`
	Quantidade int     `json:"quantidade"`
	Subtipo    string  `json:"subtipo,omitempty"`
	PrecoTotal float64 `json:"preco_total"`
}

// Rascunho é o resultado estruturado da extração, ainda não persistido.
type Rascunho struct {
	Produtos       []ProdutoRascunho `json:"produtos"`
	LocalEntrega   string            `json:"local_entrega,omitempty"`
	Prazo          string            `json:"prazo,omitempty"`
	FormaPagamento string            `json:"forma_pagamento,omitempty"`
}

var (
	// Tubos: "50 tubos de concreto 0.30x1.00 pa1"
	reTuboPrimario = regexp.MustCompile(`(\d+)\s*tubos?(?:\s+de\s+concreto)?(?:\s+de)?\s+(\d+(?:[.,]\d+)?)\s*x\s*(\d+(?:[.,]\d+)?)(?:\s*(pa\s?\d+))?`)
	reTuboSolto    = regexp.MustCompile(`tubos?(?:\s+de\s+concreto)?(?:\s+de)?\s+(\d+(?:[.,]\d+)?\s*x\s*\d+(?:[.,]\d+)?)`)

	// Postes: "10 postes duplo t 9/300 cpfl" (altura/capacidade em daN)
	rePostePrimario = regexp.MustCompile(`(\d+)\s*postes?(?:\s+(circular|duplo\s?t))?(?:\s+de\s+concreto)?(?:\s+de)?\s+(\d+(?:[.,]\d+)?)\s*/\s*(\d+)(?:\s*(?:da\s+|padr[aã]o\s+)?(cpfl|elektro|telef[oô]nica))?`)
	rePosteSolto    = regexp.MustCompile(`postes?(?:\s+de\s+concreto)?(?:\s+de)?\s+(\d+(?:[.,]\d+)?\s*/\s*\d+)`)

	// Blocos: "200 blocos 14x19x39"
	reBlocoPrimario = regexp.MustCompile(`(\d+)\s*blocos?(?:\s+de\s+concreto)?(?:\s+de)?\s+(\d+(?:[.,]\d+)?)\s*x\s*(\d+(?:[.,]\d+)?)\s*x\s*(\d+(?:[.,]\d+)?)`)
	reBlocoSolto    = regexp.MustCompile(`blocos?(?:\s+de\s+concreto)?(?:\s+de)?\s+(\d+(?:[.,]\d+)?\s*x\s*\d+(?:[.,]\d+)?\s*x\s*\d+(?:[.,]\d+)?)`)

	// Quantidade avulsa usada quando o padrão principal não casa.
	reQuantidadeSolta = regexp.MustCompile(`(\d+)\s*(?:unidades|peças|pçs|unid)`)

	reLocais = []*regexp.Regexp{
		regexp.MustCompile(`(?:entrega|entregar|entregue)\s+(?:para|em|na|no)\s+([^.!?\n]+)`),
		regexp.MustCompile(`local\s+(?:de\s+entrega\s*)?[:é]?\s*(?:em|para)?\s*([^.!?\n]+)`),
		regexp.MustCompile(`endere[cç]o\s*[:é]?\s*([^.!?\n]+)`),
	}

	rePrazos = []*regexp.Regexp{
		regexp.MustCompile(`prazo\s*(?:de|:)?\s*(?:entrega\s*(?:de|:)?\s*)?(\d+)\s*dias?`),
		regexp.MustCompile(`entrega\s+em\s+(\d+)\s*dias?`),
		regexp.MustCompile(`(?:em|at[eé])\s+(\d+)\s*dias?`),
	}

	reEspacos = regexp.MustCompile(`\s+`)
)

// Cidades da região atendida, usadas como último recurso quando nenhum
// padrão explícito de entrega casa. A ordem da lista é a ordem de desempate.
var cidadesConhecidas = []string{
	"potirendaba",
	"são josé do rio preto",
	"são paulo",
	"campinas",
	"ribeirão preto",
	"araraquara",
	"bauru",
	"catanduva",
	"mirassol",
}

// Formas de pagamento reconhecidas, em ordem de prioridade: a primeira
// categoria cujo termo aparecer no texto vence, mesmo que outras também
// apareçam.
var formasPagamento = []struct {
	rotulo string
	termos []string
}{
	{"À vista", []string{"à vista", "a vista"}},
	{"Parcelado 30/60/90", []string{"parcelado", "30/60/90"}},
	{"Boleto", []string{"boleto"}},
	{"Cartão", []string{"cartão", "cartao"}},
	{"PIX", []string{"pix"}},
}

// Extrair varre o histórico completo da conversa e monta um Rascunho de
// orçamento. A função é idempotente: o rascunho é sempre recalculado do
// zero sobre o prefixo completo de turnos recebido até aqui.
func Extrair(turnos []Turno) Rascunho {
	texto := textoDaConversa(turnos)

	var r Rascunho
	r.Produtos = append(r.Produtos, extrairTubos(texto)...)
	r.Produtos = append(r.Produtos, extrairPostes(texto)...)
	r.Produtos = append(r.Produtos, extrairBlocos(texto)...)
	r.LocalEntrega = extrairLocal(texto)
	r.Prazo = extrairPrazo(texto)
	r.FormaPagamento = extrairPagamento(texto)
	return r
}

func textoDaConversa(turnos []Turno) string {
	partes := make([]string, 0, len(turnos))
	for _, t := range turnos {
		partes = append(partes, t.Conteudo)
	}
	return strings.ToLower(strings.Join(partes, "\n"))
}

func extrairTubos(texto string) []ProdutoRascunho {
	if !strings.Contains(texto, "tubo") {
		return nil
	}
	var produtos []ProdutoRascunho
	primarios := reTuboPrimario.FindAllStringSubmatch(texto, -1)
	for _, m := range primarios {
		qtd, _ := strconv.Atoi(m[1])
		if qtd <= 0 {
			continue
		}
		produtos = append(produtos, ProdutoRascunho{
			Nome:       "Tubo de Concreto",
			Dimensoes:  m[2] + "x" + m[3],
			Quantidade: qtd,
			Subtipo:    normalizarSubtipo(m[4]),
		})
	}
	if len(primarios) > 0 {
		return produtos
	}
	// Conversa frouxa: aceita só o diâmetro e recupera a quantidade de uma
	// menção avulsa a "N unidades", assumindo 1 se nem isso existir.
	for _, m := range reTuboSolto.FindAllStringSubmatch(texto, -1) {
		qtd := quantidadeSolta(texto)
		if qtd <= 0 {
			continue
		}
		produtos = append(produtos, ProdutoRascunho{
			Nome:       "Tubo de Concreto",
			Dimensoes:  semEspacos(m[1]),
			Quantidade: qtd,
		})
	}
	return produtos
}

func extrairPostes(texto string) []ProdutoRascunho {
	if !strings.Contains(texto, "poste") {
		return nil
	}
	var produtos []ProdutoRascunho
	primarios := rePostePrimario.FindAllStringSubmatch(texto, -1)
	for _, m := range primarios {
		qtd, _ := strconv.Atoi(m[1])
		if qtd <= 0 {
			continue
		}
		subtipo := normalizarSubtipo(m[5])
		if subtipo == "" {
			subtipo = semEspacos(m[2])
			if subtipo == "duplot" {
				subtipo = "duplo t"
			}
		}
		produtos = append(produtos, ProdutoRascunho{
			Nome:       "Poste de Concreto",
			Dimensoes:  m[3] + "/" + m[4],
			Quantidade: qtd,
			Subtipo:    subtipo,
		})
	}
	if len(primarios) > 0 {
		return produtos
	}
	for _, m := range rePosteSolto.FindAllStringSubmatch(texto, -1) {
		qtd := quantidadeSolta(texto)
		if qtd <= 0 {
			continue
		}
		produtos = append(produtos, ProdutoRascunho{
			Nome:       "Poste de Concreto",
			Dimensoes:  semEspacos(m[1]),
			Quantidade: qtd,
		})
	}
	return produtos
}

func extrairBlocos(texto string) []ProdutoRascunho {
	if !strings.Contains(texto, "bloco") {
		return nil
	}
	var produtos []ProdutoRascunho
	primarios := reBlocoPrimario.FindAllStringSubmatch(texto, -1)
	for _, m := range primarios {
		qtd, _ := strconv.Atoi(m[1])
		if qtd <= 0 {
			continue
		}
		produtos = append(produtos, ProdutoRascunho{
			Nome:       "Bloco de Concreto",
			Dimensoes:  m[2] + "x" + m[3] + "x" + m[4],
			Quantidade: qtd,
		})
	}
	if len(primarios) > 0 {
		return produtos
	}
	for _, m := range reBlocoSolto.FindAllStringSubmatch(texto, -1) {
		qtd := quantidadeSolta(texto)
		if qtd <= 0 {
			continue
		}
		produtos = append(produtos, ProdutoRascunho{
			Nome:       "Bloco de Concreto",
			Dimensoes:  semEspacos(m[1]),
			Quantidade: qtd,
		})
	}
	return produtos
}

func quantidadeSolta(texto string) int {
	if m := reQuantidadeSolta.FindStringSubmatch(texto); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 1
}

func extrairLocal(texto string) string {
	for _, re := range reLocais {
		if m := re.FindStringSubmatch(texto); m != nil {
			return capitalizarPrimeira(colapsarEspacos(m[1]))
		}
	}
	for _, cidade := range cidadesConhecidas {
		if strings.Contains(texto, cidade) {
			return capitalizarPrimeira(cidade)
		}
	}
	return ""
}

func extrairPrazo(texto string) string {
	for _, re := range rePrazos {
		m := re.FindStringSubmatch(texto)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n == 1 {
			return "1 dia"
		}
		return fmt.Sprintf("%d dias", n)
	}
	return ""
}

func extrairPagamento(texto string) string {
	for _, fp := range formasPagamento {
		for _, termo := range fp.termos {
			if strings.Contains(texto, termo) {
				return fp.rotulo
			}
		}
	}
	return ""
}

func normalizarSubtipo(s string) string {
	return strings.ToUpper(semEspacos(s))
}

func semEspacos(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func colapsarEspacos(s string) string {
	return strings.TrimSpace(reEspacos.ReplaceAllString(s, " "))
}

func capitalizarPrimeira(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
