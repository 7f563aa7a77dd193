package extracao

import "strings"

// Vocabulário aceito como confirmação do usuário depois que o assistente
// pergunta se pode fechar o pedido.
var afirmacoes = []string{
	"sim",
	"confirmo",
	"confirmado",
	"pode confirmar",
	"está correto",
	"esta correto",
	"só isso",
	"apenas isso",
	"nada mais",
}

// EstaCompleto decide se a conversa já contém um orçamento pronto para ser
// persistido: produtos e local de entrega presentes, prazo ou forma de
// pagamento presente, e o usuário respondeu afirmativamente depois da
// última pergunta de confirmação do assistente.
//
// A função é um predicado puro sobre os turnos; quem chama é responsável
// por disparar a persistência uma única vez quando ela vira verdadeira.
func EstaCompleto(turnos []Turno) bool {
	r := Extrair(turnos)

	temProdutos := len(r.Produtos) > 0
	temLocal := r.LocalEntrega != ""
	temPrazo := r.Prazo != ""
	temPagamento := r.FormaPagamento != ""
	if !temProdutos || !temLocal || (!temPrazo && !temPagamento) {
		return false
	}

	// Procura de trás para frente a última pergunta de confirmação feita
	// pelo assistente ("posso confirmar...?").
	pergunta := -1
	for i := len(turnos) - 1; i >= 0; i-- {
		if turnos[i].Papel != PapelAssistente {
			continue
		}
		if strings.Contains(strings.ToLower(turnos[i].Conteudo), "confirmar") {
			pergunta = i
			break
		}
	}
	if pergunta < 0 {
		return false
	}

	// A partir da pergunta, procura a primeira resposta afirmativa do usuário.
	for i := pergunta + 1; i < len(turnos); i++ {
		if turnos[i].Papel != PapelUsuario {
			continue
		}
		conteudo := strings.ToLower(turnos[i].Conteudo)
		for _, a := range afirmacoes {
			if strings.Contains(conteudo, a) {
				return true
			}
		}
	}
	return false
}
