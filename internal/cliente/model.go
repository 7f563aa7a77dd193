package cliente

import "gorm.io/gorm"

// Cliente é quem solicita orçamentos, pelo site ou pelo WhatsApp. O cadastro
// pode nascer incompleto quando criado automaticamente pelo vendedor virtual.
type Cliente struct {
	gorm.Model
	Nome     string `json:"nome"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Telefone string `json:"telefone" gorm:"index"`
	Empresa  string `json:"empresa"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
}
