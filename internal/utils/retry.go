package utils

import (
	"context"
	"time"
)

// Repetir executa fn até ter sucesso ou esgotar as tentativas, esperando um
// intervalo fixo entre elas. A política da casa para gravações no banco é
// tentar de novo uma única vez (duas tentativas no total) antes de desistir;
// o número de tentativas fica configurável para quem precisar de mais.
func Repetir(ctx context.Context, tentativas int, intervalo time.Duration, fn func() error) error {
	if tentativas < 1 {
		tentativas = 1
	}

	var err error
	for i := 0; i < tentativas; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == tentativas-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(intervalo):
		}
	}
	return err
}
