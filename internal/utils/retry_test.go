package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRepetir_SucessoNaPrimeira(t *testing.T) {
	chamadas := 0
	err := Repetir(context.Background(), 2, time.Millisecond, func() error {
		chamadas++
		return nil
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if chamadas != 1 {
		t.Fatalf("esperava 1 chamada, vieram %d", chamadas)
	}
}

func TestRepetir_SucessoNaSegunda(t *testing.T) {
	chamadas := 0
	err := Repetir(context.Background(), 2, time.Millisecond, func() error {
		chamadas++
		if chamadas == 1 {
			return errors.New("falha transitória")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if chamadas != 2 {
		t.Fatalf("esperava 2 chamadas, vieram %d", chamadas)
	}
}

func TestRepetir_EsgotaTentativas(t *testing.T) {
	falha := errors.New("falha permanente")
	chamadas := 0
	err := Repetir(context.Background(), 2, time.Millisecond, func() error {
		chamadas++
		return falha
	})
	if !errors.Is(err, falha) {
		t.Fatalf("esperava a falha original, veio %v", err)
	}
	if chamadas != 2 {
		t.Fatalf("esperava 2 chamadas, vieram %d", chamadas)
	}
}

func TestRepetir_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Repetir(ctx, 3, time.Minute, func() error {
		return errors.New("falha")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("esperava context.Canceled, veio %v", err)
	}
}
