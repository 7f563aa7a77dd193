package conversa

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	prefixoSessao = "sessao:"
	ttlSessao     = 24 * time.Hour
)

// RedisStore serializa a sessão como JSON. Usado pelo canal WhatsApp, em que
// cada mensagem chega num webhook sem estado e a sessão é achada pelo
// telefone do remetente.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Buscar(ctx context.Context, id string) (*Sessao, error) {
	payload, err := s.rdb.Get(ctx, prefixoSessao+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessaoNaoEncontrada
	}
	if err != nil {
		return nil, err
	}

	var sess Sessao
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Salvar(ctx context.Context, sess *Sessao) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, prefixoSessao+sess.ID, payload, ttlSessao).Err()
}

func (s *RedisStore) Remover(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, prefixoSessao+id).Err()
}
