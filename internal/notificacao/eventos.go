package notificacao

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherOrcamentos publica um evento por orçamento criado pelo vendedor
// virtual, consumido pelo painel do back-office.
type PublisherOrcamentos struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

type eventoOrcamentoCriado struct {
	OrcamentoID uint   `json:"orcamento_id"`
	Canal       string `json:"canal"`
}

func NewPublisherOrcamentos(url, queue string) (*PublisherOrcamentos, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &PublisherOrcamentos{conn: conn, ch: ch, queue: queue}, nil
}

func (p *PublisherOrcamentos) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *PublisherOrcamentos) PublicarOrcamentoCriado(ctx context.Context, orcamentoID uint, canal string) error {
	corpo, err := json.Marshal(eventoOrcamentoCriado{OrcamentoID: orcamentoID, Canal: canal})
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(cctx,
		"",      // exchange default
		p.queue, // routing key = fila
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         corpo,
			Timestamp:    time.Now(),
		},
	)
}
