// Package notifier publishes displacement events to RabbitMQ.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Publisher публикует события в topic exchange
type Publisher struct {
	conn       *amqp.Connection
	ch         Channel
	exchange   string
	routingKey string
	log        Logger
}

// Dial подключается к брокеру и объявляет durable topic exchange
func Dial(url, exchange, routingKey string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := NewPublisher(ch, exchange, routingKey, log)
	p.conn = conn
	return p, nil
}

// NewPublisher создает издателя поверх готового канала
func NewPublisher(ch Channel, exchange, routingKey string, log Logger) *Publisher {
	if routingKey == "" {
		routingKey = EventReservationDisplaced
	}
	return &Publisher{ch: ch, exchange: exchange, routingKey: routingKey, log: log}
}

// NotifyDisplacement публикует событие о вытеснении бронирования
func (p *Publisher) NotifyDisplacement(ctx context.Context, n *domain.DisplacementNotification) error {
	now := time.Now()
	body, err := json.Marshal(newDisplacementEvent(n, now))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         EventReservationDisplaced,
		Timestamp:    now.UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", EventReservationDisplaced, err)
	}

	p.log.Info("Notifier: displacement of reservation id=%d published to %s (message_id=%s)",
		n.ReservationID, n.RecipientApartmentID, msg.MessageId)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if c, ok := p.ch.(*amqp.Channel); ok && c != nil {
		_ = c.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Disabled используется, когда брокер выключен в конфигурации
type Disabled struct {
	Log Logger
}

// NotifyDisplacement только пишет в лог
func (d Disabled) NotifyDisplacement(_ context.Context, n *domain.DisplacementNotification) error {
	if d.Log != nil {
		d.Log.Info("Notifier: disabled, displacement of reservation id=%d for apartment %s not published",
			n.ReservationID, n.RecipientApartmentID)
	}
	return nil
}
