package notifier

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel часть amqp.Channel, нужная для публикации
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
