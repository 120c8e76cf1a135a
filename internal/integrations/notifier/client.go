package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueName имя durable-очереди событий просмотров
const QueueName = "viewing.events"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client публикует события переходов записей на просмотр в RabbitMQ
// Соединение и канал открываются один раз при старте сервиса.
// Публикация - fire-and-forget: ошибка никогда не откатывает переход,
// переживаемость обеспечивается durable-очередью и persistent-сообщениями.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  Logger
}

// NewClient подключается к брокеру и объявляет очередь событий
func NewClient(url string, log Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	// Объявление идемпотентно; durable, чтобы события переживали
	// перезапуск брокера
	if _, err := ch.QueueDeclare(
		QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare queue: %v", ErrConnect, err)
	}

	return &Client{conn: conn, ch: ch, log: log}, nil
}

// Close закрывает канал и соединение с брокером
func (c *Client) Close() error {
	if err := c.ch.Close(); err != nil {
		_ = c.conn.Close()
		return err
	}
	return c.conn.Close()
}

// PublishTransition публикует событие перехода записи на просмотр
// Каждой публикации присваивается новый event_id: при повторной доставке
// потребители дедуплицируют по (reservation_id, transition)
func (c *Client) PublishTransition(ctx context.Context, event ViewingEvent) error {
	event.EventID = uuid.NewString()

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := c.ch.PublishWithContext(ctx,
		"",        // default exchange
		QueueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	c.log.Info("Published %s for reservation_id=%d (event_id=%s)", event.Transition, event.ReservationID, event.EventID)
	return nil
}
