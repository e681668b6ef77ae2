package queue

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/streadway/amqp"
)

// AMQPQueue publishes JSON payloads to a single durable RabbitMQ queue. The
// topic travels in the message Type so consumers can tell events apart.
type AMQPQueue struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	name  string
	pubMu sync.Mutex
}

// DialAMQP connects and declares the queue
func DialAMQP(url, name string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &AMQPQueue{conn: conn, ch: ch, name: name}, nil
}

// AttemptsHeader counts how many times a message has already failed.
const AttemptsHeader = "x-attempts"

func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return q.publish(topic, body, nil)
}

// Republish sends a failed delivery back to the queue with its attempt
// count incremented, then acks the original.
func (q *AMQPQueue) Republish(d amqp.Delivery) error {
	headers := amqp.Table{AttemptsHeader: int32(Attempts(d) + 1)}
	if err := q.publish(d.Type, d.Body, headers); err != nil {
		return err
	}
	return d.Ack(false)
}

func (q *AMQPQueue) publish(topic string, body []byte, headers amqp.Table) error {
	q.pubMu.Lock()
	defer q.pubMu.Unlock()

	return q.ch.Publish(
		"",
		q.name,
		false,
		false,
		amqp.Publishing{
			Headers:      headers,
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         topic,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// Attempts reads the failed-attempt count of a delivery; 0 when unset.
func Attempts(d amqp.Delivery) int {
	switch v := d.Headers[AttemptsHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case int16:
		return int(v)
	case int8:
		return int(v)
	}
	return 0
}

// Consume registers a consumer with manual acks
func (q *AMQPQueue) Consume(consumer string) (<-chan amqp.Delivery, error) {
	if err := q.ch.Qos(10, 0, false); err != nil {
		return nil, err
	}
	return q.ch.Consume(
		q.name,
		consumer,
		false, // autoAck
		false,
		false,
		false,
		nil,
	)
}

func (q *AMQPQueue) Close() error {
	var result *multierror.Error
	if err := q.ch.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := q.conn.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

var _ Publisher = (*AMQPQueue)(nil)
