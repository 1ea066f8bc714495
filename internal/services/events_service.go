package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"moderation-api/internal/config"
	"moderation-api/internal/constants"
)

// ModerationEvent is published to the moderation exchange after a successful
// admin action commits. Consumers (notification workers, session revokers)
// are outside this service.
type ModerationEvent struct {
	AdminUserID uuid.UUID            `json:"adminUserId"`
	Action      constants.ActionType `json:"action"`
	TargetType  constants.TargetType `json:"targetType"`
	TargetID    uuid.UUID            `json:"targetId"`
	Reason      string               `json:"reason"`
	OccurredAt  time.Time            `json:"occurredAt"`
}

type EventsService struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewEventsService() *EventsService {
	conn, ch, err := dialAndDeclare()
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}

	service := &EventsService{
		conn:    conn,
		channel: ch,
	}

	// Setup connection recovery
	service.setupConnectionRecovery()

	return service
}

func dialAndDeclare() (*amqp.Connection, *amqp.Channel, error) {
	host := getEnvOrDefault("RABBITMQ_HOST", "localhost")
	port := getEnvOrDefault("RABBITMQ_PORT", "5672")
	username := getEnvOrDefault("RABBITMQ_USERNAME", "guest")
	password := getEnvOrDefault("RABBITMQ_PASSWORD", "guest")
	vhost := getEnvOrDefault("RABBITMQ_VHOST", "/")

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/%s",
		username,
		password,
		host,
		port,
		vhost,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	exchange := config.Moderation.Events.Exchange
	queue := config.Moderation.Events.Queue
	routingKey := config.Moderation.Events.RoutingKey

	if err := ch.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(queue, routingKey, exchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return conn, ch, nil
}

// PublishModerationEvent publishes best-effort: the admin action has already
// committed, so a broker failure is logged and swallowed rather than undoing
// the action.
func (e *EventsService) PublishModerationEvent(event *ModerationEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal moderation event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = e.channel.PublishWithContext(ctx,
		config.Moderation.Events.Exchange,
		config.Moderation.Events.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent, // Make messages persistent
		})
	if err != nil {
		log.Printf("Failed to publish moderation event %s on %s %s: %v",
			event.Action, event.TargetType, event.TargetID, err)
		return
	}
}

func (e *EventsService) Close() error {
	if err := e.channel.Close(); err != nil {
		return err
	}
	return e.conn.Close()
}

// getEnvOrDefault gets an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupConnectionRecovery sets up automatic reconnection for RabbitMQ
func (e *EventsService) setupConnectionRecovery() {
	go func() {
		for err := range e.conn.NotifyClose(make(chan *amqp.Error)) {
			if err != nil {
				log.Printf("RabbitMQ connection lost: %v, attempting to reconnect...", err)
				e.reconnect()
			}
		}
	}()

	go func() {
		for err := range e.channel.NotifyClose(make(chan *amqp.Error)) {
			if err != nil {
				log.Printf("RabbitMQ channel lost: %v, attempting to reconnect...", err)
				e.reconnect()
			}
		}
	}()
}

// reconnect attempts to reconnect to RabbitMQ
func (e *EventsService) reconnect() {
	for {
		log.Println("Attempting to reconnect to RabbitMQ...")

		if e.channel != nil {
			e.channel.Close()
		}
		if e.conn != nil {
			e.conn.Close()
		}

		// Wait before retry
		time.Sleep(5 * time.Second)

		conn, ch, err := dialAndDeclare()
		if err != nil {
			log.Printf("Failed to reconnect: %v, retrying in 5 seconds...", err)
			continue
		}

		e.conn = conn
		e.channel = ch
		log.Println("Successfully reconnected to RabbitMQ")
		break
	}
}
