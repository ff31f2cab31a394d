package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// StartInviteConsumer connects to RabbitMQ, declares the durable
// booking.invite queue, and consumes invitation events. Each event is
// appended to logs/invites.log, standing in for the outbound guest
// notification. The function runs a reconnect loop with capped
// backoff and keeps the server operating through broker outages;
// malformed messages are rejected without requeueing to avoid tight
// redelivery loops.
func StartInviteConsumer(log zerolog.Logger) error {
	url := brokerURL()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("invite consumer: broker dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeInvites(conn, log); err != nil {
			log.Warn().Err(err).Msg("invite consumer: loop ended, reconnecting")
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeInvites(conn *amqp.Connection, log zerolog.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn().Err(err).Msg("invite consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(inviteQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(inviteQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleInvite(d.Body); err != nil {
			log.Error().Err(err).Msg("invite consumer: handle message failed")
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleInvite(body []byte) error {
	var ev InviteSentEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "invites.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] Invite sent | invite_id=%d | artist_id=%d | date=%s | type=%s | guest=%q <%s>\n",
		ev.SentAt, ev.InviteID, ev.ArtistID, ev.Date, ev.BookingType, ev.GuestName, ev.GuestEmail)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
