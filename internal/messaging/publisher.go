package messaging

import "fmt"

// PlayerSubject is the subject a player's session listens on.
func PlayerSubject(charId string) string {
	return fmt.Sprintf("player-%s", charId)
}

type publisher interface {
	Publish(subject string, data []byte) error
}

// NatsPublisher publishes messages to individual player NATS channels.
type NatsPublisher struct {
	server publisher
}

// NewNatsPublisher wraps a NatsServer for per-player message delivery.
func NewNatsPublisher(server *NatsServer) *NatsPublisher {
	return &NatsPublisher{server: server}
}

func (p *NatsPublisher) PublishToPlayer(charId string, data []byte) error {
	if err := p.server.Publish(PlayerSubject(charId), data); err != nil {
		return fmt.Errorf("publishing to %s: %w", charId, err)
	}
	return nil
}
