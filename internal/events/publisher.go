package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const statusSubject = "procurement.proposal.status"

// StatusChanged - событие смены статуса предложения.
type StatusChanged struct {
	ProposalID string    `json:"proposalId"`
	Item       string    `json:"item"`
	Company    string    `json:"company"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Actor      string    `json:"actor"`
	At         time.Time `json:"at"`
}

// Publisher публикует события смены статуса предложений.
type Publisher interface {
	PublishStatusChanged(event StatusChanged)
	Close()
}

// NatsPublisher - реализация Publisher поверх NATS.
type NatsPublisher struct {
	conn *nats.Conn
	log  zerolog.Logger
}

// NewNatsPublisher подключается к NATS и создаёт новый экземпляр NatsPublisher.
func NewNatsPublisher(url string, log zerolog.Logger) (*NatsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second))
	if err != nil {
		return nil, err
	}
	return &NatsPublisher{conn: conn, log: log}, nil
}

// PublishStatusChanged отправляет событие в NATS. Неудача публикации
// логируется и не прерывает обработку запроса.
func (p *NatsPublisher) PublishStatusChanged(event StatusChanged) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to marshal status event")
		return
	}
	if err := p.conn.Publish(statusSubject, payload); err != nil {
		p.log.Warn().Err(err).Str("proposal_id", event.ProposalID).Msg("failed to publish status event")
	}
}

// Close закрывает соединение с NATS.
func (p *NatsPublisher) Close() {
	p.conn.Close()
}

// NoopPublisher - заглушка Publisher на случай, когда NATS не настроен.
type NoopPublisher struct{}

// PublishStatusChanged ничего не делает.
func (NoopPublisher) PublishStatusChanged(StatusChanged) {}

// Close ничего не делает.
func (NoopPublisher) Close() {}
