package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// ChangeChannelPrefix is the redis pub/sub channel prefix for per-patient
	// change events. Subscribers are UI refreshers only: a missed event must
	// never matter for correctness, clients re-read on demand.
	ChangeChannelPrefix = "patient:changed:"

	publishTimeout = 2 * time.Second
)

// ChangeEvent tells subscribed viewers that a patient's record changed and
// which entity drove the change.
type ChangeEvent struct {
	PatientID uuid.UUID `json:"patient_id"`
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	At        time.Time `json:"at"`
}

// EventPublisher pushes advisory change events over redis pub/sub after a
// transition commits. Publishing is fire-and-forget; failures are logged and
// dropped.
type EventPublisher struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewEventPublisher(redisClient *redis.Client, log *logrus.Logger) *EventPublisher {
	return &EventPublisher{
		redisClient: redisClient,
		log:         log,
	}
}

// PatientChanged publishes a change event for the given patient. Call only
// after the DB transaction has committed.
func (p *EventPublisher) PatientChanged(patientID uuid.UUID, entityName, action string) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	event := ChangeEvent{
		PatientID: patientID,
		Entity:    entityName,
		Action:    action,
		At:        time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Warnf("Failed to marshal change event for patient %s: %+v", patientID, err)
		return
	}

	channel := ChangeChannelPrefix + patientID.String()
	if err := p.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		p.log.Warnf("Failed to publish change event for patient %s (non-fatal): %+v", patientID, err)
		return
	}

	p.log.Debugf("Published change event: patient=%s, entity=%s, action=%s", patientID, entityName, action)
}
