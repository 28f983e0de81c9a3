package storage

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"freightdesk/backend/internal/models"
)

// sequenceTTL keeps per-day counters around long enough to survive restarts
// and late writes around midnight, then lets them expire.
const sequenceTTL = 48 * time.Hour

// NextComplaintSequence returns the next daily sequence number used to mint a
// complaint id. Redis INCR is atomic across processes, so two concurrent
// submissions can never receive the same number.
func (s *Service) NextComplaintSequence(day time.Time) (int64, error) {
	if s.Redis == nil {
		return 0, errors.New("redis not configured")
	}
	key := "complaint_seq:" + day.Format("20060102")

	n, err := s.Redis.Incr(s.Ctx, key).Result()
	if err != nil {
		log.Printf("ERROR: Failed to increment complaint sequence %s: %v", key, err)
		return 0, err
	}
	if n == 1 {
		// First complaint of the day; set the expiry once.
		if err := s.Redis.Expire(s.Ctx, key, sequenceTTL).Err(); err != nil {
			log.Printf("WARNING: Failed to set TTL on %s: %v", key, err)
		}
	}
	return n, nil
}

// PublishEvent announces a committed transition on the workflow events
// channel. Subscribers (the notify hub, other server instances) fan it out to
// connected dashboards.
func (s *Service) PublishEvent(ev models.WorkflowEvent) error {
	if s.Redis == nil {
		// CLI usage runs without Redis; events are best-effort anyway.
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, WorkflowEventsChannel, string(payload)).Err(); err != nil {
		log.Printf("ERROR: Failed to publish workflow event for %s: %v", ev.ComplaintID, err)
		return err
	}
	return nil
}
