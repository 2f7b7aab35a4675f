package deedmarket

import (
	"encoding/json"

	"github.com/deedmarket/deedmarket/schema"
)

// emit appends one notification record for a committed state transition. The
// relational row is the durable history; kafka is a best-effort mirror for
// stream consumers. A failed append is parked in the KV backlog and replayed
// by the scheduler, so every committed transition ends up with exactly one
// record; emit never aborts the operation that produced it.
func (s *Deedmarket) emit(assetId uint64, name string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error("marshal event payload failed", "err", err, "event", name, "assetId", assetId)
		return
	}
	ev := schema.Event{
		AssetId: assetId,
		Name:    name,
		Payload: body,
	}
	if err := s.wdb.InsertEvent(&ev); err != nil {
		log.Error("insert event failed, parking in backlog", "err", err, "event", name, "assetId", assetId)
		if err := s.store.SaveEventBacklog(ev); err != nil {
			log.Error("park event in backlog failed", "err", err, "event", name, "assetId", assetId)
		}
	}
	if s.kafka != nil {
		msg, err := json.Marshal(&ev)
		if err == nil {
			err = s.kafka.Write(msg)
		}
		if err != nil {
			log.Error("publish event to kafka failed", "err", err, "event", name)
		}
	}
	metricEvent(name)
}

func (s *Deedmarket) Events(cursorId uint, num int) ([]schema.Event, error) {
	return s.wdb.GetEvents(cursorId, num)
}

func (s *Deedmarket) AssetEvents(assetId uint64, cursorId uint, num int) ([]schema.Event, error) {
	return s.wdb.GetEventsByAsset(assetId, cursorId, num)
}
