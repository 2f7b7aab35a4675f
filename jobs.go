package deedmarket

import (
	"github.com/deedmarket/deedmarket/schema"
)

func (s *Deedmarket) runJobs() {
	s.scheduler.Every(30).Seconds().SingletonMode().Do(s.updateStats)
	s.scheduler.Every(1).Minute().SingletonMode().Do(s.flushEventBacklog)

	s.scheduler.StartAsync()
}

// flushEventBacklog replays notifications that failed to append to the
// relational feed, in their original emit order.
func (s *Deedmarket) flushEventBacklog() {
	keys, events, err := s.store.LoadEventBacklog()
	if err != nil {
		log.Error("load event backlog failed", "err", err)
		return
	}
	for i, ev := range events {
		if err := s.wdb.InsertEvent(&events[i]); err != nil {
			log.Error("replay backlog event failed", "err", err, "event", ev.Name, "assetId", ev.AssetId)
			return
		}
		if err := s.store.DeleteEventBacklog(keys[i]); err != nil {
			log.Error("delete backlog event failed", "err", err, "key", keys[i])
			return
		}
	}
}

func (s *Deedmarket) updateStats() {
	assets, err := s.store.CountProperties()
	if err != nil {
		log.Error("count properties failed", "err", err)
		return
	}
	auctions, err := s.store.LoadAllAuctions()
	if err != nil {
		log.Error("load auctions failed", "err", err)
		return
	}
	open := 0
	now := s.clock.Now()
	for _, a := range auctions {
		if !a.Ended && now < a.EndTime {
			open++
		}
	}
	events, err := s.wdb.CountEvents()
	if err != nil {
		log.Error("count events failed", "err", err)
		return
	}

	s.stats.UpdateStats(schema.MarketStats{
		Assets:       assets,
		OpenAuctions: open,
		Events:       events,
	})
	metricOpenAuctions(open)
}
