package deedmarket

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/deedmarket/deedmarket/rawdb"
	"github.com/deedmarket/deedmarket/schema"
	"github.com/shopspring/decimal"
)

type Store struct {
	KVDb rawdb.KeyValueDB

	// serializes read-increment-write on the sequence keys
	seqLock sync.Mutex
}

func NewBoltStore(boltDirPath string) (*Store, error) {
	boltDb, err := rawdb.NewBoltDB(boltDirPath)
	if err != nil {
		return nil, err
	}
	return &Store{KVDb: boltDb}, nil
}

func NewS3Store(accKey, secretKey, region, bucketPrefix, endpoint string) (*Store, error) {
	s3Db, err := rawdb.NewS3DB(accKey, secretKey, region, bucketPrefix, endpoint)
	if err != nil {
		return nil, err
	}
	return &Store{KVDb: s3Db}, nil
}

func (s *Store) Close() error {
	return s.KVDb.Close()
}

// NextPropertyId allocates the next asset id from a monotonically increasing
// sequence starting at 1. Allocation is atomic: two concurrent mints never see
// the same id.
func (s *Store) NextPropertyId() (uint64, error) {
	s.seqLock.Lock()
	defer s.seqLock.Unlock()
	return s.nextSeq(schema.PropertySeqKey)
}

func (s *Store) nextSeq(seqKey string) (uint64, error) {
	last := uint64(0)
	data, err := s.KVDb.Get(schema.ConstantsBucket, seqKey)
	if err == nil {
		last, err = strconv.ParseUint(string(data), 10, 64)
		if err != nil {
			return 0, err
		}
	} else if err != schema.ErrNotExist {
		return 0, err
	}
	next := last + 1
	if err := s.KVDb.Put(schema.ConstantsBucket, seqKey, []byte(strconv.FormatUint(next, 10))); err != nil {
		return 0, err
	}
	return next, nil
}

func (s *Store) SaveProperty(prop schema.Property) error {
	val, err := json.Marshal(&prop)
	if err != nil {
		return err
	}
	return s.KVDb.Put(schema.PropertyBucket, itoKey(prop.ID), val)
}

func (s *Store) LoadProperty(id uint64) (prop schema.Property, err error) {
	data, err := s.KVDb.Get(schema.PropertyBucket, itoKey(id))
	if err != nil {
		return
	}
	err = json.Unmarshal(data, &prop)
	return
}

func (s *Store) ExistProperty(id uint64) bool {
	return s.KVDb.Exist(schema.PropertyBucket, itoKey(id))
}

func (s *Store) CountProperties() (int, error) {
	keys, err := s.KVDb.GetAllKey(schema.PropertyBucket)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (s *Store) SaveOffer(offer schema.Offer) error {
	val, err := json.Marshal(&offer)
	if err != nil {
		return err
	}
	return s.KVDb.Put(schema.OfferBucket, offerKey(offer.AssetId, offer.Bidder), val)
}

func (s *Store) LoadOffer(id uint64, bidder string) (offer schema.Offer, err error) {
	data, err := s.KVDb.Get(schema.OfferBucket, offerKey(id, bidder))
	if err != nil {
		return
	}
	err = json.Unmarshal(data, &offer)
	return
}

func (s *Store) DeleteOffer(id uint64, bidder string) error {
	return s.KVDb.Delete(schema.OfferBucket, offerKey(id, bidder))
}

func (s *Store) LoadAssetOffers(id uint64) ([]schema.Offer, error) {
	keys, err := s.KVDb.GetAllKey(schema.OfferBucket)
	if err != nil {
		return nil, err
	}
	prefix := itoKey(id) + "-"
	offers := make([]schema.Offer, 0)
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		data, err := s.KVDb.Get(schema.OfferBucket, key)
		if err != nil {
			return nil, err
		}
		offer := schema.Offer{}
		if err := json.Unmarshal(data, &offer); err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

func (s *Store) SaveAuction(auction schema.Auction) error {
	val, err := json.Marshal(&auction)
	if err != nil {
		return err
	}
	return s.KVDb.Put(schema.AuctionBucket, itoKey(auction.AssetId), val)
}

func (s *Store) LoadAuction(id uint64) (auction schema.Auction, err error) {
	data, err := s.KVDb.Get(schema.AuctionBucket, itoKey(id))
	if err != nil {
		return
	}
	err = json.Unmarshal(data, &auction)
	return
}

func (s *Store) ExistAuction(id uint64) bool {
	return s.KVDb.Exist(schema.AuctionBucket, itoKey(id))
}

func (s *Store) LoadAllAuctions() ([]schema.Auction, error) {
	keys, err := s.KVDb.GetAllKey(schema.AuctionBucket)
	if err != nil {
		return nil, err
	}
	auctions := make([]schema.Auction, 0, len(keys))
	for _, key := range keys {
		data, err := s.KVDb.Get(schema.AuctionBucket, key)
		if err != nil {
			return nil, err
		}
		auction := schema.Auction{}
		if err := json.Unmarshal(data, &auction); err != nil {
			return nil, err
		}
		auctions = append(auctions, auction)
	}
	return auctions, nil
}

// SaveDelegate with an empty account clears the delegate.
func (s *Store) SaveDelegate(id uint64, account string) error {
	return s.KVDb.Put(schema.DelegateBucket, itoKey(id), []byte(account))
}

func (s *Store) LoadDelegate(id uint64) (string, error) {
	data, err := s.KVDb.Get(schema.DelegateBucket, itoKey(id))
	if err == schema.ErrNotExist {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) SaveTitle(id uint64, owner string) error {
	return s.KVDb.Put(schema.TitleBucket, itoKey(id), []byte(owner))
}

func (s *Store) LoadTitle(id uint64) (string, error) {
	data, err := s.KVDb.Get(schema.TitleBucket, itoKey(id))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) ExistTitle(id uint64) bool {
	return s.KVDb.Exist(schema.TitleBucket, itoKey(id))
}

func (s *Store) SaveBalance(account string, amount decimal.Decimal) error {
	return s.KVDb.Put(schema.BalanceBucket, account, []byte(amount.String()))
}

// LoadBalance returns zero for an account with no deposits.
func (s *Store) LoadBalance(account string) (decimal.Decimal, error) {
	data, err := s.KVDb.Get(schema.BalanceBucket, account)
	if err == schema.ErrNotExist {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(string(data))
}

// SaveEventBacklog parks a notification that could not be appended to the
// relational feed. Keys are sequence-ordered so a flush replays in emit order.
func (s *Store) SaveEventBacklog(ev schema.Event) error {
	s.seqLock.Lock()
	seq, err := s.nextSeq(schema.BacklogSeqKey)
	s.seqLock.Unlock()
	if err != nil {
		return err
	}
	val, err := json.Marshal(&ev)
	if err != nil {
		return err
	}
	return s.KVDb.Put(schema.EventBacklogBucket, fmt.Sprintf("%020d", seq), val)
}

func (s *Store) LoadEventBacklog() ([]string, []schema.Event, error) {
	keys, err := s.KVDb.GetAllKey(schema.EventBacklogBucket)
	if err != nil {
		return nil, nil, err
	}
	events := make([]schema.Event, 0, len(keys))
	for _, key := range keys {
		data, err := s.KVDb.Get(schema.EventBacklogBucket, key)
		if err != nil {
			return nil, nil, err
		}
		ev := schema.Event{}
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, nil, err
		}
		events = append(events, ev)
	}
	return keys, events, nil
}

func (s *Store) DeleteEventBacklog(key string) error {
	return s.KVDb.Delete(schema.EventBacklogBucket, key)
}

func itoKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func offerKey(id uint64, bidder string) string {
	return fmt.Sprintf("%d-%s", id, bidder)
}
