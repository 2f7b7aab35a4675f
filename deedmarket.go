package deedmarket

import (
	"sync"
	"time"

	"github.com/deedmarket/deedmarket/cache"
	"github.com/deedmarket/deedmarket/config"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
)

var log = NewLog("deedmarket")

const detailsCacheExpire = 10 * time.Second

type Deedmarket struct {
	store  *Store
	engine *gin.Engine

	assetLocker *assetLocker
	titles      TitleRegistry
	access      AccessControl
	ledger      *Ledger
	clock       Clock

	wdb       *Wdb
	config    *config.Config
	scheduler *gocron.Scheduler

	stats        *Cache
	detailsCache *cache.Cache
	kafka        *KWriter
}

func New(
	boltDirPath, mySqlDsn string, sqliteDir string, useSqlite bool,
	useS3 bool, s3AccKey, s3SecretKey, s3BucketPrefix, s3Region, s3Endpoint string,
	useKafka bool, kafkaUri string,
	minters []string,
) *Deedmarket {
	var err error
	KVDb := &Store{}
	if useS3 {
		KVDb, err = NewS3Store(s3AccKey, s3SecretKey, s3Region, s3BucketPrefix, s3Endpoint)
	} else {
		KVDb, err = NewBoltStore(boltDirPath)
	}
	if err != nil {
		panic(err)
	}

	wdb := &Wdb{}
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewMysqlDb(mySqlDsn)
	}
	if err = wdb.Migrate(); err != nil {
		panic(err)
	}

	cfg := config.New(mySqlDsn, sqliteDir, useSqlite, minters)

	var kw *KWriter
	if useKafka {
		kw, err = NewKWriter(EventTopic, kafkaUri)
		if err != nil {
			panic(err)
		}
	}

	detailsCache, err := cache.NewLocalCache(detailsCacheExpire)
	if err != nil {
		panic(err)
	}

	d := &Deedmarket{
		store:        KVDb,
		engine:       gin.Default(),
		assetLocker:  newAssetLocker(),
		ledger:       NewLedger(KVDb),
		clock:        NewChainClock(),
		wdb:          wdb,
		config:       cfg,
		scheduler:    gocron.NewScheduler(time.UTC),
		stats:        NewCache(),
		detailsCache: detailsCache,
		kafka:        kw,
	}
	d.titles = NewTitleBook(KVDb)
	d.access = cfg
	return d
}

func (s *Deedmarket) Run(port string) {
	s.config.Run()
	go s.runAPI(port)
	s.runJobs()
}

func (s *Deedmarket) Close() {
	s.scheduler.Stop()
	s.config.Close()
	s.wdb.Close()
	if s.kafka != nil {
		s.kafka.Close()
	}
	if err := s.store.Close(); err != nil {
		log.Error("close kv store failed", "err", err)
	}
}

// assetLocker gives each asset id its own exclusive section so every operation
// on an asset runs serially, per-asset. State must be fully mutated before any
// outbound value transfer is issued inside the section.
type assetLocker struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func newAssetLocker() *assetLocker {
	return &assetLocker{locks: make(map[uint64]*sync.Mutex)}
}

func (a *assetLocker) Lock(id uint64) {
	a.mu.Lock()
	lk, ok := a.locks[id]
	if !ok {
		lk = &sync.Mutex{}
		a.locks[id] = lk
	}
	a.mu.Unlock()
	lk.Lock()
}

func (a *assetLocker) Unlock(id uint64) {
	a.mu.Lock()
	lk := a.locks[id]
	a.mu.Unlock()
	lk.Unlock()
}
