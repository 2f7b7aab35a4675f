package config

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Config carries the operator-tunable settings: the privileged minter set, the
// rate-limit whitelist and serve params. All of it lives in the config
// database and is re-read on a schedule.
type Config struct {
	wdb         *Wdb
	minters     map[string]struct{}
	ipWhiteList map[string]struct{}
	serveLimit  int
	scheduler   *gocron.Scheduler
	lock        sync.RWMutex
}

func New(dsn string, sqliteDir string, useSqlite bool, minters []string) *Config {
	wdb := &Wdb{}
	if useSqlite {
		wdb = NewSqliteWdb(sqliteDir)
	} else {
		wdb = NewWdb(dsn)
	}
	if err := wdb.Migrate(); err != nil {
		panic(err)
	}
	if err := wdb.InsertMinters(minters); err != nil {
		panic(err)
	}
	c := &Config{
		wdb:         wdb,
		minters:     make(map[string]struct{}),
		ipWhiteList: make(map[string]struct{}),
		scheduler:   gocron.NewScheduler(time.UTC),
	}
	c.updateMinters()
	c.updateIPWhiteList()
	c.updateParam()
	return c
}

func (c *Config) IsPrivileged(addr string) bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	_, ok := c.minters[addr]
	return ok
}

func (c *Config) GetIPWhiteList() *map[string]struct{} {
	c.lock.RLock()
	defer c.lock.RUnlock()
	ipWhiteList := c.ipWhiteList
	return &ipWhiteList
}

func (c *Config) GetServeLimit() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.serveLimit
}

func (c *Config) Run() {
	go c.runJobs()
}

func (c *Config) Close() {
	c.scheduler.Stop()
	c.wdb.Close()
}
