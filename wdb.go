package deedmarket

import (
	"os"
	"path"

	"github.com/deedmarket/deedmarket/schema"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteName = "deed.sqlite"

type Wdb struct {
	Db *gorm.DB
}

func NewMysqlDb(dsn string) *Wdb {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect mysql db success")
	return &Wdb{Db: db}
}

func NewSqliteDb(dbDir string) *Wdb {
	if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
		panic(err)
	}
	db, err := gorm.Open(sqlite.Open(path.Join(dbDir, sqliteName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(&schema.Event{})
}

func (w *Wdb) InsertEvent(ev *schema.Event) error {
	return w.Db.Create(ev).Error
}

func (w *Wdb) GetEvents(cursorId uint, num int) ([]schema.Event, error) {
	events := make([]schema.Event, 0, num)
	err := w.Db.Model(&schema.Event{}).Where("id > ?", cursorId).Order("id asc").Limit(num).Find(&events).Error
	return events, err
}

func (w *Wdb) GetEventsByAsset(assetId uint64, cursorId uint, num int) ([]schema.Event, error) {
	events := make([]schema.Event, 0, num)
	err := w.Db.Model(&schema.Event{}).Where("asset_id = ? and id > ?", assetId, cursorId).
		Order("id asc").Limit(num).Find(&events).Error
	return events, err
}

func (w *Wdb) CountEvents() (int64, error) {
	total := int64(0)
	err := w.Db.Model(&schema.Event{}).Count(&total).Error
	return total, err
}

func (w *Wdb) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}
