package config

import (
	"os"
	"path"

	"github.com/deedmarket/deedmarket/config/schema"
	"github.com/inconshreveable/log15"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var log = log15.New("module", "config")

const sqliteName = "config.sqlite"

type Wdb struct {
	Db *gorm.DB
}

func NewWdb(dsn string) *Wdb {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 10,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect config db success")
	return &Wdb{Db: db}
}

func NewSqliteWdb(dbDir string) *Wdb {
	if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
		panic(err)
	}
	db, err := gorm.Open(sqlite.Open(path.Join(dbDir, sqliteName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite config db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(&schema.Minter{}, &schema.IpRateWhitelist{}, &schema.Param{})
}

func (w *Wdb) InsertMinters(addresses []string) error {
	if len(addresses) == 0 {
		return nil
	}
	minters := make([]schema.Minter, 0, len(addresses))
	for _, addr := range addresses {
		minters = append(minters, schema.Minter{Address: addr, Available: true})
	}
	return w.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(&minters).Error
}

func (w *Wdb) GetAllAvailableMinters() ([]schema.Minter, error) {
	res := make([]schema.Minter, 0)
	err := w.Db.Where("available = ?", true).Find(&res).Error
	return res, err
}

func (w *Wdb) GetAllAvailableIpRateWhitelist() ([]schema.IpRateWhitelist, error) {
	res := make([]schema.IpRateWhitelist, 0)
	err := w.Db.Where("available = ?", true).Find(&res).Error
	return res, err
}

func (w *Wdb) GetParam() (schema.Param, error) {
	param := schema.Param{}
	err := w.Db.First(&param).Error
	if err == gorm.ErrRecordNotFound {
		return schema.Param{}, nil
	}
	return param, err
}

func (w *Wdb) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}
