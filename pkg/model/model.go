package model

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/common"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"k8s.io/klog/v2"
)

var (
	DB *gorm.DB

	once sync.Once
)

type Model struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InitDB opens the audit log store. When the audit log is disabled no
// database is opened and every Record call is a no-op.
func InitDB() {
	if common.DisableAuditLog {
		klog.Info("Audit log is disabled, skipping database initialization")
		return
	}

	dsn := common.DBDSN
	level := logger.Silent
	if klog.V(2).Enabled() {
		level = logger.Info
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      level,
			Colorful:      false,
		},
	)

	var err error
	once.Do(func() {
		cfg := &gorm.Config{
			Logger: newLogger,
		}
		switch common.DBType {
		case "sqlite":
			DB, err = gorm.Open(sqlite.Open(dsn), cfg)
		case "mysql":
			mysqlDSN := strings.TrimPrefix(dsn, "mysql://")
			if !strings.Contains(mysqlDSN, "parseTime=") {
				separator := "?"
				if strings.Contains(mysqlDSN, "?") {
					separator = "&"
				}
				mysqlDSN = mysqlDSN + separator + "parseTime=true"
			}
			DB, err = gorm.Open(mysql.Open(mysqlDSN), cfg)
		case "postgres":
			DB, err = gorm.Open(postgres.Open(dsn), cfg)
		}
		if err != nil {
			panic("failed to connect database: " + err.Error())
		}
	})

	if DB == nil {
		panic("database connection is nil, check your DB_TYPE and DB_DSN settings")
	}

	if err := DB.AutoMigrate(&ToolAuditLog{}); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	sqldb, err := DB.DB()
	if err == nil {
		sqldb.SetMaxOpenConns(common.DBMaxOpenConns)
		sqldb.SetMaxIdleConns(common.DBMaxIdleConns)
	}
}
