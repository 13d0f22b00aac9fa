package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Open 打开数据库连接并执行自动迁移，不修改全局实例。
func Open(databasePath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "campuscms.db"
	}

	if !strings.HasPrefix(path, "file:") {
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
	}

	gdb, err := gorm.Open(sqlite.Open(withForeignKeys(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Init 初始化全局数据库连接。
// databasePath 为空时将回退到默认值 campuscms.db。
func Init(databasePath string) error {
	gdb, err := Open(databasePath, logger.Warn)
	if err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Migrate 自动迁移模式，为全部内容模型创建表
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&User{},
		&SiteSettings{},
		&PageHero{},
		&AboutPage{},
		&CoreValue{},
		&ViceChancellorMessage{},
		&Chancellor{},
		&BoardMember{},
		&GovernanceBody{},
		&Programme{},
		&ProgrammeHighlight{},
		&AdmissionRequirement{},
		&LibraryPage{},
		&LibrarianMessage{},
		&EResource{},
		&LibraryPolicy{},
		&Service{},
		&Facility{},
		&RecreationDetail{},
		&NewsCategory{},
		&NewsTag{},
		&NewsArticle{},
		&EventDetail{},
		&Subscriber{},
		&NewsletterIssue{},
		&ContactSubmission{},
		&ContactSettings{},
	)
}

// withForeignKeys 打开 sqlite 外键约束，保证级联删除生效。
func withForeignKeys(path string) string {
	if strings.Contains(path, "_foreign_keys") || strings.Contains(path, "_fk=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
