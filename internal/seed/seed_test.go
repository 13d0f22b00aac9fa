package seed

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/campuscms/internal/db"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) (*gorm.DB, *Seeder) {
	t.Helper()

	gdb, err := db.Open(fmt.Sprintf("file:seed-%d?mode=memory&cache=shared", time.Now().UnixNano()), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logrus.New()
	log.SetOutput(io.Discard)
	return gdb, New(gdb, log)
}

func TestRunIsIdempotent(t *testing.T) {
	gdb, seeder := setupSeedTestDB(t)
	ctx := context.Background()

	opts := Options{Demo: true, AdminUsername: "admin", AdminPassword: "admin123"}
	require.NoError(t, seeder.Run(ctx, opts))
	require.NoError(t, seeder.Run(ctx, opts))

	var heroes, users, categories, articles, issues, contact int64
	gdb.Model(&db.PageHero{}).Count(&heroes)
	gdb.Model(&db.User{}).Count(&users)
	gdb.Model(&db.NewsCategory{}).Count(&categories)
	gdb.Model(&db.NewsArticle{}).Count(&articles)
	gdb.Model(&db.NewsletterIssue{}).Count(&issues)
	gdb.Model(&db.ContactSettings{}).Count(&contact)

	assert.Equal(t, int64(len(db.HeroPages)), heroes)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(5), categories)
	assert.Equal(t, int64(2), articles)
	assert.Equal(t, int64(1), issues)
	assert.Equal(t, int64(1), contact)

	var inactive int64
	gdb.Model(&db.PageHero{}).Where("is_active = ?", false).Count(&inactive)
	assert.Equal(t, heroes, inactive, "seeded heroes stay inactive until an image is uploaded")
}

func TestSiteSettingsForceResetsEdits(t *testing.T) {
	gdb, seeder := setupSeedTestDB(t)
	ctx := context.Background()

	require.NoError(t, seeder.SiteSettings(ctx, false))

	var settings db.SiteSettings
	require.NoError(t, gdb.First(&settings, db.SingletonKey).Error)
	assert.Len(t, settings.PhoneNumbers, 2)

	require.NoError(t, gdb.Model(&settings).Update("tagline", "Edited").Error)

	require.NoError(t, seeder.SiteSettings(ctx, false))
	require.NoError(t, gdb.First(&settings, db.SingletonKey).Error)
	assert.Equal(t, "Edited", settings.Tagline)

	require.NoError(t, seeder.SiteSettings(ctx, true))
	require.NoError(t, gdb.First(&settings, db.SingletonKey).Error)
	assert.Equal(t, "Premier Science and Research-Intensive African University", settings.Tagline)

	var count int64
	gdb.Model(&db.SiteSettings{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestNewsForceRestoresDemoArticles(t *testing.T) {
	gdb, seeder := setupSeedTestDB(t)
	ctx := context.Background()

	require.NoError(t, seeder.News(ctx, false))

	var article db.NewsArticle
	require.NoError(t, gdb.Where("title = ?", "NIRU Launches AI Hackathon 2025").First(&article).Error)
	original := article.Excerpt
	require.NoError(t, gdb.Model(&article).Updates(map[string]interface{}{"excerpt": "Edited", "is_featured": false}).Error)

	require.NoError(t, seeder.News(ctx, false))
	require.NoError(t, gdb.First(&article, article.ID).Error)
	assert.Equal(t, "Edited", article.Excerpt)

	require.NoError(t, seeder.News(ctx, true))
	require.NoError(t, gdb.First(&article, article.ID).Error)
	assert.Equal(t, original, article.Excerpt)
	assert.True(t, article.IsFeatured)

	var count int64
	gdb.Model(&db.NewsArticle{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
