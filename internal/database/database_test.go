package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eigotube/immersion-api/internal/models"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name   string
		dbPath string
	}{
		{
			name:   "in-memory database",
			dbPath: ":memory:",
		},
		{
			name:   "file database",
			dbPath: filepath.Join(t.TempDir(), "test.db"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, false)
			require.NoError(t, err)
			require.NotNil(t, conn)
			assert.NotNil(t, conn.DB)

			conn.Close()
		})
	}
}

func TestDB_Close(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)

	assert.NoError(t, conn.Close())

	err = conn.HealthCheck()
	assert.Error(t, err, "HealthCheck should fail after database is closed")
}

func TestDB_HealthCheck(t *testing.T) {
	t.Run("healthy connection", func(t *testing.T) {
		conn, err := Initialize(":memory:", false)
		require.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.HealthCheck())
	})

	t.Run("closed connection", func(t *testing.T) {
		conn, err := Initialize(":memory:", false)
		require.NoError(t, err)
		conn.Close()

		assert.Error(t, conn.HealthCheck())
	})

	t.Run("nil connection", func(t *testing.T) {
		var conn *DB
		assert.Error(t, conn.HealthCheck())
	})
}

func TestDB_AutoMigrate(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	err = conn.AutoMigrate(
		&models.Channel{},
		&models.Video{},
		&models.StudyCard{},
		&models.StudySession{},
	)
	require.NoError(t, err)

	for _, table := range []string{"channels", "videos", "study_cards", "study_sessions"} {
		var count int64
		err := conn.DB.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count).Error
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count, "table %s should exist", table)
	}
}

func TestDB_LibraryOperations(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.AutoMigrate(&models.Channel{}, &models.Video{}, &models.StudyCard{}))

	t.Run("create video", func(t *testing.T) {
		video := models.Video{
			VideoID: "abc123",
			Title:   "Immersion lesson one",
		}

		err := conn.DB.Create(&video).Error
		assert.NoError(t, err)
		assert.NotZero(t, video.ID)
	})

	t.Run("unique video id", func(t *testing.T) {
		dup := models.Video{VideoID: "abc123", Title: "Duplicate"}
		err := conn.DB.Create(&dup).Error
		assert.Error(t, err)
	})

	t.Run("card belongs to video", func(t *testing.T) {
		var video models.Video
		require.NoError(t, conn.DB.First(&video, "video_id = ?", "abc123").Error)

		card := models.StudyCard{
			VideoRef:    video.ID,
			CueStart:    1.5,
			CueEnd:      4.0,
			EnglishText: "hello there",
		}
		require.NoError(t, conn.DB.Create(&card).Error)

		var loaded models.Video
		err := conn.DB.Preload("StudyCards").First(&loaded, video.ID).Error
		assert.NoError(t, err)
		assert.Len(t, loaded.StudyCards, 1)
	})

	t.Run("update playback position", func(t *testing.T) {
		err := conn.DB.Model(&models.Video{}).Where("video_id = ?", "abc123").Update("position", 42.5).Error
		assert.NoError(t, err)

		var video models.Video
		conn.DB.First(&video, "video_id = ?", "abc123")
		assert.Equal(t, 42.5, video.Position)
	})
}

func TestDB_Transaction(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.AutoMigrate(&models.Channel{}))

	t.Run("successful transaction", func(t *testing.T) {
		err := conn.DB.Transaction(func(tx *gorm.DB) error {
			for i := 0; i < 3; i++ {
				channel := models.Channel{ChannelID: string(rune('a' + i)), Title: "channel"}
				if err := tx.Create(&channel).Error; err != nil {
					return err
				}
			}
			return nil
		})

		assert.NoError(t, err)

		var count int64
		conn.DB.Model(&models.Channel{}).Count(&count)
		assert.Equal(t, int64(3), count)
	})

	t.Run("failed transaction rollback", func(t *testing.T) {
		var countBefore int64
		conn.DB.Model(&models.Channel{}).Count(&countBefore)

		err := conn.DB.Transaction(func(tx *gorm.DB) error {
			channel := models.Channel{ChannelID: "rollback", Title: "rollback"}
			if err := tx.Create(&channel).Error; err != nil {
				return err
			}
			return gorm.ErrInvalidTransaction
		})

		assert.Error(t, err)

		var countAfter int64
		conn.DB.Model(&models.Channel{}).Count(&countAfter)
		assert.Equal(t, countBefore, countAfter)
	})
}

func TestDB_ConnectionPool(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	sqlDB, err := conn.DB.DB()
	require.NoError(t, err)

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	stats := sqlDB.Stats()
	assert.LessOrEqual(t, stats.Idle, 5)
	assert.GreaterOrEqual(t, stats.MaxOpenConnections, 10)
}
