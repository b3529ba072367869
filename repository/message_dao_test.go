package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cydxin/read-receipt-sdk/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB 用 go-sqlmock 创建一个可被 GORM 使用的 *gorm.DB（mysql 方言，? 占位符）。
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqldb, SkipInitializeWithVersion: true}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		_ = sqldb.Close()
		t.Fatalf("gorm.Open: %v", err)
	}

	return db, mock, sqldb
}

var messageCols = []string{"id", "room_id", "sender_id", "type", "content", "status", "read_at", "created_at", "updated_at", "deleted_at"}

const (
	lockSelectRe = "SELECT \\* FROM `im_message` WHERE \\(id = \\? AND room_id = \\?\\) .* FOR UPDATE"
	markUpdateRe = "UPDATE `im_message` SET `read_at`=\\?,`status`=\\?,`updated_at`=\\? WHERE \\(id = \\? AND status IN \\(\\?,\\?,\\?\\)\\)"
)

func TestMessageDAO_FindInRoom(t *testing.T) {
	db, mock, sqldb := newMockDB(t)
	defer func() { _ = sqldb.Close() }()

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `im_message` WHERE \\(id = \\? AND room_id = \\?\\)").
		WillReturnRows(sqlmock.NewRows(messageCols).
			AddRow(uint64(500), uint64(11), uint64(7), 1, "hi", models.MessageStatusSent, nil, now, now, nil))

	msg, err := NewMessageDAO(db).FindInRoom(11, 500)
	if err != nil {
		t.Fatalf("FindInRoom: %v", err)
	}
	if msg.ID != 500 || msg.RoomID != 11 || msg.SenderID != 7 {
		t.Fatalf("unexpected message %#v", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestMessageDAO_MarkRead_Unread(t *testing.T) {
	db, mock, sqldb := newMockDB(t)
	defer func() { _ = sqldb.Close() }()

	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(lockSelectRe).
		WillReturnRows(sqlmock.NewRows(messageCols).
			AddRow(uint64(500), uint64(11), uint64(7), 1, "hi", models.MessageStatusDelivered, nil, now, now, nil))
	mock.ExpectExec(markUpdateRe).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	msg := &models.Message{ID: 500, RoomID: 11}
	changed, err := NewMessageDAO(db).MarkRead(msg, now)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !changed {
		t.Fatalf("expected changed")
	}
	if msg.Status != models.MessageStatusRead || msg.ReadAt == nil || !msg.ReadAt.Equal(now) {
		t.Fatalf("message not refreshed: %#v", msg)
	}
	if msg.SenderID != 7 {
		t.Fatalf("expected sender 7, got %d", msg.SenderID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestMessageDAO_MarkRead_AlreadyRead(t *testing.T) {
	db, mock, sqldb := newMockDB(t)
	defer func() { _ = sqldb.Close() }()

	now := time.Now()
	readAt := now.Add(-time.Minute)

	mock.ExpectBegin()
	mock.ExpectQuery(lockSelectRe).
		WillReturnRows(sqlmock.NewRows(messageCols).
			AddRow(uint64(500), uint64(11), uint64(7), 1, "hi", models.MessageStatusRead, readAt, now, now, nil))
	mock.ExpectExec(markUpdateRe).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	msg := &models.Message{ID: 500, RoomID: 11}
	changed, err := NewMessageDAO(db).MarkRead(msg, now)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if changed {
		t.Fatalf("second mark should be a no-op")
	}
	if !msg.IsRead() {
		t.Fatalf("expected read status, got %d", msg.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestMessageDAO_MarkRead_Missing(t *testing.T) {
	db, mock, sqldb := newMockDB(t)
	defer func() { _ = sqldb.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(lockSelectRe).
		WillReturnRows(sqlmock.NewRows(messageCols))
	mock.ExpectRollback()

	changed, err := NewMessageDAO(db).MarkRead(&models.Message{ID: 1, RoomID: 2}, time.Now())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if changed {
		t.Fatalf("expected no change")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
