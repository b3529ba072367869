package models

import "testing"

// TestMessageTableName 测试表名生成
func TestMessageTableName(t *testing.T) {
	msg := Message{}
	expected := "im_message"
	if msg.TableName() != expected {
		t.Errorf("TableName() = %s, want %s", msg.TableName(), expected)
	}
}

func TestMessageIsRead(t *testing.T) {
	var nilMsg *Message
	if nilMsg.IsRead() {
		t.Error("nil message should not be read")
	}

	for _, st := range UnreadStatuses {
		m := &Message{Status: uint8(st)}
		if m.IsRead() {
			t.Errorf("status %d should be unread", st)
		}
	}

	if !(&Message{Status: MessageStatusRead}).IsRead() {
		t.Error("status read should be read")
	}
	if (&Message{Status: MessageStatusRecalled}).IsRead() {
		t.Error("recalled message is not read")
	}
}
