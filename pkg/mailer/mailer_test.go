package mailer

import (
	"sync"
	"testing"

	"go.uber.org/zap"
)

// recordingSender 记录发送的邮件
type recordingSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *recordingSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestDispatcher_SubmitAndDrain(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 16, zap.NewNop())

	for i := 0; i < 5; i++ {
		d.Submit("user@example.com", "测试", "hello")
	}

	// Stop 排空队列后所有邮件都应送达
	d.Stop()
	if sender.count() != 5 {
		t.Errorf("发送数 = %d, want 5", sender.count())
	}
}

func TestDispatcher_EmptyRecipientSkipped(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 16, zap.NewNop())

	d.Submit("", "测试", "hello")
	d.Stop()

	if sender.count() != 0 {
		t.Errorf("发送数 = %d, want 0 (空收件人应跳过)", sender.count())
	}
}

func TestDispatcher_StopIdempotent(t *testing.T) {
	d := NewDispatcher(&recordingSender{}, 16, zap.NewNop())
	d.Stop()
	d.Stop() // 二次 Stop 不应 panic
}
