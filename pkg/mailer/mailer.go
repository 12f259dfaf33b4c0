package mailer

import (
	"fmt"
	"net/smtp"
	"sync"

	"go.uber.org/zap"
)

// ==================== Dispatcher 通知调度器 ====================

// Dispatcher 定义"提交一封邮件"的行为标准
// fire-and-forget：调用方观察不到投递结果，也不会因投递失败而失败
type Dispatcher interface {
	// Submit 把邮件放入发送队列，队列满时丢弃（尽力而为）
	Submit(to, subject, body string)
}

// Sender 实际执行发送的后端
type Sender interface {
	Send(to, subject, body string) error
}

// ==================== 队列式调度器实现 ====================

type message struct {
	To      string
	Subject string
	Body    string
}

// queueDispatcher 是 Dispatcher 的队列实现：
// 缓冲 channel + 单个 worker goroutine，投递与触发方解耦
type queueDispatcher struct {
	queue  chan message
	sender Sender
	logger *zap.Logger

	stopOnce sync.Once
	done     chan struct{}
}

var _ Dispatcher = (*queueDispatcher)(nil)

// NewDispatcher 创建调度器并启动 worker
func NewDispatcher(sender Sender, queueSize int, logger *zap.Logger) *queueDispatcher {
	if queueSize <= 0 {
		queueSize = 128
	}
	d := &queueDispatcher{
		queue:  make(chan message, queueSize),
		sender: sender,
		logger: logger,
		done:   make(chan struct{}),
	}
	go d.worker()
	return d
}

func (d *queueDispatcher) Submit(to, subject, body string) {
	if to == "" {
		return
	}
	select {
	case d.queue <- message{To: to, Subject: subject, Body: body}:
	default:
		// 队列满：丢弃并记录，不能阻塞业务请求
		d.logger.Warn("邮件队列已满，丢弃通知", zap.String("to", to), zap.String("subject", subject))
	}
}

// Stop 停止 worker，排空已入队的邮件
func (d *queueDispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}

func (d *queueDispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		if err := d.sender.Send(msg.To, msg.Subject, msg.Body); err != nil {
			d.logger.Warn("邮件发送失败",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err))
		}
	}
}

// ==================== 发送后端 ====================

// SMTPSender 通过 SMTP 发送
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTPSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.From, to, subject, body))

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	return smtp.SendMail(addr, auth, s.From, []string{to}, msg)
}

// LogSender 仅写日志的占位后端，本地开发没有 SMTP 时使用
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(to, subject, body string) error {
	s.Logger.Info("邮件通知 (log-only)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
