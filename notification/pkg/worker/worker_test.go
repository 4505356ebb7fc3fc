package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/absrenew/storefront/notification/pkg/mail"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *recordingMailer) Send(c context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestWorkerDrainsQueue(t *testing.T) {
	mailer := &recordingMailer{}
	queue := make(chan mail.Message, 10)
	wrk := NewEmailWorker(mailer, queue)

	c, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := sync.WaitGroup{}
	wg.Add(1)
	go wrk.StartWorker(c, &wg)

	queue <- mail.Message{To: "a@example.com", Subject: "order confirmed"}
	queue <- mail.Message{To: "b@example.com", Subject: "order confirmed"}

	assert.Eventually(t, func() bool {
		return mailer.count() == 2
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	wg.Wait()
}

func TestWorkerFlushesPendingBatchOnShutdown(t *testing.T) {
	mailer := &recordingMailer{}
	queue := make(chan mail.Message, 10)
	wrk := NewEmailWorker(mailer, queue)

	c, cancel := context.WithCancel(context.Background())

	wg := sync.WaitGroup{}
	wg.Add(1)
	go wrk.StartWorker(c, &wg)

	queue <- mail.Message{To: "a@example.com", Subject: "order confirmed"}

	assert.Eventually(t, func() bool {
		return len(queue) == 0
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	wg.Wait()

	assert.Equal(t, 1, mailer.count())
}
