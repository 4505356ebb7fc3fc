package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/absrenew/storefront/internal/common"
	"github.com/absrenew/storefront/internal/log"
	"github.com/absrenew/storefront/notification/pkg/mail"
)

// EmailWorker drains the mail queue in small batches so a slow relay never
// blocks checkout.
type EmailWorker struct {
	mailer mail.Mailer
	queue  <-chan mail.Message
}

func NewEmailWorker(mailer mail.Mailer, queue <-chan mail.Message) *EmailWorker {
	return &EmailWorker{mailer: mailer, queue: queue}
}

func (wrk EmailWorker) StartWorker(c context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, common.AppNotificationWorker).
		Str(log.KeyTag, "EmailWorker StartWorker").
		Logger()

	tick := time.Tick(time.Millisecond * 300)
	batch := make([]mail.Message, 0, 50)

	for {
		select {
		case <-c.Done():
			wrk.flush(c, batch, logger)
			return
		case <-tick:
			if len(batch) == 0 {
				continue
			}
			requestID := uuid.NewString()
			lg := logger.With().Str(log.KeyRequestID, requestID).Logger()
			ctx := log.AttachRequestIDToContext(lg.WithContext(c), requestID)
			wrk.flush(ctx, batch, lg)
			batch = batch[:0]
		case msg := <-wrk.queue:
			logger.Info().Str(log.KeyMailTo, msg.To).Msg("received mail message")
			batch = append(batch, msg)
		}
	}
}

func (wrk EmailWorker) flush(c context.Context, batch []mail.Message, logger zerolog.Logger) {
	for _, msg := range batch {
		err := wrk.mailer.Send(c, msg)
		if err != nil {
			err = fmt.Errorf("failed sending mail to=%s with error=%w", msg.To, err)
			logger.Error().Err(err).Msg(err.Error())
			continue
		}
		logger.Info().Str(log.KeyMailTo, msg.To).Msg("sent mail")
	}
}
