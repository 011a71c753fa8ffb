package warmer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/iett/pkg/dataaggregator"
	"github.com/travigo/iett/pkg/metrics"
	"github.com/travigo/iett/pkg/util"
)

const QueueName = "iett-warmer-queue"

// WarmRequest asks for the route detail of a line to be loaded into the response cache
type WarmRequest struct {
	ID          string    `json:"id"`
	HatKodu     string    `json:"hatKodu"`
	RequestedAt time.Time `json:"requestedAt"`
}

// Enqueue publishes one WarmRequest per distinct line code and returns how many were published
func Enqueue(queue rmq.Queue, hatKodlari []string) (int, error) {
	normalised := make([]string, 0, len(hatKodlari))
	for _, hatKodu := range hatKodlari {
		normalised = append(normalised, util.NormaliseLineCode(hatKodu))
	}
	normalised = util.RemoveDuplicateStrings(normalised, nil)

	payloads := make([][]byte, 0, len(normalised))
	for _, hatKodu := range normalised {
		payload, err := json.Marshal(WarmRequest{
			ID:          uuid.NewString(),
			HatKodu:     hatKodu,
			RequestedAt: time.Now(),
		})
		if err != nil {
			return 0, err
		}
		payloads = append(payloads, payload)
	}

	if len(payloads) == 0 {
		return 0, nil
	}

	if err := queue.PublishBytes(payloads...); err != nil {
		return 0, err
	}

	return len(payloads), nil
}

type BatchConsumer struct {
	Aggregator *dataaggregator.Aggregator

	// Concurrency bounds how many lines of a batch are warmed at once
	Concurrency int
	// Timeout bounds the warming of a single line
	Timeout time.Duration
}

func NewBatchConsumer(aggregator *dataaggregator.Aggregator) *BatchConsumer {
	return &BatchConsumer{
		Aggregator:  aggregator,
		Concurrency: 4,
		Timeout:     time.Minute,
	}
}

func (c *BatchConsumer) Consume(batch rmq.Deliveries) {
	var valid rmq.Deliveries
	var requests []WarmRequest

	for _, delivery := range batch {
		var request WarmRequest
		if err := json.Unmarshal([]byte(delivery.Payload()), &request); err != nil || util.NormaliseLineCode(request.HatKodu) == "" {
			log.Error().Err(err).Str("payload", delivery.Payload()).Msg("Rejecting unreadable warm request")

			if rejectErr := delivery.Reject(); rejectErr != nil {
				log.Error().Err(rejectErr).Msg("Failed to reject warm request")
			}
			continue
		}

		request.HatKodu = util.NormaliseLineCode(request.HatKodu)
		valid = append(valid, delivery)
		requests = append(requests, request)
	}

	p := pool.New().WithMaxGoroutines(max(c.Concurrency, 1))
	for _, request := range requests {
		p.Go(func() {
			c.warm(request)
		})
	}
	p.Wait()

	if ackErrors := valid.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack warm request")
		}
	}
}

func (c *BatchConsumer) warm(request WarmRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	startTime := time.Now()
	detail := c.Aggregator.RouteDetail(ctx, request.HatKodu)

	metrics.ObserveWarmedLine()

	log.Debug().
		Str("id", request.ID).
		Str("hat", request.HatKodu).
		Bool("found", detail.Hat != nil).
		Str("latency", time.Since(startTime).String()).
		Msg("Warmed route detail")
}
