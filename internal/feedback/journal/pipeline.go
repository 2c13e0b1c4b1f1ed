// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package journal

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/gmaxing/engine/internal/models"
)

// topicFeedbackRecorded carries recorded feedback to the journal consumer.
const topicFeedbackRecorded = "feedback.recorded"

// Pipeline decouples feedback recording from durable journal writes using
// an in-process watermill pub/sub channel. Enqueue publishes and returns;
// a single consumer goroutine drains the channel and performs the fsync'd
// badger writes, so the recording path never waits on disk.
//
// Pipeline implements feedback.Sink.
type Pipeline struct {
	pubsub  *gochannel.GoChannel
	journal Journal
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

// NewPipeline starts a pipeline draining into the given journal.
func NewPipeline(j Journal, logger zerolog.Logger) (*Pipeline, error) {
	p := &Pipeline{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 256},
			watermill.NopLogger{},
		),
		journal: j,
		logger:  logger.With().Str("component", "journal-pipeline").Logger(),
	}

	messages, err := p.pubsub.Subscribe(context.Background(), topicFeedbackRecorded)
	if err != nil {
		return nil, fmt.Errorf("subscribe journal pipeline: %w", err)
	}

	p.wg.Add(1)
	go p.consume(messages)
	return p, nil
}

// Enqueue hands an entry to the pipeline. Never blocks on journal I/O;
// failures to publish are logged, not surfaced, because the in-memory log
// already holds the entry and remains the source of truth.
func (p *Pipeline) Enqueue(fb models.UserFeedback) {
	payload, err := json.Marshal(fb)
	if err != nil {
		p.logger.Error().Err(err).Msg("marshal feedback for journal")
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pubsub.Publish(topicFeedbackRecorded, msg); err != nil {
		p.logger.Error().Err(err).Msg("publish feedback to journal pipeline")
	}
}

// consume drains the channel into the journal until the pubsub closes.
func (p *Pipeline) consume(messages <-chan *message.Message) {
	defer p.wg.Done()

	for msg := range messages {
		var fb models.UserFeedback
		if err := json.Unmarshal(msg.Payload, &fb); err != nil {
			p.logger.Warn().Err(err).Str("message", msg.UUID).Msg("dropping malformed journal message")
			msg.Ack()
			continue
		}
		if err := p.journal.Append(context.Background(), fb); err != nil {
			p.logger.Error().Err(err).Str("message", msg.UUID).Msg("journal append failed")
		}
		msg.Ack()
	}
}

// Close flushes the pipeline and closes the journal. Safe to call once.
func (p *Pipeline) Close() error {
	if err := p.pubsub.Close(); err != nil {
		p.logger.Warn().Err(err).Msg("closing journal pubsub")
	}
	p.wg.Wait()
	return p.journal.Close()
}
