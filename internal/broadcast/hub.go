package broadcast

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/metrics"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	dropReasonDuplicate  = "duplicate"
	dropReasonSlowReader = "slow_subscriber"
	dropReasonQueueFull  = "queue_full"
	dropReasonEncode     = "encode"
)

// Subscription - очередь дельт одного подписчика.
// Канал закрывается при Close или если подписчик не успевает вычитывать очередь.
type Subscription struct {
	id        uint64
	principal string
	topics    map[uuid.UUID]struct{}
	ch        chan Delta
	hub       *Hub
	closed    bool
}

func (s *Subscription) C() <-chan Delta {
	return s.ch
}

func (s *Subscription) Principal() string {
	return s.principal
}

// Close отписывает подписчика; повторный вызов безопасен
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.hub.removeLocked(s)
}

func (s *Subscription) wants(d Delta) bool {
	if len(s.topics) > 0 {
		if _, ok := s.topics[d.EventID]; !ok {
			return false
		}
	}
	return d.DeliverableTo(s.principal)
}

// sequence - состояние упорядочивания одного события
type sequence struct {
	base    int64
	next    int64
	pending map[int64]Delta
	skipped map[int64]struct{}
	early   map[int64]struct{}
	timer   *time.Timer
}

// Hub - локальная шина дельт процесса.
// Дельты одного события отдаются в порядке Seq; пропуск в нумерации ждет не дольше window.
type Hub struct {
	mu        sync.Mutex
	subs      map[uint64]*Subscription
	nextSubID uint64
	sequences map[uuid.UUID]*sequence
	window    time.Duration
	buffer    int
	logger    *logrus.Logger
}

// NewHub создает шину. window - сколько ждать пропущенный номер, buffer - размер очереди подписчика.
func NewHub(window time.Duration, buffer int, logger *logrus.Logger) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:      make(map[uint64]*Subscription),
		sequences: make(map[uuid.UUID]*sequence),
		window:    window,
		buffer:    buffer,
		logger:    logger,
	}
}

// Subscribe регистрирует подписчика на события topics; пустой список - все события
func (h *Hub) Subscribe(topics []uuid.UUID, principalID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextSubID++
	sub := &Subscription{
		id:        h.nextSubID,
		principal: principalID,
		ch:        make(chan Delta, h.buffer),
		hub:       h,
	}
	if len(topics) > 0 {
		sub.topics = make(map[uuid.UUID]struct{}, len(topics))
		for _, t := range topics {
			sub.topics[t] = struct{}{}
		}
	}
	h.subs[sub.id] = sub
	metrics.SetSubscribers(len(h.subs))
	return sub
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish принимает дельту от ядра. Никогда не блокирует вызывающего.
func (h *Hub) Publish(_ context.Context, d Delta) {
	metrics.IncDeltaPublished(string(d.Type))
	h.Dispatch(d)
}

// Dispatch упорядочивает и раздает дельту локальным подписчикам.
// Используется и напрямую, и ретранслятором из Redis.
func (h *Hub) Dispatch(d Delta) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !d.Sequenced() {
		h.deliverLocked(d)
		return
	}

	seq, ok := h.sequences[d.EventID]
	if !ok {
		seq = &sequence{
			base:    d.Seq,
			next:    d.Seq,
			pending: make(map[int64]Delta),
			skipped: make(map[int64]struct{}),
			early:   make(map[int64]struct{}),
		}
		h.sequences[d.EventID] = seq
	}

	switch {
	case d.Seq < seq.base:
		// номер старше первой увиденной дельты: доставляем один раз
		if _, seen := seq.early[d.Seq]; seen {
			metrics.IncDeltaDropped(dropReasonDuplicate)
			return
		}
		seq.early[d.Seq] = struct{}{}
		h.deliverLocked(d)
	case d.Seq < seq.next:
		if _, late := seq.skipped[d.Seq]; late {
			delete(seq.skipped, d.Seq)
			h.logger.WithFields(logrus.Fields{
				"event_id": d.EventID,
				"seq":      d.Seq,
			}).Debug("Delivering late delta after its gap was skipped")
			h.deliverLocked(d)
			return
		}
		metrics.IncDeltaDropped(dropReasonDuplicate)
	case d.Seq == seq.next:
		h.deliverLocked(d)
		seq.next++
		h.drainLocked(d.EventID, seq)
	default:
		if _, dup := seq.pending[d.Seq]; dup {
			metrics.IncDeltaDropped(dropReasonDuplicate)
			return
		}
		seq.pending[d.Seq] = d
		h.armLocked(d.EventID, seq)
	}
}

// drainLocked отдает накопленные дельты, пока нумерация непрерывна
func (h *Hub) drainLocked(eventID uuid.UUID, seq *sequence) {
	for {
		d, ok := seq.pending[seq.next]
		if !ok {
			break
		}
		delete(seq.pending, seq.next)
		h.deliverLocked(d)
		seq.next++
	}
	if len(seq.pending) == 0 {
		if seq.timer != nil {
			seq.timer.Stop()
			seq.timer = nil
		}
		return
	}
	h.armLocked(eventID, seq)
}

func (h *Hub) armLocked(eventID uuid.UUID, seq *sequence) {
	if seq.timer != nil {
		return
	}
	seq.timer = time.AfterFunc(h.window, func() {
		h.skipGap(eventID, seq)
	})
}

// skipGap вызывается по истечении окна: пропущенные номера считаются потерянными
func (h *Hub) skipGap(eventID uuid.UUID, seq *sequence) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sequences[eventID] != seq {
		return
	}
	seq.timer = nil
	if len(seq.pending) == 0 {
		return
	}

	keys := make([]int64, 0, len(seq.pending))
	for k := range seq.pending {
		keys = append(keys, k)
	}
	lowest := slices.Min(keys)
	for missing := seq.next; missing < lowest; missing++ {
		seq.skipped[missing] = struct{}{}
	}
	h.logger.WithFields(logrus.Fields{
		"event_id": eventID,
		"from_seq": seq.next,
		"to_seq":   lowest - 1,
	}).Warn("Reorder window expired, skipping missing deltas")

	seq.next = lowest
	h.drainLocked(eventID, seq)
}

func (h *Hub) deliverLocked(d Delta) {
	for _, sub := range h.subs {
		if !sub.wants(d) {
			continue
		}
		select {
		case sub.ch <- d:
		default:
			metrics.IncDeltaDropped(dropReasonSlowReader)
			h.logger.WithFields(logrus.Fields{
				"subscriber": sub.id,
				"principal":  sub.principal,
			}).Warn("Subscriber queue is full, disconnecting")
			h.removeLocked(sub)
		}
	}

	switch {
	case d.Type == DeltaEventDeleted:
		h.forgetLocked(d.EventID, true)
	case d.Type == DeltaEventUpdated && terminal(d.Payload):
		h.forgetLocked(d.EventID, false)
	}
}

// forgetLocked снимает состояние упорядочивания события.
// Без force состояние с ожидающими дельтами остается, их еще нужно отдать.
func (h *Hub) forgetLocked(eventID uuid.UUID, force bool) {
	seq, ok := h.sequences[eventID]
	if !ok || (!force && len(seq.pending) > 0) {
		return
	}
	if seq.timer != nil {
		seq.timer.Stop()
	}
	delete(h.sequences, eventID)
}

// terminal - payload eventUpdated описывает завершенное или архивное событие
func terminal(payload json.RawMessage) bool {
	var doc struct {
		Status models.EventStatus `json:"status"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return false
	}
	return doc.Status == models.EventStatusCompleted || doc.Status == models.EventStatusArchived
}

func (h *Hub) removeLocked(sub *Subscription) {
	if sub.closed {
		return
	}
	sub.closed = true
	delete(h.subs, sub.id)
	close(sub.ch)
	metrics.SetSubscribers(len(h.subs))
}

// Close отключает всех подписчиков и останавливает таймеры
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		h.removeLocked(sub)
	}
	for id, seq := range h.sequences {
		if seq.timer != nil {
			seq.timer.Stop()
		}
		delete(h.sequences, id)
	}
}
