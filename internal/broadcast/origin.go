package broadcast

import "context"

type publisher interface {
	Publish(ctx context.Context, d Delta)
}

// OriginPublisher подписывает дельты репликой-источником и передает их дальше
type OriginPublisher struct {
	next   publisher
	origin string
}

func NewOriginPublisher(next publisher, origin string) *OriginPublisher {
	return &OriginPublisher{next: next, origin: origin}
}

func (p *OriginPublisher) Publish(ctx context.Context, d Delta) {
	if d.Origin == "" {
		d.Origin = p.origin
	}
	p.next.Publish(ctx, d)
}
