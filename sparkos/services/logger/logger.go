package logger

import (
	"fmt"

	"sparkcraft/hal"
	"sparkcraft/sparkos/kernel"
	"sparkcraft/sparkos/proto"
)

// Service drains MsgLogLine messages into a hal.Logger.
type Service struct {
	log hal.Logger
	ep  kernel.Capability

	lines   uint64
	rejects uint64
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		s.handle(ctx, msg)
	}
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	if proto.Kind(msg.Kind) != proto.MsgLogLine {
		s.rejects++
		if msg.Cap.Valid() {
			detail := []byte(fmt.Sprintf("kind=%d", msg.Kind))
			_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError),
				proto.ErrorPayload(proto.ErrBadMessage, proto.Kind(msg.Kind), detail), kernel.Capability{})
		}
		return
	}
	s.lines++
	if s.log == nil {
		return
	}
	s.log.WriteLineBytes(msg.Payload())
}
