package bootmsg

import (
	"sparkcraft/internal/buildinfo"
	logclient "sparkcraft/sparkos/client/logger"
	"sparkcraft/sparkos/kernel"
	"sparkcraft/sparkos/proto"
)

const logRetryLimit = 100

// Task logs the boot banner, activates the app and waits for it to exit.
//
// It hands the app a send capability to its own endpoint; the app replies
// there with MsgAppControl(false) when the user quits. Done is closed then.
type Task struct {
	ep     kernel.Capability
	logCap kernel.Capability
	appCap kernel.Capability
	lines  []string

	done chan struct{}
}

// New returns a boot task. ep must carry both rights: the task receives on it
// and hands out a send-only copy. extra lines are logged after the banner.
func New(ep, logCap, appCap kernel.Capability, extra ...string) *Task {
	return &Task{
		ep:     ep,
		logCap: logCap,
		appCap: appCap,
		lines:  extra,
		done:   make(chan struct{}),
	}
}

// Done is closed once the app has reported exit.
func (t *Task) Done() <-chan struct{} { return t.done }

func (t *Task) Run(ctx *kernel.Context) {
	if ctx == nil {
		return
	}
	_ = logclient.LogRetry(ctx, t.logCap, "boot: "+buildinfo.String(), logRetryLimit)
	for _, line := range t.lines {
		_ = logclient.LogRetry(ctx, t.logCap, "boot: "+line, logRetryLimit)
	}

	ch, ok := ctx.RecvChan(t.ep)
	if !ok || !t.appCap.Valid() {
		close(t.done)
		return
	}
	res := ctx.SendToCapRetry(t.appCap, uint16(proto.MsgAppControl), proto.AppControlPayload(true), t.ep.Restrict(kernel.RightSend), logRetryLimit)
	if res != kernel.SendOK {
		logclient.Logf(ctx, t.logCap, "boot: activate app: %s", res)
		close(t.done)
		return
	}

	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgAppControl {
			continue
		}
		active, ok := proto.DecodeAppControlPayload(msg.Payload())
		if !ok || active {
			continue
		}
		_ = logclient.LogRetry(ctx, t.logCap, "boot: app exited", logRetryLimit)
		_ = ctx.SendToCapResult(t.appCap, uint16(proto.MsgAppShutdown), nil, kernel.Capability{})
		close(t.done)
		return
	}
	close(t.done)
}
