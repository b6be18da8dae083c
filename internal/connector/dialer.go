package connector

import (
	"context"
	"net"
	"syscall"

	"github.com/sagernet/sing/common/control"

	"kvs_client/internal/shared/types"
)

// socketControllers returns one control func per configured socket option,
// in the order they are applied.
func socketControllers(cfg types.DialConf) []control.Func {
	var controllers []control.Func
	if cfg.Mark != 0 {
		mark := cfg.Mark
		controllers = append(controllers, rawControl(func(fd uintptr) error {
			return setMark(fd, mark)
		}))
	}
	if cfg.Interface != "" {
		iface := cfg.Interface
		controllers = append(controllers, rawControl(func(fd uintptr) error {
			return bindToDevice(fd, iface)
		}))
	}
	return controllers
}

func rawControl(apply func(fd uintptr) error) control.Func {
	return func(network, address string, c syscall.RawConn) error {
		var sockErr error
		if err := c.Control(func(fd uintptr) {
			sockErr = apply(fd)
		}); err != nil {
			return err
		}
		return sockErr
	}
}

// newDialer builds the net.Dialer for one connect attempt. A zero timeout
// leaves the decision to the OS.
func newDialer(cfg types.DialConf) *net.Dialer {
	var ctl control.Func
	for _, c := range socketControllers(cfg) {
		ctl = control.Append(ctl, c)
	}
	return &net.Dialer{
		Timeout: cfg.Timeout(),
		Control: ctl,
	}
}

func dial(ctx context.Context, cfg types.DialConf, address string) (net.Conn, error) {
	return newDialer(cfg).DialContext(ctx, cfg.Network, address)
}
