package shared

import (
	"net"
	"sync/atomic"
)

// CountedConn 是一个 net.Conn 的包装器，统计上行/下行字节数以及读写调用次数。
type CountedConn struct {
	net.Conn
	uplink   atomic.Uint64
	downlink atomic.Uint64
	writes   atomic.Uint32
	reads    atomic.Uint32
}

// NewCountedConn wraps conn. Close and deadlines pass straight through.
func NewCountedConn(conn net.Conn) *CountedConn {
	return &CountedConn{Conn: conn}
}

// Read 从底层连接读取数据，并增加下行流量计数。
func (c *CountedConn) Read(b []byte) (int, error) {
	c.reads.Add(1)
	n, err := c.Conn.Read(b)
	if n > 0 {
		c.downlink.Add(uint64(n))
	}
	return n, err
}

// Write 将数据写入底层连接，并增加上行流量计数。
func (c *CountedConn) Write(b []byte) (int, error) {
	c.writes.Add(1)
	n, err := c.Conn.Write(b)
	if n > 0 {
		c.uplink.Add(uint64(n))
	}
	return n, err
}

func (c *CountedConn) BytesSent() uint64     { return c.uplink.Load() }
func (c *CountedConn) BytesReceived() uint64 { return c.downlink.Load() }
func (c *CountedConn) Writes() int           { return int(c.writes.Load()) }
func (c *CountedConn) Reads() int            { return int(c.reads.Load()) }
