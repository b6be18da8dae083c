package types

import (
	"net"
	"strconv"
	"time"
)

// EndpointConf 描述远端监听者 (host, port)。
type EndpointConf struct {
	Host string `ini:"host"`
	Port int    `ini:"port"`
}

// Address renders the endpoint as host:port.
func (e EndpointConf) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// ExchangeConf 定义一次交换的报文和接收缓冲区大小
type ExchangeConf struct {
	Payload    string `ini:"payload"`
	BufferSize int    `ini:"buffer_size"`
}

// DialConf contains socket level options for the outgoing connection.
type DialConf struct {
	Network     string `ini:"network"`       // "tcp4" (默认), "tcp", "tcp6"
	TimeoutMs   int    `ini:"timeout_ms"`    // 0 = 交给操作系统
	IOTimeoutMs int    `ini:"io_timeout_ms"` // 0 = 不设置读写截止时间
	Mark        int    `ini:"mark"`          // SO_MARK, linux only
	Interface   string `ini:"interface"`     // SO_BINDTODEVICE, linux only
}

// Timeout returns the connect timeout, zero meaning none.
func (d DialConf) Timeout() time.Duration {
	return time.Duration(d.TimeoutMs) * time.Millisecond
}

// IOTimeout returns the per-exchange read/write deadline, zero meaning none.
func (d DialConf) IOTimeout() time.Duration {
	return time.Duration(d.IOTimeoutMs) * time.Millisecond
}

// LogConf contains logging specific configuration
type LogConf struct {
	Level string `ini:"level"`
}

// Config 是客户端的统一配置结构体
type Config struct {
	EndpointConf `ini:"endpoint"`
	ExchangeConf `ini:"exchange"`
	DialConf     `ini:"dial"`
	LogConf      `ini:"log"`
}
