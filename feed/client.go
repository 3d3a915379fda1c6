package feed

import (
	"fmt"
	"net"
	"time"
)

// Config controls low-level client behavior such as timeouts.
type Config struct {
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Client is a feed protocol client connected to a keyscan serve instance.
type Client struct {
	conn net.Conn
	cfg  Config
}

// Dial connects to a feed server at addr (host:port).
func Dial(addr string) (*Client, error) {
	return DialWithConfig(addr, nil)
}

// DialWithConfig connects with custom timeouts.
func DialWithConfig(addr string, cfg *Config) (*Client, error) {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	conn, err := net.DialTimeout("tcp", addr, c.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial feed server: %w", err)
	}
	return &Client{conn: conn, cfg: c}, nil
}

// Close terminates the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) send(p Packet) error {
	if c.cfg.WriteTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
	return WritePacket(c.conn, p)
}

// KeyDown delivers a raw key down transition.
func (c *Client) KeyDown(raw uint8, rightSide bool) error {
	flags := FlagDown
	if rightSide {
		flags |= FlagRight
	}
	return c.send(Packet{Type: PacketTransition, A: raw, B: flags})
}

// KeyUp delivers a raw key up transition.
func (c *Client) KeyUp(raw uint8, rightSide bool) error {
	var flags uint8
	if rightSide {
		flags |= FlagRight
	}
	return c.send(Packet{Type: PacketTransition, A: raw, B: flags})
}

// Tap presses a key with no physical release; the server's debounce
// machinery releases it after the model's minimum press time.
func (c *Client) Tap(raw uint8) error {
	return c.send(Packet{Type: PacketSynthetic, A: raw})
}

// Char delivers character-level evidence for the CAPS LOCK heuristic.
func (c *Client) Char(ch byte) error {
	return c.send(Packet{Type: PacketChar, A: ch})
}

// Next blocks until the server reports the next scan or indicator packet.
func (c *Client) Next() (Packet, error) {
	return ReadPacket(c.conn)
}
