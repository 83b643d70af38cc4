// Package retroarch reads emulated Genesis work RAM through RetroArch's
// network command interface (network_cmd_enable = true). The interface is a
// plain UDP request/reply protocol: one datagram out, one datagram back,
// space-separated ASCII fields.
package retroarch

import (
	"bytes"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"spinsplit/internal/game"
)

// requestTimeout bounds one round trip. The tick loop runs at frame
// cadence, so a stalled emulator must fail fast rather than stack ticks.
const requestTimeout = 250 * time.Millisecond

// Client implements splitter.Memory over RetroArch UDP commands. All
// failures degrade to a not-ok read; the splitter retries every tick.
// Not safe for concurrent use: the splitter serializes ticks, and every
// call happens inside one.
type Client struct {
	addr     string
	wramBase uint32
	log      *zap.Logger

	conn net.Conn
	buf  [2048]byte
}

// New builds a client for the given UDP address. A zero wramBase means the
// stock Genesis memory map.
func New(addr string, wramBase uint32, log *zap.Logger) *Client {
	if wramBase == 0 {
		wramBase = game.WRAMBase
	}
	return &Client{addr: addr, wramBase: wramBase, log: log}
}

// Attached probes the emulator with GET_STATUS. RetroArch answers
// CONTENTLESS when no core is loaded; PLAYING or PAUSED both mean the game
// RAM is there to read.
func (c *Client) Attached() bool {
	reply, ok := c.request("GET_STATUS")
	if !ok {
		return false
	}
	fields := strings.Fields(reply)
	if len(fields) < 2 || fields[0] != "GET_STATUS" {
		return false
	}
	return fields[1] == "PLAYING" || fields[1] == "PAUSED"
}

// ReadU8 reads one byte at a work-RAM offset.
func (c *Client) ReadU8(offset uint32) (uint8, bool) {
	b, ok := c.readCoreMemory(offset, 1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

// ReadU16 reads a 68k word at a work-RAM offset. The 68000 is big-endian.
func (c *Client) ReadU16(offset uint32) (uint16, bool) {
	b, ok := c.readCoreMemory(offset, 2)
	if !ok {
		return 0, false
	}
	return uint16(b[0])<<8 | uint16(b[1]), true
}

// Close releases the UDP socket.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// readCoreMemory issues READ_CORE_MEMORY and parses the hex byte list out
// of the reply. RetroArch answers "-1" in place of the byte list when the
// address is unmapped for the loaded core.
func (c *Client) readCoreMemory(offset uint32, n int) ([]byte, bool) {
	addr := c.wramBase + offset
	reply, ok := c.request(fmt.Sprintf("READ_CORE_MEMORY %x %d", addr, n))
	if !ok {
		return nil, false
	}

	fields := strings.Fields(reply)
	if len(fields) < 3 || fields[0] != "READ_CORE_MEMORY" {
		return nil, false
	}
	if fields[2] == "-1" {
		return nil, false
	}
	if len(fields) < 2+n {
		return nil, false
	}

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseUint(fields[2+i], 16, 8)
		if err != nil {
			return nil, false
		}
		out[i] = byte(v)
	}
	return out, true
}

// request performs one datagram round trip. Any transport error tears the
// socket down so the next call re-dials; UDP sockets only fail here when
// the kernel knows something (ICMP refusals, interface loss), so re-dialing
// is cheap and keeps the client self-healing.
func (c *Client) request(cmd string) (string, bool) {
	if c.conn == nil {
		conn, err := net.DialTimeout("udp", c.addr, requestTimeout)
		if err != nil {
			c.log.Debug("retroarch dial failed", zap.String("addr", c.addr), zap.Error(err))
			return "", false
		}
		c.conn = conn
	}

	deadline := time.Now().Add(requestTimeout)
	if err := c.conn.SetDeadline(deadline); err != nil {
		c.drop(err)
		return "", false
	}
	if _, err := c.conn.Write([]byte(cmd + "\n")); err != nil {
		c.drop(err)
		return "", false
	}

	n, err := c.conn.Read(c.buf[:])
	if err != nil {
		c.drop(err)
		return "", false
	}
	return string(bytes.TrimRight(c.buf[:n], "\r\n")), true
}

func (c *Client) drop(err error) {
	c.log.Debug("retroarch request failed", zap.Error(err))
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}
