// Package livesplit drives a LiveSplit Server instance over its
// newline-delimited TCP text protocol. Control commands carry no reply;
// only the timer phase query reads one back.
package livesplit

import (
	"bufio"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"spinsplit/internal/splitter"
)

const requestTimeout = 250 * time.Millisecond

// Client implements splitter.TimerControl. Control sends are
// fire-and-forget: transport errors are logged, the connection is dropped
// and re-dialed on the next call, and nothing propagates to the splitter.
// Not safe for concurrent use; every call happens inside a tick.
type Client struct {
	addr string
	log  *zap.Logger

	conn net.Conn
	rd   *bufio.Reader

	// lastPhase backs Phase() when the query fails, so a dropped packet
	// cannot fabricate a NotRunning edge mid-run.
	lastPhase splitter.TimerPhase
}

// New builds a client for the given TCP address.
func New(addr string, log *zap.Logger) *Client {
	return &Client{addr: addr, log: log, lastPhase: splitter.TimerNotRunning}
}

// Phase asks the server for its current timer phase. LiveSplit reports a
// fourth phase, Ended, for a finished run that has not been reset; it maps
// to NotRunning here, which matches doing nothing: the only signal
// evaluated in NotRunning is start, and the server ignores starttimer
// while a run sits ended.
func (c *Client) Phase() splitter.TimerPhase {
	reply, ok := c.query("getcurrenttimerphase")
	if !ok {
		return c.lastPhase
	}
	switch reply {
	case "NotRunning", "Ended":
		c.lastPhase = splitter.TimerNotRunning
	case "Running":
		c.lastPhase = splitter.TimerRunning
	case "Paused":
		c.lastPhase = splitter.TimerPaused
	default:
		c.log.Warn("livesplit reported unknown phase", zap.String("phase", reply))
	}
	return c.lastPhase
}

// Start starts the timer.
func (c *Client) Start() { c.send("starttimer") }

// Split records a segment split.
func (c *Client) Split() { c.send("split") }

// Reset abandons the current run.
func (c *Client) Reset() { c.send("reset") }

// Close releases the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.rd = nil
	return err
}

func (c *Client) send(cmd string) {
	if !c.write(cmd) {
		// One immediate retry after a re-dial covers the common case of
		// LiveSplit restarting between ticks.
		if !c.write(cmd) {
			c.log.Warn("livesplit command dropped", zap.String("cmd", cmd))
		}
	}
}

func (c *Client) query(cmd string) (string, bool) {
	if !c.write(cmd) {
		return "", false
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(requestTimeout)); err != nil {
		c.drop(err)
		return "", false
	}
	line, err := c.rd.ReadString('\n')
	if err != nil {
		c.drop(err)
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (c *Client) write(cmd string) bool {
	if c.conn == nil {
		conn, err := net.DialTimeout("tcp", c.addr, requestTimeout)
		if err != nil {
			c.log.Debug("livesplit dial failed", zap.String("addr", c.addr), zap.Error(err))
			return false
		}
		c.conn = conn
		c.rd = bufio.NewReader(conn)
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(requestTimeout)); err != nil {
		c.drop(err)
		return false
	}
	if _, err := c.conn.Write([]byte(cmd + "\r\n")); err != nil {
		c.drop(err)
		return false
	}
	return true
}

func (c *Client) drop(err error) {
	c.log.Debug("livesplit request failed", zap.Error(err))
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
		c.rd = nil
	}
}
