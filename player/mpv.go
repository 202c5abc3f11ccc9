package player

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yogaland/yogaland/constant"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	loadTimeout       = 30 * time.Second

	propertyEOF = "eof-reached"
)

// MPV drives a long-lived idle mpv process over JSON-IPC.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *EventListener
	mu         sync.Mutex // serializes socket writes

	loadMu  sync.Mutex
	pending chan error

	// eof mirrors mpv's eof-reached property for the current file
	eof atomic.Bool
}

// NewMPV creates an mpv engine. The process starts on the first Load.
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// Load replaces the current file and waits for mpv to report it loaded.
func (m *MPV) Load(ctx context.Context, locator, title string) error {
	target, err := sanitizeMediaTarget(locator)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	if err := m.ensureRunning(); err != nil {
		return err
	}

	result := make(chan error, 1)
	m.loadMu.Lock()
	m.pending = result
	m.loadMu.Unlock()

	defer func() {
		m.loadMu.Lock()
		if m.pending == result {
			m.pending = nil
		}
		m.loadMu.Unlock()
	}()

	if err := m.set("pause", true); err != nil {
		return err
	}
	m.eof.Store(false)
	_ = m.set("force-media-title", sanitizeTitle(title))

	if _, err := m.sendCommand([]interface{}{"loadfile", target, "replace"}); err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	timeout := time.NewTimer(loadTimeout)
	defer timeout.Stop()

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-m.exited:
		return fmt.Errorf("%w: mpv exited", ErrLoad)
	case <-timeout.C:
		return fmt.Errorf("%w: timed out after %s", ErrLoad, loadTimeout)
	}
}

func (m *MPV) Play() error {
	return m.set("pause", false)
}

func (m *MPV) Pause() error {
	return m.set("pause", true)
}

func (m *MPV) Seek(seconds int) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// Position returns the whole seconds elapsed in the current file.
func (m *MPV) Position() (int, error) {
	pos, err := m.getFloatProperty("time-pos")
	if err != nil {
		return 0, err
	}
	return int(pos), nil
}

// EOF reports whether the current file played to its end. With --keep-open
// mpv holds the last frame there and time-pos stops moving.
func (m *MPV) EOF() bool {
	return m.eof.Load()
}

// SetMarkers shows mid-roll breaks as chapters on mpv's timeline.
func (m *MPV) SetMarkers(positions []int) error {
	chapters := []map[string]interface{}{{"title": "Part 1", "time": 0.0}}
	for i, p := range positions {
		chapters = append(chapters, map[string]interface{}{
			"title": fmt.Sprintf("Part %d", i+2),
			"time":  float64(p),
		})
	}

	_, err := m.sendCommand([]interface{}{"set_property", "chapter-list", chapters})
	return err
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// Close shuts mpv down and removes its socket.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
	}

	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	m.socketPath = ""
	return nil
}

func (m *MPV) ensureRunning() error {
	if m.IsRunning() {
		return nil
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes))

	// user mpv.conf decides video output and hardware decoding
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--pause=yes",
	}

	m.cmd = exec.Command("mpv", args...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	exited := m.exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.onEvent, propertyEOF)
	return m.listener.Start()
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			_ = conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) onEvent(name string, data interface{}) {
	var result error

	switch name {
	case propertyEOF:
		reached, _ := data.(bool)
		m.eof.Store(reached)
		return
	case "file-loaded":
	case "end-file":
		event, _ := data.(map[string]interface{})
		if reason, _ := event["reason"].(string); reason != "error" {
			return
		}
		detail, _ := event["file_error"].(string)
		result = fmt.Errorf("%w: %s", ErrLoad, detail)
	default:
		return
	}

	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	if m.pending == nil {
		return
	}

	select {
	case m.pending <- result:
	default:
	}
}

func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget rejects locators mpv would parse as options or unsupported protocols.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty locator")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in locator")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("locator must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
