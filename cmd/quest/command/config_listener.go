package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	goerrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-quest/internal/listener"
	"github.com/pixil98/go-service"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// ListenerType is the protocol a listener speaks to players.
type ListenerType int

const (
	ListenerTypeTelnet ListenerType = iota
	ListenerTypeSSH
)

func (lt ListenerType) String() string {
	switch lt {
	case ListenerTypeTelnet:
		return "telnet"
	case ListenerTypeSSH:
		return "ssh"
	default:
		return fmt.Sprintf("listener(%d)", int(lt))
	}
}

func (lt ListenerType) MarshalText() ([]byte, error) {
	return []byte(lt.String()), nil
}

func (lt *ListenerType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "telnet":
		*lt = ListenerTypeTelnet
	case "ssh":
		*lt = ListenerTypeSSH
	default:
		return fmt.Errorf("unknown listener type: %s", text)
	}
	return nil
}

// ListenerConfig is one way in for players. An ssh listener with a
// host_key_path keeps its key there, creating it on first start.
type ListenerConfig struct {
	Protocol    ListenerType `json:"protocol"`
	Host        string       `json:"host,omitempty"`
	Port        uint16       `json:"port"`
	HostKeyPath string       `json:"host_key_path,omitempty"`
}

// name labels the listener's worker, e.g. "ssh-4022".
func (cl *ListenerConfig) name() string {
	return fmt.Sprintf("%s-%d", cl.Protocol, cl.Port)
}

func (cl *ListenerConfig) addr() string {
	return fmt.Sprintf("%s:%d", cl.Host, cl.Port)
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if cl.Protocol != ListenerTypeSSH && cl.HostKeyPath != "" {
		el.Add(fmt.Errorf("host_key_path is only used by ssh listeners"))
	}

	return el.Err()
}

// validateListeners checks each listener and that no two share an address.
func validateListeners(listeners []ListenerConfig) error {
	el := errors.NewErrorList()

	if len(listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	used := map[string]int{}
	for i, l := range listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
		if j, ok := used[l.addr()]; ok && l.Port != 0 {
			el.Add(fmt.Errorf("listener %d: port %d is already used by listener %d", i, l.Port, j))
			continue
		}
		used[l.addr()] = i
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager, logger logrus.FieldLogger) (service.Worker, error) {
	switch cl.Protocol {
	case ListenerTypeTelnet:
		return listener.NewTelnetListener(cl.Host, cl.Port, cm, logger), nil
	case ListenerTypeSSH:
		hostKey, err := cl.hostKey()
		if err != nil {
			return nil, fmt.Errorf("setting up ssh host key: %w", err)
		}
		return listener.NewSshListener(cl.Host, cl.Port, cm, hostKey), nil
	default:
		return nil, fmt.Errorf("unknown listener type: %v", cl.Protocol)
	}
}

// hostKey reads the configured key, writing a fresh ed25519 key there if
// none exists yet. Without a path the key only lasts for this run.
func (cl *ListenerConfig) hostKey() (ssh.Signer, error) {
	if cl.HostKeyPath == "" {
		slog.Warn("no host_key_path configured for ssh listener, players will see a new host key on every restart")
		_, signer, err := newHostKey()
		return signer, err
	}

	keyBytes, err := os.ReadFile(cl.HostKeyPath)
	switch {
	case err == nil:
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, fmt.Errorf("parsing host key %q: %w", cl.HostKeyPath, err)
		}
		return signer, nil
	case !goerrors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("reading host key %q: %w", cl.HostKeyPath, err)
	}

	block, signer, err := newHostKey()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cl.HostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating host key directory: %w", err)
	}
	if err := os.WriteFile(cl.HostKeyPath, pem.EncodeToMemory(block), 0o600); err != nil {
		return nil, fmt.Errorf("writing host key %q: %w", cl.HostKeyPath, err)
	}
	slog.Info("generated ssh host key", "path", cl.HostKeyPath)
	return signer, nil
}

func newHostKey() (*pem.Block, ssh.Signer, error) {
	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generating host key: %w", err)
	}
	block, err := ssh.MarshalPrivateKey(privKey, "go-quest host key")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding host key: %w", err)
	}
	signer, err := ssh.NewSignerFromKey(privKey)
	if err != nil {
		return nil, nil, fmt.Errorf("creating signer: %w", err)
	}
	return block, signer, nil
}
