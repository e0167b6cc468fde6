package node

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Node identifies this ground station process. Version and CommitHash are
// set at build time with -ldflags.
type Node struct {
	ID         string
	Hostname   string
	IPAddress  string
	Version    string
	CommitHash string
}

var Version = "development"
var CommitHash = "unknown"

var (
	info     *Node
	infoOnce sync.Once
)

// GetNodeInfo is resolved once per process.
func GetNodeInfo() *Node {
	infoOnce.Do(func() {
		info = &Node{
			ID:         uuid.New().String(),
			Hostname:   hostname(),
			IPAddress:  ipAddress(),
			Version:    Version,
			CommitHash: CommitHash,
		}
	})
	return info
}

// LogAttrs are attached to every log record of the process.
func (n *Node) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("version", n.Version),
		slog.String("commit", n.CommitHash),
		slog.String("node", n.Hostname),
	}
}

// ClientID builds a broker client id unique to this process.
func (n *Node) ClientID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, n.ID[:8])
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "unknown"
	}
	return name
}

func ipAddress() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String()
}
