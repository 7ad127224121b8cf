// Package sftp publishes staged artifacts to a remote host over SFTP
// so that the returned download URL actually serves the file.
package sftp

import (
	"context"
	"fmt"
	"io"
	"os"
	gopath "path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/fileforge/convertd/internal/core/ports/driven"
	"github.com/fileforge/convertd/internal/logger"
)

// Config holds the connection settings for the upload target.
type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	RemoteDir string
}

// Ensure Publisher implements the interface.
var _ driven.Publisher = (*Publisher)(nil)

// Publisher uploads files over SFTP. Each Publish call opens a fresh
// connection; uploads are rare enough that pooling is not worth the
// reconnect handling.
type Publisher struct {
	cfg Config
}

// New creates a Publisher for the given target.
func New(cfg Config) *Publisher {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	return &Publisher{cfg: cfg}
}

// Publish uploads the file at localPath to the configured remote
// directory under remoteName.
func (p *Publisher) Publish(ctx context.Context, localPath, remoteName string) error {
	client, closeAll, err := p.connect(ctx)
	if err != nil {
		return err
	}
	defer closeAll()

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer src.Close() //nolint:errcheck

	target := remotePath(p.cfg.RemoteDir, remoteName)
	if dir := gopath.Dir(target); dir != "." && dir != "/" {
		if err := client.MkdirAll(dir); err != nil {
			return fmt.Errorf("creating remote dir %s: %w", dir, err)
		}
	}

	dst, err := client.Create(target)
	if err != nil {
		return fmt.Errorf("creating remote file %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("uploading %s: %w", target, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("closing remote file %s: %w", target, err)
	}

	logger.Info("published %s to %s@%s:%s", localPath, p.cfg.User, p.cfg.Host, target)
	return nil
}

// connect dials SSH and opens an SFTP session. The returned closer
// tears down both.
func (p *Publisher) connect(ctx context.Context) (*sftp.Client, func(), error) {
	sshCfg := &ssh.ClientConfig{
		User:            p.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(p.cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec
		Timeout:         15 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)
	conn, err := ssh.Dial("tcp", addr, sshCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	if err := ctx.Err(); err != nil {
		conn.Close()
		return nil, nil, err
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("opening sftp session on %s: %w", addr, err)
	}

	closeAll := func() {
		if err := client.Close(); err != nil {
			logger.Warn("closing sftp session: %v", err)
		}
		if err := conn.Close(); err != nil {
			logger.Warn("closing ssh connection: %v", err)
		}
	}
	return client, closeAll, nil
}

// remotePath joins the remote directory and file name with forward
// slashes regardless of the local OS.
func remotePath(dir, name string) string {
	if dir == "" {
		return name
	}
	return gopath.Join(dir, name)
}
