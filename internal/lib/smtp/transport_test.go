package smtp

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movieflix-backend/internal/config"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTransport_GetSMTPUser(t *testing.T) {
	transport := NewTransport(config.SMTP{SMTPUser: "noreply@movieflix.local"}, newNoopLogger())
	assert.Equal(t, "noreply@movieflix.local", transport.GetSMTPUser())
}

func TestTransport_Connect_NoSTARTTLS(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, acceptErr := ln.Accept()
		if acceptErr != nil {
			return
		}
		defer conn.Close()

		reader := bufio.NewReader(conn)
		fmt.Fprint(conn, "220 mail.test ESMTP\r\n")
		if _, readErr := reader.ReadString('\n'); readErr != nil {
			return
		}
		// сервер без расширения STARTTLS
		fmt.Fprint(conn, "250 mail.test\r\n")
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	transport := NewTransport(config.SMTP{SMTPHost: host, SMTPPort: port}, newNoopLogger())

	_, err = transport.Connect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STARTTLS")
}

func TestTransport_Connect_DialError(t *testing.T) {
	// порт без слушателя
	transport := NewTransport(config.SMTP{SMTPHost: "127.0.0.1", SMTPPort: "1"}, newNoopLogger())

	_, err := transport.Connect()
	require.Error(t, err)
}
