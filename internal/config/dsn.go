package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// buildDSN renders a postgres:// URL. The password is URL-escaped so that
// characters like ':' or '@' do not break the URL structure; IPv6 hosts are
// bracketed by net.JoinHostPort.
func buildDSN(d DatabaseConfig) string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}
