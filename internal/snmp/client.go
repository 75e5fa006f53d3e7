package snmp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/wilsonritt/snmp-monitor/internal/domain"
	"github.com/wilsonritt/snmp-monitor/internal/logger"
)

// IF-MIB columns used by the poller. The 64-bit HC octet counters wrap far
// later than the 32-bit ifInOctets/ifOutOctets ones; a wrap is still
// handled upstream as a negative delta.
const (
	oidIfName       = ".1.3.6.1.2.1.31.1.1.1.1"
	oidIfAlias      = ".1.3.6.1.2.1.31.1.1.1.18"
	oidIfHCInOctets = ".1.3.6.1.2.1.31.1.1.1.6"
	oidIfHCOutOctet = ".1.3.6.1.2.1.31.1.1.1.10"
)

type ClientConfig struct {
	Target    string
	Port      uint16
	Community string
	Version   string // "1" or "2c"
	Timeout   time.Duration
	Retries   int
}

// Client fetches interface octet counters from one device over SNMP.
type Client struct {
	conn *gosnmp.GoSNMP
	log  logger.Logger
}

func NewClient(cfg ClientConfig, log logger.Logger) (*Client, error) {
	if !ValidTarget(cfg.Target) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTarget, cfg.Target)
	}

	version := gosnmp.Version2c
	if cfg.Version == "1" {
		version = gosnmp.Version1
	}

	conn := &gosnmp.GoSNMP{
		Target:    cfg.Target,
		Port:      cfg.Port,
		Community: cfg.Community,
		Version:   version,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
		Context:   context.Background(),
	}

	if err := conn.Connect(); err != nil {
		return nil, transportErr(err)
	}

	return &Client{conn: conn, log: log}, nil
}

// ListInterfaces walks ifName and ifAlias and returns index to display
// name, "name (alias)" when an alias is set.
func (c *Client) ListInterfaces(ctx context.Context) (map[int]string, error) {
	c.conn.Context = ctx

	names, err := c.walkStrings(oidIfName)
	if err != nil {
		return nil, err
	}
	aliases, err := c.walkStrings(oidIfAlias)
	if err != nil {
		return nil, err
	}

	interfaces := make(map[int]string, len(names))
	for index, name := range names {
		if alias := strings.TrimSpace(aliases[index]); alias != "" {
			interfaces[index] = fmt.Sprintf("%s (%s)", name, alias)
		} else {
			interfaces[index] = name
		}
	}

	if len(interfaces) == 0 {
		return nil, domain.ErrNoInterfaces
	}

	return interfaces, nil
}

// FetchCounters reads both HC octet counters of one interface in a single
// GET and stamps the reading with the local receive time.
func (c *Client) FetchCounters(ctx context.Context, index int) (domain.RawReading, error) {
	c.conn.Context = ctx

	oids := []string{
		fmt.Sprintf("%s.%d", oidIfHCInOctets, index),
		fmt.Sprintf("%s.%d", oidIfHCOutOctet, index),
	}

	packet, err := c.conn.Get(oids)
	if err != nil {
		return domain.RawReading{}, transportErr(err)
	}
	if len(packet.Variables) < 2 {
		return domain.RawReading{}, transportErr(fmt.Errorf("short response: %d varbinds", len(packet.Variables)))
	}

	octetsIn, err := counterValue(packet.Variables[0])
	if err != nil {
		return domain.RawReading{}, err
	}
	octetsOut, err := counterValue(packet.Variables[1])
	if err != nil {
		return domain.RawReading{}, err
	}

	return domain.RawReading{
		InterfaceIndex: index,
		At:             time.Now(),
		OctetsIn:       octetsIn,
		OctetsOut:      octetsOut,
	}, nil
}

func (c *Client) Close() error {
	if c.conn.Conn == nil {
		return nil
	}
	return c.conn.Conn.Close()
}

func (c *Client) walkStrings(oid string) (map[int]string, error) {
	pdus, err := c.conn.WalkAll(oid)
	if err != nil {
		return nil, transportErr(err)
	}

	out := make(map[int]string, len(pdus))
	for _, pdu := range pdus {
		index, err := lastIndex(pdu.Name)
		if err != nil {
			c.log.Debug("snmp: skipping varbind with odd oid", "oid", pdu.Name)
			continue
		}

		switch v := pdu.Value.(type) {
		case []byte:
			out[index] = string(v)
		case string:
			out[index] = v
		}
	}

	return out, nil
}

func counterValue(pdu gosnmp.SnmpPDU) (uint64, error) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance:
		return 0, fmt.Errorf("%w: oid %s", domain.ErrUnknownInterface, pdu.Name)
	}
	return gosnmp.ToBigInt(pdu.Value).Uint64(), nil
}

func lastIndex(oid string) (int, error) {
	dot := strings.LastIndex(oid, ".")
	if dot < 0 || dot == len(oid)-1 {
		return 0, fmt.Errorf("malformed oid %q", oid)
	}
	return strconv.Atoi(oid[dot+1:])
}

func transportErr(err error) error {
	kind := domain.TransportConnection

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		kind = domain.TransportTimeout
	} else if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "timeout") {
		kind = domain.TransportTimeout
	} else if strings.Contains(err.Error(), "authentication") || strings.Contains(err.Error(), "authorization") {
		kind = domain.TransportAuth
	}

	return &domain.TransportError{Kind: kind, Err: err}
}
