package launch

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ClickHouseSource points at a table holding launch rows with the same
// snake_case columns as the Parquet layout.
type ClickHouseSource struct {
	Addr     string `json:"addr" yaml:"addr"`
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Table    string `json:"table" yaml:"table"`
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Query returns the SELECT used to load the table. Every column is cast
// so the scan targets in loadClickHouse always match.
func (s ClickHouseSource) Query() (string, error) {
	if !identRe.MatchString(s.Table) {
		return "", fmt.Errorf("invalid clickhouse table name %q", s.Table)
	}
	return fmt.Sprintf(`SELECT
	toInt64(flight_number),
	toString(launch_site),
	toUInt8(class),
	toFloat64(payload_mass_kg),
	toString(booster_version),
	toString(booster_version_category)
FROM %s
ORDER BY flight_number`, s.Table), nil
}

func loadClickHouse(ctx context.Context, src ClickHouseSource) ([]Record, error) {
	query, err := src.Query()
	if err != nil {
		return nil, err
	}
	db := src.Database
	if db == "" {
		db = "default"
	}
	user := src.Username
	if user == "" {
		user = "default"
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{src.Addr},
		Auth: clickhouse.Auth{
			Database: db,
			Username: user,
			Password: src.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout:  10 * time.Second,
		MaxOpenConns: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("clickhouse connect: %w", err)
	}
	defer conn.Close()

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("clickhouse query: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			flight   int64
			site     string
			class    uint8
			mass     float64
			version  string
			category string
		)
		if err := rows.Scan(&flight, &site, &class, &mass, &version, &category); err != nil {
			return nil, fmt.Errorf("clickhouse scan: %w", err)
		}
		rec, err := parquetRow{
			FlightNumber:           flight,
			LaunchSite:             site,
			Class:                  int64(class),
			PayloadMassKg:          mass,
			BoosterVersion:         version,
			BoosterVersionCategory: category,
		}.record()
		if err != nil {
			return nil, fmt.Errorf("clickhouse row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("clickhouse rows: %w", err)
	}
	return records, nil
}
