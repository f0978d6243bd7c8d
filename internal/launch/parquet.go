package launch

import (
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// parquetRow is the on-disk layout of a launch Parquet file. Column names
// are the snake_case forms of the CSV headers.
type parquetRow struct {
	FlightNumber           int64   `parquet:"flight_number"`
	LaunchSite             string  `parquet:"launch_site"`
	Class                  int64   `parquet:"class"`
	PayloadMassKg          float64 `parquet:"payload_mass_kg"`
	BoosterVersion         string  `parquet:"booster_version"`
	BoosterVersionCategory string  `parquet:"booster_version_category"`
}

func (p parquetRow) record() (Record, error) {
	if p.LaunchSite == "" {
		return Record{}, fmt.Errorf("empty launch_site")
	}
	var success bool
	switch p.Class {
	case 0:
	case 1:
		success = true
	default:
		return Record{}, fmt.Errorf("class: want 0 or 1, got %d", p.Class)
	}
	return Record{
		FlightNumber:    int(p.FlightNumber),
		Site:            p.LaunchSite,
		Success:         success,
		PayloadMassKg:   p.PayloadMassKg,
		BoosterVersion:  p.BoosterVersion,
		BoosterCategory: p.BoosterVersionCategory,
	}, nil
}

// ReadParquet reads every launch row from a Parquet file.
func ReadParquet(r io.ReaderAt) ([]Record, error) {
	reader := parquet.NewGenericReader[parquetRow](r)
	defer reader.Close()

	var records []Record
	buf := make([]parquetRow, 256)
	row := 0
	for {
		n, err := reader.Read(buf)
		for i := 0; i < n; i++ {
			row++
			rec, rerr := buf[i].record()
			if rerr != nil {
				return nil, fmt.Errorf("row %d: %w", row, rerr)
			}
			records = append(records, rec)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return records, nil
}
